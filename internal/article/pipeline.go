package article

import (
	"math"

	"github.com/SergeyParamoshkin/marucat/internal/param"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Query selects a page of articles.
type Query struct {
	Page           param.Page
	Tags           []string
	IncludeDeleted bool
}

// notDeleted matches documents whose deleted flag is unset or false.
var notDeleted = bson.M{"$ne": true}

func listFilter(q Query) bson.M {
	filter := bson.M{}
	if !q.IncludeDeleted {
		filter["deleted"] = notDeleted
	}

	if len(q.Tags) > 0 {
		filter["tags"] = bson.M{"$in": q.Tags}
	}

	return filter
}

func articleFilter(id primitive.ObjectID, includeDeleted bool) bson.M {
	filter := bson.M{"_id": id}
	if !includeDeleted {
		filter["deleted"] = notDeleted
	}

	return filter
}

// visibleComments is an expression yielding the article's comments,
// without the soft deleted ones unless includeDeleted is set.
func visibleComments(includeDeleted bool) interface{} {
	all := bson.M{"$ifNull": bson.A{"$comments", bson.A{}}}
	if includeDeleted {
		return all
	}

	return bson.M{"$filter": bson.M{
		"input": all,
		"as":    "c",
		"cond":  bson.M{"$ne": bson.A{"$$c.deleted", true}},
	}}
}

// listPipeline pages through articles newest first. Size 0 returns every
// matching article and ignores the offset.
func listPipeline(q Query) mongo.Pipeline {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: listFilter(q)}},
		{{Key: "$sort", Value: bson.D{{Key: "timestamp", Value: -1}, {Key: "_id", Value: -1}}}},
	}

	if q.Page.Size > 0 {
		pipeline = append(pipeline,
			bson.D{{Key: "$skip", Value: int64(q.Page.Offset)}},
			bson.D{{Key: "$limit", Value: int64(q.Page.Size)}},
		)
	}

	return append(pipeline, bson.D{{Key: "$project", Value: bson.M{
		"title":     1,
		"author":    1,
		"peek":      1,
		"views":     1,
		"tags":      1,
		"timestamp": 1,
		"deleted":   1,
		"reviews":   bson.M{"$size": visibleComments(q.IncludeDeleted)},
	}}})
}

// detailPipeline fetches a whole article with at most commentsSize of its
// visible comments. commentsSize 0 keeps all of them.
func detailPipeline(id primitive.ObjectID, commentsSize int, includeDeleted bool) mongo.Pipeline {
	var comments interface{} = 1
	if commentsSize > 0 {
		comments = bson.M{"$slice": bson.A{"$comments", sliceArg(commentsSize)}}
	}

	return mongo.Pipeline{
		{{Key: "$match", Value: articleFilter(id, includeDeleted)}},
		{{Key: "$addFields", Value: bson.M{"comments": visibleComments(includeDeleted)}}},
		{{Key: "$project", Value: bson.M{
			"title":     1,
			"author":    1,
			"peek":      1,
			"content":   1,
			"views":     1,
			"tags":      1,
			"timestamp": 1,
			"deleted":   1,
			"reviews":   bson.M{"$size": "$comments"},
			"comments":  comments,
		}}},
	}
}

// commentsPipeline slices a page out of the article's visible comments and
// reports how many there are in total.
func commentsPipeline(id primitive.ObjectID, page param.Page, includeDeleted bool) mongo.Pipeline {
	// $slice needs a positive count, so "all" is the array length, at least 1.
	var n interface{} = sliceArg(page.Size)
	if page.Size == 0 {
		n = bson.M{"$max": bson.A{bson.M{"$size": "$comments"}, 1}}
	}

	return mongo.Pipeline{
		{{Key: "$match", Value: articleFilter(id, includeDeleted)}},
		{{Key: "$project", Value: bson.M{"_id": 0, "comments": visibleComments(includeDeleted)}}},
		{{Key: "$project", Value: bson.M{
			"total":    bson.M{"$size": "$comments"},
			"comments": bson.M{"$slice": bson.A{"$comments", sliceArg(page.Offset), n}},
		}}},
	}
}

// sliceArg caps n at what $slice accepts. A larger position or count
// already reaches past the end of any array.
func sliceArg(n int) int {
	if n > math.MaxInt32 {
		return math.MaxInt32
	}

	return n
}

func deleteCommentFilter(aid, cid primitive.ObjectID) bson.M {
	return bson.M{
		"_id":     aid,
		"deleted": notDeleted,
		"comments": bson.M{"$elemMatch": bson.M{
			"cid":     cid,
			"deleted": notDeleted,
		}},
	}
}

func deleteCommentUpdate(now int64) bson.M {
	return bson.M{"$set": bson.M{
		"comments.$.deleted":    true,
		"comments.$.deleted_at": now,
	}}
}
