package article

import (
	"context"
	"fmt"

	"github.com/SergeyParamoshkin/marucat/internal/apperror"
	"github.com/SergeyParamoshkin/marucat/internal/model"
	"github.com/SergeyParamoshkin/marucat/internal/param"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Store is the persistence used by the articles API.
type Store interface {
	List(ctx context.Context, q Query) ([]*model.Article, int64, error)
	Get(ctx context.Context, id primitive.ObjectID, commentsSize int, includeDeleted bool) (*model.Article, error)
	Comments(ctx context.Context, id primitive.ObjectID, page param.Page, includeDeleted bool) ([]*model.Comment, int64, error)
	PostComment(ctx context.Context, id primitive.ObjectID, comment *model.Comment) error
	DeleteComment(ctx context.Context, id, commentID primitive.ObjectID) error
}

// MongoStore keeps articles, with their comments embedded, in a single
// collection.
type MongoStore struct {
	coll *mongo.Collection
}

func NewMongoStore(coll *mongo.Collection) *MongoStore {
	return &MongoStore{coll: coll}
}

func (s *MongoStore) List(ctx context.Context, q Query) ([]*model.Article, int64, error) {
	total, err := s.coll.CountDocuments(ctx, listFilter(q))
	if err != nil {
		return nil, 0, fmt.Errorf("count articles: %w", err)
	}

	cur, err := s.coll.Aggregate(ctx, listPipeline(q))
	if err != nil {
		return nil, 0, fmt.Errorf("list articles: %w", err)
	}

	articles := []*model.Article{}
	if err := cur.All(ctx, &articles); err != nil {
		return nil, 0, fmt.Errorf("decode articles: %w", err)
	}

	return articles, total, nil
}

// Get returns the article and counts the visit. The views counter relies
// on $inc being atomic.
func (s *MongoStore) Get(ctx context.Context, id primitive.ObjectID, commentsSize int, includeDeleted bool) (*model.Article, error) {
	res, err := s.coll.UpdateOne(ctx, articleFilter(id, includeDeleted), bson.M{"$inc": bson.M{"views": 1}})
	if err != nil {
		return nil, fmt.Errorf("update views of %s: %w", id.Hex(), err)
	}

	if res.MatchedCount == 0 {
		return nil, apperror.ErrNoSuchArticle
	}

	cur, err := s.coll.Aggregate(ctx, detailPipeline(id, commentsSize, includeDeleted))
	if err != nil {
		return nil, fmt.Errorf("get article %s: %w", id.Hex(), err)
	}

	var found []*model.Article
	if err := cur.All(ctx, &found); err != nil {
		return nil, fmt.Errorf("decode article %s: %w", id.Hex(), err)
	}

	// deleted between the two round trips
	if len(found) == 0 {
		return nil, apperror.ErrNoSuchArticle
	}

	return found[0], nil
}

type commentPage struct {
	Total    int64            `bson:"total"`
	Comments []*model.Comment `bson:"comments"`
}

func (s *MongoStore) Comments(ctx context.Context, id primitive.ObjectID, page param.Page, includeDeleted bool) ([]*model.Comment, int64, error) {
	cur, err := s.coll.Aggregate(ctx, commentsPipeline(id, page, includeDeleted))
	if err != nil {
		return nil, 0, fmt.Errorf("list comments of %s: %w", id.Hex(), err)
	}

	var found []commentPage
	if err := cur.All(ctx, &found); err != nil {
		return nil, 0, fmt.Errorf("decode comments of %s: %w", id.Hex(), err)
	}

	if len(found) == 0 {
		return nil, 0, apperror.ErrNoSuchArticle
	}

	return found[0].Comments, found[0].Total, nil
}

func (s *MongoStore) PostComment(ctx context.Context, id primitive.ObjectID, comment *model.Comment) error {
	res, err := s.coll.UpdateOne(ctx, articleFilter(id, false), bson.M{"$push": bson.M{"comments": comment}})
	if err != nil {
		return fmt.Errorf("push comment to %s: %w", id.Hex(), err)
	}

	if res.MatchedCount == 0 {
		return apperror.ErrNoSuchArticle
	}

	return nil
}

// DeleteComment marks the comment deleted. A comment that is already
// deleted is reported as missing.
func (s *MongoStore) DeleteComment(ctx context.Context, id, commentID primitive.ObjectID) error {
	res, err := s.coll.UpdateOne(ctx, deleteCommentFilter(id, commentID), deleteCommentUpdate(model.NowMillis()))
	if err != nil {
		return fmt.Errorf("delete comment %s of %s: %w", commentID.Hex(), id.Hex(), err)
	}

	if res.MatchedCount > 0 {
		return nil
	}

	n, err := s.coll.CountDocuments(ctx, articleFilter(id, false))
	if err != nil {
		return fmt.Errorf("count article %s: %w", id.Hex(), err)
	}

	if n == 0 {
		return apperror.ErrNoSuchArticle
	}

	return apperror.ErrNoSuchComment
}

// Seed inserts articles, assigning ids left empty.
func (s *MongoStore) Seed(ctx context.Context, articles []*model.Article) (int, error) {
	docs := make([]interface{}, 0, len(articles))
	for _, a := range articles {
		if a.ID.IsZero() {
			a.ID = primitive.NewObjectID()
		}

		for i := range a.Comments {
			a.Comments[i].ArticleID = a.ID
			if a.Comments[i].ID.IsZero() {
				a.Comments[i].ID = primitive.NewObjectID()
			}
		}

		docs = append(docs, a)
	}

	if len(docs) == 0 {
		return 0, nil
	}

	res, err := s.coll.InsertMany(ctx, docs)
	if err != nil {
		return 0, fmt.Errorf("seed articles: %w", err)
	}

	return len(res.InsertedIDs), nil
}
