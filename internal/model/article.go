package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Article is a blog post stored in the articles collection. Comments are
// embedded sub-documents.
type Article struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title     string             `json:"title" bson:"title"`
	Author    string             `json:"author" bson:"author"`
	Peek      string             `json:"peek" bson:"peek"`
	Content   string             `json:"content,omitempty" bson:"content,omitempty"`
	Views     int64              `json:"views" bson:"views"`
	Tags      []string           `json:"tags" bson:"tags"`
	Comments  []Comment          `json:"comments,omitempty" bson:"comments,omitempty"`
	Reviews   int64              `json:"reviews" bson:"reviews,omitempty"`
	Timestamp int64              `json:"timestamp" bson:"timestamp"` // created or updated, ms
	Deleted   bool               `json:"deleted,omitempty" bson:"deleted"`
}

// Comment is embedded in Article.Comments.
type Comment struct {
	ArticleID primitive.ObjectID  `json:"aid" bson:"aid"`
	ID        primitive.ObjectID  `json:"cid" bson:"cid"`
	From      string              `json:"from" bson:"from"`
	Body      string              `json:"body" bson:"body"`
	Timestamp int64               `json:"timestamp" bson:"timestamp"`
	ReplyID   *primitive.ObjectID `json:"reply_id,omitempty" bson:"reply_id,omitempty"`
	Deleted   bool                `json:"deleted,omitempty" bson:"deleted"`
	DeletedAt int64               `json:"deleted_at,omitempty" bson:"deleted_at,omitempty"`
}

// NowMillis is the timestamp format used by every stored document.
func NowMillis() int64 {
	return time.Now().UnixNano() / int64(time.Millisecond)
}
