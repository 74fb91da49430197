package commentrequest

import (
	"net/http"
	"strings"

	"github.com/SergeyParamoshkin/marucat/internal/apperror"
	"github.com/SergeyParamoshkin/marucat/internal/model"
	"github.com/SergeyParamoshkin/marucat/internal/param"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RequiredKeys must all be present in a posted comment.
var RequiredKeys = []string{"from", "body", "timestamp"}

// CommentRequest is the request payload for posting a comment.
//
// Pointers tell a missing key apart from a zero value.
type CommentRequest struct {
	From      *string `json:"from"`
	Body      *string `json:"body"`
	Timestamp *int64  `json:"timestamp"`
	ReplyID   *string `json:"reply_id,omitempty"`

	replyTo *primitive.ObjectID
}

// Bind on CommentRequest runs after the unmarshalling is complete and
// rejects incomplete comments.
func (c *CommentRequest) Bind(r *http.Request) error {
	if c.From == nil || strings.TrimSpace(*c.From) == "" ||
		c.Body == nil || strings.TrimSpace(*c.Body) == "" ||
		c.Timestamp == nil {
		return InvalidPostData()
	}

	if c.ReplyID != nil && *c.ReplyID != "" {
		if !param.ValidID(*c.ReplyID) {
			return InvalidPostData()
		}

		oid, err := primitive.ObjectIDFromHex(*c.ReplyID)
		if err != nil {
			return InvalidPostData()
		}
		c.replyTo = &oid
	}

	return nil
}

// Comment builds the stored comment for the article aid with a fresh id.
func (c *CommentRequest) Comment(aid primitive.ObjectID) *model.Comment {
	return &model.Comment{
		ArticleID: aid,
		ID:        primitive.NewObjectID(),
		From:      strings.TrimSpace(*c.From),
		Body:      *c.Body,
		Timestamp: *c.Timestamp,
		ReplyID:   c.replyTo,
	}
}

func InvalidPostData() *apperror.InvalidPostDataError {
	return &apperror.InvalidPostDataError{Keys: RequiredKeys}
}
