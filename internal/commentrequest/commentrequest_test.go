package commentrequest

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/SergeyParamoshkin/marucat/internal/apperror"
	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func bind(body string) (*CommentRequest, error) {
	r := httptest.NewRequest(http.MethodPost, "/articles/x/comments", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")

	data := &CommentRequest{}

	return data, render.Bind(r, data)
}

func TestBindComplete(t *testing.T) {
	reply := primitive.NewObjectID()
	data, err := bind(`{"from":"Mary","body":"hello","timestamp":1530000000000,"reply_id":"` + reply.Hex() + `"}`)
	require.NoError(t, err)

	aid := primitive.NewObjectID()
	c := data.Comment(aid)

	assert.Equal(t, aid, c.ArticleID)
	assert.False(t, c.ID.IsZero())
	assert.Equal(t, "Mary", c.From)
	assert.Equal(t, "hello", c.Body)
	assert.Equal(t, int64(1530000000000), c.Timestamp)
	require.NotNil(t, c.ReplyID)
	assert.Equal(t, reply, *c.ReplyID)
	assert.False(t, c.Deleted)
}

func TestBindMissingKeys(t *testing.T) {
	bodies := []string{
		`{"body":"hello","timestamp":1}`,
		`{"from":"Mary","timestamp":1}`,
		`{"from":"Mary","body":"hello"}`,
		`{"from":"  ","body":"hello","timestamp":1}`,
		`{"from":"Mary","body":"hello","timestamp":1,"reply_id":"not-an-id"}`,
		`{"from":"Mary","body":"hello","timestamp":1,"reply_id":"abc"}`,
	}

	for _, body := range bodies {
		_, err := bind(body)

		var postErr *apperror.InvalidPostDataError
		assert.True(t, errors.As(err, &postErr), body)
	}
}

func TestBindMalformedJSON(t *testing.T) {
	_, err := bind(`[1, 2]`)
	assert.Error(t, err)
}
