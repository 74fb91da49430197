package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/SergeyParamoshkin/marucat/internal/model"
)

type Client struct {
	http.Client
	Addr string
}

// APIError is a non-2xx answer from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return http.StatusText(e.StatusCode)
	}

	return fmt.Sprintf("%d: %s", e.StatusCode, e.Message)
}

type ArticlePage struct {
	Articles []*model.Article `json:"articles"`
	Total    int64            `json:"total"`
	HasMore  bool             `json:"has_more"`
}

type CommentPage struct {
	Comments []*model.Comment `json:"comments"`
	Total    int64            `json:"total"`
	HasMore  bool             `json:"has_more"`
}

// NewComment is the body of a posted comment.
type NewComment struct {
	From      string `json:"from"`
	Body      string `json:"body"`
	Timestamp int64  `json:"timestamp"`
	ReplyID   string `json:"reply_id,omitempty"`
}

func (c *Client) Ping(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Addr+"/ping", nil)
	if err != nil {
		return "", err
	}

	resp, err := c.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return string(body), err
}

func (c *Client) ListArticles(ctx context.Context, size, offset int, tags ...string) (*ArticlePage, error) {
	q := url.Values{}
	q.Set("size", strconv.Itoa(size))
	q.Set("offset", strconv.Itoa(offset))

	if len(tags) > 0 {
		q.Set("tags", "["+strings.Join(tags, ",")+"]")
	}

	var page ArticlePage
	if err := c.do(ctx, http.MethodGet, "/articles?"+q.Encode(), nil, &page); err != nil {
		return nil, err
	}

	return &page, nil
}

func (c *Client) GetArticle(ctx context.Context, id string, commentsSize int) (*model.Article, error) {
	var article model.Article
	target := "/articles/" + url.PathEscape(id) + "?comments_size=" + strconv.Itoa(commentsSize)

	if err := c.do(ctx, http.MethodGet, target, nil, &article); err != nil {
		return nil, err
	}

	return &article, nil
}

func (c *Client) ListComments(ctx context.Context, articleID string, size, offset int) (*CommentPage, error) {
	var page CommentPage
	target := fmt.Sprintf("/articles/%s/comments?size=%d&offset=%d", url.PathEscape(articleID), size, offset)

	if err := c.do(ctx, http.MethodGet, target, nil, &page); err != nil {
		return nil, err
	}

	return &page, nil
}

func (c *Client) PostComment(ctx context.Context, articleID string, comment NewComment) (*model.Comment, error) {
	var created model.Comment
	if err := c.do(ctx, http.MethodPost, "/articles/"+url.PathEscape(articleID)+"/comments", comment, &created); err != nil {
		return nil, err
	}

	return &created, nil
}

func (c *Client) DeleteComment(ctx context.Context, articleID, commentID string) error {
	target := "/articles/" + url.PathEscape(articleID) + "/comments/" + url.PathEscape(commentID)

	return c.do(ctx, http.MethodDelete, target, nil, nil)
}

func (c *Client) do(ctx context.Context, method, target string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.Addr+target, body)
	if err != nil {
		return err
	}

	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{StatusCode: resp.StatusCode}

		var envelope struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil {
			apiErr.Message = envelope.Error
		}

		return apiErr
	}

	if out == nil {
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
