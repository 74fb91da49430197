package articleresponse

import (
	"net/http"

	"github.com/SergeyParamoshkin/marucat/internal/model"
	"github.com/SergeyParamoshkin/marucat/internal/param"
)

// ArticleResponse is the response payload for the Article data model.
//
// In the ArticleResponse object, first a Render() is called on itself,
// then the next field, and so on, all the way down the tree.
type ArticleResponse struct {
	*model.Article
}

func NewArticleResponse(article *model.Article) *ArticleResponse {
	return &ArticleResponse{Article: article}
}

func (rd *ArticleResponse) Render(w http.ResponseWriter, r *http.Request) error {
	// Nil slices go over the wire as [] rather than null.
	if rd.Tags == nil {
		rd.Tags = []string{}
	}

	return nil
}

// ArticleListResponse is one page of articles.
type ArticleListResponse struct {
	Articles []*ArticleResponse `json:"articles"`
	Total    int64              `json:"total"`
	HasMore  bool               `json:"has_more"`
}

func NewArticleListResponse(articles []*model.Article, total int64, page param.Page) *ArticleListResponse {
	list := make([]*ArticleResponse, 0, len(articles))
	for _, article := range articles {
		list = append(list, NewArticleResponse(article))
	}

	return &ArticleListResponse{
		Articles: list,
		Total:    total,
		HasMore:  page.HasMore(len(articles), total),
	}
}

func (rd *ArticleListResponse) Render(w http.ResponseWriter, r *http.Request) error {
	for _, a := range rd.Articles {
		if err := a.Render(w, r); err != nil {
			return err
		}
	}

	return nil
}

// CommentListResponse is one page of an article's comments.
type CommentListResponse struct {
	Comments []*model.Comment `json:"comments"`
	Total    int64            `json:"total"`
	HasMore  bool             `json:"has_more"`
}

func NewCommentListResponse(comments []*model.Comment, total int64, page param.Page) *CommentListResponse {
	if comments == nil {
		comments = []*model.Comment{}
	}

	return &CommentListResponse{
		Comments: comments,
		Total:    total,
		HasMore:  page.HasMore(len(comments), total),
	}
}

func (rd *CommentListResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

// CommentResponse acknowledges a posted comment.
type CommentResponse struct {
	*model.Comment
}

func (rd *CommentResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

// DeletedCommentResponse acknowledges a soft deleted comment.
type DeletedCommentResponse struct {
	ArticleID string `json:"article_id"`
	CommentID string `json:"comment_id"`
}

func (rd *DeletedCommentResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}
