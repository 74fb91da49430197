package article

import (
	"errors"
	"net/http"

	"github.com/SergeyParamoshkin/marucat/internal/acl"
	"github.com/SergeyParamoshkin/marucat/internal/apperror"
	"github.com/SergeyParamoshkin/marucat/internal/articleresponse"
	"github.com/SergeyParamoshkin/marucat/internal/commentrequest"
	"github.com/SergeyParamoshkin/marucat/internal/errresponse"
	"github.com/SergeyParamoshkin/marucat/internal/logger"
	"github.com/SergeyParamoshkin/marucat/internal/param"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

var (
	listPageOpts     = param.PageOptions{DefaultSize: param.DefaultSize}
	commentsPageOpts = param.PageOptions{DefaultSize: param.DefaultSize, SizePositive: true}
)

type API struct {
	store Store
}

func NewAPI(store Store) *API {
	return &API{store: store}
}

// Routes mounts under /articles.
func (a *API) Routes() chi.Router {
	r := chi.NewRouter()

	r.With(param.Paginate(listPageOpts)).Get("/", a.ListArticles) // GET /articles

	r.Route("/{articleID}", func(r chi.Router) {
		r.Use(ArticleCtx)
		r.Get("/", a.GetArticle)       // GET /articles/123
		r.Put("/", a.UpdateArticle)    // PUT /articles/123
		r.Post("/", a.CreateArticle)   // POST /articles/123
		r.Delete("/", a.DeleteArticle) // DELETE /articles/123

		r.Route("/comments", func(r chi.Router) {
			r.With(param.Paginate(commentsPageOpts)).Get("/", a.ListComments) // GET /articles/123/comments
			r.Post("/", a.PostComment)                                        // POST /articles/123/comments
			r.With(CommentCtx).Delete("/{commentID}", a.DeleteComment)        // DELETE /articles/123/comments/456
		})
	})

	return r
}

// ListArticles returns a page of articles, optionally filtered by tags.
func (a *API) ListArticles(w http.ResponseWriter, r *http.Request) {
	q := Query{
		Page:           param.PageFromContext(r.Context()),
		Tags:           param.ParseTags(r.URL.Query().Get("tags")),
		IncludeDeleted: acl.IncludeDeleted(r),
	}

	articles, total, err := a.store.List(r.Context(), q)
	if err != nil {
		errresponse.Render(w, r, err)

		return
	}

	a.render(w, r, articleresponse.NewArticleListResponse(articles, total, q.Page))
}

// GetArticle returns the specific article with its first comments and
// counts the view.
func (a *API) GetArticle(w http.ResponseWriter, r *http.Request) {
	commentsSize, err := param.ParseNatural("comments_size", r.URL.Query().Get("comments_size"), param.DefaultSize)
	if err != nil {
		errresponse.Render(w, r, err)

		return
	}

	article, err := a.store.Get(r.Context(), articleID(r.Context()), commentsSize, acl.IncludeDeleted(r))
	if err != nil {
		errresponse.Render(w, r, err)

		return
	}

	a.render(w, r, articleresponse.NewArticleResponse(article))
}

// UpdateArticle, CreateArticle and DeleteArticle hold the article mutation
// routes. Articles are only written by the seeding tool for now.
func (a *API) UpdateArticle(w http.ResponseWriter, r *http.Request) {
	errresponse.Render(w, r, apperror.ErrNotImplemented)
}

func (a *API) CreateArticle(w http.ResponseWriter, r *http.Request) {
	errresponse.Render(w, r, apperror.ErrNotImplemented)
}

func (a *API) DeleteArticle(w http.ResponseWriter, r *http.Request) {
	errresponse.Render(w, r, apperror.ErrNotImplemented)
}

// ListComments returns a page of the article's comments.
func (a *API) ListComments(w http.ResponseWriter, r *http.Request) {
	page := param.PageFromContext(r.Context())

	comments, total, err := a.store.Comments(r.Context(), articleID(r.Context()), page, acl.IncludeDeleted(r))
	if err != nil {
		errresponse.Render(w, r, err)

		return
	}

	a.render(w, r, articleresponse.NewCommentListResponse(comments, total, page))
}

// PostComment appends the posted comment to the article and returns it
// back to the client as an acknowledgement.
func (a *API) PostComment(w http.ResponseWriter, r *http.Request) {
	data := &commentrequest.CommentRequest{}
	if err := render.Bind(r, data); err != nil {
		var postErr *apperror.InvalidPostDataError
		if !errors.As(err, &postErr) {
			logger.FromContext(r.Context()).Debugw("decode comment", "err", err)
			err = commentrequest.InvalidPostData()
		}

		errresponse.Render(w, r, err)

		return
	}

	aid := articleID(r.Context())
	comment := data.Comment(aid)

	if err := a.store.PostComment(r.Context(), aid, comment); err != nil {
		errresponse.Render(w, r, err)

		return
	}

	logger.FromContext(r.Context()).Infow("comment posted", "article_id", aid.Hex(), "comment_id", comment.ID.Hex())

	render.Status(r, http.StatusCreated)
	a.render(w, r, &articleresponse.CommentResponse{Comment: comment})
}

// DeleteComment soft deletes the comment.
func (a *API) DeleteComment(w http.ResponseWriter, r *http.Request) {
	aid, cid := articleID(r.Context()), commentID(r.Context())

	if err := a.store.DeleteComment(r.Context(), aid, cid); err != nil {
		errresponse.Render(w, r, err)

		return
	}

	logger.FromContext(r.Context()).Infow("comment deleted", "article_id", aid.Hex(), "comment_id", cid.Hex())

	a.render(w, r, &articleresponse.DeletedCommentResponse{
		ArticleID: aid.Hex(),
		CommentID: cid.Hex(),
	})
}

func (a *API) render(w http.ResponseWriter, r *http.Request, v render.Renderer) {
	if err := render.Render(w, r, v); err != nil {
		errresponse.Render(w, r, err)
	}
}
