package article

import (
	"context"
	"net/http"

	"github.com/SergeyParamoshkin/marucat/internal/apperror"
	"github.com/SergeyParamoshkin/marucat/internal/errresponse"
	"github.com/SergeyParamoshkin/marucat/internal/param"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ctxKey int8

const (
	articleIDCtxKey ctxKey = iota
	commentIDCtxKey
)

// ArticleCtx middleware is used to load the article id from the URL
// parameters passed through as the request. An id with disallowed
// characters, or one that is not an ObjectID, cannot name an article, so
// we stop here and return a 404.
func ArticleCtx(next http.Handler) http.Handler {
	return idCtx("articleID", articleIDCtxKey, apperror.ErrNoSuchArticle, next)
}

// CommentCtx does for the comment id what ArticleCtx does for the article.
func CommentCtx(next http.Handler) http.Handler {
	return idCtx("commentID", commentIDCtxKey, apperror.ErrNoSuchComment, next)
}

func idCtx(urlParam string, key ctxKey, notFound error, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(chi.URLParam(r, urlParam))
		if !ok {
			errresponse.Render(w, r, notFound)

			return
		}

		ctx := context.WithValue(r.Context(), key, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func parseID(raw string) (primitive.ObjectID, bool) {
	if !param.ValidID(raw) {
		return primitive.NilObjectID, false
	}

	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, false
	}

	return id, true
}

// Assume if we've reach this far, the id is on the context because the
// handler is a child of ArticleCtx. The worst case, the recoverer
// middleware will save us.
func articleID(ctx context.Context) primitive.ObjectID {
	return ctx.Value(articleIDCtxKey).(primitive.ObjectID)
}

func commentID(ctx context.Context) primitive.ObjectID {
	return ctx.Value(commentIDCtxKey).(primitive.ObjectID)
}
