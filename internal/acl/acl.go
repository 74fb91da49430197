package acl

import (
	"context"
	"crypto/subtle"
	"net/http"

	"github.com/SergeyParamoshkin/marucat/internal/apperror"
	"github.com/SergeyParamoshkin/marucat/internal/errresponse"
)

type ctxKey int8

const adminCtxKey ctxKey = iota

// HeaderAdminToken carries the administrator token.
const HeaderAdminToken = "X-Admin-Token"

// Middleware marks the request as coming from an administrator when it
// carries the configured token. An empty token disables the check, nobody
// is an administrator then.
func Middleware(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get(HeaderAdminToken)
			isAdmin := token != "" && subtle.ConstantTimeCompare([]byte(got), []byte(token)) == 1

			ctx := context.WithValue(r.Context(), adminCtxKey, isAdmin)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func IsAdmin(ctx context.Context) bool {
	isAdmin, ok := ctx.Value(adminCtxKey).(bool)

	return ok && isAdmin
}

// AdminOnly middleware restricts access to just administrators.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !IsAdmin(r.Context()) {
			errresponse.Render(w, r, apperror.ErrForbidden)

			return
		}
		next.ServeHTTP(w, r)
	})
}

// IncludeDeleted reports whether the request asked for soft deleted records
// and is allowed to see them.
func IncludeDeleted(r *http.Request) bool {
	return IsAdmin(r.Context()) && r.URL.Query().Get("deleted") == "true"
}
