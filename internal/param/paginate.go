package param

import (
	"context"
	"net/http"

	"github.com/SergeyParamoshkin/marucat/internal/errresponse"
)

type ctxKey int8

const pageCtxKey ctxKey = iota

// DefaultSize is used when a request carries no size.
const DefaultSize = 10

// Page is an offset/size window. Size 0 means no limit.
type Page struct {
	Size   int
	Offset int
}

// HasMore reports whether items beyond this page exist, given the number
// of items returned and the total count.
func (p Page) HasMore(returned int, total int64) bool {
	if p.Size == 0 {
		return false
	}

	return int64(p.Offset+returned) < total
}

// PageOptions controls how Paginate reads the query string.
type PageOptions struct {
	DefaultSize int
	// SizePositive rejects size=0, otherwise 0 means "all".
	SizePositive bool
}

// Paginate parses the size and offset query parameters and stores the
// resulting Page on the request context. Invalid input stops the chain
// with a 400.
func Paginate(opts PageOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			page, err := ReadPage(r, opts)
			if err != nil {
				errresponse.Render(w, r, err)

				return
			}

			ctx := context.WithValue(r.Context(), pageCtxKey, page)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ReadPage parses size and offset from r without touching the context.
func ReadPage(r *http.Request, opts PageOptions) (Page, error) {
	q := r.URL.Query()

	var (
		size int
		err  error
	)

	if opts.SizePositive {
		size, err = ParsePositive("size", q.Get("size"), opts.DefaultSize)
	} else {
		size, err = ParseNatural("size", q.Get("size"), opts.DefaultSize)
	}
	if err != nil {
		return Page{}, err
	}

	offset, err := ParseNatural("offset", q.Get("offset"), 0)
	if err != nil {
		return Page{}, err
	}

	return Page{Size: size, Offset: offset}, nil
}

// PageFromContext returns the Page stored by Paginate.
func PageFromContext(ctx context.Context) Page {
	page, ok := ctx.Value(pageCtxKey).(Page)
	if !ok {
		return Page{Size: DefaultSize}
	}

	return page
}
