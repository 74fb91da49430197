package acl

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(token, header, target string, h http.Handler) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodGet, target, nil)
	if header != "" {
		r.Header.Set(HeaderAdminToken, header)
	}

	w := httptest.NewRecorder()
	Middleware(token)(h).ServeHTTP(w, r)

	return w
}

func TestMiddleware(t *testing.T) {
	var admin, deleted bool
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		admin = IsAdmin(r.Context())
		deleted = IncludeDeleted(r)
	})

	serve("s3cret", "s3cret", "/articles?deleted=true", h)
	assert.True(t, admin)
	assert.True(t, deleted)

	serve("s3cret", "wrong", "/articles?deleted=true", h)
	assert.False(t, admin)
	assert.False(t, deleted)

	serve("", "", "/articles?deleted=true", h)
	assert.False(t, admin)
	assert.False(t, deleted)

	serve("s3cret", "s3cret", "/articles", h)
	assert.True(t, admin)
	assert.False(t, deleted)
}

func TestAdminOnly(t *testing.T) {
	h := AdminOnly(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	w := serve("s3cret", "", "/settings", h)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Administrator access required.", body["error"])

	assert.Equal(t, http.StatusNoContent, serve("s3cret", "s3cret", "/settings", h).Code)
}
