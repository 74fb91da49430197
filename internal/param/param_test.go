package param

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SergeyParamoshkin/marucat/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNatural(t *testing.T) {
	tests := []struct {
		raw    string
		want   int
		reason error
	}{
		{raw: "", want: 10},
		{raw: "0", want: 0},
		{raw: "55", want: 55},
		{raw: " 7 ", want: 7},
		{raw: "abc", reason: apperror.ErrNotANumber},
		{raw: "1.5", reason: apperror.ErrNotANumber},
		{raw: "-1", reason: apperror.ErrNotANaturalNumber},
	}

	for _, tt := range tests {
		got, err := ParseNatural("size", tt.raw, 10)
		if tt.reason != nil {
			require.Error(t, err, tt.raw)
			assert.True(t, errors.Is(err, tt.reason), tt.raw)

			continue
		}

		require.NoError(t, err, tt.raw)
		assert.Equal(t, tt.want, got, tt.raw)
	}
}

func TestParsePositive(t *testing.T) {
	got, err := ParsePositive("size", "", 10)
	require.NoError(t, err)
	assert.Equal(t, 10, got)

	got, err = ParsePositive("size", "3", 10)
	require.NoError(t, err)
	assert.Equal(t, 3, got)

	for _, raw := range []string{"0", "-99"} {
		_, err = ParsePositive("size", raw, 10)
		assert.True(t, errors.Is(err, apperror.ErrNotAPositiveNumber), raw)
	}

	_, err = ParsePositive("size", "acb", 10)
	assert.True(t, errors.Is(err, apperror.ErrNotANumber))
}

func TestValidID(t *testing.T) {
	for _, id := range []string{"T1234", "5f1e7c9a2b3c4d5e6f7a8b9c", "abc"} {
		assert.True(t, ValidID(id), id)
	}

	for _, id := range []string{"", "abc/", "asd&123", "asd+123", "asd_123", "asd-123", `asd"123`, "asd'123", "a b", "[x]"} {
		assert.False(t, ValidID(id), id)
	}
}

func TestValidName(t *testing.T) {
	assert.True(t, ValidName("site.title"))
	assert.True(t, ValidName("page_size"))
	assert.False(t, ValidName(""))
	assert.False(t, ValidName("a/b"))
}

func TestParseTags(t *testing.T) {
	assert.Nil(t, ParseTags(""))
	assert.Equal(t, []string{"red"}, ParseTags("red"))
	assert.Equal(t, []string{"red", "blue"}, ParseTags("red,blue"))
	assert.Equal(t, []string{"OK", "red"}, ParseTags("[OK, red]"))
	assert.Nil(t, ParseTags("[]"))
}

func TestPageHasMore(t *testing.T) {
	assert.True(t, Page{Size: 2, Offset: 0}.HasMore(2, 5))
	assert.False(t, Page{Size: 2, Offset: 4}.HasMore(1, 5))
	assert.False(t, Page{Size: 0, Offset: 3}.HasMore(5, 5))
}

func TestPaginate(t *testing.T) {
	var got Page
	h := Paginate(PageOptions{DefaultSize: DefaultSize})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = PageFromContext(r.Context())
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/articles?size=0&offset=3", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, Page{Size: 0, Offset: 3}, got)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/articles", nil))
	assert.Equal(t, Page{Size: DefaultSize, Offset: 0}, got)

	for _, q := range []string{"size=abc", "offset=x", "size=-1", "offset=-2"} {
		w = httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/articles?"+q, nil))
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
		assert.Contains(t, w.Body.String(), `"error":"Invalid query parameters.`, q)
	}
}

func TestPaginatePositiveSize(t *testing.T) {
	h := Paginate(PageOptions{DefaultSize: DefaultSize, SizePositive: true})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/comments?size=0", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "size must be a positive number")
}
