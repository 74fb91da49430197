package setting

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/SergeyParamoshkin/marucat/internal/acl"
	"github.com/SergeyParamoshkin/marucat/internal/apperror"
	"github.com/SergeyParamoshkin/marucat/internal/model"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

// memStore is an in-memory Store with the same error contract as MongoStore.
type memStore struct {
	mu       sync.Mutex
	settings map[string]*model.Setting
}

func newMemStore(settings ...*model.Setting) *memStore {
	m := &memStore{settings: map[string]*model.Setting{}}
	for _, s := range settings {
		m.settings[s.Name] = s
	}

	return m
}

func (m *memStore) List(ctx context.Context) ([]*model.Setting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*model.Setting, 0, len(m.settings))
	for _, s := range m.settings {
		out = append(out, s)
	}

	return out, nil
}

func (m *memStore) Get(ctx context.Context, name string) (*model.Setting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.settings[name]
	if !ok {
		return nil, apperror.ErrNoSuchSetting
	}

	return s, nil
}

func (m *memStore) Create(ctx context.Context, s *model.Setting) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.settings[s.Name]; ok {
		return apperror.ErrSettingExists
	}
	s.CreatedTime, s.UpdatedTime = 1, 1
	m.settings[s.Name] = s

	return nil
}

func (m *memStore) Update(ctx context.Context, name string, s *model.Setting) (*model.Setting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	old, ok := m.settings[name]
	if !ok {
		return nil, apperror.ErrNoSuchSetting
	}
	old.Value, old.Description, old.UpdatedBy = s.Value, s.Description, s.UpdatedBy
	old.UpdatedTime++

	return old, nil
}

func (m *memStore) Delete(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.settings[name]; !ok {
		return apperror.ErrNoSuchSetting
	}
	delete(m.settings, name)

	return nil
}

func newRouter(store Store, adminWrites bool) http.Handler {
	r := chi.NewRouter()
	r.Use(acl.Middleware("s3cret"))
	r.Mount("/settings", NewAPI(store, adminWrites).Routes())

	return r
}

func do(h http.Handler, method, target, body string, admin bool) *httptest.ResponseRecorder {
	var r *http.Request
	if body != "" {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, target, nil)
	}

	if admin {
		r.Header.Set(acl.HeaderAdminToken, "s3cret")
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	return w
}

func TestSettingsLifecycle(t *testing.T) {
	h := newRouter(newMemStore(), false)

	w := do(h, http.MethodGet, "/settings", "", false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"settings":[]}`, w.Body.String())

	w = do(h, http.MethodPost, "/settings", `{"name":"page_size","value":"20","description":"articles per page","created_time":99}`, false)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created model.Setting
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "page_size", created.Name)
	assert.Equal(t, int64(1), created.CreatedTime)

	w = do(h, http.MethodPost, "/settings", `{"name":"page_size","value":"30"}`, false)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(h, http.MethodPut, "/settings/page_size", `{"value":"30","updated_by":"Richard"}`, false)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"value":"30"`)
	assert.Contains(t, w.Body.String(), `"updated_by":"anonymous"`)

	w = do(h, http.MethodGet, "/settings/page_size", "", false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"value":"30"`)

	w = do(h, http.MethodGet, "/settings/page_size/value", "", false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"name":"page_size","value":"30"}`, w.Body.String())

	w = do(h, http.MethodDelete, "/settings/page_size", "", false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"name":"page_size"}`, w.Body.String())

	w = do(h, http.MethodDelete, "/settings/page_size", "", false)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Specified setting does not exist.")
}

func TestSettingsInvalid(t *testing.T) {
	h := newRouter(newMemStore(&model.Setting{Name: "title", Value: "marucat"}), false)

	for _, body := range []string{`{}`, `{"name":"x"}`, `{"value":"1"}`, `{"name":"a/b","value":"1"}`, `nope`} {
		w := do(h, http.MethodPost, "/settings", body, false)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}

	w := do(h, http.MethodPut, "/settings/title", `{"description":"no value"}`, false)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(h, http.MethodPut, "/settings/missing", `{"value":"1"}`, false)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(h, http.MethodGet, "/settings/bad$name", "", false)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(h, http.MethodGet, "/settings/missing/value", "", false)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Specified setting does not exist.")
}

func TestSettingsAdminWrites(t *testing.T) {
	h := newRouter(newMemStore(), true)

	w := do(h, http.MethodPost, "/settings", `{"name":"title","value":"marucat"}`, false)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(h, http.MethodPost, "/settings", `{"name":"title","value":"marucat","updated_by":"mallory"}`, true)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"updated_by":"admin"`)

	w = do(h, http.MethodGet, "/settings/title", "", false)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestValue(t *testing.T) {
	store := newMemStore(&model.Setting{Name: "title", Value: "marucat"})

	v, err := Value(context.Background(), store, "title")
	require.NoError(t, err)
	assert.Equal(t, "marucat", v)

	_, err = Value(context.Background(), store, "missing")
	assert.ErrorIs(t, err, apperror.ErrNoSuchSetting)
}

func TestUpdateDoc(t *testing.T) {
	doc := updateDoc(&model.Setting{Value: "v", Description: "d", UpdatedBy: "u", CreatedTime: 5}, 7)

	assert.Equal(t, bson.M{"$set": bson.M{
		"value":        "v",
		"description":  "d",
		"updated_by":   "u",
		"updated_time": int64(7),
	}}, doc)
}
