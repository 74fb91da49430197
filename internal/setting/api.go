package setting

import (
	"errors"
	"net/http"

	"github.com/SergeyParamoshkin/marucat/internal/acl"
	"github.com/SergeyParamoshkin/marucat/internal/apperror"
	"github.com/SergeyParamoshkin/marucat/internal/errresponse"
	"github.com/SergeyParamoshkin/marucat/internal/logger"
	"github.com/SergeyParamoshkin/marucat/internal/param"
	"github.com/SergeyParamoshkin/marucat/internal/settingpayload"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

// Editors recorded in updated_by.
const (
	EditorAdmin     = "admin"
	EditorAnonymous = "anonymous"
)

type API struct {
	store Store
	// adminWrites puts the mutating routes behind acl.AdminOnly.
	adminWrites bool
}

func NewAPI(store Store, adminWrites bool) *API {
	return &API{store: store, adminWrites: adminWrites}
}

// Routes mounts under /settings.
func (a *API) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", a.ListSettings)
	r.Get("/{name}", a.GetSetting)
	r.Get("/{name}/value", a.GetSettingValue)

	r.Group(func(r chi.Router) {
		if a.adminWrites {
			r.Use(acl.AdminOnly)
		}

		r.Post("/", a.CreateSetting)
		r.Put("/{name}", a.UpdateSetting)
		r.Delete("/{name}", a.DeleteSetting)
	})

	return r
}

func (a *API) ListSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := a.store.List(r.Context())
	if err != nil {
		errresponse.Render(w, r, err)

		return
	}

	a.render(w, r, &settingpayload.SettingListResponse{Settings: settings})
}

func (a *API) GetSetting(w http.ResponseWriter, r *http.Request) {
	name, ok := settingName(r)
	if !ok {
		errresponse.Render(w, r, apperror.ErrNoSuchSetting)

		return
	}

	s, err := a.store.Get(r.Context(), name)
	if err != nil {
		errresponse.Render(w, r, err)

		return
	}

	a.render(w, r, settingpayload.NewSettingPayloadResponse(s))
}

// GetSettingValue answers with just the value of the setting.
func (a *API) GetSettingValue(w http.ResponseWriter, r *http.Request) {
	name, ok := settingName(r)
	if !ok {
		errresponse.Render(w, r, apperror.ErrNoSuchSetting)

		return
	}

	v, err := Value(r.Context(), a.store, name)
	if err != nil {
		errresponse.Render(w, r, err)

		return
	}

	render.JSON(w, r, render.M{"name": name, "value": v})
}

func (a *API) CreateSetting(w http.ResponseWriter, r *http.Request) {
	data := &settingpayload.SettingPayload{}
	if err := bind(r, data); err != nil {
		errresponse.Render(w, r, err)

		return
	}

	if !param.ValidName(data.Name) {
		errresponse.Render(w, r, invalidSetting())

		return
	}

	data.UpdatedBy = editor(r)

	if err := a.store.Create(r.Context(), data.Setting); err != nil {
		errresponse.Render(w, r, err)

		return
	}

	logger.FromContext(r.Context()).Infow("setting created", "name", data.Name)

	render.Status(r, http.StatusCreated)
	a.render(w, r, data)
}

func (a *API) UpdateSetting(w http.ResponseWriter, r *http.Request) {
	name, ok := settingName(r)
	if !ok {
		errresponse.Render(w, r, apperror.ErrNoSuchSetting)

		return
	}

	data := &settingpayload.SettingPayload{}
	if err := bind(r, data); err != nil {
		errresponse.Render(w, r, err)

		return
	}

	data.UpdatedBy = editor(r)

	updated, err := a.store.Update(r.Context(), name, data.Setting)
	if err != nil {
		errresponse.Render(w, r, err)

		return
	}

	logger.FromContext(r.Context()).Infow("setting updated", "name", name)

	a.render(w, r, settingpayload.NewSettingPayloadResponse(updated))
}

func (a *API) DeleteSetting(w http.ResponseWriter, r *http.Request) {
	name, ok := settingName(r)
	if !ok {
		errresponse.Render(w, r, apperror.ErrNoSuchSetting)

		return
	}

	if err := a.store.Delete(r.Context(), name); err != nil {
		errresponse.Render(w, r, err)

		return
	}

	logger.FromContext(r.Context()).Infow("setting deleted", "name", name)

	render.JSON(w, r, render.M{"name": name})
}

func settingName(r *http.Request) (string, bool) {
	name := chi.URLParam(r, "name")

	return name, param.ValidName(name)
}

func editor(r *http.Request) string {
	if acl.IsAdmin(r.Context()) {
		return EditorAdmin
	}

	return EditorAnonymous
}

func invalidSetting() error {
	return &apperror.InvalidPostDataError{Keys: []string{"name", "value"}}
}

// bind decodes the payload; any decoding failure is reported as invalid
// post data.
func bind(r *http.Request, data *settingpayload.SettingPayload) error {
	err := render.Bind(r, data)
	if err == nil {
		return nil
	}

	var postErr *apperror.InvalidPostDataError
	if errors.As(err, &postErr) {
		return err
	}

	logger.FromContext(r.Context()).Debugw("decode setting", "err", err)

	return invalidSetting()
}

func (a *API) render(w http.ResponseWriter, r *http.Request, v render.Renderer) {
	if err := render.Render(w, r, v); err != nil {
		errresponse.Render(w, r, err)
	}
}
