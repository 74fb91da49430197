package settingpayload

import (
	"net/http"

	"github.com/SergeyParamoshkin/marucat/internal/apperror"
	"github.com/SergeyParamoshkin/marucat/internal/model"
)

//--
// Request and Response payloads for the settings API.
//--

type SettingPayload struct {
	*model.Setting
}

func NewSettingPayloadResponse(s *model.Setting) *SettingPayload {
	return &SettingPayload{Setting: s}
}

// Bind on SettingPayload will run after the unmarshalling is complete.
// The audit fields are filled in on the server, so whatever the client sent
// for them is dropped.
func (p *SettingPayload) Bind(r *http.Request) error {
	if p.Setting == nil || p.Value == "" {
		return &apperror.InvalidPostDataError{Keys: []string{"name", "value"}}
	}

	p.CreatedTime = 0
	p.UpdatedTime = 0
	p.UpdatedBy = ""

	return nil
}

func (p *SettingPayload) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

type SettingListResponse struct {
	Settings []*model.Setting `json:"settings"`
}

func (l *SettingListResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if l.Settings == nil {
		l.Settings = []*model.Setting{}
	}

	return nil
}
