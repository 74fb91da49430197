package errresponse

import (
	"errors"
	"net/http"

	"github.com/SergeyParamoshkin/marucat/internal/apperror"
	"github.com/SergeyParamoshkin/marucat/internal/logger"
	"github.com/go-chi/render"
)

// InternalErrorText is sent for every fault that is not the client's doing.
const InternalErrorText = "Internal server error."

// ErrResponse renderer type for handling all sorts of errors.
//
// Only ErrorText goes over the wire, the low-level error stays on the
// server side for logging.
type ErrResponse struct {
	Err            error `json:"-"` // low-level runtime error
	HTTPStatusCode int   `json:"-"` // http response status code

	ErrorText string `json:"error"` // application-level error message
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)

	return nil
}

func ErrInvalidRequest(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusBadRequest,
		ErrorText:      err.Error(),
	}
}

func ErrNotFound(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusNotFound,
		ErrorText:      err.Error(),
	}
}

func ErrConflict(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusConflict,
		ErrorText:      err.Error(),
	}
}

func ErrForbidden(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusForbidden,
		ErrorText:      err.Error(),
	}
}

func ErrNotImplemented() render.Renderer {
	return &ErrResponse{
		Err:            apperror.ErrNotImplemented,
		HTTPStatusCode: http.StatusNotImplemented,
		ErrorText:      apperror.ErrNotImplemented.Error(),
	}
}

func ErrInternal(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusInternalServerError,
		ErrorText:      InternalErrorText,
	}
}

// FromError maps an application error to its response. Anything unknown is
// reported as an internal error.
func FromError(err error) render.Renderer {
	var (
		paramErr *apperror.ParamError
		postErr  *apperror.InvalidPostDataError
	)

	switch {
	case errors.As(err, &paramErr):
		return ErrInvalidRequest(paramErr)
	case errors.As(err, &postErr):
		return ErrInvalidRequest(postErr)
	}

	for _, target := range []error{
		apperror.ErrNoSuchArticle,
		apperror.ErrNoSuchComment,
		apperror.ErrNoSuchSetting,
	} {
		if errors.Is(err, target) {
			return ErrNotFound(target)
		}
	}

	switch {
	case errors.Is(err, apperror.ErrSettingExists):
		return ErrConflict(apperror.ErrSettingExists)
	case errors.Is(err, apperror.ErrForbidden):
		return ErrForbidden(apperror.ErrForbidden)
	case errors.Is(err, apperror.ErrNotImplemented):
		return ErrNotImplemented()
	}

	return ErrInternal(err)
}

// Render writes the response for err. Server side faults are logged with
// the request scoped logger since the client only sees a generic message.
func Render(w http.ResponseWriter, r *http.Request, err error) {
	rr := FromError(err)

	l := logger.FromContext(r.Context())
	if resp, ok := rr.(*ErrResponse); ok && resp.HTTPStatusCode >= http.StatusInternalServerError {
		l.Errorw("request failed", "path", r.URL.Path, "err", err)
	}

	if rerr := render.Render(w, r, rr); rerr != nil {
		l.Errorw("render error response", "err", rerr)
	}
}
