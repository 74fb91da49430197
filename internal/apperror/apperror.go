package apperror

import (
	"errors"
	"fmt"
	"strings"
)

// Reasons a query parameter can be rejected. They are wrapped by ParamError
// and can be matched with errors.Is.
var (
	ErrNotANumber         = errors.New("a number")
	ErrNotAPositiveNumber = errors.New("a positive number")
	ErrNotANaturalNumber  = errors.New("a natural number")
)

var (
	ErrNoSuchArticle  = errors.New("Specified article does not exist.")
	ErrNoSuchComment  = errors.New("Specified article or comment does not exist.")
	ErrNoSuchSetting  = errors.New("Specified setting does not exist.")
	ErrSettingExists  = errors.New("Specified setting already exists.")
	ErrNotImplemented = errors.New("Not implemented.")
	ErrForbidden      = errors.New("Administrator access required.")
)

// ParamError describes an invalid query parameter.
type ParamError struct {
	Param  string
	Reason error
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("Invalid query parameters. %s must be %s.", e.Param, e.Reason)
}

func (e *ParamError) Unwrap() error {
	return e.Reason
}

// NewParamError wraps reason for the named parameter.
func NewParamError(param string, reason error) *ParamError {
	return &ParamError{Param: param, Reason: reason}
}

// InvalidPostDataError is returned when a request body is not a JSON object
// carrying every required key.
type InvalidPostDataError struct {
	Keys []string
}

func (e *InvalidPostDataError) Error() string {
	return "Invalid post data. The data should be a json object and contained these attributes: " +
		strings.Join(e.Keys, ", ")
}

// DatabaseNotSupportedError is returned at startup for an unknown database type.
type DatabaseNotSupportedError struct {
	Name string
}

func (e *DatabaseNotSupportedError) Error() string {
	return fmt.Sprintf("Specified database is not supported: %q", e.Name)
}
