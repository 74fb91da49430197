package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParamErrorMessage(t *testing.T) {
	err := NewParamError("size", ErrNotANumber)

	assert.Equal(t, "Invalid query parameters. size must be a number.", err.Error())
	assert.True(t, errors.Is(err, ErrNotANumber))
	assert.False(t, errors.Is(err, ErrNotAPositiveNumber))
}

func TestParamErrorWrapped(t *testing.T) {
	err := fmt.Errorf("list: %w", NewParamError("offset", ErrNotANaturalNumber))

	var pe *ParamError
	assert.True(t, errors.As(err, &pe))
	assert.Equal(t, "offset", pe.Param)
	assert.True(t, errors.Is(err, ErrNotANaturalNumber))
}

func TestInvalidPostDataMessage(t *testing.T) {
	err := &InvalidPostDataError{Keys: []string{"from", "body", "timestamp"}}

	assert.Contains(t, err.Error(), "from, body, timestamp")
}

func TestDatabaseNotSupportedMessage(t *testing.T) {
	err := &DatabaseNotSupportedError{Name: "redis"}

	assert.Equal(t, `Specified database is not supported: "redis"`, err.Error())
}
