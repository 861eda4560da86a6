package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/goowi/internal/common"
)

var (
	ErrUnauthorized = common.ErrorUnauthorized
	ErrNotFound     = common.ErrorNotFound
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("conflict")
	ErrUnavailable  = errors.New("server unavailable")
	ErrRequest      = errors.New("request failed")
)

// APIError describes a failed backend call.
type APIError struct {
	Op      string
	Status  int
	Message string
	Err     error
}

func (e *APIError) Error() string {
	switch {
	case e.Status != 0 && e.Message != "":
		return fmt.Sprintf("%s: %s (%d)", e.Op, e.Message, e.Status)
	case e.Status != 0:
		return fmt.Sprintf("%s: %s", e.Op, http.StatusText(e.Status))
	default:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
}

func (e *APIError) Unwrap() error { return e.Err }

// statusError maps an HTTP status onto the sentinel callers match against.
func statusError(status int) error {
	switch {
	case status == http.StatusUnauthorized:
		return ErrUnauthorized
	case status == http.StatusNotFound:
		return ErrNotFound
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return ErrValidation
	case status == http.StatusConflict:
		return ErrConflict
	case status >= 500:
		return ErrUnavailable
	default:
		return ErrRequest
	}
}

// Message extracts the human-readable part of err for display: the backend
// message when there is one, the error text otherwise.
func Message(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
