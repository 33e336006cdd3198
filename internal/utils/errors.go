package utils

import (
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

var (
	// ErrNotFound marks a referenced record that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput marks a request that failed validation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnauthorized marks missing or bad credentials.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden marks an authenticated caller without permission.
	ErrForbidden = errors.New("forbidden")
	// ErrConflict marks a write that clashes with existing data.
	ErrConflict = errors.New("conflict")
)

// NotFound returns an error wrapping ErrNotFound for the named entity.
func NotFound(entity string) error {
	return fmt.Errorf("%s %w", entity, ErrNotFound)
}

// Invalid returns an error wrapping ErrInvalidInput.
func Invalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, msg)
}

// StatusFor maps an error to the HTTP status a handler should answer with.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// WriteError answers with the status StatusFor picks. Server errors are
// logged and their text is not leaked to the client.
func WriteError(w http.ResponseWriter, log *zap.Logger, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		if log != nil {
			log.Error("request failed", zap.Error(err))
		}
		http.Error(w, http.StatusText(status), status)
		return
	}
	http.Error(w, err.Error(), status)
}
