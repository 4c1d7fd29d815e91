package errors

import (
	"errors"
	"net/http"
)

type Exception struct {
	Message    string
	StatusCode int
}

func (e *Exception) Error() string {
	return e.Message
}

// NewValidation wraps a malformed-input message as a 422 exception.
func NewValidation(message string) *Exception {
	return &Exception{
		Message:    message,
		StatusCode: http.StatusUnprocessableEntity,
	}
}

func StatusCode(err error) int {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

// IsValidation reports whether err is a locally recoverable input error.
func IsValidation(err error) bool {
	return StatusCode(err) == http.StatusUnprocessableEntity
}
