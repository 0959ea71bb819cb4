package handler

import (
	"net/http"

	"github.com/dicehall/dicehall/internal/api/apierr"
)

// Re-export from apierr for convenience
type APIError = apierr.APIError
type ErrorResponse = apierr.ErrorResponse

// Re-export error codes
const (
	CodeInvalidRequest    = apierr.CodeInvalidRequest
	CodeDuplicateUsername = apierr.CodeDuplicateUsername
	CodeInvalidPassword   = apierr.CodeInvalidPassword
	CodeNoUsersRegistered = apierr.CodeNoUsersRegistered
	CodeUserNotFound      = apierr.CodeUserNotFound
	CodeWrongPassword     = apierr.CodeWrongPassword
	CodeNotLoggedIn       = apierr.CodeNotLoggedIn
	CodeGameOver          = apierr.CodeGameOver
	CodeNoActiveHand      = apierr.CodeNoActiveHand
	CodeInternalError     = apierr.CodeInternalError
)

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return apierr.NewInvalidRequestError(message)
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return apierr.NewInternalError()
}
