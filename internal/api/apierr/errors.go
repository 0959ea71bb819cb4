package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dicehall/dicehall/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest    = "INVALID_REQUEST"
	CodeDuplicateUsername = "DUPLICATE_USERNAME"
	CodeInvalidPassword   = "INVALID_PASSWORD"
	CodeNoUsersRegistered = "NO_USERS_REGISTERED"
	CodeUserNotFound      = "USER_NOT_FOUND"
	CodeWrongPassword     = "WRONG_PASSWORD"
	CodeNotLoggedIn       = "NOT_LOGGED_IN"
	CodeGameOver          = "GAME_OVER"
	CodeNoActiveHand      = "NO_ACTIVE_HAND"
	CodeInternalError     = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrDuplicateUsername):
		return &httpError{http.StatusConflict, APIError{CodeDuplicateUsername, "Username is already taken"}}
	case errors.Is(err, model.ErrInvalidPassword):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidPassword, "Password does not meet the policy"}}
	case errors.Is(err, model.ErrNoUsersRegistered):
		return &httpError{http.StatusNotFound, APIError{CodeNoUsersRegistered, "No users registered"}}
	case errors.Is(err, model.ErrUserNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeUserNotFound, "User not found"}}
	case errors.Is(err, model.ErrWrongPassword):
		return &httpError{http.StatusUnauthorized, APIError{CodeWrongPassword, "Wrong password"}}
	case errors.Is(err, model.ErrNotLoggedIn):
		return &httpError{http.StatusUnauthorized, APIError{CodeNotLoggedIn, "Not logged in"}}
	case errors.Is(err, model.ErrGameOver):
		return &httpError{http.StatusConflict, APIError{CodeGameOver, "No cash left. Game over."}}
	case errors.Is(err, model.ErrNoActiveHand):
		return &httpError{http.StatusConflict, APIError{CodeNoActiveHand, "No hand in play"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
