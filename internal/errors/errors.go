package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidToken is returned when a session or recovery token fails verification.
	ErrInvalidToken = errors.New("invalid or malformed token")
	// ErrEmailOrUsernameTaken is returned when registration or a profile edit
	// collides with another account.
	ErrEmailOrUsernameTaken = errors.New("email or username already in use")
	// ErrAccountNotFound is returned when no account matches the given email.
	ErrAccountNotFound = errors.New("no account associated with that email")
	// ErrInvalidCredentials is returned when the password check fails.
	ErrInvalidCredentials = errors.New("incorrect password")
	// ErrNoChanges is returned when a profile edit changes nothing.
	ErrNoChanges = errors.New("at least one field must be different")
	// ErrPasswordMismatch is returned when new and confirm passwords differ.
	ErrPasswordMismatch = errors.New("passwords do not match")
	// ErrSamePassword is returned when the new password equals the current one.
	ErrSamePassword = errors.New("new password cannot equal the previous one")
	// ErrInvalidRecoveryToken is returned when a reset token is unverifiable,
	// already used, or does not match the stored copy.
	ErrInvalidRecoveryToken = errors.New("invalid or expired recovery token")
	// ErrUserNotFound is returned when the referenced user does not exist.
	ErrUserNotFound = errors.New("user does not exist")
	// ErrHouseNotFound is returned when the referenced house does not exist
	// or is not visible to the caller.
	ErrHouseNotFound = errors.New("house not found")
	// ErrHouseAlreadySold is returned when purchasing a house that is no
	// longer available.
	ErrHouseAlreadySold = errors.New("house is no longer for sale")
	// ErrInvalidPayment is returned when payment details fail validation.
	ErrInvalidPayment = errors.New("invalid payment details")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrInvalidToken):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_TOKEN")
	case errors.Is(err, ErrEmailOrUsernameTaken):
		return NewHTTPError(http.StatusConflict, err.Error(), "EMAIL_OR_USERNAME_TAKEN")
	case errors.Is(err, ErrAccountNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "ACCOUNT_NOT_FOUND")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrNoChanges):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "NO_CHANGES")
	case errors.Is(err, ErrPasswordMismatch):
		return NewHTTPError(http.StatusConflict, err.Error(), "PASSWORD_MISMATCH")
	case errors.Is(err, ErrSamePassword):
		return NewHTTPError(http.StatusConflict, err.Error(), "SAME_PASSWORD")
	case errors.Is(err, ErrInvalidRecoveryToken):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_RECOVERY_TOKEN")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrHouseNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "HOUSE_NOT_FOUND")
	case errors.Is(err, ErrHouseAlreadySold):
		return NewHTTPError(http.StatusConflict, err.Error(), "HOUSE_ALREADY_SOLD")
	case errors.Is(err, ErrInvalidPayment):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_PAYMENT")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
