package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrInvalidCredentials is returned on login when the Aadhar number is
	// unknown or the password does not match. Same error for both so the
	// response does not leak which accounts exist.
	ErrInvalidCredentials = errors.New("invalid aadhar number or password")
	// ErrTokenInvalid is returned for malformed tokens or bad signatures.
	ErrTokenInvalid = errors.New("invalid token")
	// ErrTokenExpired is returned for well-signed tokens past their expiry.
	// Kept distinct from ErrTokenInvalid so clients can prompt re-login.
	ErrTokenExpired = errors.New("token expired")
	// ErrForbidden is returned when the caller's role does not permit the action.
	ErrForbidden = errors.New("operation not permitted for role")
	// ErrCandidateNotFound is returned when a candidate id resolves to nothing.
	ErrCandidateNotFound = errors.New("candidate not found")
	// ErrAlreadyVoted is returned when a voter attempts a second vote.
	ErrAlreadyVoted = errors.New("user has already voted")
	// ErrUserNotFound is returned when a user record is missing.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserAlreadyExists is returned when signing up a duplicate Aadhar number.
	ErrUserAlreadyExists = errors.New("user with this aadhar number already exists")
	// ErrAdminExists is returned when signing up as admin while one exists.
	ErrAdminExists = errors.New("an admin account already exists")
	// ErrStorageUnavailable is returned for infrastructure faults. Safe to
	// retry with backoff; never to be read as an authorization or vote outcome.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// WrapStorage tags an infrastructure failure as retryable while keeping the
// underlying cause in the message.
func WrapStorage(err error) error {
	return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
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

// MapErrorToHTTP maps domain errors to HTTP errors. Every sentinel gets a
// distinct code: in particular ErrAlreadyVoted and ErrForbidden must never
// collapse into one another, and ErrStorageUnavailable must never be read as
// a business-rule outcome.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, ErrInvalidCredentials.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrTokenExpired):
		return NewHTTPError(http.StatusUnauthorized, ErrTokenExpired.Error(), "TOKEN_EXPIRED")
	case errors.Is(err, ErrTokenInvalid):
		return NewHTTPError(http.StatusUnauthorized, ErrTokenInvalid.Error(), "TOKEN_INVALID")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, ErrForbidden.Error(), "FORBIDDEN")
	case errors.Is(err, ErrCandidateNotFound):
		return NewHTTPError(http.StatusNotFound, ErrCandidateNotFound.Error(), "CANDIDATE_NOT_FOUND")
	case errors.Is(err, ErrAlreadyVoted):
		return NewHTTPError(http.StatusConflict, ErrAlreadyVoted.Error(), "ALREADY_VOTED")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, ErrUserNotFound.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrUserAlreadyExists):
		return NewHTTPError(http.StatusConflict, ErrUserAlreadyExists.Error(), "USER_ALREADY_EXISTS")
	case errors.Is(err, ErrAdminExists):
		return NewHTTPError(http.StatusConflict, ErrAdminExists.Error(), "ADMIN_EXISTS")
	case errors.Is(err, ErrStorageUnavailable):
		return NewHTTPError(http.StatusServiceUnavailable, ErrStorageUnavailable.Error(), "STORAGE_UNAVAILABLE")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
