package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserNotFound is returned when no record matches a lookup.
	ErrUserNotFound = errors.New("user not found")
	// ErrUsernameTaken is returned when registration hits the username unique index.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrUnknownUser is returned by authentication when the username does not exist.
	ErrUnknownUser = errors.New("unknown user")
	// ErrInvalidPassword is returned by authentication when the password does not match.
	ErrInvalidPassword = errors.New("invalid password")
	// ErrCorruptCredential is returned when a stored password hash cannot be parsed.
	// It is deliberately distinct from ErrInvalidPassword: a failed login is
	// routine, a corrupt record is an operational problem.
	ErrCorruptCredential = errors.New("stored credential is corrupt")
	// ErrInvalidSession is returned when a session token cannot be resolved
	// to a live identity. This is control flow, not a fault.
	ErrInvalidSession = errors.New("invalid session")
	// ErrForbidden is returned when an authenticated identity lacks the
	// required role.
	ErrForbidden = errors.New("forbidden")
)

// StoreError wraps an infrastructure failure from the storage layer so
// callers can tell it apart from a plain not-found.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return "store: " + e.Op + ": " + e.Err.Error()
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError wraps err with the failing operation name.
func NewStoreError(op string, err error) *StoreError {
	return &StoreError{Op: op, Err: err}
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error    string `json:"error"`
	Code     string `json:"code"`
	Redirect string `json:"redirect,omitempty"`
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

// MapErrorToHTTP maps domain errors to HTTP errors. Both authentication
// failure reasons collapse to one generic message so responses do not
// reveal whether a username exists.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrUnknownUser), errors.Is(err, ErrInvalidPassword):
		return NewHTTPError(http.StatusUnauthorized, "invalid username or password", "INVALID_CREDENTIALS")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrUsernameTaken):
		return NewHTTPError(http.StatusConflict, err.Error(), "USERNAME_TAKEN")
	case errors.Is(err, ErrInvalidSession):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "SESSION_INVALID")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	case errors.Is(err, ErrCorruptCredential):
		// Surfaced as a server fault: the user cannot fix this by retyping.
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "CREDENTIAL_CORRUPT")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
