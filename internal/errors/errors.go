package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUnauthenticated is returned when no valid identity accompanies a request.
	ErrUnauthenticated = errors.New("not authorized to access this route")
	// ErrForbidden is returned when an identity's role is not allowed.
	ErrForbidden = errors.New("access denied")
	// ErrInvalidCredentials is returned when phone or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrPhoneExists is returned when registering with a phone number already in use.
	ErrPhoneExists = errors.New("phone number already exists")
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrPostNotFound is returned when a forum post is not found.
	ErrPostNotFound = errors.New("post not found")
	// ErrCommentNotFound is returned when a comment is not found.
	ErrCommentNotFound = errors.New("comment not found")
	// ErrCategoryNotFound is returned when a category is not found.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrCategoryExists is returned when creating a category whose name is taken.
	ErrCategoryExists = errors.New("category name already exists")
	// ErrInvalidReaction is returned when the reaction type is not like or dislike.
	ErrInvalidReaction = errors.New("invalid reaction type, must be one of: like, dislike")
	// ErrOpinionNotFound is returned when an opinion is not found.
	ErrOpinionNotFound = errors.New("opinion not found")
)

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

// MapErrorToHTTP maps domain errors to HTTP errors. Unknown errors are
// reported generically so storage detail never leaks to clients.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "UNAUTHENTICATED")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrPhoneExists):
		return NewHTTPError(http.StatusConflict, err.Error(), "PHONE_EXISTS")
	case errors.Is(err, ErrCategoryExists):
		return NewHTTPError(http.StatusConflict, err.Error(), "CATEGORY_EXISTS")
	case errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrPostNotFound),
		errors.Is(err, ErrCommentNotFound),
		errors.Is(err, ErrCategoryNotFound),
		errors.Is(err, ErrOpinionNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "NOT_FOUND")
	case errors.Is(err, ErrInvalidReaction):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_REACTION")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
