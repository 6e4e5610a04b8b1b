package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrNotFound is returned when a referenced aggregate does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateKey is returned when a creation violates a uniqueness invariant.
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrInvalidArgument is returned for malformed input that cannot be salvaged.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrBackendUnavailable is returned when the persistent store cannot be reached.
	ErrBackendUnavailable = errors.New("backend unavailable")

	// ErrUserNotFound is returned when a user lookup or relationship write misses.
	ErrUserNotFound = errors.New("user not found")
	// ErrRecipeNotFound is returned when a recipe lookup misses.
	ErrRecipeNotFound = errors.New("recipe not found")
	// ErrIngredientNotFound is returned when an ingredient lookup misses.
	ErrIngredientNotFound = errors.New("ingredient not found")
	// ErrUserAlreadyExists is returned when a username or email is already registered.
	ErrUserAlreadyExists = errors.New("user already exists")
)

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

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrRecipeNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "RECIPE_NOT_FOUND")
	case errors.Is(err, ErrIngredientNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "INGREDIENT_NOT_FOUND")
	case errors.Is(err, ErrNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "NOT_FOUND")
	case errors.Is(err, ErrUserAlreadyExists):
		return NewHTTPError(http.StatusConflict, err.Error(), "USER_ALREADY_EXISTS")
	case errors.Is(err, ErrDuplicateKey):
		return NewHTTPError(http.StatusConflict, err.Error(), "DUPLICATE_KEY")
	case errors.Is(err, ErrInvalidArgument):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_ARGUMENT")
	case errors.Is(err, ErrBackendUnavailable):
		return NewHTTPError(http.StatusServiceUnavailable, err.Error(), "BACKEND_UNAVAILABLE")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}

// Is reports whether any error in err's chain matches target. Re-exported so
// files importing this package can keep a single errors import.
func Is(err, target error) bool {
	return errors.Is(err, target)
}
