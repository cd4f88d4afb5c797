package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrValidation is returned when a required field is missing or malformed.
	ErrValidation = errors.New("validation failed")
	// ErrInvalidRequest is returned when login is attempted without username or password.
	ErrInvalidRequest = errors.New("Username and password are required.")
	// ErrInvalidCredentials is returned for an unknown username or a wrong password alike.
	ErrInvalidCredentials = errors.New("Wrong username or password.")
	// ErrUnauthenticated is returned when no bearer token is presented.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrInvalidToken is returned when a token fails signature, issuer or audience checks.
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken is returned when a token is past its expiry.
	ErrExpiredToken = errors.New("token has expired")
	// ErrForbidden is returned when the caller lacks a required role.
	ErrForbidden = errors.New("insufficient role")
	// ErrCategoryNotFound is returned when a category id does not exist.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrContactNotFound is returned when a contact id does not exist.
	ErrContactNotFound = errors.New("contact not found")
	// ErrParentCategoryNotFound is returned when parentCategoryId references nothing.
	ErrParentCategoryNotFound = errors.New("parent category not found")
	// ErrCategoryCycle is returned when a parent assignment would make a category its own ancestor.
	ErrCategoryCycle = errors.New("category cannot be its own ancestor")
	// ErrCategoryTooDeep is returned when the category tree would exceed the depth bound.
	ErrCategoryTooDeep = errors.New("category tree is too deep")
	// ErrCategoryInUse is returned when deleting a category that still has dependents.
	ErrCategoryInUse = errors.New("category has child categories or contacts")
	// ErrForeignKeyViolation is returned when a contact references a category that does not exist.
	ErrForeignKeyViolation = errors.New("referenced category does not exist")
)

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
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

// mappings is checked in order; the first sentinel found in the chain wins.
var mappings = []struct {
	target error
	status int
	code   string
}{
	{ErrValidation, http.StatusBadRequest, "VALIDATION_ERROR"},
	{ErrInvalidRequest, http.StatusBadRequest, "INVALID_REQUEST"},
	{ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
	{ErrUnauthenticated, http.StatusUnauthorized, "UNAUTHENTICATED"},
	{ErrExpiredToken, http.StatusUnauthorized, "EXPIRED_TOKEN"},
	{ErrInvalidToken, http.StatusUnauthorized, "INVALID_TOKEN"},
	{ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
	{ErrCategoryNotFound, http.StatusNotFound, "CATEGORY_NOT_FOUND"},
	{ErrContactNotFound, http.StatusNotFound, "CONTACT_NOT_FOUND"},
	{ErrParentCategoryNotFound, http.StatusBadRequest, "PARENT_CATEGORY_NOT_FOUND"},
	{ErrCategoryCycle, http.StatusBadRequest, "CATEGORY_CYCLE"},
	{ErrCategoryTooDeep, http.StatusBadRequest, "CATEGORY_TOO_DEEP"},
	{ErrCategoryInUse, http.StatusConflict, "CATEGORY_IN_USE"},
	{ErrForeignKeyViolation, http.StatusBadRequest, "FOREIGN_KEY_VIOLATION"},
}

// MapErrorToHTTP maps domain errors to HTTP errors. Unknown errors become a generic 500
// so internal details never reach the client.
func MapErrorToHTTP(err error) *HTTPError {
	for _, m := range mappings {
		if errors.Is(err, m.target) {
			return NewHTTPError(m.status, err.Error(), m.code)
		}
	}
	return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
}
