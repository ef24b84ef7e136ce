// Package apperrors defines the failure taxonomy shared by every service.
// Services wrap these sentinels with context via fmt.Errorf("...: %w", ...);
// the HTTP layer translates them to status codes with errors.Is.
package apperrors

import (
	"errors"
	"net/http"
)

// Sentinel errors - Caller identity
var (
	ErrAuthentication = errors.New("skillswap: authentication required")
	ErrAuthorization  = errors.New("skillswap: caller lacks rights over the resource")
)

// Sentinel errors - Input and lookup
var (
	ErrValidation = errors.New("skillswap: invalid input")
	ErrNotFound   = errors.New("skillswap: entity not found")
)

// Sentinel errors - State
var (
	ErrConflict = errors.New("skillswap: state or uniqueness conflict")
	ErrState    = errors.New("skillswap: operation not allowed in current state")
	ErrStorage  = errors.New("skillswap: storage failure")
)

// HTTPStatus maps an error to the status code the API contract promises.
// Unknown errors are treated as storage failures.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrAuthentication):
		return http.StatusUnauthorized
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrAuthorization):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict), errors.Is(err, ErrState):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
