package apperrors_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"skillswap/backend/internal/apperrors"

	"github.com/stretchr/testify/assert"
)

// TestHTTPStatus maps every sentinel to its contract status code.
func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"authentication", apperrors.ErrAuthentication, http.StatusUnauthorized},
		{"validation", apperrors.ErrValidation, http.StatusBadRequest},
		{"authorization", apperrors.ErrAuthorization, http.StatusForbidden},
		{"not found", apperrors.ErrNotFound, http.StatusNotFound},
		{"conflict", apperrors.ErrConflict, http.StatusConflict},
		{"state", apperrors.ErrState, http.StatusConflict},
		{"storage", apperrors.ErrStorage, http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, apperrors.HTTPStatus(tt.err))
		})
	}
}

// TestHTTPStatus_Wrapped verifies the mapping survives fmt.Errorf wrapping,
// which is how services attach context.
func TestHTTPStatus_Wrapped(t *testing.T) {
	err := fmt.Errorf("slot 10 already booked: %w", apperrors.ErrConflict)
	assert.Equal(t, http.StatusConflict, apperrors.HTTPStatus(err))

	deep := fmt.Errorf("accept request: %w", err)
	assert.Equal(t, http.StatusConflict, apperrors.HTTPStatus(deep))

	// infrastructure failures keep their cause and still map to 500
	redisDown := fmt.Errorf("reading session token: %w: %w",
		errors.New("connection refused"), apperrors.ErrStorage)
	assert.Equal(t, http.StatusInternalServerError, apperrors.HTTPStatus(redisDown))
	assert.ErrorIs(t, redisDown, apperrors.ErrStorage)
}
