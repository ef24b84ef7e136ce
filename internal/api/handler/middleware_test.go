package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"skillswap/backend/internal/apperrors"
	"skillswap/backend/internal/localization"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testHandler(t *testing.T) *Handler {
	t.Helper()
	localizer, err := localization.NewLocalizer("")
	require.NoError(t, err)
	return &Handler{Localizer: localizer, Logger: zap.NewNop()}
}

func testContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

// TestCleanMessage verifies the sentinel tail is stripped from wrapped errors
// and plain errors pass through untouched.
func TestCleanMessage(t *testing.T) {
	wrapped := fmt.Errorf("slot 10 already booked: %w", apperrors.ErrConflict)
	assert.Equal(t, "slot 10 already booked", cleanMessage(wrapped))

	deep := fmt.Errorf("accept request: %w", wrapped)
	assert.Equal(t, "accept request: slot 10 already booked", cleanMessage(deep))

	assert.Equal(t, "plain failure", cleanMessage(errors.New("plain failure")))
}

// TestFail_MapsStatusAndBody verifies a wrapped sentinel produces its
// contract status with the human message in the body.
func TestFail_MapsStatusAndBody(t *testing.T) {
	// Arrange
	h := testHandler(t)
	c, w := testContext()

	// Act
	h.fail(c, fmt.Errorf("review 9 does not belong to caller: %w", apperrors.ErrAuthorization))

	// Assert
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "review 9 does not belong to caller")
	assert.NotContains(t, w.Body.String(), "skillswap:")
}

// TestFail_MasksInternalErrors verifies unknown errors never leak their
// message to the client.
func TestFail_MasksInternalErrors(t *testing.T) {
	// Arrange
	h := testHandler(t)
	c, w := testContext()

	// Act
	h.fail(c, errors.New("pq: connection refused"))

	// Assert
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection refused")
}

// TestUintParam rejects non-numeric path parameters with a validation error.
func TestUintParam(t *testing.T) {
	c, _ := testContext()
	c.Params = gin.Params{{Key: "id", Value: "42"}}

	id, err := uintParam(c, "id")
	assert.NoError(t, err)
	assert.Equal(t, uint(42), id)

	c.Params = gin.Params{{Key: "id", Value: "abc"}}
	_, err = uintParam(c, "id")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

// TestExtractToken prefers the session cookie over the Authorization header.
func TestExtractToken(t *testing.T) {
	c, _ := testContext()
	c.Request.Header.Set("Authorization", "Bearer header-token")
	assert.Equal(t, "header-token", extractToken(c))

	c.Request.AddCookie(&http.Cookie{Name: "skillswap_session", Value: "cookie-token"})
	assert.Equal(t, "cookie-token", extractToken(c))
}
