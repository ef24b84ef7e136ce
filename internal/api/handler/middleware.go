package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"skillswap/backend/internal/apperrors"
	"skillswap/backend/internal/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	ctxUserID  = "userID"
	ctxTokenID = "tokenID"
)

// RequireAuth extracts the session token from the cookie or the Authorization
// header and aborts with 401 when it is missing, invalid or revoked.
func (h *Handler) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				gin.H{"error": h.localized(c, "error.authentication")})
			return
		}

		userID, tokenID, err := h.Tokens.Validate(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				gin.H{"error": h.localized(c, "error.authentication")})
			return
		}

		c.Set(ctxUserID, userID)
		c.Set(ctxTokenID, tokenID)
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie(config.SessionCookieName); err == nil && cookie != "" {
		return cookie
	}
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// callerID returns the authenticated user's ID set by RequireAuth.
func callerID(c *gin.Context) string {
	return c.GetString(ctxUserID)
}

// fail translates a service error to the contract's status code. Internal
// errors are logged and masked with a localized generic message; everything
// else surfaces its own message with the sentinel suffix stripped.
func (h *Handler) fail(c *gin.Context, err error) {
	status := apperrors.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		h.Logger.Error("request failed",
			zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(status, gin.H{"error": h.localized(c, "error.internal")})
		return
	}
	c.JSON(status, gin.H{"error": cleanMessage(err)})
}

// cleanMessage drops the wrapped sentinel tail ("...: skillswap: invalid
// input") so the body carries only the human part.
func cleanMessage(err error) string {
	msg := err.Error()
	if idx := strings.LastIndex(msg, ": skillswap:"); idx > 0 {
		return msg[:idx]
	}
	return msg
}

func (h *Handler) localized(c *gin.Context, key string) string {
	lang := h.Localizer.PickLanguage(c.GetHeader("Accept-Language"))
	return h.Localizer.GetString(lang, key)
}

// uintParam parses a numeric path parameter.
func uintParam(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s parameter: %w", name, apperrors.ErrValidation)
	}
	return uint(id), nil
}
