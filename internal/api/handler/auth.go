package handler

import (
	"net/http"
	"time"

	"skillswap/backend/internal/config"

	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register creates an account and logs it in right away.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": h.localized(c, "error.validation")})
		return
	}

	user, err := h.Users.Register(req.Name, req.Email, req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}

	token, err := h.Tokens.Issue(user.ID)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.setSessionCookie(c, token)
	c.JSON(http.StatusCreated, gin.H{"user": user, "token": token})
}

// Login verifies credentials and issues a session token carried both in the
// body and in an HTTP-only cookie.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": h.localized(c, "error.validation")})
		return
	}

	user, err := h.Users.Authenticate(req.Email, req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}

	token, err := h.Tokens.Issue(user.ID)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.setSessionCookie(c, token)
	c.JSON(http.StatusOK, gin.H{"user": user, "token": token})
}

// Logout revokes the current session and clears the cookie.
func (h *Handler) Logout(c *gin.Context) {
	if tokenID := c.GetString(ctxTokenID); tokenID != "" {
		if err := h.Tokens.Revoke(tokenID); err != nil {
			h.fail(c, err)
			return
		}
	}
	c.SetCookie(config.SessionCookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}

// Me returns the authenticated account.
func (h *Handler) Me(c *gin.Context) {
	user, err := h.Users.GetUser(callerID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *Handler) setSessionCookie(c *gin.Context, token string) {
	maxAge := int(config.SessionTokenTTL / time.Second)
	c.SetCookie(config.SessionCookieName, token, maxAge, "/", "", false, true)
}
