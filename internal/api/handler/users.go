package handler

import (
	"net/http"

	"skillswap/backend/internal/users"

	"github.com/gin-gonic/gin"
)

type updateProfileRequest struct {
	Name      *string   `json:"name"`
	Bio       *string   `json:"bio"`
	IsMentor  *bool     `json:"is_mentor"`
	Interests *[]string `json:"interests"`
}

// GetProfile returns the caller's own account.
func (h *Handler) GetProfile(c *gin.Context) {
	user, err := h.Users.GetUser(callerID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// UpdateProfile applies a partial profile update; absent fields stay as they
// are.
func (h *Handler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": h.localized(c, "error.validation")})
		return
	}
	user, err := h.Users.UpdateProfile(callerID(c), users.ProfileUpdate{
		Name:      req.Name,
		Bio:       req.Bio,
		IsMentor:  req.IsMentor,
		Interests: req.Interests,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// GetUser returns another user's public profile.
func (h *Handler) GetUser(c *gin.Context) {
	profile, err := h.Users.GetPublicProfile(c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": profile})
}

// ListMentors returns the mentor directory.
func (h *Handler) ListMentors(c *gin.Context) {
	mentors, err := h.Users.ListMentors()
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mentors": mentors})
}
