package handler

import (
	"net/http"

	"skillswap/backend/internal/models"

	"github.com/gin-gonic/gin"
)

type addSkillRequest struct {
	Name string `json:"name" binding:"required"`
}

type addLanguageRequest struct {
	Name  string `json:"name" binding:"required"`
	Level string `json:"level"`
}

func (h *Handler) AddOfferedSkill(c *gin.Context) {
	h.addSkill(c, models.SkillOffered)
}

func (h *Handler) AddWantedSkill(c *gin.Context) {
	h.addSkill(c, models.SkillWanted)
}

func (h *Handler) addSkill(c *gin.Context, kind string) {
	var req addSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": h.localized(c, "error.validation")})
		return
	}
	skill, err := h.Users.AddSkill(callerID(c), req.Name, kind)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"skill": skill})
}

func (h *Handler) ListOfferedSkills(c *gin.Context) {
	h.listSkills(c, models.SkillOffered)
}

func (h *Handler) ListWantedSkills(c *gin.Context) {
	h.listSkills(c, models.SkillWanted)
}

func (h *Handler) listSkills(c *gin.Context, kind string) {
	skills, err := h.Users.ListSkills(callerID(c), kind)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"skills": skills})
}

// DeleteSkill removes one skill owned by the caller; shared by the offered
// and wanted routes since the ID is global.
func (h *Handler) DeleteSkill(c *gin.Context) {
	id, err := uintParam(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := h.Users.RemoveSkill(id, callerID(c)); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *Handler) AddLanguage(c *gin.Context) {
	var req addLanguageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": h.localized(c, "error.validation")})
		return
	}
	lang, err := h.Users.AddLanguage(callerID(c), req.Name, req.Level)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"language": lang})
}

func (h *Handler) ListLanguages(c *gin.Context) {
	langs, err := h.Users.ListLanguages(callerID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"languages": langs})
}

func (h *Handler) DeleteLanguage(c *gin.Context) {
	id, err := uintParam(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := h.Users.RemoveLanguage(id, callerID(c)); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
