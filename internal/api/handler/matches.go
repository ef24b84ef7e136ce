package handler

import (
	"net/http"

	"skillswap/backend/internal/models"

	"github.com/gin-gonic/gin"
)

type sendMatchRequest struct {
	ReceiverID string `json:"receiver_id" binding:"required"`
	Skill      string `json:"skill" binding:"required"`
}

// PotentialMatches computes candidate partners for the caller.
func (h *Handler) PotentialMatches(c *gin.Context) {
	matches, err := h.Matching.GetPotentialMatches(callerID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"matches": matches})
}

// SendMatchRequest proposes exchanging one skill with another user.
func (h *Handler) SendMatchRequest(c *gin.Context) {
	var req sendMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": h.localized(c, "error.validation")})
		return
	}
	match, err := h.Matching.SendMatchRequest(callerID(c), req.ReceiverID, req.Skill)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"match": match})
}

func (h *Handler) AcceptMatch(c *gin.Context) {
	h.decideMatch(c, h.Matching.AcceptRequest)
}

func (h *Handler) RejectMatch(c *gin.Context) {
	h.decideMatch(c, h.Matching.RejectRequest)
}

func (h *Handler) CancelMatch(c *gin.Context) {
	h.decideMatch(c, h.Matching.CancelRequest)
}

func (h *Handler) decideMatch(c *gin.Context, decide func(uint, string) (*models.MatchRequest, error)) {
	id, err := uintParam(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	match, err := decide(id, callerID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"match": match})
}

func (h *Handler) SentMatches(c *gin.Context) {
	h.listMatches(c, h.Matching.GetSentRequests)
}

func (h *Handler) ReceivedMatches(c *gin.Context) {
	h.listMatches(c, h.Matching.GetReceivedRequests)
}

func (h *Handler) AcceptedMatches(c *gin.Context) {
	h.listMatches(c, h.Matching.GetAcceptedMatches)
}

func (h *Handler) listMatches(c *gin.Context, list func(string) ([]models.MatchRequest, error)) {
	matches, err := list(callerID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"matches": matches})
}
