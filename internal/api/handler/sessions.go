package handler

import (
	"net/http"

	"skillswap/backend/internal/booking"
	"skillswap/backend/internal/models"

	"github.com/gin-gonic/gin"
)

type createSessionRequest struct {
	MentorID        string `json:"mentor_id" binding:"required"`
	AvailabilityID  uint   `json:"availability_id" binding:"required"`
	Title           string `json:"title" binding:"required"`
	DurationMinutes int    `json:"duration_minutes" binding:"required"`
	Description     string `json:"description"`
}

// CreateSessionRequest files a pending request against an unbooked slot.
func (h *Handler) CreateSessionRequest(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": h.localized(c, "error.validation")})
		return
	}

	created, err := h.Booking.CreateRequest(booking.CreateInput{
		MentorID:        req.MentorID,
		GuestID:         callerID(c),
		AvailabilityID:  req.AvailabilityID,
		Title:           req.Title,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"request": created})
}

func (h *Handler) AcceptSession(c *gin.Context) {
	h.decideSession(c, h.Booking.AcceptRequest)
}

func (h *Handler) RejectSession(c *gin.Context) {
	h.decideSession(c, h.Booking.RejectRequest)
}

func (h *Handler) CancelSession(c *gin.Context) {
	h.decideSession(c, h.Booking.CancelRequest)
}

func (h *Handler) CompleteSession(c *gin.Context) {
	h.decideSession(c, h.Booking.CompleteRequest)
}

func (h *Handler) decideSession(c *gin.Context, decide func(uint, string) (*models.SessionRequest, error)) {
	id, err := uintParam(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	req, err := decide(id, callerID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": req})
}

// PendingSessions is the mentor's inbox of open requests.
func (h *Handler) PendingSessions(c *gin.Context) {
	h.listSessions(c, h.Booking.GetPendingRequests)
}

func (h *Handler) SentSessions(c *gin.Context) {
	h.listSessions(c, h.Booking.GetSentRequests)
}

func (h *Handler) ReceivedSessions(c *gin.Context) {
	h.listSessions(c, h.Booking.GetReceivedRequests)
}

func (h *Handler) AcceptedSessions(c *gin.Context) {
	h.listSessions(c, h.Booking.GetAcceptedRequests)
}

func (h *Handler) listSessions(c *gin.Context, list func(string) ([]models.SessionRequest, error)) {
	requests, err := list(callerID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": requests})
}
