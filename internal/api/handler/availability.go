package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type createAvailabilityRequest struct {
	Date      string `json:"date" binding:"required"`       // YYYY-MM-DD
	StartTime string `json:"start_time" binding:"required"` // HH:MM
	EndTime   string `json:"end_time" binding:"required"`   // HH:MM
}

// CreateAvailability declares a new open slot for the calling mentor.
func (h *Handler) CreateAvailability(c *gin.Context) {
	var req createAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": h.localized(c, "error.validation")})
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}
	start, err := parseTimeOn(date, req.StartTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_time must be HH:MM"})
		return
	}
	end, err := parseTimeOn(date, req.EndTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end_time must be HH:MM"})
		return
	}

	slot, err := h.Availability.CreateAvailability(callerID(c), date, start, end)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"slot": slot})
}

// GetOwnAvailability lists the caller's slots; ?includeBooked=true adds
// booked ones.
func (h *Handler) GetOwnAvailability(c *gin.Context) {
	includeBooked := c.Query("includeBooked") == "true"
	slots, err := h.Availability.GetMentorAvailability(callerID(c), includeBooked)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

// GetMentorAvailability lists another mentor's slots.
func (h *Handler) GetMentorAvailability(c *gin.Context) {
	includeBooked := c.Query("includeBooked") == "true"
	slots, err := h.Availability.GetMentorAvailability(c.Param("mentorId"), includeBooked)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

// DeleteAvailability removes an unbooked slot owned by the caller.
func (h *Handler) DeleteAvailability(c *gin.Context) {
	id, err := uintParam(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := h.Availability.DeleteAvailability(id, callerID(c)); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// parseTimeOn combines a date with an HH:MM wall-clock value.
func parseTimeOn(date time.Time, hhmm string) (time.Time, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), 0, 0, time.UTC), nil
}
