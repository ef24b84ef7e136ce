package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type createReviewRequest struct {
	TargetID string `json:"target_id" binding:"required"`
	Rating   int    `json:"rating" binding:"required"`
	Comment  string `json:"comment"`
}

// CreateReview records a rating about another user.
func (h *Handler) CreateReview(c *gin.Context) {
	var req createReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": h.localized(c, "error.validation")})
		return
	}
	review, err := h.Reviews.CreateReview(callerID(c), req.TargetID, req.Rating, req.Comment)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"review": review})
}

// DeleteReview removes the caller's own review.
func (h *Handler) DeleteReview(c *gin.Context) {
	id, err := uintParam(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := h.Reviews.DeleteReview(id, callerID(c)); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// GetUserReviews lists a user's reviews with the recomputed average.
func (h *Handler) GetUserReviews(c *gin.Context) {
	reviews, err := h.Reviews.GetTargetReviews(c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}
