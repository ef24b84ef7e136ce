package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type sendMessageRequest struct {
	ReceiverID string `json:"receiver_id" binding:"required"`
	Content    string `json:"content" binding:"required"`
}

// SendMessage delivers a direct message, creating the conversation on first
// contact.
func (h *Handler) SendMessage(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": h.localized(c, "error.validation")})
		return
	}
	msg, err := h.Messaging.SendMessage(callerID(c), req.ReceiverID, req.Content)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": msg})
}

// GetMessagesWithUser resolves the thread with the given user and returns it
// chronologically.
func (h *Handler) GetMessagesWithUser(c *gin.Context) {
	conv, err := h.Messaging.GetOrCreateConversation(callerID(c), c.Param("userId"))
	if err != nil {
		h.fail(c, err)
		return
	}
	messages, err := h.Messaging.GetMessages(conv.ID, callerID(c), 0)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversation": conv, "messages": messages})
}
