package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type createConversationRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

// ListConversations returns the caller's inbox with unread counts.
func (h *Handler) ListConversations(c *gin.Context) {
	summaries, err := h.Messaging.GetConversations(callerID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversations": summaries})
}

// CreateConversation resolves the unique thread with another user, creating
// it on first contact. Idempotent.
func (h *Handler) CreateConversation(c *gin.Context) {
	var req createConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": h.localized(c, "error.validation")})
		return
	}
	conv, err := h.Messaging.GetOrCreateConversation(callerID(c), req.UserID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"conversation": conv})
}

// GetConversation returns one conversation with the caller's unread count.
func (h *Handler) GetConversation(c *gin.Context) {
	conversationID := c.Param("id")
	unread, err := h.Messaging.UnreadCount(callerID(c), conversationID)
	if err != nil {
		h.fail(c, err)
		return
	}
	messages, err := h.Messaging.GetMessages(conversationID, callerID(c), 0)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages, "unread_count": unread})
}

func (h *Handler) DeleteConversation(c *gin.Context) {
	if err := h.Messaging.DeleteConversation(c.Param("id"), callerID(c)); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// MarkConversationRead moves the caller's read cursor to now.
func (h *Handler) MarkConversationRead(c *gin.Context) {
	if err := h.Messaging.MarkAsRead(callerID(c), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "read"})
}

// GetConversationMessages returns messages in chronological order;
// ?limit=N caps the page.
func (h *Handler) GetConversationMessages(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	messages, err := h.Messaging.GetMessages(c.Param("id"), callerID(c), limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}
