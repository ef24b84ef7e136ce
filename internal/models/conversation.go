package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Conversation is the unique message thread between exactly two users.
// User1ID/User2ID store the pair in lexicographic order so the unordered-pair
// uniqueness invariant becomes a plain composite unique index.
type Conversation struct {
	ID            string    `gorm:"primaryKey" json:"id"` // UUID
	User1ID       string    `gorm:"type:text;not null;uniqueIndex:idx_conv_pair" json:"user1_id"`
	User2ID       string    `gorm:"type:text;not null;uniqueIndex:idx_conv_pair" json:"user2_id"`
	CreatedAt     time.Time `json:"created_at"`
	LastMessageAt time.Time `json:"last_message_at"`
}

func (c *Conversation) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return
}

// HasParticipant reports whether userID is one of the two members.
func (c *Conversation) HasParticipant(userID string) bool {
	return c.User1ID == userID || c.User2ID == userID
}

// PartnerOf returns the other member of the pair.
func (c *Conversation) PartnerOf(userID string) string {
	if c.User1ID == userID {
		return c.User2ID
	}
	return c.User1ID
}

// NormalizePair orders two user IDs the way Conversation stores them.
func NormalizePair(a, b string) (string, string) {
	if b < a {
		return b, a
	}
	return a, b
}

// Participant carries per-member conversation state, currently just the read
// cursor. Updating one participant's cursor never touches the other row.
type Participant struct {
	gorm.Model
	ConversationID string    `gorm:"type:text;not null;uniqueIndex:idx_conv_member" json:"conversation_id"`
	UserID         string    `gorm:"type:text;not null;uniqueIndex:idx_conv_member" json:"user_id"`
	LastReadAt     time.Time `json:"last_read_at"`
}

type Message struct {
	gorm.Model
	ConversationID string `gorm:"type:text;not null;index:idx_conv_msg" json:"conversation_id"`
	SenderID       string `gorm:"type:text;not null" json:"sender_id"`
	Content        string `gorm:"type:text;not null" json:"content"`
}

// ConversationSummary is the inbox view: the conversation plus the newest
// message and the caller's unread count.
type ConversationSummary struct {
	Conversation Conversation `json:"conversation"`
	PartnerID    string       `json:"partner_id"`
	LastMessage  *Message     `json:"last_message,omitempty"`
	UnreadCount  int64        `json:"unread_count"`
}
