// Package messaging manages two-user conversations and message delivery.
// There is exactly one conversation per unordered user pair; unread counts
// are derived from per-participant read cursors on read.
package messaging

import (
	"fmt"
	"strings"
	"time"

	"skillswap/backend/internal/apperrors"
	"skillswap/backend/internal/config"
	"skillswap/backend/internal/models"

	"go.uber.org/zap"
)

type Store interface {
	GetUserByID(id string) (*models.User, error)

	GetOrCreateConversation(userA, userB string) (*models.Conversation, error)
	GetConversationByID(id string) (*models.Conversation, error)
	ListConversationsForUser(userID string) ([]models.Conversation, error)
	DeleteConversation(id string) error

	CreateMessage(msg *models.Message) error
	ListMessages(conversationID string, limit int) ([]models.Message, error)
	GetLastMessage(conversationID string) (*models.Message, error)

	GetParticipant(conversationID, userID string) (*models.Participant, error)
	TouchLastRead(conversationID, userID string, at time.Time) error
	CountUnread(conversationID, userID string, since time.Time) (int64, error)
}

type Service struct {
	store  Store
	logger *zap.Logger
	now    func() time.Time
}

func NewService(store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger, now: time.Now}
}

// GetOrCreateConversation is idempotent: two calls for the same pair return
// the same conversation.
func (s *Service) GetOrCreateConversation(callerID, otherID string) (*models.Conversation, error) {
	if callerID == otherID {
		return nil, fmt.Errorf("cannot converse with yourself: %w", apperrors.ErrValidation)
	}
	if _, err := s.store.GetUserByID(otherID); err != nil {
		return nil, err
	}
	return s.store.GetOrCreateConversation(callerID, otherID)
}

// SendMessage resolves (or creates) the pair's conversation and appends a
// message to it.
func (s *Service) SendMessage(senderID, receiverID, content string) (*models.Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("message content is empty: %w", apperrors.ErrValidation)
	}

	conv, err := s.GetOrCreateConversation(senderID, receiverID)
	if err != nil {
		return nil, err
	}

	msg := &models.Message{
		ConversationID: conv.ID,
		SenderID:       senderID,
		Content:        content,
	}
	if err := s.store.CreateMessage(msg); err != nil {
		s.logger.Error("failed to save message",
			zap.String("conversation_id", conv.ID), zap.Error(err))
		return nil, err
	}
	return msg, nil
}

// GetConversations returns the caller's inbox: conversations with last
// message and unread count, most recently active first.
func (s *Service) GetConversations(userID string) ([]models.ConversationSummary, error) {
	convs, err := s.store.ListConversationsForUser(userID)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.ConversationSummary, 0, len(convs))
	for _, conv := range convs {
		participant, err := s.store.GetParticipant(conv.ID, userID)
		if err != nil {
			return nil, err
		}
		unread, err := s.store.CountUnread(conv.ID, userID, participant.LastReadAt)
		if err != nil {
			return nil, err
		}
		last, err := s.store.GetLastMessage(conv.ID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, models.ConversationSummary{
			Conversation: conv,
			PartnerID:    conv.PartnerOf(userID),
			LastMessage:  last,
			UnreadCount:  unread,
		})
	}
	return summaries, nil
}

// GetMessages returns a conversation's messages in chronological order.
// Participants only.
func (s *Service) GetMessages(conversationID, userID string, limit int) ([]models.Message, error) {
	if _, err := s.requireParticipant(conversationID, userID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = config.DefaultMessagePageSize
	}
	if limit > config.MaxMessagePageSize {
		limit = config.MaxMessagePageSize
	}
	return s.store.ListMessages(conversationID, limit)
}

// MarkAsRead moves the caller's read cursor to now. The other participant's
// cursor and unread count are untouched.
func (s *Service) MarkAsRead(userID, conversationID string) error {
	if _, err := s.requireParticipant(conversationID, userID); err != nil {
		return err
	}
	return s.store.TouchLastRead(conversationID, userID, s.now())
}

// UnreadCount returns the caller's unread count for one conversation.
func (s *Service) UnreadCount(userID, conversationID string) (int64, error) {
	if _, err := s.requireParticipant(conversationID, userID); err != nil {
		return 0, err
	}
	participant, err := s.store.GetParticipant(conversationID, userID)
	if err != nil {
		return 0, err
	}
	return s.store.CountUnread(conversationID, userID, participant.LastReadAt)
}

// DeleteConversation removes the thread for both parties. Participants only.
func (s *Service) DeleteConversation(conversationID, userID string) error {
	if _, err := s.requireParticipant(conversationID, userID); err != nil {
		return err
	}
	return s.store.DeleteConversation(conversationID)
}

func (s *Service) requireParticipant(conversationID, userID string) (*models.Conversation, error) {
	conv, err := s.store.GetConversationByID(conversationID)
	if err != nil {
		return nil, err
	}
	if !conv.HasParticipant(userID) {
		return nil, fmt.Errorf("caller is not a participant of conversation %s: %w",
			conversationID, apperrors.ErrAuthorization)
	}
	return conv, nil
}
