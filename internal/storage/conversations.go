package storage

import (
	"errors"
	"fmt"
	"time"

	"skillswap/backend/internal/apperrors"
	"skillswap/backend/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// GetOrCreateConversation returns the unique conversation for the unordered
// user pair, creating it together with both participant rows on first use.
// The normalized pair plus the unique index make concurrent first calls
// converge on a single row: the insert loser re-fetches the winner's row.
func (s *Service) GetOrCreateConversation(userA, userB string) (*models.Conversation, error) {
	u1, u2 := models.NormalizePair(userA, userB)

	conv, err := resolveFirstContact(
		func() (*models.Conversation, error) { return s.startConversation(u1, u2) },
		func() (*models.Conversation, error) { return s.findConversationByPair(u1, u2) },
	)
	if err != nil {
		s.Logger.Error("failed to get or create conversation",
			zap.String("user1", u1), zap.String("user2", u2), zap.Error(err))
		return nil, err
	}
	return conv, nil
}

// resolveFirstContact runs the create path and, when the pair index reports
// the row was inserted concurrently, falls back to looking up the committed
// winner. The fallback runs outside the failed transaction; postgres rejects
// further statements inside it.
func resolveFirstContact(create, lookup func() (*models.Conversation, error)) (*models.Conversation, error) {
	conv, err := create()
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return lookup()
	}
	return conv, err
}

func (s *Service) startConversation(u1, u2 string) (*models.Conversation, error) {
	var conv models.Conversation
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Where(models.Conversation{User1ID: u1, User2ID: u2}).
			FirstOrCreate(&conv)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil // existing conversation, participants already there
		}

		participants := []models.Participant{
			{ConversationID: conv.ID, UserID: u1},
			{ConversationID: conv.ID, UserID: u2},
		}
		return tx.Create(&participants).Error
	})
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

func (s *Service) findConversationByPair(u1, u2 string) (*models.Conversation, error) {
	var conv models.Conversation
	if err := s.DB.Where("user1_id = ? AND user2_id = ?", u1, u2).First(&conv).Error; err != nil {
		return nil, err
	}
	return &conv, nil
}

func (s *Service) GetConversationByID(id string) (*models.Conversation, error) {
	var conv models.Conversation
	err := s.DB.Where("id = ?", id).First(&conv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("conversation %s: %w", id, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

// ListConversationsForUser returns the user's conversations, most recently
// active first.
func (s *Service) ListConversationsForUser(userID string) ([]models.Conversation, error) {
	var convs []models.Conversation
	err := s.DB.Where("user1_id = ? OR user2_id = ?", userID, userID).
		Order("last_message_at desc").
		Find(&convs).Error
	if err != nil {
		return nil, err
	}
	return convs, nil
}

// DeleteConversation removes the conversation with its messages and
// participant rows in one transaction.
func (s *Service) DeleteConversation(id string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("conversation_id = ?", id).Delete(&models.Message{}).Error; err != nil {
			return err
		}
		if err := tx.Where("conversation_id = ?", id).Delete(&models.Participant{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Conversation{}).Error
	})
}

// CreateMessage appends a message and bumps the conversation's last-activity
// timestamp in the same transaction.
func (s *Service) CreateMessage(msg *models.Message) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(msg).Error; err != nil {
			return err
		}
		return tx.Model(&models.Conversation{}).
			Where("id = ?", msg.ConversationID).
			Update("last_message_at", msg.CreatedAt).Error
	})
}

// ListMessages returns messages in chronological order.
func (s *Service) ListMessages(conversationID string, limit int) ([]models.Message, error) {
	var messages []models.Message
	q := s.DB.Where("conversation_id = ?", conversationID).Order("created_at asc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

func (s *Service) GetLastMessage(conversationID string) (*models.Message, error) {
	var msg models.Message
	err := s.DB.Where("conversation_id = ?", conversationID).
		Order("created_at desc").
		First(&msg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

func (s *Service) GetParticipant(conversationID, userID string) (*models.Participant, error) {
	var p models.Participant
	err := s.DB.Where("conversation_id = ? AND user_id = ?", conversationID, userID).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("participant %s in conversation %s: %w",
			userID, conversationID, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// TouchLastRead moves the caller's read cursor. Only the one participant row
// is touched.
func (s *Service) TouchLastRead(conversationID, userID string, at time.Time) error {
	return s.DB.Model(&models.Participant{}).
		Where("conversation_id = ? AND user_id = ?", conversationID, userID).
		Update("last_read_at", at).Error
}

// CountUnread counts messages sent by the other side after the participant's
// read cursor.
func (s *Service) CountUnread(conversationID, userID string, since time.Time) (int64, error) {
	var count int64
	err := s.DB.Model(&models.Message{}).
		Where("conversation_id = ? AND sender_id <> ? AND created_at > ?",
			conversationID, userID, since).
		Count(&count).Error
	return count, err
}
