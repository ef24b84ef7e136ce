// Package storage owns all PostgreSQL and Redis access. Query methods live
// here; domain rules live in the service packages on top. Methods that touch
// more than one row under a joint invariant run inside a single transaction.
package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"skillswap/backend/internal/apperrors"
	"skillswap/backend/internal/models"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Storage interface {
	// Users
	CreateUser(user *models.User) error
	GetUserByID(id string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUsersByIDs(ids []string) ([]models.User, error)
	UpdateUser(user *models.User) error
	ListMentors() ([]models.User, error)

	// Skills and languages
	AddSkill(skill *models.Skill) error
	GetSkillByID(id uint) (*models.Skill, error)
	ListSkills(userID, kind string) ([]models.Skill, error)
	ListSkillsByNames(names []string, kind string) ([]models.Skill, error)
	DeleteSkill(id uint) error
	AddLanguage(lang *models.Language) error
	GetLanguageByID(id uint) (*models.Language, error)
	ListLanguages(userID string) ([]models.Language, error)
	DeleteLanguage(id uint) error

	// Availability
	CreateSlot(slot *models.AvailabilitySlot) error
	GetSlotByID(id uint) (*models.AvailabilitySlot, error)
	ListSlots(mentorID string, includeBooked bool) ([]models.AvailabilitySlot, error)
	CountOverlappingSlots(mentorID string, date, start, end time.Time) (int64, error)
	DeleteSlot(id uint) error

	// Session requests
	CreateSessionRequest(req *models.SessionRequest) error
	GetSessionRequest(id uint) (*models.SessionRequest, error)
	AcceptSessionRequest(req *models.SessionRequest) error
	UpdateSessionStatus(id uint, from, to string) error
	CancelSessionRequest(req *models.SessionRequest) error
	ListMentorRequests(mentorID string, statuses []string) ([]models.SessionRequest, error)
	ListGuestRequests(guestID string, statuses []string) ([]models.SessionRequest, error)
	ListUserRequests(userID string, statuses []string) ([]models.SessionRequest, error)

	// Matches
	CreateMatchRequest(match *models.MatchRequest) error
	GetMatchRequest(id uint) (*models.MatchRequest, error)
	FindActiveMatch(senderID, receiverID, skill string) (*models.MatchRequest, error)
	UpdateMatchStatus(id uint, from, to string) error
	ListMatchesBySender(senderID string, statuses []string) ([]models.MatchRequest, error)
	ListMatchesByReceiver(receiverID string, statuses []string) ([]models.MatchRequest, error)
	ListMatchesForUser(userID string, statuses []string) ([]models.MatchRequest, error)

	// Conversations and messages
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

	// Reviews
	CreateReview(review *models.Review) error
	GetReviewByID(id uint) (*models.Review, error)
	DeleteReview(id uint) error
	ListReviewsForTarget(targetID string) ([]models.Review, error)
	GetReviewStats(targetID string) (float64, int64, error)

	// Auth sessions (Redis)
	SaveSessionToken(tokenID, userID string, ttl time.Duration) error
	GetSessionToken(tokenID string) (string, error)
	DeleteSessionToken(tokenID string) error
}

type Service struct {
	DB     *gorm.DB
	Redis  *redis.Client
	Ctx    context.Context
	Logger *zap.Logger
}

// NewStorageService Constructor
func NewStorageService(db *gorm.DB, rdb *redis.Client, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		DB:     db,
		Redis:  rdb,
		Ctx:    context.Background(),
		Logger: logger,
	}
}

const sessionKeyPrefix = "session:"

// SaveSessionToken records a live auth session in Redis. The middleware
// treats a token without a live key as logged out regardless of its JWT
// expiry.
func (s *Service) SaveSessionToken(tokenID, userID string, ttl time.Duration) error {
	if err := s.Redis.Set(s.Ctx, sessionKeyPrefix+tokenID, userID, ttl).Err(); err != nil {
		return fmt.Errorf("saving session token: %w: %w", err, apperrors.ErrStorage)
	}
	return nil
}

// GetSessionToken returns the user ID bound to a live session token, or
// an empty string when the session is gone.
func (s *Service) GetSessionToken(tokenID string) (string, error) {
	userID, err := s.Redis.Get(s.Ctx, sessionKeyPrefix+tokenID).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading session token: %w: %w", err, apperrors.ErrStorage)
	}
	return userID, nil
}

// DeleteSessionToken revokes a session (logout).
func (s *Service) DeleteSessionToken(tokenID string) error {
	if err := s.Redis.Del(s.Ctx, sessionKeyPrefix+tokenID).Err(); err != nil {
		return fmt.Errorf("deleting session token: %w: %w", err, apperrors.ErrStorage)
	}
	return nil
}
