// Package users handles accounts: registration, credential checks, profile
// management and the skill/language lists that drive matching.
package users

import (
	"fmt"
	"net/mail"
	"strings"

	"skillswap/backend/internal/apperrors"
	"skillswap/backend/internal/models"

	"github.com/lib/pq"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type Store interface {
	CreateUser(user *models.User) error
	GetUserByID(id string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	UpdateUser(user *models.User) error
	ListMentors() ([]models.User, error)
	GetReviewStats(targetID string) (float64, int64, error)

	AddSkill(skill *models.Skill) error
	GetSkillByID(id uint) (*models.Skill, error)
	ListSkills(userID, kind string) ([]models.Skill, error)
	DeleteSkill(id uint) error

	AddLanguage(lang *models.Language) error
	GetLanguageByID(id uint) (*models.Language, error)
	ListLanguages(userID string) ([]models.Language, error)
	DeleteLanguage(id uint) error
}

type Service struct {
	store  Store
	logger *zap.Logger
}

func NewService(store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger}
}

// Register creates an account with a bcrypt password hash.
func (s *Service) Register(name, email, password string) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" {
		return nil, fmt.Errorf("name is required: %w", apperrors.ErrValidation)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("invalid email address: %w", apperrors.ErrValidation)
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters: %w", apperrors.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.store.CreateUser(user); err != nil {
		return nil, err
	}
	s.logger.Info("user registered", zap.String("user_id", user.ID))
	return user, nil
}

// Authenticate verifies credentials and returns the account. Unknown email
// and wrong password are indistinguishable to the caller.
func (s *Service) Authenticate(email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.store.GetUserByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", apperrors.ErrAuthentication)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, fmt.Errorf("invalid credentials: %w", apperrors.ErrAuthentication)
	}
	return user, nil
}

func (s *Service) GetUser(id string) (*models.User, error) {
	return s.store.GetUserByID(id)
}

// ProfileUpdate carries the PATCHable profile fields; nil means unchanged.
type ProfileUpdate struct {
	Name      *string
	Bio       *string
	IsMentor  *bool
	Interests *[]string
}

func (s *Service) UpdateProfile(userID string, update ProfileUpdate) (*models.User, error) {
	user, err := s.store.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, fmt.Errorf("name cannot be empty: %w", apperrors.ErrValidation)
		}
		user.Name = name
	}
	if update.Bio != nil {
		user.Bio = *update.Bio
	}
	if update.IsMentor != nil {
		user.IsMentor = *update.IsMentor
	}
	if update.Interests != nil {
		user.Interests = pq.StringArray(*update.Interests)
	}
	if err := s.store.UpdateUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetPublicProfile returns the profile view exposed to other users, with the
// rating aggregate recomputed on read.
func (s *Service) GetPublicProfile(userID string) (*models.PublicProfile, error) {
	user, err := s.store.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	avg, count, err := s.store.GetReviewStats(userID)
	if err != nil {
		return nil, err
	}
	return &models.PublicProfile{
		ID:            user.ID,
		Name:          user.Name,
		Bio:           user.Bio,
		IsMentor:      user.IsMentor,
		Interests:     user.Interests,
		AverageRating: avg,
		ReviewCount:   int(count),
	}, nil
}

// ListMentors returns the mentor directory with rating aggregates.
func (s *Service) ListMentors() ([]models.PublicProfile, error) {
	mentors, err := s.store.ListMentors()
	if err != nil {
		return nil, err
	}
	profiles := make([]models.PublicProfile, 0, len(mentors))
	for _, m := range mentors {
		avg, count, err := s.store.GetReviewStats(m.ID)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, models.PublicProfile{
			ID:            m.ID,
			Name:          m.Name,
			Bio:           m.Bio,
			IsMentor:      true,
			Interests:     m.Interests,
			AverageRating: avg,
			ReviewCount:   int(count),
		})
	}
	return profiles, nil
}

// AddSkill attaches a skill of the given kind to the user's profile.
func (s *Service) AddSkill(userID, name, kind string) (*models.Skill, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("skill name is required: %w", apperrors.ErrValidation)
	}
	if kind != models.SkillOffered && kind != models.SkillWanted {
		return nil, fmt.Errorf("unknown skill kind %q: %w", kind, apperrors.ErrValidation)
	}
	skill := &models.Skill{UserID: userID, Name: name, Kind: kind}
	if err := s.store.AddSkill(skill); err != nil {
		return nil, err
	}
	return skill, nil
}

func (s *Service) ListSkills(userID, kind string) ([]models.Skill, error) {
	return s.store.ListSkills(userID, kind)
}

// RemoveSkill deletes a skill owned by the caller.
func (s *Service) RemoveSkill(skillID uint, userID string) error {
	skill, err := s.store.GetSkillByID(skillID)
	if err != nil {
		return err
	}
	if skill.UserID != userID {
		return fmt.Errorf("skill %d does not belong to caller: %w", skillID, apperrors.ErrAuthorization)
	}
	return s.store.DeleteSkill(skillID)
}

func (s *Service) AddLanguage(userID, name, level string) (*models.Language, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("language name is required: %w", apperrors.ErrValidation)
	}
	lang := &models.Language{UserID: userID, Name: name, Level: level}
	if err := s.store.AddLanguage(lang); err != nil {
		return nil, err
	}
	return lang, nil
}

func (s *Service) ListLanguages(userID string) ([]models.Language, error) {
	return s.store.ListLanguages(userID)
}

func (s *Service) RemoveLanguage(langID uint, userID string) error {
	lang, err := s.store.GetLanguageByID(langID)
	if err != nil {
		return err
	}
	if lang.UserID != userID {
		return fmt.Errorf("language %d does not belong to caller: %w", langID, apperrors.ErrAuthorization)
	}
	return s.store.DeleteLanguage(langID)
}
