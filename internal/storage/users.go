package storage

import (
	"errors"
	"fmt"

	"skillswap/backend/internal/apperrors"
	"skillswap/backend/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func (s *Service) CreateUser(user *models.User) error {
	if err := s.DB.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("email %s already registered: %w", user.Email, apperrors.ErrConflict)
		}
		s.Logger.Error("failed to create user", zap.String("email", user.Email), zap.Error(err))
		return err
	}
	return nil
}

func (s *Service) GetUserByID(id string) (*models.User, error) {
	var user models.User
	err := s.DB.Where("id = ? AND is_active = ?", id, true).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("user %s: %w", id, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Service) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.DB.Where("email = ? AND is_active = ?", email, true).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("user %s: %w", email, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Service) GetUsersByIDs(ids []string) ([]models.User, error) {
	var users []models.User
	if len(ids) == 0 {
		return users, nil
	}
	if err := s.DB.Where("id IN ? AND is_active = ?", ids, true).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Service) UpdateUser(user *models.User) error {
	return s.DB.Save(user).Error
}

// ListMentors returns all active users listed in the mentor directory,
// alphabetically by name.
func (s *Service) ListMentors() ([]models.User, error) {
	var mentors []models.User
	err := s.DB.Where("is_mentor = ? AND is_active = ?", true, true).
		Order("name asc").
		Find(&mentors).Error
	if err != nil {
		s.Logger.Error("failed to list mentors", zap.Error(err))
		return nil, err
	}
	return mentors, nil
}
