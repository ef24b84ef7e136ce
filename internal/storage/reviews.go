package storage

import (
	"errors"
	"fmt"

	"skillswap/backend/internal/apperrors"
	"skillswap/backend/internal/models"

	"gorm.io/gorm"
)

func (s *Service) CreateReview(review *models.Review) error {
	if err := s.DB.Create(review).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("user %s already reviewed %s: %w",
				review.AuthorID, review.TargetID, apperrors.ErrConflict)
		}
		return err
	}
	return nil
}

func (s *Service) GetReviewByID(id uint) (*models.Review, error) {
	var review models.Review
	err := s.DB.First(&review, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("review %d: %w", id, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (s *Service) DeleteReview(id uint) error {
	return s.DB.Delete(&models.Review{}, id).Error
}

func (s *Service) ListReviewsForTarget(targetID string) ([]models.Review, error) {
	var reviews []models.Review
	err := s.DB.Where("target_id = ?", targetID).
		Order("created_at desc").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

// GetReviewStats recomputes the aggregate on read. The average of zero
// reviews is 0.
func (s *Service) GetReviewStats(targetID string) (float64, int64, error) {
	var stats struct {
		Avg   float64
		Count int64
	}
	err := s.DB.Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
		Where("target_id = ?", targetID).
		Scan(&stats).Error
	if err != nil {
		return 0, 0, err
	}
	return stats.Avg, stats.Count, nil
}
