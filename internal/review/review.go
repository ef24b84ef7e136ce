// Package review captures post-session ratings. The aggregate average is a
// derived value recomputed on read, never stored.
package review

import (
	"fmt"

	"skillswap/backend/internal/apperrors"
	"skillswap/backend/internal/config"
	"skillswap/backend/internal/models"

	"go.uber.org/zap"
)

type Store interface {
	GetUserByID(id string) (*models.User, error)
	CreateReview(review *models.Review) error
	GetReviewByID(id uint) (*models.Review, error)
	DeleteReview(id uint) error
	ListReviewsForTarget(targetID string) ([]models.Review, error)
	GetReviewStats(targetID string) (float64, int64, error)
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

// TargetReviews bundles a user's reviews with the recomputed aggregate.
type TargetReviews struct {
	Reviews       []models.Review `json:"reviews"`
	AverageRating float64         `json:"average_rating"`
	ReviewCount   int64           `json:"review_count"`
}

// CreateReview records a rating about another user. One review per
// (author, target); the storage unique index backs that up.
func (s *Service) CreateReview(authorID, targetID string, rating int, comment string) (*models.Review, error) {
	if rating < config.MinRating || rating > config.MaxRating {
		return nil, fmt.Errorf("rating must be between %d and %d: %w",
			config.MinRating, config.MaxRating, apperrors.ErrValidation)
	}
	if authorID == targetID {
		return nil, fmt.Errorf("cannot review yourself: %w", apperrors.ErrValidation)
	}
	if _, err := s.store.GetUserByID(targetID); err != nil {
		return nil, err
	}

	review := &models.Review{
		AuthorID: authorID,
		TargetID: targetID,
		Rating:   rating,
		Comment:  comment,
	}
	if err := s.store.CreateReview(review); err != nil {
		return nil, err
	}
	s.logger.Info("review created",
		zap.Uint("review_id", review.ID), zap.String("target_id", targetID))
	return review, nil
}

// DeleteReview removes a review; only its author may do so.
func (s *Service) DeleteReview(reviewID uint, requesterID string) error {
	review, err := s.store.GetReviewByID(reviewID)
	if err != nil {
		return err
	}
	if review.AuthorID != requesterID {
		return fmt.Errorf("review %d does not belong to caller: %w",
			reviewID, apperrors.ErrAuthorization)
	}
	return s.store.DeleteReview(reviewID)
}

// GetTargetReviews lists a user's reviews together with the derived average.
func (s *Service) GetTargetReviews(targetID string) (*TargetReviews, error) {
	if _, err := s.store.GetUserByID(targetID); err != nil {
		return nil, err
	}
	reviews, err := s.store.ListReviewsForTarget(targetID)
	if err != nil {
		return nil, err
	}
	avg, count, err := s.store.GetReviewStats(targetID)
	if err != nil {
		return nil, err
	}
	return &TargetReviews{Reviews: reviews, AverageRating: avg, ReviewCount: count}, nil
}
