package storage

import (
	"errors"
	"fmt"

	"skillswap/backend/internal/apperrors"
	"skillswap/backend/internal/models"

	"gorm.io/gorm"
)

var activeMatchStatuses = []string{models.MatchPending, models.MatchAccepted}

func (s *Service) CreateMatchRequest(match *models.MatchRequest) error {
	return s.DB.Create(match).Error
}

func (s *Service) GetMatchRequest(id uint) (*models.MatchRequest, error) {
	var match models.MatchRequest
	err := s.DB.First(&match, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("match request %d: %w", id, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &match, nil
}

// FindActiveMatch returns the pending or accepted match for the exact
// (sender, receiver, skill) triple, or nil when there is none.
func (s *Service) FindActiveMatch(senderID, receiverID, skill string) (*models.MatchRequest, error) {
	var match models.MatchRequest
	err := s.DB.
		Where("sender_id = ? AND receiver_id = ? AND skill = ?", senderID, receiverID, skill).
		Where("status IN ?", activeMatchStatuses).
		First(&match).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &match, nil
}

// UpdateMatchStatus performs a guarded state transition, same discipline as
// session requests.
func (s *Service) UpdateMatchStatus(id uint, from, to string) error {
	res := s.DB.Model(&models.MatchRequest{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("match %d is not %s: %w", id, from, apperrors.ErrState)
	}
	return nil
}

func (s *Service) ListMatchesBySender(senderID string, statuses []string) ([]models.MatchRequest, error) {
	return s.listMatches(s.DB.Where("sender_id = ?", senderID), statuses)
}

func (s *Service) ListMatchesByReceiver(receiverID string, statuses []string) ([]models.MatchRequest, error) {
	return s.listMatches(s.DB.Where("receiver_id = ?", receiverID), statuses)
}

func (s *Service) ListMatchesForUser(userID string, statuses []string) ([]models.MatchRequest, error) {
	return s.listMatches(s.DB.Where("sender_id = ? OR receiver_id = ?", userID, userID), statuses)
}

func (s *Service) listMatches(q *gorm.DB, statuses []string) ([]models.MatchRequest, error) {
	var matches []models.MatchRequest
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}
	if err := q.Order("created_at desc").Find(&matches).Error; err != nil {
		return nil, err
	}
	return matches, nil
}
