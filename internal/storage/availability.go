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

func (s *Service) CreateSlot(slot *models.AvailabilitySlot) error {
	if err := s.DB.Create(slot).Error; err != nil {
		s.Logger.Error("failed to create availability slot",
			zap.String("mentor_id", slot.MentorID), zap.Error(err))
		return err
	}
	return nil
}

func (s *Service) GetSlotByID(id uint) (*models.AvailabilitySlot, error) {
	var slot models.AvailabilitySlot
	err := s.DB.First(&slot, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("availability slot %d: %w", id, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

// ListSlots returns a mentor's slots in chronological order. Booked slots are
// included only when asked for.
func (s *Service) ListSlots(mentorID string, includeBooked bool) ([]models.AvailabilitySlot, error) {
	var slots []models.AvailabilitySlot
	q := s.DB.Where("mentor_id = ?", mentorID)
	if !includeBooked {
		q = q.Where("is_booked = ?", false)
	}
	if err := q.Order("date asc, start_time asc").Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

// CountOverlappingSlots counts existing slots of the mentor on the same date
// whose [start, end) interval intersects the given one. Touching endpoints do
// not count as overlap.
func (s *Service) CountOverlappingSlots(mentorID string, date, start, end time.Time) (int64, error) {
	var count int64
	err := s.DB.Model(&models.AvailabilitySlot{}).
		Where("mentor_id = ? AND date = ?", mentorID, date).
		Where("start_time < ? AND end_time > ?", end, start).
		Count(&count).Error
	return count, err
}

func (s *Service) DeleteSlot(id uint) error {
	return s.DB.Delete(&models.AvailabilitySlot{}, id).Error
}
