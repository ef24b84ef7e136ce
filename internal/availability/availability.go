// Package availability owns mentor-declared open time slots. The booked flag
// on a slot is flipped only by the booking lifecycle; this package creates,
// lists and deletes slots.
package availability

import (
	"fmt"
	"time"

	"skillswap/backend/internal/apperrors"
	"skillswap/backend/internal/models"

	"go.uber.org/zap"
)

// Store is the slice of the storage layer this service needs.
type Store interface {
	CreateSlot(slot *models.AvailabilitySlot) error
	GetSlotByID(id uint) (*models.AvailabilitySlot, error)
	ListSlots(mentorID string, includeBooked bool) ([]models.AvailabilitySlot, error)
	CountOverlappingSlots(mentorID string, date, start, end time.Time) (int64, error)
	DeleteSlot(id uint) error
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

// CreateAvailability declares a new unbooked slot. The interval must be
// non-empty and must not overlap another slot of the same mentor on the same
// date; touching endpoints are allowed.
func (s *Service) CreateAvailability(mentorID string, date, start, end time.Time) (*models.AvailabilitySlot, error) {
	if !start.Before(end) {
		return nil, fmt.Errorf("start time must be before end time: %w", apperrors.ErrValidation)
	}

	overlaps, err := s.store.CountOverlappingSlots(mentorID, date, start, end)
	if err != nil {
		return nil, err
	}
	if overlaps > 0 {
		return nil, fmt.Errorf("slot overlaps an existing slot: %w", apperrors.ErrValidation)
	}

	slot := &models.AvailabilitySlot{
		MentorID:  mentorID,
		Date:      date,
		StartTime: start,
		EndTime:   end,
	}
	if err := s.store.CreateSlot(slot); err != nil {
		return nil, err
	}

	s.logger.Info("availability slot created",
		zap.String("mentor_id", mentorID), zap.Uint("slot_id", slot.ID))
	return slot, nil
}

// GetMentorAvailability lists a mentor's slots in chronological order.
func (s *Service) GetMentorAvailability(mentorID string, includeBooked bool) ([]models.AvailabilitySlot, error) {
	return s.store.ListSlots(mentorID, includeBooked)
}

// DeleteAvailability removes an unbooked slot owned by the requester.
func (s *Service) DeleteAvailability(slotID uint, requesterID string) error {
	slot, err := s.store.GetSlotByID(slotID)
	if err != nil {
		return err
	}
	if slot.MentorID != requesterID {
		return fmt.Errorf("slot %d is not owned by caller: %w", slotID, apperrors.ErrAuthorization)
	}
	if slot.IsBooked {
		return fmt.Errorf("slot %d is booked and cannot be deleted: %w", slotID, apperrors.ErrConflict)
	}
	return s.store.DeleteSlot(slotID)
}
