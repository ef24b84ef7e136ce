package storage

import (
	"errors"
	"fmt"

	"skillswap/backend/internal/apperrors"
	"skillswap/backend/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var activeSessionStatuses = []string{models.SessionPending, models.SessionAccepted}

// CreateSessionRequest creates a pending request against an unbooked slot.
// The slot row is locked for the duration of the transaction so that two
// concurrent requests against the same slot serialize; the loser sees the
// winner's active request and fails with a conflict.
func (s *Service) CreateSessionRequest(req *models.SessionRequest) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var slot models.AvailabilitySlot
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&slot, req.AvailabilityID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("availability slot %d: %w", req.AvailabilityID, apperrors.ErrNotFound)
		}
		if err != nil {
			return err
		}

		if slot.MentorID != req.MentorID {
			return fmt.Errorf("slot %d does not belong to mentor %s: %w",
				slot.ID, req.MentorID, apperrors.ErrConflict)
		}
		if slot.IsBooked {
			return fmt.Errorf("slot %d is already booked: %w", slot.ID, apperrors.ErrConflict)
		}

		var active int64
		err = tx.Model(&models.SessionRequest{}).
			Where("availability_id = ? AND status IN ?", req.AvailabilityID, activeSessionStatuses).
			Count(&active).Error
		if err != nil {
			return err
		}
		if active > 0 {
			return fmt.Errorf("slot %d already has an active request: %w",
				slot.ID, apperrors.ErrConflict)
		}

		req.Status = models.SessionPending
		req.StartAt = slot.StartTime
		req.EndAt = slot.EndTime
		return tx.Create(req).Error
	})
}

func (s *Service) GetSessionRequest(id uint) (*models.SessionRequest, error) {
	var req models.SessionRequest
	err := s.DB.First(&req, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("session request %d: %w", id, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// AcceptSessionRequest flips the request to accepted and the slot to booked in
// one transaction. Both updates carry their state predicate, so a concurrent
// accept of another request against the same slot loses on RowsAffected and
// the whole transaction rolls back.
func (s *Service) AcceptSessionRequest(req *models.SessionRequest) error {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.SessionRequest{}).
			Where("id = ? AND status = ?", req.ID, models.SessionPending).
			Update("status", models.SessionAccepted)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("request %d is not pending: %w", req.ID, apperrors.ErrState)
		}

		res = tx.Model(&models.AvailabilitySlot{}).
			Where("id = ? AND is_booked = ?", req.AvailabilityID, false).
			Update("is_booked", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("slot %d is already booked: %w",
				req.AvailabilityID, apperrors.ErrConflict)
		}
		return nil
	})
	if err != nil {
		return err
	}
	req.Status = models.SessionAccepted
	s.Logger.Info("session request accepted",
		zap.Uint("request_id", req.ID), zap.Uint("slot_id", req.AvailabilityID))
	return nil
}

// UpdateSessionStatus performs a guarded single-state transition. It fails
// with a state error when the request is no longer in the expected state.
func (s *Service) UpdateSessionStatus(id uint, from, to string) error {
	res := s.DB.Model(&models.SessionRequest{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("request %d is not %s: %w", id, from, apperrors.ErrState)
	}
	return nil
}

// cancelDisposition decides a cancel from the request row as it stands right
// now: terminal rows refuse, and only an accepted cancel releases the slot.
// The caller's copy of the row may predate a concurrent accept, so the
// decision must come from the row read under lock, never from the copy.
func cancelDisposition(current *models.SessionRequest) (releaseSlot bool, err error) {
	if current.IsTerminal() {
		return false, fmt.Errorf("request %d is already %s: %w",
			current.ID, current.Status, apperrors.ErrState)
	}
	return current.Status == models.SessionAccepted, nil
}

// CancelSessionRequest cancels a pending or accepted request. The row is
// re-read under a row lock so an accept committing between the caller's read
// and the cancel still gets its slot released; cancelling an accepted request
// releases the slot in the same transaction.
func (s *Service) CancelSessionRequest(req *models.SessionRequest) error {
	var releaseSlot bool
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var current models.SessionRequest
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&current, req.ID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("session request %d: %w", req.ID, apperrors.ErrNotFound)
		}
		if err != nil {
			return err
		}

		releaseSlot, err = cancelDisposition(&current)
		if err != nil {
			return err
		}

		if err := tx.Model(&models.SessionRequest{}).
			Where("id = ?", current.ID).
			Update("status", models.SessionCancelled).Error; err != nil {
			return err
		}
		if releaseSlot {
			if err := tx.Model(&models.AvailabilitySlot{}).
				Where("id = ?", current.AvailabilityID).
				Update("is_booked", false).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	req.Status = models.SessionCancelled
	if releaseSlot {
		s.Logger.Info("accepted session cancelled, slot released",
			zap.Uint("request_id", req.ID), zap.Uint("slot_id", req.AvailabilityID))
	}
	return nil
}

func (s *Service) ListMentorRequests(mentorID string, statuses []string) ([]models.SessionRequest, error) {
	return s.listRequests(s.DB.Where("mentor_id = ?", mentorID), statuses)
}

func (s *Service) ListGuestRequests(guestID string, statuses []string) ([]models.SessionRequest, error) {
	return s.listRequests(s.DB.Where("guest_id = ?", guestID), statuses)
}

func (s *Service) ListUserRequests(userID string, statuses []string) ([]models.SessionRequest, error) {
	return s.listRequests(s.DB.Where("mentor_id = ? OR guest_id = ?", userID, userID), statuses)
}

func (s *Service) listRequests(q *gorm.DB, statuses []string) ([]models.SessionRequest, error) {
	var requests []models.SessionRequest
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}
	if err := q.Order("created_at desc").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}
