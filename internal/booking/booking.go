// Package booking implements the session request lifecycle:
//
//	pending  -> accepted | rejected | cancelled
//	accepted -> completed | cancelled
//
// Accepting a request books its slot; both writes happen in one storage
// transaction so a partial flip is never observable.
package booking

import (
	"fmt"
	"strings"
	"time"

	"skillswap/backend/internal/apperrors"
	"skillswap/backend/internal/config"
	"skillswap/backend/internal/models"

	"go.uber.org/zap"
)

type Store interface {
	CreateSessionRequest(req *models.SessionRequest) error
	GetSessionRequest(id uint) (*models.SessionRequest, error)
	AcceptSessionRequest(req *models.SessionRequest) error
	UpdateSessionStatus(id uint, from, to string) error
	CancelSessionRequest(req *models.SessionRequest) error
	ListMentorRequests(mentorID string, statuses []string) ([]models.SessionRequest, error)
	ListGuestRequests(guestID string, statuses []string) ([]models.SessionRequest, error)
	ListUserRequests(userID string, statuses []string) ([]models.SessionRequest, error)
}

// Notifier receives booking events for the operations channel. Implementations
// must tolerate being called from request handlers and never block on errors.
type Notifier interface {
	SessionRequested(req *models.SessionRequest)
	SessionAccepted(req *models.SessionRequest)
	SessionCancelled(req *models.SessionRequest)
}

type Service struct {
	store    Store
	notifier Notifier
	logger   *zap.Logger
	now      func() time.Time
}

func NewService(store Store, notifier Notifier, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, notifier: notifier, logger: logger, now: time.Now}
}

// CreateInput carries everything a guest submits when requesting a session.
type CreateInput struct {
	MentorID        string
	GuestID         string
	AvailabilityID  uint
	Title           string
	Description     string
	DurationMinutes int
}

// CreateRequest validates the input and creates a pending request against an
// unbooked slot. The slot existence, ownership and single-active-request
// checks run inside the storage transaction.
func (s *Service) CreateRequest(in CreateInput) (*models.SessionRequest, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("title is required: %w", apperrors.ErrValidation)
	}
	if in.DurationMinutes < config.MinSessionMinutes || in.DurationMinutes > config.MaxSessionMinutes {
		return nil, fmt.Errorf("duration must be between %d and %d minutes: %w",
			config.MinSessionMinutes, config.MaxSessionMinutes, apperrors.ErrValidation)
	}
	if in.MentorID == in.GuestID {
		return nil, fmt.Errorf("cannot request a session with yourself: %w", apperrors.ErrValidation)
	}

	req := &models.SessionRequest{
		MentorID:        in.MentorID,
		GuestID:         in.GuestID,
		AvailabilityID:  in.AvailabilityID,
		Title:           strings.TrimSpace(in.Title),
		Description:     in.Description,
		DurationMinutes: in.DurationMinutes,
	}
	if err := s.store.CreateSessionRequest(req); err != nil {
		return nil, err
	}

	s.logger.Info("session request created",
		zap.Uint("request_id", req.ID),
		zap.String("guest_id", req.GuestID),
		zap.Uint("slot_id", req.AvailabilityID))
	if s.notifier != nil {
		s.notifier.SessionRequested(req)
	}
	return req, nil
}

// AcceptRequest transitions pending -> accepted and books the slot. Only the
// target mentor may accept.
func (s *Service) AcceptRequest(requestID uint, mentorID string) (*models.SessionRequest, error) {
	req, err := s.store.GetSessionRequest(requestID)
	if err != nil {
		return nil, err
	}
	if req.MentorID != mentorID {
		return nil, fmt.Errorf("request %d is not addressed to caller: %w",
			requestID, apperrors.ErrAuthorization)
	}
	if err := s.store.AcceptSessionRequest(req); err != nil {
		return nil, err
	}
	if s.notifier != nil {
		s.notifier.SessionAccepted(req)
	}
	return req, nil
}

// RejectRequest transitions pending -> rejected. The slot stays unbooked.
func (s *Service) RejectRequest(requestID uint, mentorID string) (*models.SessionRequest, error) {
	req, err := s.store.GetSessionRequest(requestID)
	if err != nil {
		return nil, err
	}
	if req.MentorID != mentorID {
		return nil, fmt.Errorf("request %d is not addressed to caller: %w",
			requestID, apperrors.ErrAuthorization)
	}
	if err := s.store.UpdateSessionStatus(requestID, models.SessionPending, models.SessionRejected); err != nil {
		return nil, err
	}
	req.Status = models.SessionRejected
	return req, nil
}

// CancelRequest cancels a pending or accepted request. Either party may
// cancel; cancelling an accepted request releases the slot.
func (s *Service) CancelRequest(requestID uint, userID string) (*models.SessionRequest, error) {
	req, err := s.store.GetSessionRequest(requestID)
	if err != nil {
		return nil, err
	}
	if req.MentorID != userID && req.GuestID != userID {
		return nil, fmt.Errorf("caller is not a party of request %d: %w",
			requestID, apperrors.ErrAuthorization)
	}
	if req.IsTerminal() {
		return nil, fmt.Errorf("request %d is already %s: %w", requestID, req.Status, apperrors.ErrState)
	}
	if err := s.store.CancelSessionRequest(req); err != nil {
		return nil, err
	}
	if s.notifier != nil {
		s.notifier.SessionCancelled(req)
	}
	return req, nil
}

// CompleteRequest marks an accepted session as completed once its end time
// has passed. Mentor only; the slot stays booked, the time was consumed.
func (s *Service) CompleteRequest(requestID uint, mentorID string) (*models.SessionRequest, error) {
	req, err := s.store.GetSessionRequest(requestID)
	if err != nil {
		return nil, err
	}
	if req.MentorID != mentorID {
		return nil, fmt.Errorf("request %d is not addressed to caller: %w",
			requestID, apperrors.ErrAuthorization)
	}
	if req.Status != models.SessionAccepted {
		return nil, fmt.Errorf("request %d is not accepted: %w", requestID, apperrors.ErrState)
	}
	if s.now().Before(req.EndAt) {
		return nil, fmt.Errorf("session %d has not ended yet: %w", requestID, apperrors.ErrState)
	}
	if err := s.store.UpdateSessionStatus(requestID, models.SessionAccepted, models.SessionCompleted); err != nil {
		return nil, err
	}
	req.Status = models.SessionCompleted
	return req, nil
}

// GetPendingRequests lists a mentor's inbox, newest first.
func (s *Service) GetPendingRequests(mentorID string) ([]models.SessionRequest, error) {
	return s.store.ListMentorRequests(mentorID, []string{models.SessionPending})
}

// GetSentRequests lists everything the user requested as a guest.
func (s *Service) GetSentRequests(guestID string) ([]models.SessionRequest, error) {
	return s.store.ListGuestRequests(guestID, nil)
}

// GetReceivedRequests lists everything addressed to the user as a mentor.
func (s *Service) GetReceivedRequests(mentorID string) ([]models.SessionRequest, error) {
	return s.store.ListMentorRequests(mentorID, nil)
}

// GetAcceptedRequests lists accepted sessions the user participates in,
// on either side.
func (s *Service) GetAcceptedRequests(userID string) ([]models.SessionRequest, error) {
	return s.store.ListUserRequests(userID, []string{models.SessionAccepted})
}
