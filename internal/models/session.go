package models

import (
	"time"

	"gorm.io/gorm"
)

// Session request lifecycle:
//
//	pending  -> accepted | rejected | cancelled
//	accepted -> completed | cancelled
//
// rejected, cancelled and completed are terminal.
const (
	SessionPending   = "pending"
	SessionAccepted  = "accepted"
	SessionRejected  = "rejected"
	SessionCancelled = "cancelled"
	SessionCompleted = "completed"
)

// SessionRequest is a guest's proposal to book a specific availability slot.
// At most one request per slot may be in a non-terminal state at a time.
type SessionRequest struct {
	gorm.Model
	MentorID        string    `gorm:"type:text;not null;index" json:"mentor_id"`
	GuestID         string    `gorm:"type:text;not null;index" json:"guest_id"`
	AvailabilityID  uint      `gorm:"not null;index" json:"availability_id"`
	Title           string    `gorm:"type:text;not null" json:"title"`
	Description     string    `gorm:"type:text" json:"description"`
	DurationMinutes int       `gorm:"not null" json:"duration_minutes"`
	Status          string    `gorm:"type:text;not null;default:'pending';index" json:"status"`
	StartAt         time.Time `json:"start_at"`
	EndAt           time.Time `json:"end_at"`
}

// IsTerminal reports whether no further transitions are allowed.
func (r *SessionRequest) IsTerminal() bool {
	return r.Status != SessionPending && r.Status != SessionAccepted
}
