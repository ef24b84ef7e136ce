package models

import (
	"time"

	"gorm.io/gorm"
)

// AvailabilitySlot is a mentor-declared open time interval. A slot transitions
// unbooked -> booked at most once, and only when a session request against it
// is accepted. A booked slot cannot be deleted.
type AvailabilitySlot struct {
	gorm.Model
	MentorID  string    `gorm:"type:text;not null;index" json:"mentor_id"`
	Date      time.Time `gorm:"not null" json:"date"`
	StartTime time.Time `gorm:"not null" json:"start_time"`
	EndTime   time.Time `gorm:"not null" json:"end_time"`
	IsBooked  bool      `gorm:"default:false" json:"is_booked"`
}
