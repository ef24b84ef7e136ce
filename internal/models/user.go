package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq" // required for pq.StringArray
	"gorm.io/gorm"
)

// User is an account in the system. A user may act as a mentor (teaching
// offered skills) and as a guest (booking sessions for wanted skills) at the
// same time; IsMentor only controls listing in the mentor directory.
type User struct {
	ID           string         `gorm:"primaryKey" json:"id"` // UUID
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"`
	Name         string         `gorm:"not null" json:"name"`
	Bio          string         `gorm:"type:text" json:"bio"`
	IsMentor     bool           `gorm:"default:false" json:"is_mentor"`
	IsActive     bool           `gorm:"default:true" json:"-"`
	Interests    pq.StringArray `gorm:"type:text[]" json:"interests"` // free-form profile tags
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"-"`
}

// BeforeCreate is a GORM hook that assigns a UUID when the ID is not set.
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}

// PublicProfile is the view of a user exposed to other users.
type PublicProfile struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Bio           string         `json:"bio"`
	IsMentor      bool           `json:"is_mentor"`
	Interests     pq.StringArray `json:"interests"`
	AverageRating float64        `json:"average_rating"`
	ReviewCount   int            `json:"review_count"`
}
