package models

import "time"

// Skill kinds. Offered skills are what a user can teach, wanted skills are
// what they are looking to learn. Matching intersects one side's offered set
// with the other side's wanted set.
const (
	SkillOffered = "offered"
	SkillWanted  = "wanted"
)

// Skill and Language rows are removed physically on delete: users re-add
// removed entries, and a soft-deleted row would keep blocking the composite
// unique index.
type Skill struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"type:text;not null;uniqueIndex:idx_user_skill" json:"user_id"`
	Name      string    `gorm:"type:text;not null;uniqueIndex:idx_user_skill" json:"name"`
	Kind      string    `gorm:"type:text;not null;uniqueIndex:idx_user_skill" json:"kind"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

// Language is a spoken language on a user's profile, with a free-form level
// string ("A2", "native", ...).
type Language struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"type:text;not null;uniqueIndex:idx_user_language" json:"user_id"`
	Name      string    `gorm:"type:text;not null;uniqueIndex:idx_user_language" json:"name"`
	Level     string    `gorm:"type:text" json:"level"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}
