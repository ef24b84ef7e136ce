package models

import "time"

// Review is a rating left by one user about another after working together.
// One review per (author, target); the aggregate average is recomputed on
// read, never stored. Deletes are physical: the author may review the same
// target again afterwards, so no dead row may occupy the unique index.
type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	AuthorID  string    `gorm:"type:text;not null;uniqueIndex:idx_author_target" json:"author_id"`
	TargetID  string    `gorm:"type:text;not null;uniqueIndex:idx_author_target;index" json:"target_id"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   string    `gorm:"type:text" json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}
