package models

import "gorm.io/gorm"

// Match request lifecycle mirrors the session lifecycle without a slot to
// release: pending -> accepted | rejected | cancelled, accepted -> cancelled.
const (
	MatchPending   = "pending"
	MatchAccepted  = "accepted"
	MatchRejected  = "rejected"
	MatchCancelled = "cancelled"
)

// MatchRequest is a directional proposal to exchange one skill. While a
// request for (sender, receiver, skill) is pending or accepted, no duplicate
// may be created.
type MatchRequest struct {
	gorm.Model
	SenderID   string `gorm:"type:text;not null;index" json:"sender_id"`
	ReceiverID string `gorm:"type:text;not null;index" json:"receiver_id"`
	Skill      string `gorm:"type:text;not null" json:"skill"`
	Status     string `gorm:"type:text;not null;default:'pending';index" json:"status"`
}

// IsActive reports whether the request still blocks duplicates.
func (m *MatchRequest) IsActive() bool {
	return m.Status == MatchPending || m.Status == MatchAccepted
}

// PotentialMatch is a computed candidate, not a stored row.
type PotentialMatch struct {
	User         PublicProfile `json:"user"`
	SharedSkills []string      `json:"shared_skills"`
	OverlapCount int           `json:"overlap_count"`
	TheyCanTeach []string      `json:"they_can_teach"`
	YouCanTeach  []string      `json:"you_can_teach"`
}
