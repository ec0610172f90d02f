package models

import "time"

// PreferenceLevel is a reviewer's declared interest in reviewing a submission.
type PreferenceLevel string

const (
	PreferenceInterested    PreferenceLevel = "interested"
	PreferenceMaybe         PreferenceLevel = "maybe"
	PreferenceConflict      PreferenceLevel = "conflict"
	PreferenceNotInterested PreferenceLevel = "not_interested"
)

// Valid reports whether the level is one of the known bid values.
func (p PreferenceLevel) Valid() bool {
	switch p {
	case PreferenceInterested, PreferenceMaybe, PreferenceConflict, PreferenceNotInterested:
		return true
	}
	return false
}

// Preference represents a reviewer's bid on a submission. At most one row
// exists per (reviewer_id, submission_id); re-bidding overwrites in place.
type Preference struct {
	PreferenceID int             `gorm:"primaryKey;column:preference_id" json:"preference_id"`
	ReviewerID   int             `gorm:"column:reviewer_id;uniqueIndex:uq_preference_pair" json:"reviewer_id"`
	SubmissionID string          `gorm:"column:submission_id;size:64;uniqueIndex:uq_preference_pair" json:"submission_id"`
	ConferenceID *int            `gorm:"column:conference_id" json:"conference_id,omitempty"`
	Preference   PreferenceLevel `gorm:"column:preference;size:20" json:"preference"`
	CreateAt     time.Time       `gorm:"column:create_at" json:"create_at"`
	UpdateAt     time.Time       `gorm:"column:update_at" json:"update_at"`

	// Relations
	Reviewer *User `gorm:"foreignKey:ReviewerID" json:"reviewer,omitempty"`
}

// TableName specifies the table name for Preference.
func (Preference) TableName() string {
	return "preferences"
}
