package models

import "time"

// DecisionValue is the chair's binding outcome for a submission.
type DecisionValue string

const (
	DecisionAccept     DecisionValue = "accept"
	DecisionReject     DecisionValue = "reject"
	DecisionBorderline DecisionValue = "borderline"
)

// Valid reports whether the value is a known decision.
func (d DecisionValue) Valid() bool {
	switch d {
	case DecisionAccept, DecisionReject, DecisionBorderline:
		return true
	}
	return false
}

// Decision is the single binding outcome for a submission. Later calls
// overwrite the existing row rather than adding a second one.
type Decision struct {
	DecisionID   int           `gorm:"primaryKey;column:decision_id" json:"decision_id"`
	SubmissionID string        `gorm:"column:submission_id;size:64;uniqueIndex:uq_decision_submission" json:"submission_id"`
	ConferenceID *int          `gorm:"column:conference_id" json:"conference_id,omitempty"`
	Decision     DecisionValue `gorm:"column:decision;size:20" json:"decision"`
	DecidedBy    int           `gorm:"column:decided_by" json:"decided_by"`
	Note         *string       `gorm:"column:note" json:"note,omitempty"`
	DecidedAt    time.Time     `gorm:"column:decided_at" json:"decided_at"`
}

// TableName specifies the table name for Decision.
func (Decision) TableName() string {
	return "decisions"
}
