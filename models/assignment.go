package models

import "time"

// AssignmentStatus is the lifecycle state of a reviewer/submission pairing.
type AssignmentStatus string

const (
	AssignmentPending   AssignmentStatus = "pending"
	AssignmentAccepted  AssignmentStatus = "accepted"
	AssignmentRejected  AssignmentStatus = "rejected"
	AssignmentCompleted AssignmentStatus = "completed"
)

// Valid reports whether the status is one of the known lifecycle states.
func (s AssignmentStatus) Valid() bool {
	switch s {
	case AssignmentPending, AssignmentAccepted, AssignmentRejected, AssignmentCompleted:
		return true
	}
	return false
}

// Assignment pairs one reviewer with one submission. At most one row exists
// per (reviewer_id, submission_id); rows are never deleted.
type Assignment struct {
	AssignmentID int              `gorm:"primaryKey;column:assignment_id" json:"assignment_id"`
	ReviewerID   int              `gorm:"column:reviewer_id;uniqueIndex:uq_assignment_pair" json:"reviewer_id"`
	SubmissionID string           `gorm:"column:submission_id;size:64;uniqueIndex:uq_assignment_pair" json:"submission_id"`
	ConferenceID *int             `gorm:"column:conference_id" json:"conference_id,omitempty"`
	Status       AssignmentStatus `gorm:"column:status;size:20" json:"status"`
	AssignedBy   int              `gorm:"column:assigned_by" json:"assigned_by"`
	DueDate      *time.Time       `gorm:"column:due_date" json:"due_date,omitempty"`
	CreateAt     time.Time        `gorm:"column:create_at" json:"create_at"`
	UpdateAt     time.Time        `gorm:"column:update_at" json:"update_at"`

	// Relations
	Reviewer *User `gorm:"foreignKey:ReviewerID" json:"reviewer,omitempty"`
}

// TableName specifies the table name for Assignment.
func (Assignment) TableName() string {
	return "assignments"
}
