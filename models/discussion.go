package models

import "time"

// DiscussionMessage is one entry in the committee-internal thread for a
// submission. Append-only.
type DiscussionMessage struct {
	MessageID    int       `gorm:"primaryKey;column:message_id" json:"message_id"`
	SubmissionID string    `gorm:"column:submission_id;size:64;index" json:"submission_id"`
	ConferenceID *int      `gorm:"column:conference_id" json:"conference_id,omitempty"`
	UserID       int       `gorm:"column:user_id" json:"user_id"`
	Message      string    `gorm:"column:message" json:"message"`
	CreateAt     time.Time `gorm:"column:create_at" json:"create_at"`

	// Relations
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName specifies the table name for DiscussionMessage.
func (DiscussionMessage) TableName() string {
	return "discussion_messages"
}

// RebuttalMessage is an author's response to reviewer feedback. Append-only.
type RebuttalMessage struct {
	MessageID    int       `gorm:"primaryKey;column:message_id" json:"message_id"`
	SubmissionID string    `gorm:"column:submission_id;size:64;index" json:"submission_id"`
	AuthorID     int       `gorm:"column:author_id" json:"author_id"`
	ConferenceID *int      `gorm:"column:conference_id" json:"conference_id,omitempty"`
	Message      string    `gorm:"column:message" json:"message"`
	CreateAt     time.Time `gorm:"column:create_at" json:"create_at"`
}

// TableName specifies the table name for RebuttalMessage.
func (RebuttalMessage) TableName() string {
	return "rebuttal_messages"
}
