package models

import "time"

// Score bounds for a review, inclusive.
const (
	MinReviewScore = 0
	MaxReviewScore = 100
)

// ReviewConfidence is the reviewer's self-assessed confidence.
type ReviewConfidence string

const (
	ConfidenceLow    ReviewConfidence = "low"
	ConfidenceMedium ReviewConfidence = "medium"
	ConfidenceHigh   ReviewConfidence = "high"
)

// Valid reports whether the confidence is a known value.
func (c ReviewConfidence) Valid() bool {
	switch c {
	case ConfidenceLow, ConfidenceMedium, ConfidenceHigh:
		return true
	}
	return false
}

// ReviewRecommendation is the reviewer's verdict.
type ReviewRecommendation string

const (
	RecommendAccept     ReviewRecommendation = "accept"
	RecommendWeakAccept ReviewRecommendation = "weak_accept"
	RecommendWeakReject ReviewRecommendation = "weak_reject"
	RecommendReject     ReviewRecommendation = "reject"
)

// Valid reports whether the recommendation is a known value.
func (r ReviewRecommendation) Valid() bool {
	switch r {
	case RecommendAccept, RecommendWeakAccept, RecommendWeakReject, RecommendReject:
		return true
	}
	return false
}

// Review is a completed evaluation tied to exactly one assignment.
// Rows are written once and never updated.
type Review struct {
	ReviewID         int                  `gorm:"primaryKey;column:review_id" json:"review_id"`
	AssignmentID     int                  `gorm:"column:assignment_id;uniqueIndex:uq_review_assignment" json:"assignment_id"`
	ConferenceID     *int                 `gorm:"column:conference_id" json:"conference_id,omitempty"`
	Score            int                  `gorm:"column:score" json:"score"`
	Confidence       ReviewConfidence     `gorm:"column:confidence;size:20" json:"confidence"`
	CommentForAuthor *string              `gorm:"column:comment_for_author" json:"comment_for_author,omitempty"`
	CommentForPC     *string              `gorm:"column:comment_for_pc" json:"comment_for_pc,omitempty"`
	Recommendation   ReviewRecommendation `gorm:"column:recommendation;size:20" json:"recommendation"`
	CreateAt         time.Time            `gorm:"column:create_at" json:"create_at"`
	UpdateAt         time.Time            `gorm:"column:update_at" json:"update_at"`

	// Relations
	Assignment *Assignment `gorm:"foreignKey:AssignmentID" json:"assignment,omitempty"`
}

// TableName specifies the table name for Review.
func (Review) TableName() string {
	return "reviews"
}
