package services

import (
	"strings"
	"time"

	"conference-review-api/models"

	"gorm.io/gorm"
)

// DiscussionService owns the two append-only message logs scoped to a
// submission: the committee-internal discussion thread and the author
// rebuttal log. Role checks live at the API boundary, not here.
type DiscussionService struct {
	db *gorm.DB
}

func NewDiscussionService(db *gorm.DB) *DiscussionService {
	return &DiscussionService{db: db}
}

// PostDiscussion appends one message to the submission's internal thread.
func (s *DiscussionService) PostDiscussion(userID int, submissionID string, conferenceID *int, message string) (*models.DiscussionMessage, error) {
	submissionID, message, err := validateMessage(userID, submissionID, message)
	if err != nil {
		return nil, err
	}

	msg := models.DiscussionMessage{
		SubmissionID: submissionID,
		ConferenceID: conferenceID,
		UserID:       userID,
		Message:      message,
		CreateAt:     time.Now(),
	}
	if err := s.db.Create(&msg).Error; err != nil {
		return nil, unavailableErr("post discussion", err)
	}
	return &msg, nil
}

// ListDiscussions returns the thread oldest first (chronological reading order).
func (s *DiscussionService) ListDiscussions(submissionID string, page, limit int) ([]models.DiscussionMessage, int64, error) {
	offset, limit := pageWindow(page, limit)

	var total int64
	if err := s.db.Model(&models.DiscussionMessage{}).
		Where("submission_id = ?", submissionID).
		Count(&total).Error; err != nil {
		return nil, 0, unavailableErr("count discussion", err)
	}

	messages := []models.DiscussionMessage{}
	if err := s.db.Where("submission_id = ?", submissionID).
		Order("create_at ASC, message_id ASC").
		Offset(offset).Limit(limit).
		Find(&messages).Error; err != nil {
		return nil, 0, unavailableErr("list discussion", err)
	}
	return messages, total, nil
}

// PostRebuttal appends one author response. No decision-status precondition
// is enforced here.
func (s *DiscussionService) PostRebuttal(authorID int, submissionID string, conferenceID *int, message string) (*models.RebuttalMessage, error) {
	submissionID, message, err := validateMessage(authorID, submissionID, message)
	if err != nil {
		return nil, err
	}

	msg := models.RebuttalMessage{
		SubmissionID: submissionID,
		AuthorID:     authorID,
		ConferenceID: conferenceID,
		Message:      message,
		CreateAt:     time.Now(),
	}
	if err := s.db.Create(&msg).Error; err != nil {
		return nil, unavailableErr("post rebuttal", err)
	}
	return &msg, nil
}

// ListRebuttals returns every rebuttal on the submission, oldest first.
func (s *DiscussionService) ListRebuttals(submissionID string) ([]models.RebuttalMessage, error) {
	messages := []models.RebuttalMessage{}
	if err := s.db.Where("submission_id = ?", submissionID).
		Order("create_at ASC, message_id ASC").
		Find(&messages).Error; err != nil {
		return nil, unavailableErr("list rebuttals", err)
	}
	return messages, nil
}

func validateMessage(userID int, submissionID, message string) (string, string, error) {
	if userID <= 0 {
		return "", "", invalidArgumentErr("user id %d is not a valid identity", userID)
	}
	submissionID = strings.TrimSpace(submissionID)
	if submissionID == "" {
		return "", "", invalidArgumentErr("submission id is required")
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return "", "", invalidArgumentErr("message must not be empty")
	}
	return submissionID, message, nil
}
