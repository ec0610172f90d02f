package services

import (
	"fmt"
	"log"
	"time"

	"conference-review-api/config"
	"conference-review-api/models"

	"gorm.io/gorm"
)

// NotificationService fans workflow events out to in-app notifications and
// best-effort email. Delivery failures are logged, never surfaced: the
// workflow operation that triggered the event has already committed.
type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

// NotifyAssignmentCreated tells the reviewer about a new pairing.
func (s *NotificationService) NotifyAssignmentCreated(assignment *models.Assignment) {
	title := "New review assignment"
	message := fmt.Sprintf("You have been assigned to review submission %s", assignment.SubmissionID)
	if assignment.DueDate != nil {
		message = fmt.Sprintf("%s (due %s)", message, assignment.DueDate.Format("2006-01-02"))
	}
	s.notify(assignment.ReviewerID, title, message, assignment.SubmissionID)
}

// NotifyDecisionRecorded tells every reviewer assigned to the submission
// that the chair recorded an outcome.
func (s *NotificationService) NotifyDecisionRecorded(decision *models.Decision) {
	var reviewerIDs []int
	if err := s.db.Model(&models.Assignment{}).
		Where("submission_id = ?", decision.SubmissionID).
		Pluck("reviewer_id", &reviewerIDs).Error; err != nil {
		log.Printf("notification: failed to resolve reviewers for submission %s: %v",
			decision.SubmissionID, err)
		return
	}

	title := "Decision recorded"
	message := fmt.Sprintf("Submission %s was marked %s", decision.SubmissionID, decision.Decision)
	for _, reviewerID := range reviewerIDs {
		s.notify(reviewerID, title, message, decision.SubmissionID)
	}
}

// ListForUser returns the user's notifications, newest first.
func (s *NotificationService) ListForUser(userID, page, limit int) ([]models.Notification, int64, error) {
	offset, limit := pageWindow(page, limit)

	var total int64
	if err := s.db.Model(&models.Notification{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, unavailableErr("count notifications", err)
	}

	notifications := []models.Notification{}
	if err := s.db.Where("user_id = ?", userID).
		Order("create_at DESC, notification_id DESC").
		Offset(offset).Limit(limit).
		Find(&notifications).Error; err != nil {
		return nil, 0, unavailableErr("list notifications", err)
	}
	return notifications, total, nil
}

// MarkRead flags one of the user's notifications as read.
func (s *NotificationService) MarkRead(userID, notificationID int) error {
	now := time.Now()
	res := s.db.Model(&models.Notification{}).
		Where("notification_id = ? AND user_id = ?", notificationID, userID).
		Updates(map[string]interface{}{
			"is_read":   true,
			"update_at": now,
		})
	if res.Error != nil {
		return unavailableErr("mark notification read", res.Error)
	}
	if res.RowsAffected == 0 {
		return notFoundErr("notification %d not found for user %d", notificationID, userID)
	}
	return nil
}

func (s *NotificationService) notify(userID int, title, message, submissionID string) {
	notification := models.Notification{
		UserID:              userID,
		Title:               title,
		Message:             message,
		Type:                "info",
		RelatedSubmissionID: &submissionID,
		CreateAt:            time.Now(),
	}
	if err := s.db.Create(&notification).Error; err != nil {
		log.Printf("notification: failed to store for user %d: %v", userID, err)
	}

	var user models.User
	if err := s.db.Where("user_id = ? AND delete_at IS NULL", userID).First(&user).Error; err != nil {
		return
	}
	if user.Email == "" {
		return
	}

	go func(to, subject, body string) {
		html := fmt.Sprintf("<p>%s</p>", body)
		if err := config.SendMail([]string{to}, subject, html); err != nil {
			log.Printf("notification: mail to %s failed: %v", to, err)
		}
	}(user.Email, title, message)
}
