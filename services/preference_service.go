package services

import (
	"strings"
	"time"

	"conference-review-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PreferenceService owns reviewer bids, including conflict-of-interest
// declarations. It has no dependency on the other workflow services.
type PreferenceService struct {
	db *gorm.DB
}

func NewPreferenceService(db *gorm.DB) *PreferenceService {
	return &PreferenceService{db: db}
}

// SubmitBid records a reviewer's interest level for a submission. A repeat
// bid for the same pair overwrites the existing row in place; the write is a
// single storage-level upsert keyed on the (reviewer_id, submission_id)
// unique index, so concurrent bids cannot produce two rows.
func (s *PreferenceService) SubmitBid(reviewerID int, submissionID string, conferenceID *int, level models.PreferenceLevel) (*models.Preference, error) {
	if reviewerID <= 0 {
		return nil, invalidArgumentErr("reviewer id %d is not a valid identity", reviewerID)
	}
	submissionID = strings.TrimSpace(submissionID)
	if submissionID == "" {
		return nil, invalidArgumentErr("submission id is required")
	}
	if !level.Valid() {
		return nil, invalidArgumentErr("unknown preference %q", level)
	}

	now := time.Now()
	pref := models.Preference{
		ReviewerID:   reviewerID,
		SubmissionID: submissionID,
		ConferenceID: conferenceID,
		Preference:   level,
		CreateAt:     now,
		UpdateAt:     now,
	}

	err := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "reviewer_id"}, {Name: "submission_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"preference":    level,
			"conference_id": conferenceID,
			"update_at":     now,
		}),
	}).Create(&pref).Error
	if err != nil {
		return nil, unavailableErr("submit bid", err)
	}

	var saved models.Preference
	if err := s.db.Where("reviewer_id = ? AND submission_id = ?", reviewerID, submissionID).
		First(&saved).Error; err != nil {
		return nil, unavailableErr("load bid", err)
	}
	return &saved, nil
}

// HasConflict reports whether the reviewer declared a conflict of interest
// on the submission. No bid at all means no conflict.
func (s *PreferenceService) HasConflict(reviewerID int, submissionID string) (bool, error) {
	var count int64
	err := s.db.Model(&models.Preference{}).
		Where("reviewer_id = ? AND submission_id = ? AND preference = ?",
			reviewerID, submissionID, models.PreferenceConflict).
		Count(&count).Error
	if err != nil {
		return false, unavailableErr("conflict check", err)
	}
	return count > 0, nil
}

// ListBidsForSubmission returns the bids on a submission, newest first.
func (s *PreferenceService) ListBidsForSubmission(submissionID string, page, limit int) ([]models.Preference, int64, error) {
	offset, limit := pageWindow(page, limit)

	var total int64
	if err := s.db.Model(&models.Preference{}).
		Where("submission_id = ?", submissionID).
		Count(&total).Error; err != nil {
		return nil, 0, unavailableErr("count bids", err)
	}

	prefs := []models.Preference{}
	if err := s.db.Where("submission_id = ?", submissionID).
		Order("update_at DESC, preference_id DESC").
		Offset(offset).Limit(limit).
		Find(&prefs).Error; err != nil {
		return nil, 0, unavailableErr("list bids", err)
	}
	return prefs, total, nil
}
