package services

import (
	"errors"
	"strings"
	"time"

	"conference-review-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReviewSummary aggregates the reviews recorded for one submission.
// Zero reviews is a valid summary, not an error; AverageScore is nil then.
type ReviewSummary struct {
	SubmissionID         string                              `json:"submission_id"`
	ReviewCount          int                                 `json:"review_count"`
	AverageScore         *float64                            `json:"average_score,omitempty"`
	RecommendationCounts map[models.ReviewRecommendation]int `json:"recommendation_counts"`
	Decision             *models.Decision                    `json:"decision,omitempty"`
}

// DecisionService computes per-submission review statistics and records the
// chair's binding outcome.
type DecisionService struct {
	db *gorm.DB
}

func NewDecisionService(db *gorm.DB) *DecisionService {
	return &DecisionService{db: db}
}

// ComputeSummary is a pure read over the reviews reachable through the
// submission's assignments, plus the decision if one exists.
func (s *DecisionService) ComputeSummary(submissionID string) (*ReviewSummary, error) {
	summary := &ReviewSummary{
		SubmissionID:         submissionID,
		RecommendationCounts: map[models.ReviewRecommendation]int{},
	}

	var ids []int
	if err := s.db.Model(&models.Assignment{}).
		Where("submission_id = ?", submissionID).
		Pluck("assignment_id", &ids).Error; err != nil {
		return nil, unavailableErr("resolve assignments", err)
	}

	if len(ids) > 0 {
		var reviews []models.Review
		if err := s.db.Where("assignment_id IN ?", ids).Find(&reviews).Error; err != nil {
			return nil, unavailableErr("load reviews", err)
		}

		if len(reviews) > 0 {
			sum := 0
			for _, r := range reviews {
				sum += r.Score
				summary.RecommendationCounts[r.Recommendation]++
			}
			avg := float64(sum) / float64(len(reviews))
			summary.ReviewCount = len(reviews)
			summary.AverageScore = &avg
		}
	}

	decision, err := s.GetDecision(submissionID)
	if err != nil && KindOf(err) != KindNotFound {
		return nil, err
	}
	summary.Decision = decision
	return summary, nil
}

// GetDecision returns the submission's decision, or a not-found error.
func (s *DecisionService) GetDecision(submissionID string) (*models.Decision, error) {
	var decision models.Decision
	if err := s.db.Where("submission_id = ?", submissionID).First(&decision).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundErr("no decision recorded for submission %s", submissionID)
		}
		return nil, unavailableErr("load decision", err)
	}
	return &decision, nil
}

// UpsertDecision records or overwrites the single decision for a submission.
// The write is an atomic upsert keyed on the submission_id unique index, so
// two concurrent chairs cannot leave two rows. No review-completeness
// precondition is enforced: a chair may decide with zero reviews.
func (s *DecisionService) UpsertDecision(submissionID string, chairID int, value models.DecisionValue, conferenceID *int, note *string) (*models.Decision, error) {
	if chairID <= 0 {
		return nil, invalidArgumentErr("chair id %d is not a valid identity", chairID)
	}
	submissionID = strings.TrimSpace(submissionID)
	if submissionID == "" {
		return nil, invalidArgumentErr("submission id is required")
	}
	if !value.Valid() {
		return nil, invalidArgumentErr("unknown decision %q", value)
	}

	now := time.Now()
	decision := models.Decision{
		SubmissionID: submissionID,
		ConferenceID: conferenceID,
		Decision:     value,
		DecidedBy:    chairID,
		Note:         note,
		DecidedAt:    now,
	}

	err := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "submission_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"decision":   value,
			"decided_by": chairID,
			"note":       note,
			"decided_at": now,
		}),
	}).Create(&decision).Error
	if err != nil {
		return nil, unavailableErr("record decision", err)
	}

	var saved models.Decision
	if err := s.db.Where("submission_id = ?", submissionID).First(&saved).Error; err != nil {
		return nil, unavailableErr("load decision", err)
	}
	return &saved, nil
}
