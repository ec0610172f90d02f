package services

import (
	"errors"
	"time"

	"conference-review-api/models"

	"gorm.io/gorm"
)

// ReviewInput carries the reviewer's evaluation of one assignment.
type ReviewInput struct {
	Score            int
	Confidence       models.ReviewConfidence
	CommentForAuthor *string
	CommentForPC     *string
	Recommendation   models.ReviewRecommendation
}

// AnonymizedReview is the author-facing projection of a review: reviewer
// identity and committee-only comments stripped.
type AnonymizedReview struct {
	Score            int                         `json:"score"`
	CommentForAuthor *string                     `json:"comment_for_author,omitempty"`
	Recommendation   models.ReviewRecommendation `json:"recommendation"`
}

// ReviewService captures completed evaluations against accepted assignments.
type ReviewService struct {
	db *gorm.DB
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db}
}

// SubmitReview validates the evaluation, then applies the review insert and
// the assignment's flip to completed as one transaction. A crash or a
// concurrent reader can never observe one without the other.
func (s *ReviewService) SubmitReview(reviewerID, assignmentID int, input ReviewInput) (*models.Review, error) {
	if reviewerID <= 0 {
		return nil, invalidArgumentErr("reviewer id %d is not a valid identity", reviewerID)
	}
	if assignmentID <= 0 {
		return nil, invalidArgumentErr("assignment id %d is not valid", assignmentID)
	}
	if input.Score < models.MinReviewScore || input.Score > models.MaxReviewScore {
		return nil, invalidArgumentErr("score %d is outside the %d-%d range",
			input.Score, models.MinReviewScore, models.MaxReviewScore)
	}
	if !input.Confidence.Valid() {
		return nil, invalidArgumentErr("unknown confidence %q", input.Confidence)
	}
	if !input.Recommendation.Valid() {
		return nil, invalidArgumentErr("unknown recommendation %q", input.Recommendation)
	}

	var review models.Review
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var assignment models.Assignment
		if err := tx.Where("assignment_id = ?", assignmentID).First(&assignment).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundErr("assignment %d not found", assignmentID)
			}
			return unavailableErr("load assignment", err)
		}

		if assignment.ReviewerID != reviewerID {
			return forbiddenErr("assignment %d does not belong to reviewer %d", assignmentID, reviewerID)
		}
		if assignment.Status != models.AssignmentAccepted {
			// A completed assignment already carries its review; report the
			// repeat submission as a duplicate, not a bare status mismatch.
			if assignment.Status == models.AssignmentCompleted {
				var existing int64
				if err := tx.Model(&models.Review{}).
					Where("assignment_id = ?", assignmentID).
					Count(&existing).Error; err != nil {
					return unavailableErr("check existing review", err)
				}
				if existing > 0 {
					return duplicateReviewErr("assignment %d already has a review", assignmentID)
				}
			}
			return invalidTransitionErr("assignment %d is %s, a review requires %s",
				assignmentID, assignment.Status, models.AssignmentAccepted)
		}

		now := time.Now()
		review = models.Review{
			AssignmentID:     assignmentID,
			ConferenceID:     assignment.ConferenceID,
			Score:            input.Score,
			Confidence:       input.Confidence,
			CommentForAuthor: input.CommentForAuthor,
			CommentForPC:     input.CommentForPC,
			Recommendation:   input.Recommendation,
			CreateAt:         now,
			UpdateAt:         now,
		}
		if err := tx.Create(&review).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return duplicateReviewErr("assignment %d already has a review", assignmentID)
			}
			return unavailableErr("create review", err)
		}

		res := tx.Model(&models.Assignment{}).
			Where("assignment_id = ? AND status = ?", assignmentID, models.AssignmentAccepted).
			Updates(map[string]interface{}{
				"status":    models.AssignmentCompleted,
				"update_at": now,
			})
		if res.Error != nil {
			return unavailableErr("complete assignment", res.Error)
		}
		if res.RowsAffected == 0 {
			// Someone moved the assignment concurrently; roll the review back.
			return invalidTransitionErr("assignment %d left %s during review submission",
				assignmentID, models.AssignmentAccepted)
		}
		return nil
	})
	if err != nil {
		return nil, asWorkflowError("submit review", err)
	}
	return &review, nil
}

// ListReviewsForSubmission returns the reviews reachable through the
// submission's assignments, newest first. No assignments means an empty
// list, not an error.
func (s *ReviewService) ListReviewsForSubmission(submissionID string, page, limit int) ([]models.Review, int64, error) {
	ids, err := s.assignmentIDs(submissionID)
	if err != nil {
		return nil, 0, err
	}
	if len(ids) == 0 {
		return []models.Review{}, 0, nil
	}

	offset, limit := pageWindow(page, limit)

	var total int64
	if err := s.db.Model(&models.Review{}).
		Where("assignment_id IN ?", ids).
		Count(&total).Error; err != nil {
		return nil, 0, unavailableErr("count reviews", err)
	}

	reviews := []models.Review{}
	if err := s.db.Where("assignment_id IN ?", ids).
		Order("create_at DESC, review_id DESC").
		Offset(offset).Limit(limit).
		Find(&reviews).Error; err != nil {
		return nil, 0, unavailableErr("list reviews", err)
	}
	return reviews, total, nil
}

// ListAnonymizedReviews returns the author-facing projection of every review
// on the submission. Access timing (decision recorded or not) is the
// caller's rule, not this component's.
func (s *ReviewService) ListAnonymizedReviews(submissionID string) ([]AnonymizedReview, error) {
	ids, err := s.assignmentIDs(submissionID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []AnonymizedReview{}, nil
	}

	var reviews []models.Review
	if err := s.db.Where("assignment_id IN ?", ids).
		Order("review_id ASC").
		Find(&reviews).Error; err != nil {
		return nil, unavailableErr("list reviews", err)
	}

	anonymized := make([]AnonymizedReview, 0, len(reviews))
	for _, r := range reviews {
		anonymized = append(anonymized, AnonymizedReview{
			Score:            r.Score,
			CommentForAuthor: r.CommentForAuthor,
			Recommendation:   r.Recommendation,
		})
	}
	return anonymized, nil
}

func (s *ReviewService) assignmentIDs(submissionID string) ([]int, error) {
	var ids []int
	if err := s.db.Model(&models.Assignment{}).
		Where("submission_id = ?", submissionID).
		Pluck("assignment_id", &ids).Error; err != nil {
		return nil, unavailableErr("resolve assignments", err)
	}
	return ids, nil
}
