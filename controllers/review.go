package controllers

import (
	"net/http"
	"strconv"

	"conference-review-api/config"
	"conference-review-api/models"
	"conference-review-api/services"
	"conference-review-api/utils"

	"github.com/gin-gonic/gin"
)

// SubmitReview records the caller's evaluation of an accepted assignment and
// completes the assignment.
func SubmitReview(c *gin.Context) {
	assignmentID, err := strconv.Atoi(c.Param("id"))
	if err != nil || assignmentID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid assignment ID"})
		return
	}

	var req struct {
		Score            int     `json:"score"`
		Confidence       string  `json:"confidence" binding:"required"`
		CommentForAuthor *string `json:"comment_for_author"`
		CommentForPC     *string `json:"comment_for_pc"`
		Recommendation   string  `json:"recommendation" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	reviewerID, ok := currentUserID(c)
	if !ok {
		return
	}

	svc := services.NewReviewService(config.DB)
	review, err := svc.SubmitReview(reviewerID, assignmentID, services.ReviewInput{
		Score:            req.Score,
		Confidence:       models.ReviewConfidence(req.Confidence),
		CommentForAuthor: sanitizeComment(req.CommentForAuthor),
		CommentForPC:     sanitizeComment(req.CommentForPC),
		Recommendation:   models.ReviewRecommendation(req.Recommendation),
	})
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"review":  review,
	})
}

// GetSubmissionReviews lists full reviews for a submission (chair view).
func GetSubmissionReviews(c *gin.Context) {
	submissionID := c.Param("submission_id")
	page, limit := pageParams(c)

	svc := services.NewReviewService(config.DB)
	reviews, total, err := svc.ListReviewsForSubmission(submissionID, page, limit)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"reviews": reviews,
		"total":   total,
	})
}

// GetAnonymizedReviews is the author-facing view: reviewer identity and
// committee comments stripped, and nothing is released until the chair has
// recorded a decision.
func GetAnonymizedReviews(c *gin.Context) {
	submissionID := c.Param("submission_id")

	if _, err := services.NewDecisionService(config.DB).GetDecision(submissionID); err != nil {
		if services.KindOf(err) == services.KindNotFound {
			c.JSON(http.StatusConflict, gin.H{"error": "Reviews are not released until a decision is recorded"})
			return
		}
		respondWorkflowError(c, err)
		return
	}

	svc := services.NewReviewService(config.DB)
	reviews, err := svc.ListAnonymizedReviews(submissionID)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"reviews": reviews,
	})
}

func sanitizeComment(comment *string) *string {
	if comment == nil {
		return nil
	}
	cleaned := utils.SanitizeInput(*comment)
	if cleaned == "" {
		return nil
	}
	return &cleaned
}
