package controllers

import (
	"net/http"

	"conference-review-api/config"
	"conference-review-api/models"
	"conference-review-api/services"

	"github.com/gin-gonic/gin"
)

// SubmitBid records the caller's interest level for a submission.
// Re-bidding on the same submission overwrites the previous bid.
func SubmitBid(c *gin.Context) {
	var req struct {
		SubmissionID string `json:"submission_id" binding:"required"`
		ConferenceID *int   `json:"conference_id"`
		Preference   string `json:"preference" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	reviewerID, ok := currentUserID(c)
	if !ok {
		return
	}

	svc := services.NewPreferenceService(config.DB)
	preference, err := svc.SubmitBid(reviewerID, req.SubmissionID, req.ConferenceID,
		models.PreferenceLevel(req.Preference))
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"preference": preference,
	})
}

// GetSubmissionBids lists the bids on a submission, newest first.
func GetSubmissionBids(c *gin.Context) {
	submissionID := c.Param("submission_id")
	page, limit := pageParams(c)

	svc := services.NewPreferenceService(config.DB)
	bids, total, err := svc.ListBidsForSubmission(submissionID, page, limit)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"bids":    bids,
		"total":   total,
	})
}
