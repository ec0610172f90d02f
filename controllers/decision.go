package controllers

import (
	"net/http"

	"conference-review-api/config"
	"conference-review-api/models"
	"conference-review-api/services"

	"github.com/gin-gonic/gin"
)

// GetReviewSummary returns review statistics for a submission plus the
// decision, if one has been recorded.
func GetReviewSummary(c *gin.Context) {
	submissionID := c.Param("submission_id")

	svc := services.NewDecisionService(config.DB)
	summary, err := svc.ComputeSummary(submissionID)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"summary": summary,
	})
}

// UpsertDecision records or overwrites the chair's outcome for a submission.
// Mirroring the outcome into the submission store is the caller's
// integration step, not done here.
func UpsertDecision(c *gin.Context) {
	submissionID := c.Param("submission_id")

	var req struct {
		Decision     string  `json:"decision" binding:"required"`
		ConferenceID *int    `json:"conference_id"`
		Note         *string `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	chairID, ok := currentUserID(c)
	if !ok {
		return
	}

	svc := services.NewDecisionService(config.DB)
	decision, err := svc.UpsertDecision(submissionID, chairID,
		models.DecisionValue(req.Decision), req.ConferenceID, req.Note)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	services.NewNotificationService(config.DB).NotifyDecisionRecorded(decision)

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"decision": decision,
	})
}
