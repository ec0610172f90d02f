package controllers

import (
	"net/http"
	"strconv"

	"conference-review-api/config"
	"conference-review-api/services"

	"github.com/gin-gonic/gin"
)

// GetSubmissionProgress reports assignment/review completion for one submission.
func GetSubmissionProgress(c *gin.Context) {
	submissionID := c.Param("submission_id")

	svc := services.NewProgressService(config.DB)
	progress, err := svc.SubmissionProgress(submissionID)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"progress": progress,
	})
}

// GetConferenceProgress reports completion across a whole conference.
func GetConferenceProgress(c *gin.Context) {
	conferenceID, err := strconv.Atoi(c.Param("conference_id"))
	if err != nil || conferenceID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid conference ID"})
		return
	}

	svc := services.NewProgressService(config.DB)
	progress, err := svc.ConferenceProgress(conferenceID)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"progress": progress,
	})
}
