package controllers

import (
	"net/http"

	"conference-review-api/config"
	"conference-review-api/services"
	"conference-review-api/utils"

	"github.com/gin-gonic/gin"
)

// PostRebuttal appends an author response to the submission's rebuttal log.
func PostRebuttal(c *gin.Context) {
	submissionID := c.Param("submission_id")

	var req struct {
		ConferenceID *int   `json:"conference_id"`
		Message      string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	authorID, ok := currentUserID(c)
	if !ok {
		return
	}

	svc := services.NewDiscussionService(config.DB)
	message, err := svc.PostRebuttal(authorID, submissionID, req.ConferenceID,
		utils.SanitizeInput(req.Message))
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": message,
	})
}

// GetRebuttals returns every rebuttal on the submission, oldest first.
func GetRebuttals(c *gin.Context) {
	submissionID := c.Param("submission_id")

	svc := services.NewDiscussionService(config.DB)
	messages, err := svc.ListRebuttals(submissionID)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"messages": messages,
		"total":    len(messages),
	})
}
