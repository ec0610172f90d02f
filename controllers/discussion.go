package controllers

import (
	"net/http"

	"conference-review-api/config"
	"conference-review-api/services"
	"conference-review-api/utils"

	"github.com/gin-gonic/gin"
)

// PostDiscussion appends a message to the committee-internal thread.
func PostDiscussion(c *gin.Context) {
	submissionID := c.Param("submission_id")

	var req struct {
		ConferenceID *int   `json:"conference_id"`
		Message      string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	svc := services.NewDiscussionService(config.DB)
	message, err := svc.PostDiscussion(userID, submissionID, req.ConferenceID,
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

// GetDiscussions returns the thread oldest first.
func GetDiscussions(c *gin.Context) {
	submissionID := c.Param("submission_id")
	page, limit := pageParams(c)

	svc := services.NewDiscussionService(config.DB)
	messages, total, err := svc.ListDiscussions(submissionID, page, limit)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"messages": messages,
		"total":    total,
	})
}
