package controllers

import (
	"net/http"
	"strconv"
	"time"

	"conference-review-api/config"
	"conference-review-api/models"
	"conference-review-api/services"

	"github.com/gin-gonic/gin"
)

// CreateAssignment pairs a reviewer with a submission (chair action).
func CreateAssignment(c *gin.Context) {
	var req struct {
		ReviewerID   int        `json:"reviewer_id" binding:"required"`
		SubmissionID string     `json:"submission_id" binding:"required"`
		ConferenceID *int       `json:"conference_id"`
		DueDate      *time.Time `json:"due_date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	chairID, ok := currentUserID(c)
	if !ok {
		return
	}

	svc := services.NewAssignmentService(config.DB)
	assignment, err := svc.CreateAssignment(chairID, req.ReviewerID, req.SubmissionID,
		req.ConferenceID, req.DueDate)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	services.NewNotificationService(config.DB).NotifyAssignmentCreated(assignment)

	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"assignment": assignment,
	})
}

// AutoAssign creates assignments for a list of reviewers in one call.
// Partial success: each reviewer gets an individual outcome.
func AutoAssign(c *gin.Context) {
	var req struct {
		SubmissionID string `json:"submission_id" binding:"required"`
		ConferenceID *int   `json:"conference_id"`
		ReviewerIDs  []int  `json:"reviewer_ids" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	chairID, ok := currentUserID(c)
	if !ok {
		return
	}

	svc := services.NewAssignmentService(config.DB)
	outcomes, err := svc.AutoAssign(chairID, req.SubmissionID, req.ConferenceID, req.ReviewerIDs)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	notifier := services.NewNotificationService(config.DB)
	assigned := 0
	for _, outcome := range outcomes {
		if outcome.Assignment != nil {
			assigned++
			notifier.NotifyAssignmentCreated(outcome.Assignment)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"assigned": assigned,
		"failed":   len(outcomes) - assigned,
		"results":  outcomes,
	})
}

// SelfAssign lets the calling reviewer claim a submission.
func SelfAssign(c *gin.Context) {
	var req struct {
		SubmissionID string `json:"submission_id" binding:"required"`
		ConferenceID *int   `json:"conference_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	reviewerID, ok := currentUserID(c)
	if !ok {
		return
	}

	svc := services.NewAssignmentService(config.DB)
	assignment, err := svc.SelfAssign(reviewerID, req.SubmissionID, req.ConferenceID)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"assignment": assignment,
	})
}

// UpdateAssignmentStatus is the reviewer's accept/reject on a pending assignment.
func UpdateAssignmentStatus(c *gin.Context) {
	assignmentID, err := strconv.Atoi(c.Param("id"))
	if err != nil || assignmentID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid assignment ID"})
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	callerID, ok := currentUserID(c)
	if !ok {
		return
	}

	svc := services.NewAssignmentService(config.DB)
	assignment, err := svc.UpdateStatus(assignmentID, callerID, models.AssignmentStatus(req.Status))
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"assignment": assignment,
	})
}

// GetMyAssignments lists the calling reviewer's assignments, newest first.
func GetMyAssignments(c *gin.Context) {
	reviewerID, ok := currentUserID(c)
	if !ok {
		return
	}
	page, limit := pageParams(c)

	svc := services.NewAssignmentService(config.DB)
	assignments, total, err := svc.ListMyAssignments(reviewerID, page, limit)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"assignments": assignments,
		"total":       total,
	})
}
