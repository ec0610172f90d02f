package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"conference-review-api/services"

	"github.com/gin-gonic/gin"
)

// currentUserID pulls the authenticated user id set by the auth middleware.
func currentUserID(c *gin.Context) (int, bool) {
	value, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "User context missing"})
		return 0, false
	}
	userID, ok := value.(int)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user context"})
		return 0, false
	}
	return userID, true
}

// pageParams reads page/limit query parameters; services clamp the values.
func pageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	return page, limit
}

// respondWorkflowError translates a workflow error kind into an HTTP status.
// This is the only place that mapping lives.
func respondWorkflowError(c *gin.Context, err error) {
	var wf *services.WorkflowError
	if !errors.As(err, &wf) {
		log.Printf("unexpected error on %s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	status := http.StatusInternalServerError
	switch wf.Kind {
	case services.KindInvalidArgument:
		status = http.StatusBadRequest
	case services.KindForbidden:
		status = http.StatusForbidden
	case services.KindNotFound:
		status = http.StatusNotFound
	case services.KindConflictOfInterest,
		services.KindDuplicateAssignment,
		services.KindDuplicateReview,
		services.KindInvalidTransition:
		status = http.StatusConflict
	case services.KindUnavailable:
		log.Printf("storage failure on %s %s: %v", c.Request.Method, c.FullPath(), wf)
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, gin.H{
		"error":     wf.Message,
		"kind":      wf.Kind,
		"retryable": wf.Retryable(),
	})
}
