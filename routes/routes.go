package routes

import (
	"conference-review-api/controllers"
	"conference-review-api/middleware"
	"conference-review-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			// Authentication
			public.POST("/login", controllers.Login)

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Conference Review API is running",
				})
			})
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// User profile
			protected.GET("/profile", controllers.GetProfile)
			protected.PUT("/change-password", controllers.ChangePassword)

			// Reviewer bidding
			protected.POST("/bids", middleware.RequireRole(models.RoleReviewer), controllers.SubmitBid)

			// Assignments
			assignments := protected.Group("/assignments")
			{
				// Chairs (and admins) hand out assignments
				assignments.POST("", middleware.RequireRole(models.RoleChair, models.RoleAdmin), controllers.CreateAssignment)
				assignments.POST("/auto", middleware.RequireRole(models.RoleChair, models.RoleAdmin), controllers.AutoAssign)

				// Reviewers claim, answer and work their own assignments
				assignments.POST("/self", middleware.RequireRole(models.RoleReviewer), controllers.SelfAssign)
				assignments.GET("/mine", middleware.RequireRole(models.RoleReviewer), controllers.GetMyAssignments)
				assignments.PUT("/:id/status", middleware.RequireRole(models.RoleReviewer), controllers.UpdateAssignmentStatus)
				assignments.POST("/:id/review", middleware.RequireRole(models.RoleReviewer), controllers.SubmitReview)
			}

			// Per-submission views
			submissions := protected.Group("/submissions/:submission_id")
			{
				chairOnly := middleware.RequireRole(models.RoleChair, models.RoleAdmin)

				submissions.GET("/bids", chairOnly, controllers.GetSubmissionBids)
				submissions.GET("/reviews", chairOnly, controllers.GetSubmissionReviews)
				submissions.GET("/summary", chairOnly, controllers.GetReviewSummary)
				submissions.POST("/decision", chairOnly, controllers.UpsertDecision)

				// PC discussion is committee-internal
				submissions.POST("/discussions", chairOnly, controllers.PostDiscussion)
				submissions.GET("/discussions", chairOnly, controllers.GetDiscussions)

				// Authors respond to feedback; anonymized reviews are gated
				// on a recorded decision inside the handler
				submissions.POST("/rebuttals", middleware.RequireRole(models.RoleAuthor), controllers.PostRebuttal)
				submissions.GET("/rebuttals", middleware.RequireRole(models.RoleAuthor, models.RoleChair, models.RoleAdmin), controllers.GetRebuttals)
				submissions.GET("/reviews/anonymized", controllers.GetAnonymizedReviews)

				submissions.GET("/progress", chairOnly, controllers.GetSubmissionProgress)
			}

			// Conference-wide progress
			protected.GET("/conferences/:conference_id/progress",
				middleware.RequireRole(models.RoleChair, models.RoleAdmin), controllers.GetConferenceProgress)

			// Notifications
			notifications := protected.Group("/notifications")
			{
				notifications.GET("", controllers.GetMyNotifications)
				notifications.PUT("/:id/read", controllers.MarkNotificationRead)
			}
		}
	}
}
