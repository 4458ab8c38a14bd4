package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/moderation-platform/internal/api/handlers"
	"github.com/linskybing/moderation-platform/internal/api/middleware"
	"github.com/linskybing/moderation-platform/internal/domain/user"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/linskybing/moderation-platform/docs"
)

var (
	assignRoles = []user.Role{user.RoleCoordinator, user.RoleInstitutionManager, user.RoleHeadOfPrograms}
	adminRoles  = []user.Role{user.RoleHeadOfPrograms, user.RoleInstitutionManager}
	auditRoles  = []user.Role{user.RoleHeadOfPrograms, user.RoleRecords, user.RoleInstitutionManager}
)

func RegisterRoutes(r *gin.Engine, h *handlers.Handlers) {
	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	api.Use(middleware.JWTAuthMiddleware())
	{
		api.GET("/ws/submissions/events", h.Events.StreamEvents)
		api.GET("/settings/workflow", h.Settings.GetWorkflowSettings)

		submissions := api.Group("/submissions")
		{
			submissions.POST("", h.Submission.CreateSubmission)
			submissions.GET("", h.Submission.ListSubmissions)
			submissions.GET("/:id", h.Submission.GetSubmission)
			submissions.POST("/:id/documents", h.Submission.UploadDocument)
			submissions.POST("/:id/submit", h.Submission.SubmitForReview)
			submissions.POST("/:id/assign-reviewers", middleware.RequireRoles(assignRoles...), h.Submission.AssignReviewers)
		}

		reviews := api.Group("/reviews")
		{
			reviews.POST("", h.Review.SubmitReview)
			reviews.POST("/reset", h.Review.ResetSubmission)
			reviews.GET("", h.Review.ListReviews)
		}

		users := api.Group("/users", middleware.RequireRoles(adminRoles...))
		{
			users.GET("", h.User.GetUsers)
			users.POST("/update-role", h.User.UpdateRole)
			users.POST("/remove", h.User.RemoveUser)
			users.POST("/approve", h.User.ApproveUser)
		}

		api.GET("/archive", h.Archive.GetArchive)
		api.GET("/audit-logs", middleware.RequireRoles(auditRoles...), h.Audit.GetAuditLogs)
	}
}
