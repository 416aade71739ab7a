package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/rllagas/csm-server/controllers"
	"github.com/rllagas/csm-server/middleware"
	"github.com/rllagas/csm-server/rbac"
)

func SetupRoutes(r *gin.Engine) {
	r.GET("/health", controllers.HealthCheck)

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", controllers.Register)
			auth.POST("/login", controllers.Login)
			auth.POST("/google/login", controllers.GoogleLogin)
			auth.POST("/verify/send", controllers.SendVerificationCode)
			auth.POST("/verify", controllers.VerifyEmail)
			auth.GET("/me", middleware.AuthJWT(), controllers.Me)
		}

		// Public survey surface
		api.GET("/survey/schema", controllers.GetSurveySchema)
		api.POST("/survey/submissions", middleware.OptionalAuth(), middleware.RateLimitSubmit(), controllers.SubmitSurvey)
		api.GET("/survey/my-submissions", middleware.AuthJWT(), controllers.GetMySubmissions)
		api.GET("/faqs", controllers.ListFAQs)

		// Dashboard landing: the page guard itself handles guests and
		// role-less accounts, so no RequireAdmin here.
		api.GET("/admin/overview", middleware.OptionalAuth(), middleware.RequirePage(rbac.DefaultRoute), controllers.GetOverview)

		// Admin surface: activated admin accounts only; capability checks
		// mirror the dashboard's page gating server-side.
		admin := api.Group("/admin")
		admin.Use(middleware.AuthJWT(), middleware.RequireAdmin())
		{
			fields := admin.Group("/fields")
			fields.Use(middleware.RequireCapability(rbac.CapEditSurvey))
			{
				fields.GET("", controllers.ListFields)
				fields.POST("", controllers.AddField)
				fields.PUT("/reorder", controllers.ReorderFields)
				fields.PUT("/:id", controllers.UpdateField)
				fields.DELETE("/:id", controllers.DeleteField)
			}

			reports := admin.Group("/")
			reports.Use(middleware.RequireCapability(rbac.CapViewReports))
			{
				reports.GET("/responses", controllers.ListResponses)
				reports.GET("/responses/:id", controllers.GetResponseDetail)
				reports.GET("/analytics/summary", controllers.GetAnalyticsSummary)
				reports.GET("/analytics/ratings", controllers.GetRatingBreakdown)
				reports.GET("/analytics/trend", controllers.GetScoreTrend)
				reports.POST("/exports", controllers.CreateExport)
				reports.GET("/exports/:job_id", controllers.GetExport)
			}

			feedback := admin.Group("/")
			feedback.Use(middleware.RequireCapability(rbac.CapManageFeedback))
			{
				feedback.DELETE("/responses/:id", controllers.DeleteResponse)
				feedback.GET("/faqs", controllers.ListAllFAQs)
				feedback.POST("/faqs", controllers.CreateFAQ)
				feedback.PUT("/faqs/:id", controllers.UpdateFAQ)
				feedback.DELETE("/faqs/:id", controllers.DeleteFAQ)
			}

			notifications := admin.Group("/notifications")
			notifications.Use(middleware.RequireCapability(rbac.CapViewNotifications))
			{
				notifications.GET("", controllers.ListNotifications)
				notifications.PUT("/read-all", controllers.MarkAllNotificationsRead)
				notifications.PUT("/:id/read", controllers.MarkNotificationRead)
				notifications.GET("/activity", controllers.ListActivityLog)
			}

			accounts := admin.Group("/accounts")
			accounts.Use(middleware.RequireCapability(rbac.CapEditRoles))
			{
				accounts.GET("", controllers.ListAdmins)
				accounts.GET("/pending", controllers.ListPendingAdmins)
				accounts.POST("", controllers.CreateAdmin)
				accounts.PUT("/:id/approve", controllers.ApproveAdmin)
				accounts.DELETE("/:id", controllers.RejectAdmin)
				accounts.PUT("/:id/role", controllers.UpdateAdminRole)
			}
		}
	}
}
