package app

import (
	"talenthub_backend/docs"
	"talenthub_backend/internal/config"
	"talenthub_backend/internal/middleware"
	"talenthub_backend/internal/model"
	"talenthub_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// Public routes. The interview-taking endpoints are reached by candidates
	// through emailed access links and therefore carry no JWT.
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)

		public.GET("/interviews/:id", c.interview.Get)
		public.POST("/interviews/:id/start", c.interview.Start)
		public.POST("/interviews/:id/progress", c.interview.SaveProgress)
		public.POST("/interviews/:id/submit", c.interview.Submit)
	}

	// Recruiter routes.
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Recruiter))
	{
		authGroup.POST("/campaigns", c.campaign.Create)
		authGroup.GET("/campaigns", c.campaign.List)
		authGroup.GET("/campaigns/:id", c.campaign.Get)
		authGroup.GET("/campaigns/:id/rounds", c.campaign.ListRounds)
		authGroup.POST("/campaigns/:id/rounds", c.campaign.AddRound)
		authGroup.PUT("/campaigns/:id/rounds/:roundId", c.campaign.UpdateRound)
		authGroup.DELETE("/campaigns/:id/rounds/:roundId", c.campaign.DeleteRound)
		authGroup.GET("/campaigns/:id/auto-schedule", c.campaign.GetAutoScheduleConfig)
		authGroup.PUT("/campaigns/:id/auto-schedule", c.campaign.UpdateAutoScheduleConfig)

		authGroup.GET("/campaigns/:id/candidates/:cid/eligibility", c.schedule.Eligibility)
		authGroup.POST("/campaigns/:id/candidates/:cid/auto-schedule", c.schedule.AutoSchedule)

		authGroup.POST("/candidates", c.candidate.Create)
		authGroup.GET("/candidates", c.candidate.List)
		authGroup.GET("/candidates/:id", c.candidate.Get)
		authGroup.POST("/candidates/:id/resume-score", c.candidate.RecordResumeScore)
		authGroup.GET("/candidates/:id/scheduling-activity", c.schedule.ListActivity)

		authGroup.POST("/interviews", c.interview.CreateDirect)

		authGroup.POST("/question-bank/collections", c.questionBank.CreateCollection)
		authGroup.GET("/question-bank/collections", c.questionBank.ListCollections)
		authGroup.POST("/question-bank/questions", c.questionBank.AddQuestion)
		authGroup.DELETE("/question-bank/questions/:id", c.questionBank.DeleteQuestion)
	}
}
