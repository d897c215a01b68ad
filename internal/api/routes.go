package api

import (
	"net/http"

	"reprise/backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	logger *zap.Logger,
	profileService service.ProfileService,
	recommendationService service.RecommendationService,
	stepService service.StepService,
	goalService service.GoalService,
) {
	profileHandler := NewProfileHandler(profileService)
	recommendationHandler := NewRecommendationHandler(recommendationService)
	stepHandler := NewStepHandler(stepService)
	goalHandler := NewGoalHandler(goalService)

	router.Use(RequestIDMiddleware(), LoggerMiddleware(logger))

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	protected := router.Group("/api/v1")
	protected.Use(AuthMiddleware(jwtSecret))
	{
		protected.GET("/profile", profileHandler.GetProfile)
		protected.PATCH("/profile", profileHandler.UpdateProfile)

		recGroup := protected.Group("/recommendation")
		{
			recGroup.GET("", recommendationHandler.GetRecommendation)
			recGroup.POST("/regenerate", recommendationHandler.Regenerate)
			recGroup.PATCH("/progress", recommendationHandler.UpdateProgress)
		}

		stepsGroup := protected.Group("/steps")
		{
			stepsGroup.POST("", stepHandler.LogSteps)
			stepsGroup.GET("/history", stepHandler.History)

			stepsGroup.GET("/goal", goalHandler.GetGoal)
			stepsGroup.GET("/analytics/daily", goalHandler.Daily)
			stepsGroup.GET("/analytics/weekly", goalHandler.Weekly)
			stepsGroup.GET("/analytics/monthly", goalHandler.Monthly)

			stepsGroup.PUT("/overrides/:date", goalHandler.SetOverride)
			stepsGroup.DELETE("/overrides/:date", goalHandler.DeleteOverride)

			stepsGroup.GET("/plans", goalHandler.ListPlans)
			stepsGroup.POST("/plans", goalHandler.CreatePlan)
			stepsGroup.PUT("/plans/:planId", goalHandler.UpdatePlan)
			stepsGroup.DELETE("/plans/:planId", goalHandler.DeletePlan)
		}
	}
}
