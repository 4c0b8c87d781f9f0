package api

import (
	"gpa-tracker-api/internal/auth"
	"gpa-tracker-api/internal/config"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine, handler *Handler, cfg *config.Config) {
	// Health check
	router.GET("/health", handler.HealthCheck)

	// API v1 routes, all behind the session provider
	v1 := router.Group("/api/v1")
	v1.Use(auth.Middleware(cfg))
	{
		v1.POST("/gpa/calculate", handler.CalculateGPA)

		v1.POST("/semesters", handler.SaveSemester)
		v1.GET("/semesters", handler.ListSemesters)

		v1.GET("/standings", handler.GetStandings)
		v1.GET("/standings/rank", handler.GetRank)
		v1.PUT("/standings/rank", handler.OverrideRank)
		v1.DELETE("/standings/rank", handler.ClearRankOverride)

		v1.GET("/presets/:year/:semester", handler.GetPresets)

		v1.GET("/profile", handler.GetProfile)
		v1.PUT("/profile", handler.UpdateProfile)
		v1.GET("/preferences", handler.GetPreferences)
		v1.PUT("/preferences", handler.UpdatePreferences)

		v1.POST("/imports", handler.UploadImport)
		v1.GET("/imports/:id", handler.GetImportStatus)
	}
}
