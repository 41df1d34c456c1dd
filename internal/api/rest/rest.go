package rest

import (
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler) {
	// Health check endpoint (no version prefix)
	router.GET("/health", handler.HealthCheck)

	// Upload endpoint (API key in path, matching the upload clients)
	router.POST("/upload/:apiKey", handler.Upload)

	// API v1 routes (public read access)
	v1 := router.Group("/api/v1")
	{
		v1.GET("/history/:worldDcRegion/:itemId", handler.GetHistory)

		extra := v1.Group("/extra/stats")
		{
			extra.GET("/trade-volume", handler.GetTradeVolume)
			extra.GET("/most-recently-updated", handler.GetMostRecentlyUpdated)
			extra.GET("/upload-history", handler.GetUploadCounts)
		}
	}
}
