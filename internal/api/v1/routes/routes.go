package routes

import (
	"github.com/gin-gonic/gin"

	"audio2num/internal/api/v1/handlers"
)

// RegisterRoutes registers all v1 API routes
func RegisterRoutes(router *gin.RouterGroup, numberHandler *handlers.NumberHandler) {
	router.POST("/extract", numberHandler.Extract)
	router.POST("/process", numberHandler.Process)
	router.GET("/results", numberHandler.ListResults)
}
