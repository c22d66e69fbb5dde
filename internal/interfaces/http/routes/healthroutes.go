package routes

import (
	"github.com/gin-gonic/gin"

	"carsub/internal/interfaces/http/handlers"
)

// SetupHealthRoutes configures the health probe route.
func SetupHealthRoutes(engine *gin.Engine, handler *handlers.HealthHandler) {
	engine.GET("/api/health", handler.Health)
}
