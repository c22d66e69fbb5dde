package routes

import (
	"github.com/gin-gonic/gin"

	"carsub/internal/interfaces/http/handlers"
)

// SubscriptionRouteConfig holds dependencies for subscription routes.
type SubscriptionRouteConfig struct {
	SubscriptionHandler *handlers.SubscriptionHandler
}

// SetupSubscriptionRoutes configures subscription routes.
func SetupSubscriptionRoutes(engine *gin.Engine, cfg *SubscriptionRouteConfig) {
	subscriptions := engine.Group("/api/subscriptions")
	{
		subscriptions.POST("", cfg.SubscriptionHandler.CreateSubscription)
		subscriptions.GET("", cfg.SubscriptionHandler.ListSubscriptions)
		subscriptions.GET("/:id", cfg.SubscriptionHandler.GetSubscription)
		subscriptions.PUT("/:id/state", cfg.SubscriptionHandler.UpdateState)
		subscriptions.GET("/:id/possible-state-transitions", cfg.SubscriptionHandler.ListPossibleStateTransitions)
		subscriptions.GET("/:id/events", cfg.SubscriptionHandler.ListEvents)
		subscriptions.POST("/:id/events", cfg.SubscriptionHandler.RecordDocumentGenerated)
	}
}
