package http

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"carsub/internal/application/subscription/usecases"
	"carsub/internal/infrastructure/adapters/cars"
	"carsub/internal/infrastructure/adapters/customers"
	"carsub/internal/infrastructure/config"
	"carsub/internal/infrastructure/repository"
	"carsub/internal/interfaces/http/handlers"
	"carsub/internal/interfaces/http/middleware"
	"carsub/internal/interfaces/http/routes"
	"carsub/internal/shared/logger"
	"carsub/internal/shared/version"
)

// Router wires the gin engine to the subscription handlers.
type Router struct {
	engine              *gin.Engine
	subscriptionHandler *handlers.SubscriptionHandler
	healthHandler       *handlers.HealthHandler
	logger              logger.Interface
}

// NewRouter creates the HTTP router with all dependencies.
func NewRouter(db *gorm.DB, cfg *config.Config, log logger.Interface) *Router {
	engine := gin.New()

	subscriptionRepo := repository.NewSubscriptionRepository(db, log)
	customerGateway := customers.NewClient(&cfg.Customers, log)
	carGateway := cars.NewClient(&cfg.Cars, log)

	createUC := usecases.NewCreateSubscriptionUseCase(subscriptionRepo, customerGateway, carGateway, log)
	activateUC := usecases.NewActivateSubscriptionUseCase(subscriptionRepo, log)
	cancelUC := usecases.NewCancelSubscriptionUseCase(subscriptionRepo, log)
	stopUC := usecases.NewStopSubscriptionUseCase(subscriptionRepo, log)
	deactivateUC := usecases.NewDeactivateSubscriptionUseCase(subscriptionRepo, log)
	endUC := usecases.NewEndSubscriptionUseCase(subscriptionRepo, log)
	getUC := usecases.NewGetSubscriptionUseCase(subscriptionRepo, log)
	listUC := usecases.NewListSubscriptionsUseCase(subscriptionRepo, log)
	listEventsUC := usecases.NewListEventsUseCase(subscriptionRepo, log)
	listTransitionsUC := usecases.NewListPossibleTransitionsUseCase(subscriptionRepo, log)
	recordDocumentUC := usecases.NewRecordDocumentGeneratedUseCase(subscriptionRepo, log)

	subscriptionHandler := handlers.NewSubscriptionHandler(
		createUC, activateUC, cancelUC, stopUC, deactivateUC, endUC,
		getUC, listUC, listEventsUC, listTransitionsUC, recordDocumentUC,
	)

	return &Router{
		engine:              engine,
		subscriptionHandler: subscriptionHandler,
		healthHandler:       handlers.NewHealthHandler(db, version.Version),
		logger:              log,
	}
}

// SetupRoutes configures all HTTP routes.
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.Logger(r.logger))
	r.engine.Use(middleware.Recovery())

	routes.SetupHealthRoutes(r.engine, r.healthHandler)
	routes.SetupSubscriptionRoutes(r.engine, &routes.SubscriptionRouteConfig{
		SubscriptionHandler: r.subscriptionHandler,
	})
}

// GetEngine returns the gin engine.
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
