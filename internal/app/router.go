package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"safar/internal/auth"
	"safar/internal/directory"
	"safar/internal/handler"
	"safar/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	VehicleHandler     *handler.VehicleHandler
	LocationHandler    *handler.LocationHandler
	RouteHandler       *handler.RouteHandler
	TripHandler        *handler.TripHandler
	ApplicationHandler *handler.ApplicationHandler
	TokenVerifier      *auth.TokenVerifier
	Directory          *directory.Service
	RedisClient        *redis.Client
	NewRelicApp        *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes. Every endpoint requires an authenticated caller;
	// role checks live in the service layer. Idempotency replay runs
	// after Authenticate so cache keys carry the caller's identity.
	v1 := router.Group("/v1")
	v1.Use(middleware.Authenticate(deps.TokenVerifier, deps.Directory))
	v1.Use(middleware.IdempotencyMiddleware(deps.RedisClient))
	{
		// Vehicle routes.
		vehicles := v1.Group("/vehicles")
		{
			vehicles.POST("", deps.VehicleHandler.Create)
			vehicles.GET("", deps.VehicleHandler.GetAll)
			vehicles.GET("/:id", deps.VehicleHandler.Get)
			vehicles.PUT("/:id", deps.VehicleHandler.Update)
			vehicles.DELETE("/:id", deps.VehicleHandler.Delete)
		}

		// Location routes.
		locations := v1.Group("/locations")
		{
			locations.POST("", deps.LocationHandler.Create)
			locations.GET("", deps.LocationHandler.GetAll)
			locations.GET("/:id", deps.LocationHandler.Get)
			locations.PUT("/:id", deps.LocationHandler.Update)
			locations.DELETE("/:id", deps.LocationHandler.Delete)
		}

		// Route routes.
		routes := v1.Group("/routes")
		{
			routes.POST("", deps.RouteHandler.Create)
			routes.GET("", deps.RouteHandler.GetAll)
			routes.GET("/:id", deps.RouteHandler.Get)
			routes.PUT("/:id", deps.RouteHandler.Update)
			routes.DELETE("/:id", deps.RouteHandler.Delete)
		}

		// Trip routes. The bare collection is scoped to the caller's
		// own trips; drivers and admins have their own listings.
		trips := v1.Group("/trips")
		{
			trips.POST("", deps.TripHandler.Create)
			trips.GET("", deps.TripHandler.GetOwn)
			trips.GET("/:id", deps.TripHandler.Get)
			trips.PUT("/:id", deps.TripHandler.Update)
			trips.DELETE("/:id", deps.TripHandler.Delete)
		}
		v1.GET("/driver/trips", deps.TripHandler.GetAssigned)
		v1.GET("/admin/trips", deps.TripHandler.GetAllAdmin)

		// Driver application routes.
		v1.POST("/driver-applications", deps.ApplicationHandler.Create)
		applications := v1.Group("/admin/applications")
		{
			applications.GET("", deps.ApplicationHandler.GetAll)
			applications.GET("/:id", deps.ApplicationHandler.Get)
			applications.PUT("/:id", deps.ApplicationHandler.Review)
		}
	}

	return router
}
