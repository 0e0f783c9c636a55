package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/newrelic/go-agent/v3/newrelic"
	redislib "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"safar/internal/app"
	"safar/internal/auth"
	"safar/internal/config"
	"safar/internal/directory"
	"safar/internal/handler"
	"safar/internal/policy"
	internalRedis "safar/internal/redis"
	"safar/internal/repository/postgres"
	"safar/internal/service"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	// Load .env if present; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		log.Info("no .env file found, using environment")
	}

	cfg := config.Load()

	if cfg.Auth.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic first so the database driver can be instrumented.
	var nrApp *newrelic.Application
	var err error
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			log.WithError(err).Warn("failed to initialize New Relic")
		} else {
			log.WithField("app", cfg.NewRelic.AppName).Info("New Relic enabled")
		}
	}

	db, err := app.NewDatabase(ctx, cfg.Database, nrApp)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	defer db.Close()
	log.Info("connected to PostgreSQL")

	redisClient, err := app.NewRedisClient(ctx, cfg.Redis, nrApp)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info("connected to Redis")

	server := wireServer(db, redisClient, nrApp, cfg, log)

	go func() {
		log.WithField("port", cfg.Server.Port).Info("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server error")
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Fatal("server forced to shutdown")
	}

	log.Info("server exited")
}

// wireServer wires all dependencies and returns the HTTP server.
func wireServer(db *sql.DB, redisClient *redislib.Client, nrApp *newrelic.Application, cfg *config.Config, log *logrus.Logger) *http.Server {
	// Repositories.
	userRepo := postgres.NewUserRepository(db)
	vehicleRepo := postgres.NewVehicleRepository(db)
	locationRepo := postgres.NewLocationRepository(db)
	routeRepo := postgres.NewRouteRepository(db)
	tripRepo := postgres.NewTripRepository(db)
	appRepo := postgres.NewApplicationRepository(db)

	// Caller identity resolution.
	userCache := internalRedis.NewUserCache(redisClient)
	dir := directory.NewService(userRepo, userCache)
	verifier := auth.NewTokenVerifier(cfg.Auth.JWTSecret)

	// Access policy.
	pol := policy.New(policy.Options{
		OpenLocationCreate: cfg.Policy.OpenLocationCreate,
		DriverTripCreate:   cfg.Policy.DriverTripCreate,
	})

	// Services.
	notifier := service.NewNotificationService(log)
	vehicleService := service.NewVehicleService(vehicleRepo, userRepo, pol)
	locationService := service.NewLocationService(locationRepo, pol)
	routeService := service.NewRouteService(routeRepo, locationRepo, userRepo, vehicleRepo, pol)
	tripService := service.NewTripService(db, tripRepo, routeRepo, userRepo, vehicleRepo, pol, notifier)
	applicationService := service.NewApplicationService(appRepo, pol, notifier)

	// Handlers.
	vehicleHandler := handler.NewVehicleHandler(vehicleService, dir)
	locationHandler := handler.NewLocationHandler(locationService)
	routeHandler := handler.NewRouteHandler(routeService, locationService)
	tripHandler := handler.NewTripHandler(tripService, routeService, locationService, dir)
	applicationHandler := handler.NewApplicationHandler(applicationService, dir)

	router := app.NewRouter(app.RouterDeps{
		VehicleHandler:     vehicleHandler,
		LocationHandler:    locationHandler,
		RouteHandler:       routeHandler,
		TripHandler:        tripHandler,
		ApplicationHandler: applicationHandler,
		TokenVerifier:      verifier,
		Directory:          dir,
		RedisClient:        redisClient,
		NewRelicApp:        nrApp,
	})

	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}
