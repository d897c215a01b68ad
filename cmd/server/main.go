package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"reprise/backend/internal/api"
	"reprise/backend/internal/config"
	"reprise/backend/internal/dataset"
	"reprise/backend/internal/logging"
	"reprise/backend/internal/metrics"
	"reprise/backend/internal/recommend"
	"reprise/backend/internal/repository"
	"reprise/backend/internal/repository/memory"
	"reprise/backend/internal/repository/mongo"
	"reprise/backend/internal/service"
	"reprise/backend/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type repositories struct {
	profiles        repository.ProfileRepository
	recommendations repository.RecommendationRepository
	stepLogs        repository.StepLogRepository
	overrides       repository.StepGoalOverrideRepository
	goalPlans       repository.StepGoalPlanRepository
	close           func()
}

// @title Reprise API
// @version 1.0
// @description Workout plan recommendations and step goal tracking.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// A .env file is optional; real environment variables win.
	_ = godotenv.Load()

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Could not load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Could not build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()
	logger.Info("Starting Reprise server...", zap.String("address", cfg.Server.Address))

	if cfg.JWT.Secret == "" {
		logger.Fatal("jwt.secret is not set")
	}

	m := metrics.New()

	// --- Dataset ---
	store, err := storage.FromConfig(cfg.Dataset, cfg.S3)
	if err != nil {
		logger.Fatal("Failed to initialize dataset storage", zap.Error(err))
	}
	catalog := dataset.NewCatalog(store, cfg.Dataset.CatalogKey, logger.Named("catalog"), m)
	videoLinks := dataset.NewVideoLinks(store, cfg.Dataset.LinksKey, logger.Named("links"), m)

	reloader, err := dataset.NewReloader(cfg.Dataset.ReloadSchedule, map[string]dataset.Reloadable{
		"catalog": catalog,
		"links":   videoLinks,
	}, logger.Named("reloader"))
	if err != nil {
		logger.Fatal("Invalid dataset reload schedule", zap.Error(err))
	}
	// Warm the caches; a failure here is retried on first use.
	warmCtx, warmCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if failed := reloader.ReloadAll(warmCtx); failed > 0 {
		logger.Warn("Some dataset tables failed to load at startup", zap.Int("failed", failed))
	}
	warmCancel()
	reloader.Start()
	defer reloader.Stop()

	// --- Repositories ---
	repos, err := openRepositories(cfg.Database, logger)
	if err != nil {
		logger.Fatal("Could not open repositories", zap.Error(err))
	}
	defer repos.close()

	// --- Services ---
	generator := recommend.NewGenerator(catalog, recommend.NewSelector(nil), logger.Named("generator"))
	enricher := recommend.NewEnricher(videoLinks, logger.Named("enricher"))

	recommendationService := service.NewRecommendationService(repos.profiles, repos.recommendations, generator, enricher, m, logger.Named("recommendations"))
	profileService := service.NewProfileService(repos.profiles, recommendationService, logger.Named("profiles"))
	stepService := service.NewStepService(repos.profiles, repos.stepLogs, m, logger.Named("steps"))
	goalService := service.NewGoalService(repos.profiles, repos.stepLogs, repos.overrides, repos.goalPlans, logger.Named("goals"))

	// --- HTTP ---
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	api.SetupRoutes(router, cfg.JWT.Secret, logger.Named("http"), profileService, recommendationService, stepService, goalService)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("ListenAndServe error", zap.Error(err))
		}
	}()
	logger.Info("Server listening", zap.String("address", cfg.Server.Address))

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}
	logger.Info("Server exiting.")
}

func openRepositories(cfg config.DatabaseConfig, logger *zap.Logger) (*repositories, error) {
	switch cfg.Driver {
	case "memory":
		logger.Warn("Using in-memory repositories; data is lost on restart")
		return &repositories{
			profiles:        memory.NewProfileRepository(),
			recommendations: memory.NewRecommendationRepository(),
			stepLogs:        memory.NewStepLogRepository(),
			overrides:       memory.NewStepGoalOverrideRepository(),
			goalPlans:       memory.NewStepGoalPlanRepository(),
			close:           func() {},
		}, nil
	case "mongo", "":
		client, err := mongo.ConnectDB(cfg.URI)
		if err != nil {
			return nil, fmt.Errorf("connect to MongoDB: %w", err)
		}
		db := client.Database(cfg.Name)
		logger.Info("Database connection established.", zap.String("database", cfg.Name))

		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := mongo.EnsureIndexes(ctx, db); err != nil {
			_ = mongo.DisconnectDB(client)
			return nil, err
		}

		return &repositories{
			profiles:        mongo.NewMongoProfileRepository(db),
			recommendations: mongo.NewMongoRecommendationRepository(db),
			stepLogs:        mongo.NewMongoStepLogRepository(db),
			overrides:       mongo.NewMongoStepGoalOverrideRepository(db),
			goalPlans:       mongo.NewMongoStepGoalPlanRepository(db),
			close: func() {
				logger.Info("Disconnecting MongoDB...")
				if err := mongo.DisconnectDB(client); err != nil {
					logger.Error("Failed to disconnect MongoDB", zap.Error(err))
				}
			},
		}, nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}
