package main

// @title EcoTrack API
// @version 1.0.0
// @description Сервис гражданских наблюдений за дикой природой и экологических отчётов.
// @description
// @description Основные возможности:
// @description - Каталог видов и городов
// @description - Приём наблюдений и отчётов от жителей
// @description - Модерация наблюдений и отчётов администраторами
// @description - Ежедневная статистика для дашборда

// @contact.name EcoTrack Support
// @contact.email support@ecotrack.local

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:5000
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/ecotrack-service/docs"
	"github.com/ecotrack-service/internal/config"
	httpDelivery "github.com/ecotrack-service/internal/delivery/http"
	"github.com/ecotrack-service/internal/delivery/http/handler"
	"github.com/ecotrack-service/internal/domain/repository"
	"github.com/ecotrack-service/internal/pkg/logger"
	"github.com/ecotrack-service/internal/pkg/token"
	"github.com/ecotrack-service/internal/repository/cache"
	redisRepo "github.com/ecotrack-service/internal/repository/redis"
	"github.com/ecotrack-service/internal/repository/sqlstore"
	"github.com/ecotrack-service/internal/usecase"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, cfg.Server.Env)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting EcoTrack API")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("db_driver", cfg.Database.Driver),
		zap.String("activity_mode", cfg.Activity.Mode),
	)

	// 3. Connect to the database
	db, err := sqlstore.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database connection", zap.Error(err))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if cfg.Database.AutoMigrate {
		if err := sqlstore.Migrate(ctx, db); err != nil {
			log.Fatal("Failed to apply migrations", zap.Error(err))
		}
		log.Info("Migrations applied")
	}

	// 4. Connect to Redis (optional)
	var (
		redisClient *cache.Redis
		cacheRepo   repository.CacheRepository
		streamRepo  repository.StreamRepository
		redisHealth handler.Pinger
	)
	if cfg.RedisEnabled() {
		redisClient, err = cache.NewRedis(&cfg.Redis, log)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Failed to close Redis connection", zap.Error(err))
			}
		}()
		cacheRepo = cache.NewCacheRepository(redisClient)
		streamRepo = redisRepo.NewStreamRepository(redisClient.Client(), log)
		redisHealth = redisClient
	} else {
		// отозванные токены живут только до рестарта процесса
		log.Warn("REDIS_HOST not set, using in-memory session revocation cache")
		cacheRepo = cache.NewMemoryCache()
	}

	// 5. Health checks
	if err := db.Health(ctx); err != nil {
		log.Fatal("Database health check failed", zap.Error(err))
	}
	log.Info("All connections healthy")

	// 6. Initialize Repositories
	store := sqlstore.NewStore(db, log)
	log.Info("Repositories initialized")

	// 7. Initialize Use Cases
	activity, err := usecase.NewActivityRecorder(cfg.Activity, store, streamRepo)
	if err != nil {
		log.Fatal("Failed to initialize activity recorder", zap.Error(err))
	}

	speciesUC := usecase.NewSpeciesUseCase(store, log)
	locationUC := usecase.NewLocationUseCase(store, log)
	sightingUC := usecase.NewSightingUseCase(store, activity, log)
	dashboardUC := usecase.NewDashboardUseCase(store, log)
	reportUC := usecase.NewReportUseCase(store, dashboardUC, activity, log)
	authUC := usecase.NewAuthUseCase(
		store,
		token.NewManager(cfg.Session.Secret, cfg.Session.TTL),
		cacheRepo,
		activity,
		log,
	)
	adminUC := usecase.NewAdminUseCase(store, activity, log)

	log.Info("Use cases initialized")

	// 8. Initialize HTTP Handlers
	pageHandler, err := handler.NewPageHandler(speciesUC, locationUC, reportUC, log)
	if err != nil {
		log.Fatal("Failed to parse page templates", zap.Error(err))
	}

	handlers := httpDelivery.Handlers{
		Species:   handler.NewSpeciesHandler(speciesUC, log),
		Locations: handler.NewLocationHandler(locationUC, log),
		Sightings: handler.NewSightingHandler(sightingUC, log),
		Reports:   handler.NewReportHandler(reportUC, log),
		Dashboard: handler.NewDashboardHandler(dashboardUC, log),
		Auth:      handler.NewAuthHandler(authUC, cfg.Session, log),
		Admin:     handler.NewAdminHandler(adminUC, log),
		Health:    handler.NewHealthHandler(store, redisHealth, log),
		Pages:     pageHandler,
	}

	log.Info("HTTP handlers initialized")

	// 9. Initialize HTTP Server
	server := httpDelivery.NewServer(cfg, log, authUC, handlers)

	log.Info("HTTP server initialized")

	// 10. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 11. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
