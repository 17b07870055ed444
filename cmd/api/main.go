package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-candidate-backend/config"
	_ "go-candidate-backend/docs" // Important for Swagger
	"go-candidate-backend/internal/cache"
	v1 "go-candidate-backend/internal/delivery/http/v1"
	"go-candidate-backend/internal/domain"
	"go-candidate-backend/internal/repository/gormstore"
	"go-candidate-backend/internal/repository/memory"
	"go-candidate-backend/internal/repository/postgres"
	"go-candidate-backend/internal/usecase"
	"go-candidate-backend/migrations"
	"go-candidate-backend/pkg/database"
	"go-candidate-backend/pkg/logger"
	"go-candidate-backend/pkg/redis"
	"go-candidate-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
)

// @title           Candidate Records API
// @version         1.0
// @description     Stores candidates with their educations, work experiences and CV metadata.
// @host            localhost:8080
// @BasePath        /v1
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init(cfg.LogLevel)
	gin.SetMode(cfg.GinMode)
	logger.Log.Info("Starting candidate backend", "port", cfg.Port, "db_driver", cfg.DBDriver)

	ctx := context.Background()
	checks := map[string]usecase.HealthCheck{}

	// 3. Setup Store
	store, closeStore, err := openStore(ctx, cfg, checks)
	if err != nil {
		logger.Log.Error("Failed to open store", "driver", cfg.DBDriver, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	// 4. Setup Redis (optional)
	var redisClient *goredis.Client
	var candidateCache domain.CandidateCache = cache.Nop{}
	if cfg.RedisURL != "" {
		redisClient, err = redis.NewClient(ctx, redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword})
		if err != nil {
			logger.Log.Warn("Redis unavailable, continuing without cache", "error", err)
		} else {
			defer redisClient.Close()
			ttl := time.Duration(cfg.CacheTTLSeconds) * time.Second
			candidateCache = cache.NewRedisCandidateCache(redisClient, ttl)
			client := redisClient
			checks["redis"] = func(ctx context.Context) error { return redis.HealthCheck(ctx, client) }
		}
	}

	// 5. Setup UseCases
	candidateUC := usecase.NewCandidateUsecase(store, candidateCache, validation.New())
	healthUC := usecase.NewHealthUsecase(checks)

	// 6. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		CandidateUC: candidateUC,
		HealthUC:    healthUC,
		Redis:       redisClient,
		Config:      cfg,
	})

	// 7. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}

// openStore builds the store selected by DB_DRIVER, runs migrations when
// enabled and registers the database health check.
func openStore(ctx context.Context, cfg *config.Config, checks map[string]usecase.HealthCheck) (domain.Store, func(), error) {
	switch cfg.DBDriver {
	case config.DriverMemory:
		logger.Log.Warn("Using in-memory store; data is lost on restart")
		return memory.NewStore(), func() {}, nil

	case config.DriverGorm:
		db, err := gormstore.Open(cfg.DBUrl)
		if err != nil {
			return nil, nil, err
		}
		store := gormstore.NewStore(db)
		if cfg.RunMigrations {
			if err := store.AutoMigrate(ctx); err != nil {
				return nil, nil, err
			}
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, err
		}
		checks["database"] = sqlDB.PingContext
		return store, func() { _ = sqlDB.Close() }, nil

	default:
		if cfg.RunMigrations {
			if err := database.Migrate(ctx, cfg.DBUrl, migrations.FS); err != nil {
				return nil, nil, err
			}
		}
		pool, err := database.NewPostgresConnection(ctx, cfg.DBUrl)
		if err != nil {
			return nil, nil, err
		}
		checks["database"] = pool.Ping
		return postgres.NewStore(pool), pool.Close, nil
	}
}
