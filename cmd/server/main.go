package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fitai/plan-service/internal/ai"
	"fitai/plan-service/internal/api"
	"fitai/plan-service/internal/config"
	"fitai/plan-service/internal/logger"
	"fitai/plan-service/internal/repository"
	"fitai/plan-service/internal/repository/memory"
	"fitai/plan-service/internal/repository/mongo"
	"fitai/plan-service/internal/resolver"
	"fitai/plan-service/internal/service"
	"fitai/plan-service/internal/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type repositories struct {
	users     repository.UserRepository
	exercises repository.ExerciseRepository
	misses    repository.MissingExerciseRepository
	close     func()
}

// @title FitAI Plan API
// @version 1.0
// @description Diet and workout plan generation, food photo analysis and exercise catalog administration.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}

	zlog, err := logger.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		log.Fatalf("FATAL: Could not build logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	if err := run(cfg, zlog); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg config.Config, zlog *zap.Logger) error {
	zlog.Info("starting plan service",
		zap.String("address", cfg.Server.Address),
		zap.String("database_driver", cfg.Database.Driver),
		zap.String("ai_model", cfg.AI.Model),
		zap.Bool("s3_enabled", cfg.S3.Enabled))

	ctx := context.Background()

	// --- Repositories ---
	repos, err := openRepositories(ctx, cfg.Database, zlog)
	if err != nil {
		return err
	}
	defer repos.close()

	// --- Storage ---
	var fileStorage storage.FileStorage
	if cfg.S3.Enabled {
		fileStorage, err = storage.NewS3Storage(ctx, cfg.S3, zlog.Named("storage"))
		if err != nil {
			return fmt.Errorf("init s3 storage: %w", err)
		}
	} else {
		zlog.Info("video storage disabled; upload endpoints will fail")
	}

	// --- Services ---
	aiClient := ai.NewClient(ai.Config{
		BaseURL:     cfg.AI.BaseURL,
		APIKey:      cfg.AI.APIKey,
		Model:       cfg.AI.Model,
		VisionModel: cfg.AI.VisionModel,
		Timeout:     cfg.AI.Timeout,
		Temperature: cfg.AI.Temperature,
	}, zlog.Named("ai"))
	if cfg.AI.APIKey == "" {
		zlog.Warn("ai.api_key is empty; generation requests will fail")
	}

	var cache resolver.Cache
	if cfg.Resolver.CacheEnabled {
		cache = resolver.NewMapCache()
	}
	exerciseResolver := resolver.New(repos.exercises, repos.misses, zlog.Named("resolver"),
		resolver.WithCache(cache),
		resolver.WithParallelism(cfg.Resolver.Parallelism),
		resolver.WithMissLogTimeout(cfg.Resolver.MissLogTimeout),
	)

	services := api.Services{
		Auth:     service.NewAuthService(repos.users, cfg.JWT.Secret, cfg.JWT.Expiration),
		Plan:     service.NewPlanService(aiClient, exerciseResolver, zlog.Named("plan")),
		Food:     service.NewFoodService(aiClient, zlog.Named("food")),
		Exercise: service.NewExerciseService(repos.exercises, repos.misses, fileStorage, zlog.Named("catalog")),
	}

	// --- HTTP ---
	if !cfg.Log.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := api.NewRouter(services, cfg.JWT.Secret, cfg.Server.AllowedOrigins, zlog)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// --- Graceful Shutdown ---
	serveErr := make(chan error, 1)
	go func() {
		zlog.Info("listening", zap.String("address", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serveErr:
		return fmt.Errorf("listen: %w", err)
	case sig := <-quit:
		zlog.Info("shutting down", zap.String("signal", sig.String()))
	}

	// Give in-flight generation calls time to finish.
	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), cfg.AI.Timeout+5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(ctxShutdown); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}
	zlog.Info("server exiting")
	return nil
}

func openRepositories(ctx context.Context, cfg config.DatabaseConfig, zlog *zap.Logger) (*repositories, error) {
	if cfg.Driver == "memory" {
		zlog.Warn("using in-memory repositories; data is lost on restart")
		return &repositories{
			users:     memory.NewUserRepository(),
			exercises: memory.NewExerciseRepository(),
			misses:    memory.NewMissingExerciseRepository(),
			close:     func() {},
		}, nil
	}

	client, err := mongo.ConnectDB(ctx, cfg.URI)
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	db := client.Database(cfg.Name)
	zlog.Info("database connection established", zap.String("database", cfg.Name))

	indexCtx, cancelIdx := context.WithTimeout(ctx, time.Minute)
	defer cancelIdx()
	if err := mongo.EnsureIndexes(indexCtx, db); err != nil {
		// Non-fatal: queries work without indexes.
		zlog.Error("ensuring indexes", zap.Error(err))
	}

	return &repositories{
		users:     mongo.NewMongoUserRepository(db),
		exercises: mongo.NewMongoExerciseRepository(db),
		misses:    mongo.NewMongoMissingExerciseRepository(db),
		close: func() {
			if err := mongo.DisconnectDB(client); err != nil {
				zlog.Error("disconnecting mongodb", zap.Error(err))
			}
		},
	}, nil
}
