package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/forgo/signup/api/internal/catalog"
	"github.com/forgo/signup/api/internal/config"
	"github.com/forgo/signup/api/internal/database"
	"github.com/forgo/signup/api/internal/handler"
	"github.com/forgo/signup/api/internal/logger"
	"github.com/forgo/signup/api/internal/metrics"
	"github.com/forgo/signup/api/internal/middleware"
	"github.com/forgo/signup/api/internal/repository"
	"github.com/forgo/signup/api/internal/service"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logging
	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if cfg.IsProduction() && slices.Contains(cfg.Server.AllowedOrigins, "*") {
		log.Warn("CORS allows any origin in production")
	}

	activities, err := catalog.Load(cfg.Store.ActivitiesFile)
	if err != nil {
		log.Fatal("failed to load activity catalog", zap.Error(err))
	}

	ctx := context.Background()

	store, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to open activity store", zap.String("driver", cfg.Store.Driver), zap.Error(err))
	}
	defer closeStore()

	m := metrics.New()

	directoryService := service.NewDirectoryService(service.DirectoryServiceConfig{
		Store:    store,
		Catalog:  activities,
		Logger:   log,
		Recorder: m,
	})
	if err := directoryService.Init(ctx); err != nil {
		log.Fatal("failed to seed activity directory", zap.Error(err))
	}

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
		Rate:   cfg.RateLimit.Rate,
		Window: cfg.RateLimit.Window,
		Burst:  cfg.RateLimit.Burst,
	})
	defer rateLimiter.Stop()

	router := handler.NewRouter(handler.RouterConfig{
		Activities:     directoryService,
		Store:          directoryService,
		Logger:         log,
		Metrics:        m,
		RateLimiter:    rateLimiter,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		StaticDir:      cfg.Server.StaticDir,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info("starting server",
			zap.String("port", cfg.Server.Port),
			zap.String("env", cfg.Server.Env),
			zap.String("store", cfg.Store.Driver),
			zap.Int("activities", len(activities)),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	log.Info("server exited")
}

// openStore connects the configured backend. The returned func releases it.
func openStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (service.DirectoryStore, func(), error) {
	switch cfg.Store.Driver {
	case config.StoreRedis:
		rc := database.NewRedis(database.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rc.Ping(ctx); err != nil {
			_ = rc.Close()
			return nil, nil, err
		}
		log.Info("connected to redis", zap.String("addr", cfg.Redis.Addr), zap.Int("db", cfg.Redis.DB))
		return repository.NewRedisDirectory(rc.Client, cfg.Redis.KeyPrefix), func() { _ = rc.Close() }, nil

	case config.StoreSurrealDB:
		db := database.NewSurrealDB(database.Config{
			Host:      cfg.Database.Host,
			Port:      cfg.Database.Port,
			User:      cfg.Database.User,
			Password:  cfg.Database.Password,
			Namespace: cfg.Database.Namespace,
			Database:  cfg.Database.Database,
		})
		if err := db.Connect(ctx); err != nil {
			return nil, nil, err
		}
		log.Info("connected to database",
			zap.String("host", cfg.Database.Host),
			zap.String("database", cfg.Database.Database),
		)
		return repository.NewSurrealDirectory(db), func() { _ = db.Close() }, nil

	default:
		return repository.NewMemoryDirectory(), func() {}, nil
	}
}
