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

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/feralclo/release-engine/internal/di"
	"github.com/feralclo/release-engine/pkg/config"
	"github.com/feralclo/release-engine/pkg/database"
	"github.com/feralclo/release-engine/pkg/logger"
	"github.com/feralclo/release-engine/pkg/middleware"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(&logger.Config{
		Level:       cfg.Log.Level,
		ServiceName: cfg.App.Name,
		Development: cfg.Log.Development,
		OutputPath:  cfg.Log.OutputPath,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	startupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.NewPostgres(startupCtx, postgresConfig(cfg))
	if err != nil {
		logger.Error("failed to connect to postgres", zap.Error(err))
		os.Exit(1)
	}
	defer db.Close()

	var redisClient redis.UniversalClient
	if rc := connectRedis(startupCtx, cfg); rc != nil {
		redisClient = rc
		defer rc.Close()
	}

	container := di.NewContainer(&di.ContainerConfig{
		DB:    db,
		Redis: redisClient,
		Cfg:   cfg,
	})

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger())
	registerRoutes(router, container)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	srvErr := make(chan error, 1)
	go func() {
		logger.Info("release engine listening",
			zap.String("addr", server.Addr),
			zap.String("environment", cfg.App.Environment))
		srvErr <- server.ListenAndServe()
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", zap.Error(err))
		}
	case <-stopCtx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server shutdown error", zap.Error(err))
	}
	logger.Info("server stopped")
}

// registerRoutes wires all endpoints onto the router
func registerRoutes(router *gin.Engine, c *di.Container) {
	router.GET("/health", c.HealthHandler.Health)

	v1 := router.Group("/api/v1")
	{
		events := v1.Group("/events/:id")
		{
			events.GET("/groups", c.GroupHandler.List)
			events.POST("/groups", c.GroupHandler.Create)
			events.PATCH("/groups/:name", c.GroupHandler.Rename)
			events.DELETE("/groups/:name", c.GroupHandler.Delete)
			events.POST("/groups/:name/move", c.GroupHandler.Move)
			events.PUT("/groups/:name/release-mode", c.GroupHandler.SetReleaseMode)

			events.GET("/tiers", c.TierHandler.List)
			events.POST("/tiers", c.TierHandler.Create)
			events.POST("/tiers/reorder", c.TierHandler.Reorder)
			events.PATCH("/tiers/:tierID", c.TierHandler.Update)
			events.DELETE("/tiers/:tierID", c.TierHandler.Delete)
			events.PUT("/tiers/:tierID/status", c.TierHandler.SetStatus)
			events.PUT("/tiers/:tierID/group", c.TierHandler.AssignGroup)

			events.GET("/availability", c.TierHandler.GetAvailability)
		}
	}
}

// postgresConfig maps the app config onto the database package config
func postgresConfig(cfg *config.Config) *database.PostgresConfig {
	pc := database.DefaultPostgresConfig()
	pc.Host = cfg.Database.Host
	pc.Port = cfg.Database.Port
	pc.User = cfg.Database.User
	pc.Password = cfg.Database.Password
	pc.Database = cfg.Database.DBName
	pc.SSLMode = cfg.Database.SSLMode
	if cfg.Database.MaxOpenConns > 0 {
		pc.MaxConns = int32(cfg.Database.MaxOpenConns)
	}
	if cfg.Database.MinIdleConns > 0 {
		pc.MinConns = int32(cfg.Database.MinIdleConns)
	}
	if cfg.Database.ConnMaxLifetime > 0 {
		pc.MaxConnLifetime = cfg.Database.ConnMaxLifetime
	}
	return pc
}

// connectRedis connects to Redis for the availability cache. The cache is
// optional: on failure the service runs uncached.
func connectRedis(ctx context.Context, cfg *config.Config) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Redis.Addr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn("redis unavailable, availability cache disabled", zap.Error(err))
		client.Close()
		return nil
	}
	return client
}
