package di

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/feralclo/release-engine/internal/cache"
	"github.com/feralclo/release-engine/internal/handler"
	"github.com/feralclo/release-engine/internal/repository"
	"github.com/feralclo/release-engine/internal/service"
	"github.com/feralclo/release-engine/pkg/config"
	"github.com/feralclo/release-engine/pkg/database"
)

// Container holds all dependencies for the release engine service
type Container struct {
	// Infrastructure
	DB    *database.PostgresDB
	Redis redis.UniversalClient

	// Repositories
	TierRepo     repository.TierRepository
	SettingsRepo repository.SettingsRepository

	// Cache
	AvailabilityCache service.AvailabilityCache

	// Services
	TierService  service.TierService
	GroupService service.GroupService

	// Handlers
	HealthHandler *handler.HealthHandler
	TierHandler   *handler.TierHandler
	GroupHandler  *handler.GroupHandler
}

// ContainerConfig contains configuration for building the container
type ContainerConfig struct {
	DB    *database.PostgresDB
	Redis redis.UniversalClient
	Cfg   *config.Config
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *ContainerConfig) *Container {
	c := &Container{
		DB:    cfg.DB,
		Redis: cfg.Redis,
	}

	// Initialize repositories
	if c.DB != nil {
		c.TierRepo = repository.NewPostgresTierRepository(c.DB.Pool())
		c.SettingsRepo = repository.NewPostgresSettingsRepository(c.DB.Pool())
	} else {
		c.TierRepo = repository.NewMemoryTierRepository()
		c.SettingsRepo = repository.NewMemorySettingsRepository()
	}

	// Initialize cache
	if c.Redis != nil {
		var ttl time.Duration
		if cfg.Cfg != nil {
			ttl = cfg.Cfg.Redis.CacheTTL
		}
		c.AvailabilityCache = cache.NewRedisAvailabilityCache(c.Redis, ttl)
	}

	// Initialize services
	c.TierService = service.NewTierService(c.TierRepo, c.SettingsRepo, c.AvailabilityCache)
	c.GroupService = service.NewGroupService(c.TierRepo, c.SettingsRepo, c.AvailabilityCache)

	// Initialize handlers
	c.HealthHandler = handler.NewHealthHandler(c.DB, c.Redis)
	c.TierHandler = handler.NewTierHandler(c.TierService)
	c.GroupHandler = handler.NewGroupHandler(c.GroupService)

	return c
}
