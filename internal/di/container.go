package di

import (
	"context"
	"fmt"
	"sync"
	"time"

	"workvista/internal/auth"
	authconfig "workvista/internal/auth/config"
	"workvista/internal/marketplace"
	marketconfig "workvista/internal/marketplace/config"
	"workvista/internal/shared/logger"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Container holds the process-wide dependencies and module instances with
// proper lifecycle management. Secrets and connections are established once at
// startup and held for the process lifetime.
type Container struct {
	mu sync.RWMutex

	// Module instances
	AuthModule        *auth.AuthModule
	MarketplaceModule *marketplace.MarketplaceModule

	// Connections
	MongoDB     *mongo.Database
	RedisClient *redis.Client

	// Configuration
	AuthConfig        *authconfig.Config
	MarketplaceConfig *marketconfig.Config

	// Loggers
	Logger    logger.Logger
	ZapLogger *zap.Logger
}

// NewContainer creates a new DI container
func NewContainer() *Container {
	return &Container{}
}

// InitializeAuth initializes the session module
func (c *Container) InitializeAuth(cfg *authconfig.Config) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.AuthConfig = cfg

	if c.Logger == nil {
		c.Logger = logger.NewLogger()
	}

	authModule, err := auth.NewAuthModule(cfg, c.Logger)
	if err != nil {
		return fmt.Errorf("failed to create auth module: %w", err)
	}

	c.AuthModule = authModule
	return nil
}

// InitializeMarketplace initializes the marketplace module. The session module
// must be initialized first: its middleware guards the resource routes.
func (c *Container) InitializeMarketplace(mongoDB *mongo.Database, redisClient *redis.Client, cfg *marketconfig.Config) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.AuthModule == nil {
		return fmt.Errorf("auth module must be initialized before the marketplace module")
	}
	if mongoDB == nil {
		return fmt.Errorf("MongoDB must be initialized before the marketplace module")
	}

	c.MongoDB = mongoDB
	c.RedisClient = redisClient
	c.MarketplaceConfig = cfg

	if c.Logger == nil {
		c.Logger = logger.NewLogger()
	}
	if c.ZapLogger == nil {
		zapLog, err := zap.NewProduction()
		if err != nil {
			return fmt.Errorf("failed to create zap logger: %w", err)
		}
		c.ZapLogger = zapLog
	}

	marketplaceModule, err := marketplace.NewMarketplaceModule(mongoDB, redisClient, cfg, c.Logger, c.ZapLogger)
	if err != nil {
		return fmt.Errorf("failed to create marketplace module: %w", err)
	}

	c.MarketplaceModule = marketplaceModule
	return nil
}

// GetAuthModule returns the session module instance
func (c *Container) GetAuthModule() *auth.AuthModule {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.AuthModule
}

// GetMarketplaceModule returns the marketplace module instance
func (c *Container) GetMarketplaceModule() *marketplace.MarketplaceModule {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.MarketplaceModule
}

// HealthCheck pings the shared connections
func (c *Container) HealthCheck(ctx context.Context) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.MongoDB != nil {
		if err := c.MongoDB.Client().Ping(ctx, nil); err != nil {
			return fmt.Errorf("MongoDB health check failed: %w", err)
		}
	}

	if c.RedisClient != nil {
		if err := c.RedisClient.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("Redis health check failed: %w", err)
		}
	}

	return nil
}

// Cleanup shuts modules down in reverse order of initialization
func (c *Container) Cleanup(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var errs []error

	if c.MarketplaceModule != nil {
		if err := c.MarketplaceModule.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("failed to stop marketplace module: %w", err))
		}
		c.MarketplaceModule = nil
	}

	if c.AuthModule != nil {
		if err := c.AuthModule.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("failed to stop auth module: %w", err))
		}
		c.AuthModule = nil
	}

	if c.ZapLogger != nil {
		// Sync flushes buffered entries; stdout sync errors are harmless here.
		_ = c.ZapLogger.Sync()
	}

	if len(errs) > 0 {
		return fmt.Errorf("cleanup errors: %v", errs)
	}
	return nil
}

// Close gracefully shuts down all services in the container with timeout
func (c *Container) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return c.Cleanup(ctx)
}
