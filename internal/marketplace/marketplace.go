package marketplace

import (
	"fmt"

	authhttp "workvista/internal/auth/adapter/http"
	markethttp "workvista/internal/marketplace/adapter/http"
	"workvista/internal/marketplace/adapter/persistence/mongodb"
	"workvista/internal/marketplace/adapter/persistence/rediscache"
	"workvista/internal/marketplace/config"
	"workvista/internal/marketplace/usecase"
	"workvista/internal/shared/eventbus"
	"workvista/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// MarketplaceModule wires the listings/bids resource layer: Mongo
// repositories, the Redis feed cache, the guarded usecase and the HTTP surface.
type MarketplaceModule struct {
	usecase usecase.MarketplaceUsecase
	handler *markethttp.MarketplaceHTTPHandler
	config  *config.Config
}

// NewMarketplaceModule creates a new marketplace module instance
func NewMarketplaceModule(
	db *mongo.Database,
	redisClient *redis.Client,
	cfg *config.Config,
	log logger.Logger,
	zapLog *zap.Logger,
) (*MarketplaceModule, error) {
	listingRepo, err := mongodb.NewMongoListingRepository(db)
	if err != nil {
		return nil, fmt.Errorf("failed to create listing repository: %w", err)
	}

	bidRepo, err := mongodb.NewMongoBidRepository(db)
	if err != nil {
		return nil, fmt.Errorf("failed to create bid repository: %w", err)
	}

	cache := rediscache.NewRedisListingCache(redisClient, cfg.FeedCacheTTL, log)

	bus := eventbus.NewEventBus(log.WithComponent("marketplace_events"))
	usecase.RegisterFeedInvalidation(bus, cache)

	uc := usecase.NewMarketplaceUsecase(listingRepo, bidRepo, cache, bus, zapLog)
	handler := markethttp.NewMarketplaceHTTPHandler(uc, log)

	return &MarketplaceModule{
		usecase: uc,
		handler: handler,
		config:  cfg,
	}, nil
}

// RegisterRoutes registers marketplace routes with the provided router,
// guarded by the session middleware
func (mm *MarketplaceModule) RegisterRoutes(router fiber.Router, middleware *authhttp.AuthMiddleware) {
	mm.handler.SetupMarketplaceRoutes(router, middleware)
}

// GetUsecase returns the marketplace usecase for external access
func (mm *MarketplaceModule) GetUsecase() usecase.MarketplaceUsecase {
	return mm.usecase
}

// Stop performs cleanup when the module is shut down
func (mm *MarketplaceModule) Stop() error {
	// Store and cache clients are owned by the caller.
	return nil
}
