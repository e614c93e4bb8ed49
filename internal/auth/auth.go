package auth

import (
	"fmt"

	authhttp "workvista/internal/auth/adapter/http"
	"workvista/internal/auth/adapter/security"
	"workvista/internal/auth/config"
	"workvista/internal/auth/domain/repository"
	"workvista/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
)

// AuthModule represents the complete session module: token codec, session
// middleware and the issue/clear HTTP surface.
type AuthModule struct {
	tokenSvc repository.TokenService
	handler  *authhttp.SessionHTTPHandler
	config   *config.Config
}

// NewAuthModule creates a new session module instance
func NewAuthModule(cfg *config.Config, log logger.Logger) (*AuthModule, error) {
	tokenSvc, err := security.NewJWTokenService(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create token service: %w", err)
	}

	handler := authhttp.NewSessionHTTPHandler(
		tokenSvc,
		log,
		cfg.CookieName,
		cfg.CookiePath,
		cfg.CookieDomain,
		int(cfg.AccessTokenTTL.Seconds()),
		cfg.CookieSecure,
		cfg.CookieHTTPOnly,
		cfg.CookieSameSite,
	)

	return &AuthModule{
		tokenSvc: tokenSvc,
		handler:  handler,
		config:   cfg,
	}, nil
}

// RegisterRoutes registers session routes with the provided router
func (am *AuthModule) RegisterRoutes(router fiber.Router) {
	am.handler.SetupSessionRoutes(router)
}

// GetTokenService returns the token codec for external access
func (am *AuthModule) GetTokenService() repository.TokenService {
	return am.tokenSvc
}

// GetMiddleware returns the session middleware
func (am *AuthModule) GetMiddleware() *authhttp.AuthMiddleware {
	return authhttp.NewAuthMiddleware(am.tokenSvc, am.config.CookieName)
}

// Stop performs cleanup when the module is shut down
func (am *AuthModule) Stop() error {
	// Tokens are stateless, nothing to release.
	return nil
}
