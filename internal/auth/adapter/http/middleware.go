package http

import (
	"context"

	"workvista/internal/auth/domain/repository"
	"workvista/internal/shared/contextkeys"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

// AuthMiddleware verifies the session cookie and attaches the decoded identity
// to the request context. It never touches the store.
type AuthMiddleware struct {
	tokenSvc   repository.TokenService
	cookieName string
}

// NewAuthMiddleware creates a new session middleware
func NewAuthMiddleware(tokenSvc repository.TokenService, cookieName string) *AuthMiddleware {
	return &AuthMiddleware{
		tokenSvc:   tokenSvc,
		cookieName: cookieName,
	}
}

// RequestID middleware tags every request with a correlation ID
func (m *AuthMiddleware) RequestID() fiber.Handler {
	return requestid.New(requestid.Config{
		Header:     "X-Request-ID",
		ContextKey: string(contextkeys.RequestIDKey),
		Generator:  uuid.NewString,
	})
}

// Protect returns middleware that requires a valid session cookie.
// A missing cookie rejects with 401 before any handler logic runs; a cookie
// that fails signature or expiry checks rejects with 403.
func (m *AuthMiddleware) Protect() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(m.cookieName)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "unauthorized access",
			})
		}

		claims, err := m.tokenSvc.Verify(c.Context(), token)
		if err != nil {
			// Expired, forged and malformed tokens all answer the same way: a
			// present-but-unusable session is a 403, never a 401.
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Forbidden",
			})
		}

		ctx := c.UserContext()
		ctx = context.WithValue(ctx, contextkeys.UserEmailKey, claims.Email)
		c.SetUserContext(ctx)

		return c.Next()
	}
}
