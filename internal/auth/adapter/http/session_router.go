package http

import (
	"time"

	"workvista/internal/auth/domain/repository"
	"workvista/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
)

// SessionHTTPHandler handles session token issuance and teardown. No credential
// check happens here: identity proof is assumed upstream, this layer only mints
// and clears the cookie-carried session.
type SessionHTTPHandler struct {
	tokenSvc       repository.TokenService
	log            logger.Logger
	cookieName     string
	cookiePath     string
	cookieDomain   string
	cookieMaxAge   int
	cookieSecure   bool
	cookieHTTPOnly bool
	cookieSameSite string
}

// NewSessionHTTPHandler creates a new session HTTP handler
func NewSessionHTTPHandler(
	tokenSvc repository.TokenService,
	log logger.Logger,
	cookieName, cookiePath, cookieDomain string,
	cookieMaxAge int,
	cookieSecure, cookieHTTPOnly bool,
	cookieSameSite string,
) *SessionHTTPHandler {
	return &SessionHTTPHandler{
		tokenSvc:       tokenSvc,
		log:            log,
		cookieName:     cookieName,
		cookiePath:     cookiePath,
		cookieDomain:   cookieDomain,
		cookieMaxAge:   cookieMaxAge,
		cookieSecure:   cookieSecure,
		cookieHTTPOnly: cookieHTTPOnly,
		cookieSameSite: cookieSameSite,
	}
}

// SetupSessionRoutes registers the session lifecycle routes. Both are public:
// issuance has no prior session and clear must succeed regardless of one.
func (h *SessionHTTPHandler) SetupSessionRoutes(router fiber.Router) {
	router.Post("/access-token", h.IssueToken)
	router.Post("/clearCookie", h.ClearCookie)
}

// IssueToken mints a session token for the identity in the request body and
// sets it as the session cookie
func (h *SessionHTTPHandler) IssueToken(c *fiber.Ctx) error {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "email is required",
		})
	}

	token, err := h.tokenSvc.Issue(c.Context(), req.Email)
	if err != nil {
		h.log.WithComponent("session").Errorf("failed to issue token: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal Server Error",
		})
	}

	h.setCookie(c, token)

	return c.JSON(fiber.Map{"success": true})
}

// ClearCookie instructs the client to discard the session cookie immediately,
// whether or not one was present
func (h *SessionHTTPHandler) ClearCookie(c *fiber.Ctx) error {
	h.clearCookie(c)
	return c.JSON(fiber.Map{"success": true})
}

func (h *SessionHTTPHandler) setCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     h.cookieName,
		Value:    token,
		Path:     h.cookiePath,
		Domain:   h.cookieDomain,
		MaxAge:   h.cookieMaxAge,
		Secure:   h.cookieSecure,
		HTTPOnly: h.cookieHTTPOnly,
		SameSite: h.cookieSameSite,
		Expires:  time.Now().Add(time.Duration(h.cookieMaxAge) * time.Second),
	})
}

func (h *SessionHTTPHandler) clearCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     h.cookiePath,
		Domain:   h.cookieDomain,
		MaxAge:   -1,
		Secure:   h.cookieSecure,
		HTTPOnly: h.cookieHTTPOnly,
		SameSite: h.cookieSameSite,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
}
