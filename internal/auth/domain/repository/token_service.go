package repository

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the identity payload embedded in a session token. The email is the
// only identifier this service trusts; it is compared byte-for-byte against the
// identity fields of every scoped request.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies session tokens. Tokens are self-contained
// and never persisted server-side; expiry is the only invalidation mechanism.
type TokenService interface {
	// Issue produces a signed token embedding the identity claim with an
	// absolute expiry relative to now.
	Issue(ctx context.Context, email string) (string, error)
	// Verify checks signature and expiry and returns the embedded claims
	// unchanged on success.
	Verify(ctx context.Context, tokenString string) (*Claims, error)
}
