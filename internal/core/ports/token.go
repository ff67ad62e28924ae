package ports

import (
	"time"

	"github.com/weinhaus/storefront/internal/core/domain"
)

// TokenVerifier validates an opaque session token and extracts its claims.
// Any failure is reported as domain.ErrInvalidToken.
type TokenVerifier interface {
	Verify(token string) (*domain.Claims, error)
}

// TokenIssuer signs session tokens for authenticated users.
type TokenIssuer interface {
	Issue(user *domain.User) (token string, expiresAt time.Time, err error)
}
