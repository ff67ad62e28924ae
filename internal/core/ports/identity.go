package ports

import (
	"context"

	"github.com/weinhaus/storefront/internal/core/domain"
)

// IdentityResolver turns a session token into the authoritative principal.
// A nil principal with a nil error means "not logged in". The only error
// returned is a wrapped domain.ErrBackend from the user store.
type IdentityResolver interface {
	Resolve(ctx context.Context, token string) (*domain.Principal, error)
}
