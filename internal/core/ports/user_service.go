package ports

import (
	"context"

	"github.com/weinhaus/storefront/internal/core/domain"
)

// UserService covers administrative changes to user records.
type UserService interface {
	ChangeRole(ctx context.Context, actor *domain.Principal, userID string, role domain.Role) (*domain.User, error)
}
