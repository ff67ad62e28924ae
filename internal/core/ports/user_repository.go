package ports

import (
	"context"
	"time"

	"github.com/weinhaus/storefront/internal/core/domain"
)

// UserRepository defines persistence operations for user records.
type UserRepository interface {
	// FindByID returns domain.ErrUserNotFound when no record exists.
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// Create returns domain.ErrUserExists on a duplicate email.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	UpdateRole(ctx context.Context, id string, role domain.Role, at time.Time) error
}
