package ports

import (
	"context"
	"time"

	"github.com/weinhaus/storefront/internal/core/domain"
)

// RegisterInput carries a customer self-registration.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Phone    string
}

// Session is a freshly issued session credential.
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*Session, error)
}
