package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/weinhaus/storefront/internal/core/domain"
	"github.com/weinhaus/storefront/internal/core/ports"
)

// UserService handles admin changes to user records.
type UserService struct {
	users ports.UserRepository
	views ports.ViewRegistry
	log   zerolog.Logger
	now   func() time.Time
}

func NewUserService(users ports.UserRepository, views ports.ViewRegistry, log zerolog.Logger) *UserService {
	return &UserService{users: users, views: views, log: log, now: time.Now}
}

// ChangeRole sets the stored role of userID. The change applies to that
// user's next request because sessions re-read the role from the store.
func (s *UserService) ChangeRole(ctx context.Context, actor *domain.Principal, userID string, role domain.Role) (*domain.User, error) {
	if !actor.HasRole(domain.RoleAdmin) {
		return nil, fmt.Errorf("change role: %w", domain.ErrUnauthorized)
	}
	parsed := domain.ParseRole(string(role))
	if parsed == "" {
		return nil, fmt.Errorf("%w: role %q", domain.ErrInvalidInput, role)
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, wrapBackend("find user", err)
	}
	if user.Role == parsed {
		return user, nil
	}

	at := s.now().UTC()
	if err := s.users.UpdateRole(ctx, userID, parsed, at); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, wrapBackend("update user role", err)
	}

	previous := user.Role
	user.Role = parsed
	user.UpdatedAt = at

	if s.views != nil {
		if err := s.views.Invalidate(ctx, domain.ViewDashboard, domain.ViewScanner); err != nil {
			s.log.Warn().Err(err).Str("user_id", userID).Msg("view invalidation failed")
		}
	}

	s.log.Info().
		Str("user_id", userID).
		Str("from", string(previous)).
		Str("to", string(parsed)).
		Str("actor_id", actor.ID).
		Msg("user role changed")
	return user, nil
}
