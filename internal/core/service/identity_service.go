package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/weinhaus/storefront/internal/core/domain"
	"github.com/weinhaus/storefront/internal/core/ports"
)

// IdentityService resolves session tokens against the live user store.
type IdentityService struct {
	verifier ports.TokenVerifier
	users    ports.UserRepository
	log      zerolog.Logger
}

func NewIdentityService(verifier ports.TokenVerifier, users ports.UserRepository, log zerolog.Logger) *IdentityService {
	return &IdentityService{verifier: verifier, users: users, log: log}
}

// Resolve returns the principal for token, or nil when the caller must be
// treated as logged out. Token claims only seed the principal; the stored
// record decides role and profile.
func (s *IdentityService) Resolve(ctx context.Context, token string) (*domain.Principal, error) {
	if token == "" {
		return nil, nil
	}

	claims, err := s.verifier.Verify(token)
	if err != nil {
		s.log.Warn().Err(err).Msg("session token rejected")
		return nil, nil
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.log.Warn().Str("user_id", claims.UserID).Msg("session for unknown user")
			return nil, nil
		}
		if errors.Is(err, domain.ErrBackend) {
			return nil, err
		}
		return nil, domain.Backend("resolve session user", err)
	}

	return mergePrincipal(claims, user), nil
}

// mergePrincipal overlays store fields on top of token claims. An omitted
// store role falls back to DefaultRole, never to the claimed role.
func mergePrincipal(claims *domain.Claims, user *domain.User) *domain.Principal {
	p := &domain.Principal{
		ID:    claims.UserID,
		Email: claims.Email,
		Name:  claims.Name,
	}
	if user.Email != "" {
		p.Email = user.Email
	}
	if user.Name != "" {
		p.Name = user.Name
	}
	p.Phone = user.Phone
	p.LoyaltyPoints = user.LoyaltyPoints

	p.Role = user.Role.OrDefault()
	return p
}
