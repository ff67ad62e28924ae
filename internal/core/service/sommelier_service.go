package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/weinhaus/storefront/internal/core/domain"
	"github.com/weinhaus/storefront/internal/core/ports"
)

const flowWinePairing = "winePairing"

type winePairingRequest struct {
	Dish        string `json:"dish"`
	Preferences string `json:"preferences,omitempty"`
	Customer    string `json:"customerName,omitempty"`
}

// SommelierService asks the AI runtime for a wine pairing.
type SommelierService struct {
	flows ports.FlowInvoker
	log   zerolog.Logger
}

func NewSommelierService(flows ports.FlowInvoker, log zerolog.Logger) *SommelierService {
	return &SommelierService{flows: flows, log: log}
}

// Pair runs the winePairing flow once. There is no retry.
func (s *SommelierService) Pair(ctx context.Context, principal *domain.Principal, in ports.PairingInput) (*ports.PairingResult, error) {
	if principal == nil {
		return nil, domain.ErrUnauthenticated
	}
	dish := strings.TrimSpace(in.Dish)
	if dish == "" {
		return nil, fmt.Errorf("%w: dish is required", domain.ErrInvalidInput)
	}

	req := winePairingRequest{
		Dish:        dish,
		Preferences: strings.TrimSpace(in.Preferences),
		Customer:    principal.Name,
	}
	var out ports.PairingResult
	if err := s.flows.Invoke(ctx, flowWinePairing, req, &out); err != nil {
		s.log.Warn().Err(err).Str("flow", flowWinePairing).Str("user_id", principal.ID).Msg("flow invocation failed")
		if errors.Is(err, domain.ErrFlowFailed) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrFlowFailed, flowWinePairing, err)
	}
	if out.Wine == "" {
		return nil, fmt.Errorf("%w: %s returned no wine", domain.ErrFlowFailed, flowWinePairing)
	}
	return &out, nil
}
