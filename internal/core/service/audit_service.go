package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/weinhaus/storefront/internal/core/domain"
	"github.com/weinhaus/storefront/internal/core/ports"
)

// DedupChecker abstracts the idempotency store (Redis). A status is entered
// at most once per order, so order id and target status identify an event.
type DedupChecker interface {
	IsDuplicate(ctx context.Context, orderID string, status domain.OrderStatus) (bool, error)
	Mark(ctx context.Context, orderID string, status domain.OrderStatus) error
}

type auditService struct {
	events ports.EventRepository
	dedup  DedupChecker
	log    zerolog.Logger
}

// NewAuditService returns an AuditService writing to the order_events trail.
// dedup may be nil.
func NewAuditService(events ports.EventRepository, dedup DedupChecker, log zerolog.Logger) ports.AuditService {
	return &auditService{events: events, dedup: dedup, log: log}
}

// Record persists one order event, skipping events already recorded.
func (s *auditService) Record(ctx context.Context, event domain.OrderEvent) error {
	if s.dedup != nil {
		dup, err := s.dedup.IsDuplicate(ctx, event.OrderID, event.To)
		if err != nil {
			s.log.Warn().Err(err).Str("order_id", event.OrderID).Msg("dedup check failed, recording anyway")
		} else if dup {
			s.log.Debug().Str("order_id", event.OrderID).Str("to", string(event.To)).Msg("duplicate audit event skipped")
			return nil
		}
	}

	if err := s.events.InsertEvent(ctx, &event); err != nil {
		return fmt.Errorf("record audit event: %w", err)
	}

	if s.dedup != nil {
		if err := s.dedup.Mark(ctx, event.OrderID, event.To); err != nil {
			s.log.Warn().Err(err).Str("order_id", event.OrderID).Msg("failed to set dedup key")
		}
	}

	s.log.Debug().
		Str("order_id", event.OrderID).
		Str("from", string(event.From)).
		Str("to", string(event.To)).
		Msg("audit event recorded")
	return nil
}
