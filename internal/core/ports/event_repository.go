package ports

import (
	"context"

	"github.com/weinhaus/storefront/internal/core/domain"
)

// EventRepository persists the order audit trail.
type EventRepository interface {
	InsertEvent(ctx context.Context, event *domain.OrderEvent) error
}

// AuditService records one order event.
type AuditService interface {
	Record(ctx context.Context, event domain.OrderEvent) error
}

// AuditSink accepts events for asynchronous recording. Enqueue must not block
// the caller on persistence.
type AuditSink interface {
	Enqueue(event domain.OrderEvent)
}
