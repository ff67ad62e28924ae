package ports

import (
	"context"
	"time"

	"github.com/weinhaus/storefront/internal/core/domain"
)

// OrderFilter narrows an order listing. Zero fields do not filter.
type OrderFilter struct {
	UserID string
	Type   domain.OrderType
	Status domain.OrderStatus
}

// OrderRepository defines persistence operations for orders.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	// FindByID returns domain.ErrOrderNotFound when no order exists.
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context, filter OrderFilter) ([]*domain.Order, error)

	// CompareAndSetStatus atomically applies change. It returns
	// domain.ErrStatusConflict when the stored order no longer matches the
	// change's preconditions and domain.ErrOrderNotFound when it is gone.
	CompareAndSetStatus(ctx context.Context, id string, change StatusChange) error

	// MarkPicked stamps picked_at on an order in picking that has none yet,
	// returning domain.ErrStatusConflict otherwise.
	MarkPicked(ctx context.Context, id string, at time.Time) error
}

// StatusChange is a conditional status write.
type StatusChange struct {
	From  domain.OrderStatus
	To    domain.OrderStatus
	Entry domain.StatusHistoryEntry
	// RequirePicked also demands a non-empty picked_at.
	RequirePicked bool
}
