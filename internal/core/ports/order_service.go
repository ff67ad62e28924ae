package ports

import (
	"context"

	"github.com/weinhaus/storefront/internal/core/domain"
)

// PlaceOrderInput carries a new customer order.
type PlaceOrderInput struct {
	Type     domain.OrderType
	Currency string
	Items    []domain.OrderItem
}

// TransitionResult is returned after a successful status change.
type TransitionResult struct {
	OrderID string
	From    domain.OrderStatus
	To      domain.OrderStatus
}

// OrderLifecycle is the only writer of order status.
type OrderLifecycle interface {
	PlaceOrder(ctx context.Context, actor *domain.Principal, input PlaceOrderInput) (*domain.Order, error)
	StartPicking(ctx context.Context, orderID string, actor *domain.Principal) (*TransitionResult, error)
	FinishPicking(ctx context.Context, orderID string, actor *domain.Principal) (*domain.Order, error)
	MarkPaid(ctx context.Context, orderID string, actor *domain.Principal) (*TransitionResult, error)
	Cancel(ctx context.Context, orderID string, actor *domain.Principal) (*TransitionResult, error)
}
