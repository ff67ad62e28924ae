package domain

import "time"

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	StatusNew       OrderStatus = "new"
	StatusPicking   OrderStatus = "picking"
	StatusPaid      OrderStatus = "paid"
	StatusCancelled OrderStatus = "cancelled"
)

// OrderType distinguishes regular orders from grocery lists that staff pick in store.
type OrderType string

const (
	OrderTypeStandard    OrderType = "standard"
	OrderTypeGroceryList OrderType = "grocery_list"
)

// validTransitions defines the allowed state machine transitions.
var validTransitions = map[OrderStatus][]OrderStatus{
	StatusNew:     {StatusPicking, StatusCancelled},
	StatusPicking: {StatusPaid, StatusCancelled},
}

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no transition leaves s.
func (s OrderStatus) IsTerminal() bool {
	return len(validTransitions[s]) == 0
}

// Valid reports whether s is a known status.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusNew, StatusPicking, StatusPaid, StatusCancelled:
		return true
	}
	return false
}

// Valid reports whether t is a known order type.
func (t OrderType) Valid() bool {
	return t == OrderTypeStandard || t == OrderTypeGroceryList
}

// OrderItem is a single line of an order.
type OrderItem struct {
	SKU       string  `json:"sku" bson:"sku"`
	Name      string  `json:"name" bson:"name"`
	Quantity  int     `json:"quantity" bson:"quantity"`
	UnitPrice float64 `json:"unit_price" bson:"unit_price"`
}

// StatusHistoryEntry records a single status change on an order.
type StatusHistoryEntry struct {
	Status    OrderStatus `json:"status" bson:"status"`
	ActorID   string      `json:"actor_id,omitempty" bson:"actor_id,omitempty"`
	ActorRole Role        `json:"actor_role,omitempty" bson:"actor_role,omitempty"`
	Timestamp time.Time   `json:"timestamp" bson:"timestamp"`
}

// Order is the aggregate the lifecycle engine guards. Only the engine writes Status.
type Order struct {
	ID            string               `json:"id" bson:"_id"`
	UserID        string               `json:"user_id" bson:"user_id"`
	Type          OrderType            `json:"type" bson:"type"`
	Status        OrderStatus          `json:"status" bson:"status"`
	Total         float64              `json:"total" bson:"total"`
	Currency      string               `json:"currency" bson:"currency"`
	Items         []OrderItem          `json:"items" bson:"items"`
	StatusHistory []StatusHistoryEntry `json:"status_history" bson:"status_history"`
	PickedAt      *time.Time           `json:"picked_at,omitempty" bson:"picked_at,omitempty"`
	CreatedAt     time.Time            `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at" bson:"updated_at"`
}

// PickingFinished reports whether staff completed picking. Status stays
// picking until the order is paid or cancelled.
func (o *Order) PickingFinished() bool {
	return o.Status == StatusPicking && o.PickedAt != nil
}

// ComputeTotal sums the item lines.
func ComputeTotal(items []OrderItem) float64 {
	var total float64
	for _, it := range items {
		total += float64(it.Quantity) * it.UnitPrice
	}
	return total
}

// OrderEvent is an audit record of one status change.
type OrderEvent struct {
	OrderID   string
	UserID    string
	From      OrderStatus
	To        OrderStatus
	ActorID   string
	ActorRole Role
	At        time.Time
}
