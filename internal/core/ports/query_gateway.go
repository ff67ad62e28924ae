package ports

import (
	"context"
	"time"

	"github.com/weinhaus/storefront/internal/core/domain"
)

// Intent names a role-gated query operation.
type Intent string

const (
	IntentDashboard    Intent = "dashboard"
	IntentScannerQueue Intent = "scanner_queue"
	IntentStaffOrders  Intent = "staff_orders"
	IntentMyOrders     Intent = "my_orders"
)

// OrderRecord is the plain view of an order returned by the gateway.
type OrderRecord struct {
	ID        string             `json:"id"`
	UserID    string             `json:"user_id"`
	Type      domain.OrderType   `json:"type"`
	Status    domain.OrderStatus `json:"status"`
	Total     float64            `json:"total"`
	Currency  string             `json:"currency"`
	Items     []domain.OrderItem `json:"items"`
	CreatedAt time.Time          `json:"created_at"`
}

// UserRecord is the plain view of a user record returned by the gateway.
type UserRecord struct {
	ID            string      `json:"id"`
	Email         string      `json:"email"`
	Name          string      `json:"name"`
	Role          domain.Role `json:"role"`
	LoyaltyPoints int64       `json:"loyalty_points"`
}

// Summary aggregates dashboard figures.
type Summary struct {
	OrdersByStatus map[domain.OrderStatus]int `json:"orders_by_status"`
	UsersByRole    map[domain.Role]int        `json:"users_by_role"`
	PaidRevenue    float64                    `json:"paid_revenue"`
}

// Records is the aggregate result of one intent.
type Records struct {
	Intent    Intent           `json:"intent"`
	Orders    []OrderRecord    `json:"orders"`
	Users     []UserRecord     `json:"users,omitempty"`
	Summary   *Summary         `json:"summary,omitempty"`
	Revisions map[string]int64 `json:"revisions,omitempty"`
}

// QueryGateway authorizes and executes named query intents.
type QueryGateway interface {
	Fetch(ctx context.Context, intent Intent, principal *domain.Principal) (*Records, error)
}
