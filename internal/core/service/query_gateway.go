package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/weinhaus/storefront/internal/core/domain"
	"github.com/weinhaus/storefront/internal/core/ports"
)

// intentSpec declares who may run an intent, what it reads, and which views
// its result represents.
type intentSpec struct {
	roles  []domain.Role
	orders func(p *domain.Principal) ports.OrderFilter
	users  bool
	views  func(p *domain.Principal) []string
}

var intents = map[ports.Intent]intentSpec{
	ports.IntentDashboard: {
		roles:  []domain.Role{domain.RoleAdmin},
		orders: func(*domain.Principal) ports.OrderFilter { return ports.OrderFilter{} },
		users:  true,
		views:  func(*domain.Principal) []string { return []string{domain.ViewDashboard} },
	},
	ports.IntentScannerQueue: {
		roles: []domain.Role{domain.RoleEmployee, domain.RoleAdmin},
		orders: func(*domain.Principal) ports.OrderFilter {
			return ports.OrderFilter{Type: domain.OrderTypeGroceryList, Status: domain.StatusNew}
		},
		users: true,
		views: func(*domain.Principal) []string { return []string{domain.ViewScanner} },
	},
	ports.IntentStaffOrders: {
		roles:  []domain.Role{domain.RoleEmployee, domain.RoleAdmin},
		orders: func(*domain.Principal) ports.OrderFilter { return ports.OrderFilter{} },
		views:  func(*domain.Principal) []string { return []string{domain.ViewStaffOrders} },
	},
	ports.IntentMyOrders: {
		roles:  []domain.Role{domain.RoleCustomer, domain.RoleEmployee, domain.RoleAdmin},
		orders: func(p *domain.Principal) ports.OrderFilter { return ports.OrderFilter{UserID: p.ID} },
		views:  func(p *domain.Principal) []string { return []string{domain.ViewCustomerOrders(p.ID)} },
	},
}

// QueryGateway runs role-gated read intents against the stores.
type QueryGateway struct {
	orders ports.OrderRepository
	users  ports.UserRepository
	views  ports.ViewRegistry
	log    zerolog.Logger
}

func NewQueryGateway(orders ports.OrderRepository, users ports.UserRepository, views ports.ViewRegistry, log zerolog.Logger) *QueryGateway {
	return &QueryGateway{orders: orders, users: users, views: views, log: log}
}

// Fetch authorizes principal for intent before touching any store, then runs
// the intent's queries concurrently. A failed query fails the whole fetch.
func (g *QueryGateway) Fetch(ctx context.Context, intent ports.Intent, principal *domain.Principal) (*ports.Records, error) {
	rule, ok := intents[intent]
	if !ok {
		return nil, fmt.Errorf("%w: unknown intent %q", domain.ErrInvalidInput, intent)
	}
	if !principal.HasRole(rule.roles...) {
		return nil, fmt.Errorf("fetch %s: %w", intent, domain.ErrUnauthorized)
	}

	var (
		orders []*domain.Order
		users  []*domain.User
	)
	grp, gctx := errgroup.WithContext(ctx)
	grp.Go(func() error {
		var err error
		orders, err = g.orders.List(gctx, rule.orders(principal))
		return wrapBackend("list orders", err)
	})
	if rule.users {
		grp.Go(func() error {
			var err error
			users, err = g.users.List(gctx)
			return wrapBackend("list users", err)
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, fmt.Errorf("fetch %s: %w", intent, err)
	}

	out := &ports.Records{
		Intent: intent,
		Orders: toOrderRecords(orders),
	}
	if rule.users {
		out.Users = toUserRecords(users)
	}
	if intent == ports.IntentDashboard {
		out.Summary = summarize(orders, users)
	}

	if g.views != nil {
		revs, err := g.views.Revisions(ctx, rule.views(principal)...)
		if err != nil {
			g.log.Warn().Err(err).Str("intent", string(intent)).Msg("view revisions unavailable")
		} else {
			out.Revisions = revs
		}
	}
	return out, nil
}

func wrapBackend(op string, err error) error {
	if err == nil || errors.Is(err, domain.ErrBackend) {
		return err
	}
	return domain.Backend(op, err)
}

func toOrderRecords(orders []*domain.Order) []ports.OrderRecord {
	out := make([]ports.OrderRecord, 0, len(orders))
	for _, o := range orders {
		out = append(out, ports.OrderRecord{
			ID:        o.ID,
			UserID:    o.UserID,
			Type:      o.Type,
			Status:    o.Status,
			Total:     o.Total,
			Currency:  o.Currency,
			Items:     o.Items,
			CreatedAt: o.CreatedAt,
		})
	}
	return out
}

func toUserRecords(users []*domain.User) []ports.UserRecord {
	out := make([]ports.UserRecord, 0, len(users))
	for _, u := range users {
		out = append(out, ports.UserRecord{
			ID:            u.ID,
			Email:         u.Email,
			Name:          u.Name,
			Role:          u.Role.OrDefault(),
			LoyaltyPoints: u.LoyaltyPoints,
		})
	}
	return out
}

func summarize(orders []*domain.Order, users []*domain.User) *ports.Summary {
	s := &ports.Summary{
		OrdersByStatus: make(map[domain.OrderStatus]int),
		UsersByRole:    make(map[domain.Role]int),
	}
	for _, o := range orders {
		s.OrdersByStatus[o.Status]++
		if o.Status == domain.StatusPaid {
			s.PaidRevenue += o.Total
		}
	}
	for _, u := range users {
		s.UsersByRole[u.Role.OrDefault()]++
	}
	return s
}
