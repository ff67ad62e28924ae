package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/weinhaus/storefront/internal/core/domain"
	"github.com/weinhaus/storefront/internal/core/ports"
)

// transitionRule describes one lifecycle operation.
type transitionRule struct {
	name   string
	target domain.OrderStatus
	roles  []domain.Role
}

var (
	ruleStartPicking = transitionRule{
		name:   "start_picking",
		target: domain.StatusPicking,
		roles:  []domain.Role{domain.RoleEmployee, domain.RoleAdmin},
	}
	ruleMarkPaid = transitionRule{
		name:   "mark_paid",
		target: domain.StatusPaid,
		roles:  []domain.Role{domain.RoleEmployee, domain.RoleAdmin},
	}
	ruleCancel = transitionRule{
		name:   "cancel",
		target: domain.StatusCancelled,
		roles:  []domain.Role{domain.RoleEmployee, domain.RoleAdmin},
	}
)

// OrderLifecycle owns every write of Order.Status. Transitions use the
// store's compare-and-set; there are no in-process locks.
type OrderLifecycle struct {
	orders ports.OrderRepository
	views  ports.ViewRegistry
	audit  ports.AuditSink
	log    zerolog.Logger
	now    func() time.Time
}

func NewOrderLifecycle(orders ports.OrderRepository, views ports.ViewRegistry, audit ports.AuditSink, log zerolog.Logger) *OrderLifecycle {
	return &OrderLifecycle{orders: orders, views: views, audit: audit, log: log, now: time.Now}
}

// PlaceOrder stores a new order for actor in status new.
func (l *OrderLifecycle) PlaceOrder(ctx context.Context, actor *domain.Principal, in ports.PlaceOrderInput) (*domain.Order, error) {
	if actor == nil {
		return nil, domain.ErrUnauthorized
	}
	if in.Type == "" {
		in.Type = domain.OrderTypeStandard
	}
	if !in.Type.Valid() {
		return nil, fmt.Errorf("%w: order type %q", domain.ErrInvalidInput, in.Type)
	}
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: order has no items", domain.ErrInvalidInput)
	}
	for i, it := range in.Items {
		if it.Quantity <= 0 || it.UnitPrice < 0 {
			return nil, fmt.Errorf("%w: item[%d] quantity or price", domain.ErrInvalidInput, i)
		}
	}
	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if currency == "" {
		currency = "EUR"
	}

	now := l.now().UTC()
	order := &domain.Order{
		ID:       uuid.NewString(),
		UserID:   actor.ID,
		Type:     in.Type,
		Status:   domain.StatusNew,
		Total:    domain.ComputeTotal(in.Items),
		Currency: currency,
		Items:    in.Items,
		StatusHistory: []domain.StatusHistoryEntry{
			{Status: domain.StatusNew, ActorID: actor.ID, ActorRole: actor.Role, Timestamp: now},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := l.orders.Create(ctx, order); err != nil {
		return nil, wrapBackend("create order", err)
	}

	l.invalidate(ctx, order)
	l.log.Info().Str("order_id", order.ID).Str("user_id", actor.ID).Str("type", string(order.Type)).Msg("order placed")
	return order, nil
}

// StartPicking moves a new order into picking.
func (l *OrderLifecycle) StartPicking(ctx context.Context, orderID string, actor *domain.Principal) (*ports.TransitionResult, error) {
	return l.apply(ctx, orderID, actor, ruleStartPicking)
}

// FinishPicking records that staff completed picking, which makes the order
// payable. The status stays picking.
func (l *OrderLifecycle) FinishPicking(ctx context.Context, orderID string, actor *domain.Principal) (*domain.Order, error) {
	if !actor.HasRole(ruleStartPicking.roles...) {
		return nil, fmt.Errorf("finish_picking: %w", domain.ErrUnauthorized)
	}

	order, err := l.load(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := checkPicking(order); err != nil {
		return nil, err
	}

	at := l.now().UTC()
	if err := l.orders.MarkPicked(ctx, order.ID, at); err != nil {
		if !errors.Is(err, domain.ErrStatusConflict) && !errors.Is(err, domain.ErrOrderNotFound) {
			return nil, wrapBackend("mark order picked", err)
		}
		current, lerr := l.load(ctx, orderID)
		if lerr != nil {
			return nil, lerr
		}
		if cerr := checkPicking(current); cerr != nil {
			return nil, cerr
		}
		return nil, &domain.TransitionError{OrderID: orderID, Current: current.Status, Target: domain.StatusPicking, Err: domain.ErrInvalidTransition}
	}

	order.PickedAt = &at
	l.invalidate(ctx, order)
	l.log.Info().Str("order_id", order.ID).Str("actor_id", actor.ID).Msg("order picking finished")
	return order, nil
}

// MarkPaid moves a picked order to paid. Orders that are new or whose
// picking is still in progress are rejected with the current status; paid
// orders report ErrAlreadyDone.
func (l *OrderLifecycle) MarkPaid(ctx context.Context, orderID string, actor *domain.Principal) (*ports.TransitionResult, error) {
	return l.apply(ctx, orderID, actor, ruleMarkPaid)
}

// Cancel moves a new or picking order to cancelled.
func (l *OrderLifecycle) Cancel(ctx context.Context, orderID string, actor *domain.Principal) (*ports.TransitionResult, error) {
	return l.apply(ctx, orderID, actor, ruleCancel)
}

func (l *OrderLifecycle) apply(ctx context.Context, orderID string, actor *domain.Principal, rule transitionRule) (*ports.TransitionResult, error) {
	if !actor.HasRole(rule.roles...) {
		return nil, fmt.Errorf("%s: %w", rule.name, domain.ErrUnauthorized)
	}

	order, err := l.load(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := checkTransition(order, rule); err != nil {
		return nil, err
	}

	from := order.Status
	entry := domain.StatusHistoryEntry{
		Status:    rule.target,
		ActorID:   actor.ID,
		ActorRole: actor.Role,
		Timestamp: l.now().UTC(),
	}
	err = l.orders.CompareAndSetStatus(ctx, order.ID, ports.StatusChange{
		From:          from,
		To:            rule.target,
		Entry:         entry,
		RequirePicked: rule.target == domain.StatusPaid,
	})
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrStatusConflict), errors.Is(err, domain.ErrOrderNotFound):
		// Lost a race: report what the order looks like now.
		return nil, l.explainConflict(ctx, orderID, rule)
	default:
		return nil, wrapBackend("update order status", err)
	}

	order.Status = rule.target
	l.invalidate(ctx, order)
	if l.audit != nil {
		l.audit.Enqueue(domain.OrderEvent{
			OrderID:   order.ID,
			UserID:    order.UserID,
			From:      from,
			To:        rule.target,
			ActorID:   actor.ID,
			ActorRole: actor.Role,
			At:        entry.Timestamp,
		})
	}

	l.log.Info().
		Str("order_id", order.ID).
		Str("from", string(from)).
		Str("to", string(rule.target)).
		Str("actor_id", actor.ID).
		Str("actor_role", string(actor.Role)).
		Msg("order status changed")

	return &ports.TransitionResult{OrderID: order.ID, From: from, To: rule.target}, nil
}

func (l *OrderLifecycle) load(ctx context.Context, orderID string) (*domain.Order, error) {
	order, err := l.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			return nil, err
		}
		return nil, wrapBackend("find order", err)
	}
	return order, nil
}

// explainConflict re-reads the order once after a failed compare-and-set.
func (l *OrderLifecycle) explainConflict(ctx context.Context, orderID string, rule transitionRule) error {
	current, err := l.load(ctx, orderID)
	if err != nil {
		return err
	}
	if err := checkTransition(current, rule); err != nil {
		return err
	}
	return &domain.TransitionError{OrderID: orderID, Current: current.Status, Target: rule.target, Err: domain.ErrInvalidTransition}
}

// checkTransition applies the state machine. Reaching the target again is
// reported as ErrAlreadyDone, everything else illegal as ErrInvalidTransition.
func checkTransition(order *domain.Order, rule transitionRule) error {
	if order.Status == rule.target {
		return &domain.TransitionError{OrderID: order.ID, Current: order.Status, Target: rule.target, Err: domain.ErrAlreadyDone}
	}
	if !order.Status.CanTransitionTo(rule.target) {
		return &domain.TransitionError{OrderID: order.ID, Current: order.Status, Target: rule.target, Err: domain.ErrInvalidTransition}
	}
	if rule.target == domain.StatusPaid && !order.PickingFinished() {
		return &domain.TransitionError{OrderID: order.ID, Current: order.Status, Target: rule.target, Err: domain.ErrInvalidTransition}
	}
	return nil
}

func checkPicking(order *domain.Order) error {
	if order.PickingFinished() {
		return &domain.TransitionError{OrderID: order.ID, Current: order.Status, Target: domain.StatusPicking, Err: domain.ErrAlreadyDone}
	}
	if order.Status != domain.StatusPicking {
		return &domain.TransitionError{OrderID: order.ID, Current: order.Status, Target: domain.StatusPicking, Err: domain.ErrInvalidTransition}
	}
	return nil
}

func (l *OrderLifecycle) invalidate(ctx context.Context, order *domain.Order) {
	if l.views == nil {
		return
	}
	if err := l.views.Invalidate(ctx, domain.OrderViews(order)...); err != nil {
		l.log.Warn().Err(err).Str("order_id", order.ID).Msg("view invalidation failed")
	}
}
