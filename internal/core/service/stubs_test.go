package service

import (
	"context"
	"sync"
	"time"

	"github.com/weinhaus/storefront/internal/core/domain"
	"github.com/weinhaus/storefront/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory user store
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	mu      sync.Mutex
	users   map[string]*domain.User
	findErr error
	listErr error
	calls   int
}

func newStubUserRepo(users ...*domain.User) *stubUserRepo {
	r := &stubUserRepo{users: make(map[string]*domain.User)}
	for _, u := range users {
		r.users[u.ID] = cloneUser(u)
	}
	return r
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.users[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

func (r *stubUserRepo) UpdateRole(_ context.Context, id string, role domain.Role, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Role = role
	u.UpdatedAt = at
	return nil
}

func (r *stubUserRepo) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

// ---------------------------------------------------------------------------
// In-memory order store. CompareAndSetStatus mirrors the Mongo filter on
// _id + status (+ picked_at).
// ---------------------------------------------------------------------------

type stubOrderRepo struct {
	mu         sync.Mutex
	orders     map[string]*domain.Order
	listErr    error
	casErr     error
	calls      int
	lastFilter ports.OrderFilter
}

func newStubOrderRepo(orders ...*domain.Order) *stubOrderRepo {
	r := &stubOrderRepo{orders: make(map[string]*domain.Order)}
	for _, o := range orders {
		r.orders[o.ID] = cloneOrder(o)
	}
	return r
}

func cloneOrder(o *domain.Order) *domain.Order {
	clone := *o
	clone.Items = append([]domain.OrderItem(nil), o.Items...)
	clone.StatusHistory = append([]domain.StatusHistoryEntry(nil), o.StatusHistory...)
	return &clone
}

func (r *stubOrderRepo) Create(_ context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	r.orders[order.ID] = cloneOrder(order)
	return nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	o, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	return cloneOrder(o), nil
}

func (r *stubOrderRepo) List(_ context.Context, f ports.OrderFilter) ([]*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	r.lastFilter = f
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []*domain.Order
	for _, o := range r.orders {
		if f.UserID != "" && o.UserID != f.UserID {
			continue
		}
		if f.Type != "" && o.Type != f.Type {
			continue
		}
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		out = append(out, cloneOrder(o))
	}
	return out, nil
}

func (r *stubOrderRepo) CompareAndSetStatus(_ context.Context, id string, change ports.StatusChange) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.casErr != nil {
		return r.casErr
	}
	o, ok := r.orders[id]
	if !ok {
		return domain.ErrOrderNotFound
	}
	if o.Status != change.From || (change.RequirePicked && o.PickedAt == nil) {
		return domain.ErrStatusConflict
	}
	o.Status = change.To
	o.StatusHistory = append(o.StatusHistory, change.Entry)
	o.UpdatedAt = change.Entry.Timestamp
	return nil
}

func (r *stubOrderRepo) MarkPicked(_ context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	o, ok := r.orders[id]
	if !ok {
		return domain.ErrOrderNotFound
	}
	if o.Status != domain.StatusPicking || o.PickedAt != nil {
		return domain.ErrStatusConflict
	}
	o.PickedAt = &at
	return nil
}

func (r *stubOrderRepo) status(id string) domain.OrderStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.orders[id].Status
}

func (r *stubOrderRepo) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

// ---------------------------------------------------------------------------
// View registry, audit sink, token and flow stubs
// ---------------------------------------------------------------------------

type stubViews struct {
	mu          sync.Mutex
	invalidated []string
	revs        map[string]int64
	err         error
}

func (v *stubViews) Invalidate(_ context.Context, views ...string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.err != nil {
		return v.err
	}
	v.invalidated = append(v.invalidated, views...)
	return nil
}

func (v *stubViews) Revisions(_ context.Context, views ...string) (map[string]int64, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.err != nil {
		return nil, v.err
	}
	out := make(map[string]int64, len(views))
	for _, name := range views {
		out[name] = v.revs[name]
	}
	return out, nil
}

type stubSink struct {
	mu     sync.Mutex
	events []domain.OrderEvent
}

func (s *stubSink) Enqueue(e domain.OrderEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
}

type stubVerifier struct {
	claims map[string]*domain.Claims
}

func (v *stubVerifier) Verify(token string) (*domain.Claims, error) {
	c, ok := v.claims[token]
	if !ok {
		return nil, domain.ErrInvalidToken
	}
	clone := *c
	return &clone, nil
}

type stubIssuer struct {
	issued []string
	err    error
}

func (i *stubIssuer) Issue(user *domain.User) (string, time.Time, error) {
	if i.err != nil {
		return "", time.Time{}, i.err
	}
	i.issued = append(i.issued, user.ID)
	return "token-" + user.ID, time.Now().Add(time.Hour), nil
}

type stubFlow struct {
	gotName  string
	gotInput any
	result   ports.PairingResult
	err      error
}

func (f *stubFlow) Invoke(_ context.Context, name string, input, output any) error {
	f.gotName = name
	f.gotInput = input
	if f.err != nil {
		return f.err
	}
	if out, ok := output.(*ports.PairingResult); ok {
		*out = f.result
	}
	return nil
}
