package handler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/weinhaus/storefront/internal/api/middleware"
	"github.com/weinhaus/storefront/internal/core/domain"
	"github.com/weinhaus/storefront/internal/core/ports"
)

var (
	customer = &domain.Principal{ID: "u_customer", Email: "kunde@example.com", Name: "Kunde", Role: domain.RoleCustomer}
	employee = &domain.Principal{ID: "u_employee", Email: "lager@example.com", Name: "Lager", Role: domain.RoleEmployee}
	admin    = &domain.Principal{ID: "u_admin", Email: "chef@example.com", Name: "Chef", Role: domain.RoleAdmin}
)

// newContext builds an echo context with the validator wired like the router
// does. A nil principal leaves the request anonymous.
func newContext(method, target, body string, p *domain.Principal) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if p != nil {
		middleware.SetPrincipal(c, p)
	}
	return c, rec
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == name {
			return ck
		}
	}
	return nil
}

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (*domain.User, error)
	loginFn    func(ctx context.Context, email, password string) (*ports.Session, error)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.Session, error) {
	return s.loginFn(ctx, email, password)
}

type stubGateway struct {
	calls int
	fn    func(intent ports.Intent, p *domain.Principal) (*ports.Records, error)
}

func (s *stubGateway) Fetch(_ context.Context, intent ports.Intent, p *domain.Principal) (*ports.Records, error) {
	s.calls++
	return s.fn(intent, p)
}

type stubLifecycle struct {
	calls    int
	lastID   string
	placed   ports.PlaceOrderInput
	err      error
	pickedFn func(orderID string) (*domain.Order, error)
}

func (s *stubLifecycle) PlaceOrder(_ context.Context, actor *domain.Principal, in ports.PlaceOrderInput) (*domain.Order, error) {
	s.calls++
	s.placed = in
	if s.err != nil {
		return nil, s.err
	}
	typ := in.Type
	if typ == "" {
		typ = domain.OrderTypeStandard
	}
	return &domain.Order{ID: "o_new", UserID: actor.ID, Type: typ, Status: domain.StatusNew, Items: in.Items, Total: domain.ComputeTotal(in.Items)}, nil
}

func (s *stubLifecycle) transition(orderID string, from, to domain.OrderStatus) (*ports.TransitionResult, error) {
	s.calls++
	s.lastID = orderID
	if s.err != nil {
		return nil, s.err
	}
	return &ports.TransitionResult{OrderID: orderID, From: from, To: to}, nil
}

func (s *stubLifecycle) StartPicking(_ context.Context, orderID string, _ *domain.Principal) (*ports.TransitionResult, error) {
	return s.transition(orderID, domain.StatusNew, domain.StatusPicking)
}

func (s *stubLifecycle) FinishPicking(_ context.Context, orderID string, _ *domain.Principal) (*domain.Order, error) {
	s.calls++
	s.lastID = orderID
	return s.pickedFn(orderID)
}

func (s *stubLifecycle) MarkPaid(_ context.Context, orderID string, _ *domain.Principal) (*ports.TransitionResult, error) {
	return s.transition(orderID, domain.StatusPicking, domain.StatusPaid)
}

func (s *stubLifecycle) Cancel(_ context.Context, orderID string, _ *domain.Principal) (*ports.TransitionResult, error) {
	return s.transition(orderID, domain.StatusNew, domain.StatusCancelled)
}

type stubUserService struct {
	calls int
	fn    func(actor *domain.Principal, userID string, role domain.Role) (*domain.User, error)
}

func (s *stubUserService) ChangeRole(_ context.Context, actor *domain.Principal, userID string, role domain.Role) (*domain.User, error) {
	s.calls++
	return s.fn(actor, userID, role)
}

type stubSommelier struct {
	calls int
	input ports.PairingInput
	res   *ports.PairingResult
	err   error
}

func (s *stubSommelier) Pair(_ context.Context, _ *domain.Principal, in ports.PairingInput) (*ports.PairingResult, error) {
	s.calls++
	s.input = in
	return s.res, s.err
}
