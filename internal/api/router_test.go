package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/weinhaus/storefront/internal/api/handler"
	"github.com/weinhaus/storefront/internal/api/middleware"
	"github.com/weinhaus/storefront/internal/core/domain"
	"github.com/weinhaus/storefront/internal/core/ports"
)

type tokenResolver map[string]*domain.Principal

func (r tokenResolver) Resolve(_ context.Context, token string) (*domain.Principal, error) {
	if token == "tok_store_down" {
		return nil, domain.Backend("resolve session user", errors.New("connection refused"))
	}
	return r[token], nil
}

type emptyGateway struct{}

func (emptyGateway) Fetch(_ context.Context, intent ports.Intent, p *domain.Principal) (*ports.Records, error) {
	if intent == ports.IntentDashboard && !p.HasRole(domain.RoleAdmin) {
		return nil, domain.ErrUnauthorized
	}
	return &ports.Records{Intent: intent, Orders: []ports.OrderRecord{}}, nil
}

type paidLifecycle struct{ ports.OrderLifecycle }

func (paidLifecycle) MarkPaid(_ context.Context, orderID string, actor *domain.Principal) (*ports.TransitionResult, error) {
	if !actor.HasRole(domain.RoleEmployee, domain.RoleAdmin) {
		return nil, domain.ErrUnauthorized
	}
	if orderID == "o_paid" {
		return nil, &domain.TransitionError{OrderID: orderID, Current: domain.StatusPaid, Target: domain.StatusPaid, Err: domain.ErrAlreadyDone}
	}
	return &ports.TransitionResult{OrderID: orderID, From: domain.StatusPicking, To: domain.StatusPaid}, nil
}

var (
	routerOnce sync.Once
	testRouter *echo.Echo
)

// router is built once per test binary: the request metrics middleware
// registers its collectors globally.
func router() *echo.Echo {
	routerOnce.Do(func() {
		testRouter = NewRouter(Deps{
			Resolver: tokenResolver{
				"tok_customer": {ID: "u1", Role: domain.RoleCustomer},
				"tok_employee": {ID: "u2", Role: domain.RoleEmployee},
				"tok_admin":    {ID: "u3", Role: domain.RoleAdmin},
			},
			Gateway:   emptyGateway{},
			Lifecycle: paidLifecycle{},
			Health: map[string]handler.HealthCheck{
				"mongodb": func(context.Context) error { return nil },
			},
			Log: zerolog.Nop(),
		})
	})
	return testRouter
}

func serve(method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: token})
	}
	rec := httptest.NewRecorder()
	router().ServeHTTP(rec, req)
	return rec
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
	}
	return resp.Error
}

func TestRouter_GuardRedirectsWithoutCookie(t *testing.T) {
	for _, path := range []string{"/admin/dashboard", "/employee/scanner", "/dashboard"} {
		rec := serve(http.MethodGet, path, "")
		if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/login" {
			t.Fatalf("%s: expected redirect to /login, got %d %q", path, rec.Code, rec.Header().Get("Location"))
		}
	}
}

func TestRouter_RejectedTokenIsAnonymous(t *testing.T) {
	rec := serve(http.MethodGet, "/admin/dashboard", "tok_forged")
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/login" {
		t.Fatalf("expected redirect to /login, got %d", rec.Code)
	}

	rec = serve(http.MethodPost, "/employee/orders/o1/pay", "tok_forged")
	if rec.Code != http.StatusUnauthorized || errorBody(t, rec) != "Nicht angemeldet." {
		t.Fatalf("expected 401, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_RoleGates(t *testing.T) {
	rec := serve(http.MethodGet, "/admin/dashboard", "tok_customer")
	if rec.Code != http.StatusForbidden || errorBody(t, rec) != "Keine Berechtigung für diese Aktion." {
		t.Fatalf("expected 403, got %d %s", rec.Code, rec.Body.String())
	}

	rec = serve(http.MethodGet, "/admin/dashboard", "tok_admin")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d %s", rec.Code, rec.Body.String())
	}

	rec = serve(http.MethodPost, "/employee/orders/o1/pay", "tok_customer")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRouter_MarkPaid(t *testing.T) {
	rec := serve(http.MethodPost, "/employee/orders/o1/pay", "tok_employee")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Bestellung wurde als bezahlt markiert.") {
		t.Fatalf("expected success, got %d %s", rec.Code, rec.Body.String())
	}

	rec = serve(http.MethodPost, "/employee/orders/o_paid/pay", "tok_employee")
	if rec.Code != http.StatusConflict || errorBody(t, rec) != "Bestellung ist bereits bezahlt." {
		t.Fatalf("expected 409 already paid, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_LoginPageForwardsByRole(t *testing.T) {
	rec := serve(http.MethodGet, "/login", "tok_employee")
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/employee/scanner" {
		t.Fatalf("expected forward to scanner, got %d %q", rec.Code, rec.Header().Get("Location"))
	}

	rec = serve(http.MethodGet, "/login", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected login page, got %d", rec.Code)
	}
}

func TestRouter_SessionEndpoint(t *testing.T) {
	rec := serve(http.MethodGet, "/get-session", "")
	if rec.Code != http.StatusUnauthorized || errorBody(t, rec) != "Nicht angemeldet." {
		t.Fatalf("expected 401, got %d %s", rec.Code, rec.Body.String())
	}

	rec = serve(http.MethodGet, "/get-session", "tok_customer")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"id":"u1"`) {
		t.Fatalf("expected session, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_StoreFailureDuringResolution(t *testing.T) {
	rec := serve(http.MethodGet, "/dashboard", "tok_store_down")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestRouter_OpsEndpointsBypassAuth(t *testing.T) {
	for _, path := range []string{"/health", "/health/ready", "/metrics"} {
		rec := serve(http.MethodGet, path, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, rec.Code)
		}
	}
}
