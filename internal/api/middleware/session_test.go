package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/weinhaus/storefront/internal/core/domain"
)

type stubResolver struct {
	principal *domain.Principal
	err       error
	calls     int
}

func (r *stubResolver) Resolve(_ context.Context, token string) (*domain.Principal, error) {
	r.calls++
	if token != "good" {
		return nil, r.err
	}
	return r.principal, r.err
}

func runSession(t *testing.T, resolver *stubResolver, path, cookie string) (*domain.Principal, bool, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: cookie})
	}
	c := e.NewContext(req, httptest.NewRecorder())

	var (
		got    *domain.Principal
		called bool
	)
	err := Session(resolver, zerolog.Nop())(func(c echo.Context) error {
		called = true
		got = PrincipalFrom(c)
		return nil
	})(c)
	return got, called, err
}

func TestSession_ResolvesPrincipal(t *testing.T) {
	resolver := &stubResolver{principal: &domain.Principal{ID: "u_1", Role: domain.RoleAdmin}}

	p, called, err := runSession(t, resolver, "/admin/dashboard", "good")
	if err != nil || !called {
		t.Fatalf("expected passthrough, got err=%v called=%v", err, called)
	}
	if p == nil || p.ID != "u_1" {
		t.Fatalf("expected principal u_1, got %+v", p)
	}
}

func TestSession_BadOrMissingTokenIsAnonymous(t *testing.T) {
	resolver := &stubResolver{principal: &domain.Principal{ID: "u_1"}}

	for _, cookie := range []string{"", "forged"} {
		p, called, err := runSession(t, resolver, "/dashboard", cookie)
		if err != nil || !called || p != nil {
			t.Errorf("cookie %q: expected anonymous passthrough, got p=%+v err=%v", cookie, p, err)
		}
	}
}

func TestSession_BackendErrorAborts(t *testing.T) {
	resolver := &stubResolver{err: domain.ErrBackend}

	_, called, err := runSession(t, resolver, "/dashboard", "good")
	if !errors.Is(err, domain.ErrBackend) || called {
		t.Fatalf("expected ErrBackend without calling next, got err=%v called=%v", err, called)
	}
}

func TestSession_SkipsExcludedPaths(t *testing.T) {
	resolver := &stubResolver{principal: &domain.Principal{ID: "u_1"}}

	if _, called, _ := runSession(t, resolver, "/health/ready", "good"); !called {
		t.Fatalf("expected passthrough")
	}
	if resolver.calls != 0 {
		t.Errorf("resolver must not run on excluded paths")
	}
}
