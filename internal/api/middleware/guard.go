package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/weinhaus/storefront/internal/api/metrics"
)

// SessionCookie is the cookie carrying the signed session token.
const SessionCookie = "session"

// LoginPath is where unauthenticated page requests are sent.
const LoginPath = "/login"

type routeClass int

const (
	routeOther routeClass = iota
	routeExcluded
	routePublic
	routeProtected
)

var (
	excludedPrefixes  = []string{"/health", "/metrics", "/swagger", "/static", "/assets", "/favicon.ico", "/api"}
	publicPrefixes    = []string{"/login", "/register"}
	protectedPrefixes = []string{"/dashboard", "/admin", "/employee"}
)

// hasPathPrefix matches prefix as whole path segments, so /admin matches
// /admin and /admin/users but not /administrator.
func hasPathPrefix(path, prefix string) bool {
	if !strings.HasPrefix(path, prefix) {
		return false
	}
	return len(path) == len(prefix) || path[len(prefix)] == '/'
}

func classify(path string) routeClass {
	for _, p := range excludedPrefixes {
		if hasPathPrefix(path, p) {
			return routeExcluded
		}
	}
	for _, p := range publicPrefixes {
		if hasPathPrefix(path, p) {
			return routePublic
		}
	}
	for _, p := range protectedPrefixes {
		if hasPathPrefix(path, p) {
			return routeProtected
		}
	}
	return routeOther
}

// Guard is the cheap first auth layer: a protected path without a session
// cookie is redirected to /login before any handler runs. It only checks
// that the cookie is present; verification happens in Session.
func Guard() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if classify(c.Request().URL.Path) != routeProtected {
				return next(c)
			}
			if cookie, err := c.Cookie(SessionCookie); err != nil || cookie.Value == "" {
				metrics.GuardRedirectsTotal.Inc()
				return c.Redirect(http.StatusFound, LoginPath)
			}
			return next(c)
		}
	}
}
