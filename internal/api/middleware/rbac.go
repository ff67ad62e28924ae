package middleware

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/weinhaus/storefront/internal/core/domain"
)

// RBAC enforces role-based access control on the resolved principal. This is
// the authoritative layer behind Guard: an anonymous page request is sent to
// /login, any other anonymous request fails with ErrUnauthenticated, and a
// principal outside allowedRoles fails with ErrUnauthorized.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p := PrincipalFrom(c)
			if p == nil {
				if c.Request().Method == http.MethodGet {
					return c.Redirect(http.StatusFound, LoginPath)
				}
				return domain.ErrUnauthenticated
			}
			if len(allowedRoles) > 0 && !p.HasRole(allowedRoles...) {
				return fmt.Errorf("%s %s as %s: %w", c.Request().Method, c.Path(), p.Role, domain.ErrUnauthorized)
			}
			return next(c)
		}
	}
}
