package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/weinhaus/storefront/internal/api/metrics"
	"github.com/weinhaus/storefront/internal/core/domain"
	"github.com/weinhaus/storefront/internal/core/ports"
)

const principalKey = "principal"

// Session resolves the session cookie into a principal and stores it on the
// context. A missing or rejected token leaves the request anonymous; only a
// user store failure aborts the request. Excluded paths are skipped.
func Session(resolver ports.IdentityResolver, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if classify(c.Request().URL.Path) == routeExcluded {
				return next(c)
			}

			cookie, err := c.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				metrics.SessionResolutionsTotal.WithLabelValues("anonymous").Inc()
				return next(c)
			}

			principal, err := resolver.Resolve(c.Request().Context(), cookie.Value)
			if err != nil {
				metrics.SessionResolutionsTotal.WithLabelValues("error").Inc()
				log.Error().Err(err).Str("path", c.Request().URL.Path).Msg("session resolution failed")
				return err
			}
			if principal == nil {
				metrics.SessionResolutionsTotal.WithLabelValues("anonymous").Inc()
				return next(c)
			}

			metrics.SessionResolutionsTotal.WithLabelValues("principal").Inc()
			SetPrincipal(c, principal)
			return next(c)
		}
	}
}

// SetPrincipal stores p on the request context.
func SetPrincipal(c echo.Context, p *domain.Principal) {
	c.Set(principalKey, p)
}

// PrincipalFrom returns the resolved principal, or nil for anonymous requests.
func PrincipalFrom(c echo.Context) *domain.Principal {
	p, _ := c.Get(principalKey).(*domain.Principal)
	return p
}
