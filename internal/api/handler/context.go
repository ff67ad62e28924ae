package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/weinhaus/storefront/internal/api/middleware"
	"github.com/weinhaus/storefront/internal/core/domain"
)

// ctxPrincipal returns the principal resolved by the Session middleware and
// fails fast with ErrUnauthenticated before any service call when there is
// none.
func ctxPrincipal(c echo.Context) (*domain.Principal, error) {
	p := middleware.PrincipalFrom(c)
	if p == nil {
		return nil, domain.ErrUnauthenticated
	}
	return p, nil
}

// bindAndValidate decodes the body into req and runs struct validation.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return invalidPayload
	}
	return c.Validate(req)
}
