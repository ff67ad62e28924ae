package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/weinhaus/storefront/internal/api/metrics"
	"github.com/weinhaus/storefront/internal/core/domain"
	"github.com/weinhaus/storefront/internal/core/ports"
)

// PageHandler serves the page-level data of the storefront.
type PageHandler struct {
	gateway ports.QueryGateway
}

func NewPageHandler(gateway ports.QueryGateway) *PageHandler {
	return &PageHandler{gateway: gateway}
}

// Login renders the login page, or forwards a signed-in principal to its
// role's landing page.
//
// @Summary      Login page
// @Tags         pages
// @Produce      json
// @Success      200  {object}  pageResponse
// @Success      302
// @Router       /login [get]
func (h *PageHandler) Login(c echo.Context) error {
	return h.publicPage(c, "login")
}

// Register renders the registration page with the same forwarding as Login.
//
// @Summary      Registration page
// @Tags         pages
// @Produce      json
// @Success      200  {object}  pageResponse
// @Success      302
// @Router       /register [get]
func (h *PageHandler) Register(c echo.Context) error {
	return h.publicPage(c, "register")
}

func (h *PageHandler) publicPage(c echo.Context, page string) error {
	if p, err := ctxPrincipal(c); err == nil {
		return c.Redirect(http.StatusFound, p.Role.Home())
	}
	return c.JSON(http.StatusOK, pageResponse{Page: page})
}

// CustomerDashboard returns the principal with its own orders.
//
// @Summary      Customer dashboard
// @Tags         pages
// @Produce      json
// @Success      200  {object}  pageResponse
// @Failure      401  {object}  errorResponse
// @Router       /dashboard [get]
func (h *PageHandler) CustomerDashboard(c echo.Context) error {
	return h.render(c, "dashboard", ports.IntentMyOrders)
}

// AdminDashboard is getDashboardPageData: orders, users and summary figures.
//
// @Summary      Admin dashboard data
// @Tags         pages
// @Produce      json
// @Success      200  {object}  pageResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      503  {object}  errorResponse
// @Router       /admin/dashboard [get]
func (h *PageHandler) AdminDashboard(c echo.Context) error {
	return h.render(c, "admin_dashboard", ports.IntentDashboard)
}

// Scanner is getScannerPageData: open grocery lists and the user list.
//
// @Summary      Scanner queue data
// @Tags         pages
// @Produce      json
// @Success      200  {object}  pageResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      503  {object}  errorResponse
// @Router       /employee/scanner [get]
func (h *PageHandler) Scanner(c echo.Context) error {
	return h.render(c, "scanner", ports.IntentScannerQueue)
}

// StaffOrders lists every order for staff.
//
// @Summary      Staff order list
// @Tags         pages
// @Produce      json
// @Success      200  {object}  pageResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /employee/orders [get]
func (h *PageHandler) StaffOrders(c echo.Context) error {
	return h.render(c, "staff_orders", ports.IntentStaffOrders)
}

func (h *PageHandler) render(c echo.Context, page string, intent ports.Intent) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	records, err := h.gateway.Fetch(c.Request().Context(), intent, p)
	metrics.GatewayFetchesTotal.WithLabelValues(string(intent), fetchResult(err)).Inc()
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, pageResponse{Page: page, Principal: p, Data: records})
}

func fetchResult(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrUnauthorized):
		return "unauthorized"
	default:
		return "error"
	}
}
