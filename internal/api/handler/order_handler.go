package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/weinhaus/storefront/internal/api/metrics"
	"github.com/weinhaus/storefront/internal/core/domain"
	"github.com/weinhaus/storefront/internal/core/ports"
)

// Success messages shown to staff after a status change.
var transitionMessages = map[domain.OrderStatus]string{
	domain.StatusPicking:   "Kommissionierung wurde gestartet.",
	domain.StatusPaid:      "Bestellung wurde als bezahlt markiert.",
	domain.StatusCancelled: "Bestellung wurde storniert.",
}

// OrderHandler handles order placement and the staff status operations.
type OrderHandler struct {
	lifecycle ports.OrderLifecycle
}

func NewOrderHandler(lifecycle ports.OrderLifecycle) *OrderHandler {
	return &OrderHandler{lifecycle: lifecycle}
}

// Place handles POST /dashboard/orders.
//
// @Summary      Place an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body  body      placeOrderRequest  true  "Order"
// @Success      201   {object}  domain.Order
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /dashboard/orders [post]
func (h *OrderHandler) Place(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req placeOrderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	items := make([]domain.OrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, domain.OrderItem{
			SKU:       strings.TrimSpace(it.SKU),
			Name:      strings.TrimSpace(it.Name),
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}

	order, err := h.lifecycle.PlaceOrder(c.Request().Context(), p, ports.PlaceOrderInput{
		Type:     domain.OrderType(req.Type),
		Currency: req.Currency,
		Items:    items,
	})
	if err != nil {
		return err
	}

	metrics.OrdersPlacedTotal.WithLabelValues(string(order.Type)).Inc()
	return c.JSON(http.StatusCreated, order)
}

// StartPicking handles POST /employee/orders/:id/picking.
//
// @Summary      Start picking an order
// @Tags         orders
// @Produce      json
// @Param        id   path      string  true  "Order ID"
// @Success      200  {object}  transitionResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /employee/orders/{id}/picking [post]
func (h *OrderHandler) StartPicking(c echo.Context) error {
	return h.transition(c, domain.StatusPicking, h.lifecycle.StartPicking)
}

// FinishPicking handles POST /employee/orders/:id/picked.
//
// @Summary      Finish picking an order
// @Tags         orders
// @Produce      json
// @Param        id   path      string  true  "Order ID"
// @Success      200  {object}  transitionResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /employee/orders/{id}/picked [post]
func (h *OrderHandler) FinishPicking(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	order, err := h.lifecycle.FinishPicking(c.Request().Context(), c.Param("id"), p)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, transitionResponse{
		Success: true,
		Message: "Kommissionierung wurde abgeschlossen.",
		OrderID: order.ID,
		Status:  order.Status,
	})
}

// MarkPaid handles POST /employee/orders/:id/pay.
//
// @Summary      Mark an order as paid
// @Tags         orders
// @Produce      json
// @Param        id   path      string  true  "Order ID"
// @Success      200  {object}  transitionResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Failure      503  {object}  errorResponse
// @Router       /employee/orders/{id}/pay [post]
func (h *OrderHandler) MarkPaid(c echo.Context) error {
	return h.transition(c, domain.StatusPaid, h.lifecycle.MarkPaid)
}

// Cancel handles POST /employee/orders/:id/cancel.
//
// @Summary      Cancel an order
// @Tags         orders
// @Produce      json
// @Param        id   path      string  true  "Order ID"
// @Success      200  {object}  transitionResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /employee/orders/{id}/cancel [post]
func (h *OrderHandler) Cancel(c echo.Context) error {
	return h.transition(c, domain.StatusCancelled, h.lifecycle.Cancel)
}

type transitionFunc func(ctx context.Context, orderID string, actor *domain.Principal) (*ports.TransitionResult, error)

func (h *OrderHandler) transition(c echo.Context, target domain.OrderStatus, op transitionFunc) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	res, err := op(c.Request().Context(), c.Param("id"), p)
	metrics.OrderTransitionsTotal.WithLabelValues(string(target), transitionResult(err)).Inc()
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, transitionResponse{
		Success: true,
		Message: transitionMessages[res.To],
		OrderID: res.OrderID,
		Status:  res.To,
	})
}

func transitionResult(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrAlreadyDone):
		return "already_done"
	case errors.Is(err, domain.ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, domain.ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, domain.ErrOrderNotFound):
		return "not_found"
	default:
		return "error"
	}
}
