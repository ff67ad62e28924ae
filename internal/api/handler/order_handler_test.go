package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/weinhaus/storefront/internal/core/domain"
)

func withID(c echo.Context, id string) echo.Context {
	c.SetParamNames("id")
	c.SetParamValues(id)
	return c
}

func TestOrderHandler_MarkPaid(t *testing.T) {
	lc := &stubLifecycle{}
	h := NewOrderHandler(lc)

	c, rec := newContext(http.MethodPost, "/employee/orders/o1/pay", "", employee)
	if err := h.MarkPaid(withID(c, "o1")); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp transitionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !resp.Success || resp.Message != "Bestellung wurde als bezahlt markiert." || resp.Status != domain.StatusPaid || resp.OrderID != "o1" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestOrderHandler_TransitionErrorsPropagate(t *testing.T) {
	lc := &stubLifecycle{err: &domain.TransitionError{OrderID: "o1", Current: domain.StatusPaid, Target: domain.StatusPaid, Err: domain.ErrAlreadyDone}}
	h := NewOrderHandler(lc)

	c, _ := newContext(http.MethodPost, "/employee/orders/o1/pay", "", employee)
	err := h.MarkPaid(withID(c, "o1"))
	if !errors.Is(err, domain.ErrAlreadyDone) {
		t.Fatalf("expected ErrAlreadyDone, got %v", err)
	}
}

func TestOrderHandler_AnonymousRejectedBeforeService(t *testing.T) {
	lc := &stubLifecycle{}
	h := NewOrderHandler(lc)

	for name, fn := range map[string]echo.HandlerFunc{
		"picking": h.StartPicking,
		"picked":  h.FinishPicking,
		"pay":     h.MarkPaid,
		"cancel":  h.Cancel,
	} {
		c, _ := newContext(http.MethodPost, "/employee/orders/o1/"+name, "", nil)
		if err := fn(withID(c, "o1")); !errors.Is(err, domain.ErrUnauthenticated) {
			t.Fatalf("%s: expected ErrUnauthenticated, got %v", name, err)
		}
	}
	if lc.calls != 0 {
		t.Fatalf("lifecycle called %d times", lc.calls)
	}
}

func TestOrderHandler_FinishPicking(t *testing.T) {
	lc := &stubLifecycle{pickedFn: func(id string) (*domain.Order, error) {
		return &domain.Order{ID: id, Status: domain.StatusPicking}, nil
	}}
	h := NewOrderHandler(lc)

	c, rec := newContext(http.MethodPost, "/employee/orders/o7/picked", "", admin)
	if err := h.FinishPicking(withID(c, "o7")); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp transitionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if lc.lastID != "o7" || resp.Status != domain.StatusPicking || !resp.Success {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestOrderHandler_Place(t *testing.T) {
	lc := &stubLifecycle{}
	h := NewOrderHandler(lc)

	body := `{"type":"grocery_list","items":[{"sku":"W-1","name":" Riesling ","quantity":2,"unit_price":9.5}]}`
	c, rec := newContext(http.MethodPost, "/dashboard/orders", body, customer)
	if err := h.Place(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if lc.placed.Type != domain.OrderTypeGroceryList || len(lc.placed.Items) != 1 || lc.placed.Items[0].Name != "Riesling" {
		t.Fatalf("unexpected input: %+v", lc.placed)
	}
}

func TestOrderHandler_PlaceValidatesItems(t *testing.T) {
	lc := &stubLifecycle{}
	h := NewOrderHandler(lc)

	for _, body := range []string{
		`{"items":[]}`,
		`{"items":[{"sku":"W-1","name":"Riesling","quantity":0}]}`,
		`{"type":"subscription","items":[{"sku":"W-1","name":"Riesling","quantity":1}]}`,
	} {
		c, _ := newContext(http.MethodPost, "/dashboard/orders", body, customer)
		if err := h.Place(c); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", body, err)
		}
	}
	if lc.calls != 0 {
		t.Fatalf("lifecycle called %d times", lc.calls)
	}
}
