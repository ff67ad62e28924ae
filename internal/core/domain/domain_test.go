package domain

import (
	"errors"
	"testing"
)

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from, to OrderStatus
		want     bool
	}{
		{StatusNew, StatusPicking, true},
		{StatusNew, StatusCancelled, true},
		{StatusNew, StatusPaid, false},
		{StatusPicking, StatusPaid, true},
		{StatusPicking, StatusCancelled, true},
		{StatusPicking, StatusNew, false},
		{StatusPaid, StatusCancelled, false},
		{StatusPaid, StatusPaid, false},
		{StatusCancelled, StatusNew, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
			t.Errorf("%s -> %s: expected %v, got %v", tc.from, tc.to, tc.want, got)
		}
	}
}

func TestOrderStatus_IsTerminal(t *testing.T) {
	if StatusNew.IsTerminal() || StatusPicking.IsTerminal() {
		t.Fatal("new and picking must not be terminal")
	}
	if !StatusPaid.IsTerminal() || !StatusCancelled.IsTerminal() {
		t.Fatal("paid and cancelled must be terminal")
	}
}

func TestParseRole(t *testing.T) {
	cases := map[string]Role{
		"admin":     RoleAdmin,
		" Employee": RoleEmployee,
		"customer":  RoleCustomer,
		"":          "",
		"root":      "",
	}
	for in, want := range cases {
		if got := ParseRole(in); got != want {
			t.Errorf("ParseRole(%q): expected %q, got %q", in, want, got)
		}
	}
}

func TestRole_Home(t *testing.T) {
	if RoleAdmin.Home() != "/admin/dashboard" {
		t.Errorf("admin home: %s", RoleAdmin.Home())
	}
	if RoleEmployee.Home() != "/employee/scanner" {
		t.Errorf("employee home: %s", RoleEmployee.Home())
	}
	if RoleCustomer.Home() != "/dashboard" {
		t.Errorf("customer home: %s", RoleCustomer.Home())
	}
}

func TestPrincipal_HasRole_Nil(t *testing.T) {
	var p *Principal
	if p.HasRole(RoleAdmin, RoleCustomer) {
		t.Fatal("nil principal must hold no role")
	}
}

func TestTransitionError_Unwrap(t *testing.T) {
	err := error(&TransitionError{OrderID: "o1", Current: StatusPaid, Target: StatusPaid, Err: ErrAlreadyDone})
	if !errors.Is(err, ErrAlreadyDone) {
		t.Fatalf("expected ErrAlreadyDone, got %v", err)
	}
	var te *TransitionError
	if !errors.As(err, &te) || te.Current != StatusPaid {
		t.Fatalf("expected TransitionError with current status, got %v", err)
	}
}

func TestBackend_WrapsBoth(t *testing.T) {
	cause := errors.New("connection reset")
	err := Backend("find order", cause)
	if !errors.Is(err, ErrBackend) || !errors.Is(err, cause) {
		t.Fatalf("expected both ErrBackend and cause, got %v", err)
	}
}

func TestOrderViews(t *testing.T) {
	views := OrderViews(&Order{UserID: "u1"})
	want := map[string]bool{"orders:customer:u1": true, ViewStaffOrders: true, ViewDashboard: true, ViewScanner: true}
	if len(views) != len(want) {
		t.Fatalf("expected %d views, got %v", len(want), views)
	}
	for _, v := range views {
		if !want[v] {
			t.Errorf("unexpected view %q", v)
		}
	}
}

func TestComputeTotal(t *testing.T) {
	got := ComputeTotal([]OrderItem{{Quantity: 2, UnitPrice: 12.5}, {Quantity: 1, UnitPrice: 5}})
	if got != 30 {
		t.Fatalf("expected 30, got %v", got)
	}
}
