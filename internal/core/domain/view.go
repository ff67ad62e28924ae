package domain

// Names of client views derived from orders and users. Invalidating a view
// marks it stale; clients re-fetch on next render.
const (
	ViewStaffOrders = "orders:staff"
	ViewDashboard   = "dashboard"
	ViewScanner     = "scanner"
)

// ViewCustomerOrders names one customer's order history view.
func ViewCustomerOrders(userID string) string {
	return "orders:customer:" + userID
}

// OrderViews lists every view that derives from o.
func OrderViews(o *Order) []string {
	return []string{ViewCustomerOrders(o.UserID), ViewStaffOrders, ViewDashboard, ViewScanner}
}
