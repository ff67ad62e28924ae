package handler

import (
	"time"

	"github.com/weinhaus/storefront/internal/core/domain"
	"github.com/weinhaus/storefront/internal/core/ports"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Auth ---

type registerRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name"     validate:"required"`
	Phone    string `json:"phone"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	User      *domain.User `json:"user"`
	ExpiresAt time.Time    `json:"expires_at"`
	Redirect  string       `json:"redirect"`
}

type userResponse struct {
	User *domain.User `json:"user"`
}

type sessionResponse struct {
	User *domain.Principal `json:"user"`
}

// --- Pages ---

type pageResponse struct {
	Page      string            `json:"page"`
	Principal *domain.Principal `json:"principal,omitempty"`
	Data      *ports.Records    `json:"data,omitempty"`
}

// --- Orders ---

type orderItemRequest struct {
	SKU       string  `json:"sku"        validate:"required"`
	Name      string  `json:"name"       validate:"required"`
	Quantity  int     `json:"quantity"   validate:"required,gt=0"`
	UnitPrice float64 `json:"unit_price" validate:"gte=0"`
}

type placeOrderRequest struct {
	Type     string             `json:"type"     validate:"omitempty,oneof=standard grocery_list"`
	Currency string             `json:"currency" validate:"omitempty,len=3"`
	Items    []orderItemRequest `json:"items"    validate:"required,min=1,dive"`
}

// transitionResponse is the markOrderAsPaid style result envelope.
type transitionResponse struct {
	Success bool               `json:"success"`
	Message string             `json:"message"`
	OrderID string             `json:"order_id"`
	Status  domain.OrderStatus `json:"status"`
}

// --- Admin ---

type changeRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=customer employee admin"`
}

// --- Sommelier ---

type pairingRequest struct {
	Dish        string `json:"dish"        validate:"required,max=200"`
	Preferences string `json:"preferences" validate:"max=500"`
}
