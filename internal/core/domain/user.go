package domain

import (
	"strings"
	"time"
)

// Role is the authorization level of an actor.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleEmployee Role = "employee"
	RoleAdmin    Role = "admin"
)

// DefaultRole applies when the user store omits a role.
const DefaultRole = RoleCustomer

// ParseRole normalizes a stored or submitted role string. Unknown values yield
// the empty Role so callers can treat them as omitted.
func ParseRole(s string) Role {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleCustomer:
		return RoleCustomer
	case RoleEmployee:
		return RoleEmployee
	case RoleAdmin:
		return RoleAdmin
	default:
		return ""
	}
}

// OrDefault normalizes r and substitutes DefaultRole for an omitted or
// unknown role.
func (r Role) OrDefault() Role {
	if parsed := ParseRole(string(r)); parsed != "" {
		return parsed
	}
	return DefaultRole
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return ParseRole(string(r)) != ""
}

// IsStaff reports whether r may operate on other customers' orders.
func (r Role) IsStaff() bool {
	return r == RoleEmployee || r == RoleAdmin
}

// Home is the landing path an authenticated principal is forwarded to.
func (r Role) Home() string {
	switch r {
	case RoleAdmin:
		return "/admin/dashboard"
	case RoleEmployee:
		return "/employee/scanner"
	default:
		return "/dashboard"
	}
}

// User is the authoritative user record. Role and profile fields are
// admin-writable and re-read on every session resolution.
type User struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	Role          Role      `json:"role"`
	Phone         string    `json:"phone,omitempty"`
	LoyaltyPoints int64     `json:"loyalty_points"`
	PasswordHash  string    `json:"-"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Principal is the resolved identity and role for the current request. It is
// built per request and never persisted.
type Principal struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	Role          Role   `json:"role"`
	Phone         string `json:"phone,omitempty"`
	LoyaltyPoints int64  `json:"loyalty_points"`
}

// HasRole reports whether p is non-nil and holds one of roles.
func (p *Principal) HasRole(roles ...Role) bool {
	if p == nil {
		return false
	}
	for _, r := range roles {
		if p.Role == r {
			return true
		}
	}
	return false
}

// Claims is what a verified session token asserts. Role is informational only;
// the user store decides the effective role.
type Claims struct {
	UserID    string
	Email     string
	Name      string
	Role      Role
	SessionID string
	ExpiresAt time.Time
}
