package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrOrderNotFound      = errors.New("order not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrAlreadyDone        = errors.New("transition already done")
	ErrBackend            = errors.New("backend error")
	ErrInvalidToken       = errors.New("invalid session token")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidInput       = errors.New("invalid input")
	ErrFlowFailed         = errors.New("flow invocation failed")

	// ErrStatusConflict is returned by a store when a compare-and-set on
	// order status found a different current status. It never leaves the
	// lifecycle engine.
	ErrStatusConflict = errors.New("order status changed concurrently")
)

// TransitionError reports a rejected state change together with the status the
// order was found in.
type TransitionError struct {
	OrderID string
	Current OrderStatus
	Target  OrderStatus
	Err     error
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("order %s: %v (current %s, target %s)", e.OrderID, e.Err, e.Current, e.Target)
}

func (e *TransitionError) Unwrap() error {
	return e.Err
}

// Backend wraps a store or network failure so callers can match ErrBackend.
func Backend(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrBackend, op, err)
}
