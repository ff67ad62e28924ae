package ports

import (
	"context"

	"github.com/weinhaus/storefront/internal/core/domain"
)

// FlowInvoker calls a named flow on the managed AI runtime. input is sent as
// JSON and the response is decoded into output.
type FlowInvoker interface {
	Invoke(ctx context.Context, flowName string, input, output any) error
}

// PairingInput is the sommelier request.
type PairingInput struct {
	Dish        string
	Preferences string
}

// PairingResult is the sommelier answer.
type PairingResult struct {
	Wine        string `json:"wine"`
	Explanation string `json:"explanation"`
}

type SommelierService interface {
	Pair(ctx context.Context, principal *domain.Principal, input PairingInput) (*PairingResult, error)
}
