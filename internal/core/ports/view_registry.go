package ports

import "context"

// ViewRegistry tracks a revision per named view. Bumping a revision marks the
// view stale; no data is pushed.
type ViewRegistry interface {
	Invalidate(ctx context.Context, views ...string) error
	Revisions(ctx context.Context, views ...string) (map[string]int64, error)
}
