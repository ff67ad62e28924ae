package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// ViewRegistry keeps one revision counter per named view.
// Key format: view:<name>:rev
type ViewRegistry struct {
	client *redis.Client
}

func NewViewRegistry(client *redis.Client) *ViewRegistry {
	return &ViewRegistry{client: client}
}

// Invalidate bumps the revision of every view in one pipeline.
func (r *ViewRegistry) Invalidate(ctx context.Context, views ...string) error {
	if len(views) == 0 {
		return nil
	}
	_, err := r.client.Pipelined(ctx, func(p redis.Pipeliner) error {
		for _, v := range views {
			p.Incr(ctx, viewKey(v))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("invalidate views: %w", err)
	}
	return nil
}

// Revisions reads the current revision of each view. Views never
// invalidated report 0.
func (r *ViewRegistry) Revisions(ctx context.Context, views ...string) (map[string]int64, error) {
	out := make(map[string]int64, len(views))
	if len(views) == 0 {
		return out, nil
	}

	cmds := make([]*redis.StringCmd, len(views))
	_, err := r.client.Pipelined(ctx, func(p redis.Pipeliner) error {
		for i, v := range views {
			cmds[i] = p.Get(ctx, viewKey(v))
		}
		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("read view revisions: %w", err)
	}

	for i, v := range views {
		n, err := cmds[i].Int64()
		switch {
		case errors.Is(err, redis.Nil):
			out[v] = 0
		case err != nil:
			return nil, fmt.Errorf("read view revision %s: %w", v, err)
		default:
			out[v] = n
		}
	}
	return out, nil
}

func viewKey(name string) string {
	return "view:" + name + ":rev"
}
