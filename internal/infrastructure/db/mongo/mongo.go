package mongo

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	connectTimeout = 10 * time.Second
	appName        = "storefront"
)

// Config selects the cluster and database holding users, orders and the
// order audit trail.
type Config struct {
	URI         string
	Database    string
	MaxPoolSize uint64
}

// Connect dials the cluster and pings the primary. Callers normally go
// through Shared instead.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	if cfg.URI == "" || cfg.Database == "" {
		return nil, nil, errors.New("mongo: uri and database are required")
	}

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetAppName(appName).
		SetServerSelectionTimeout(connectTimeout)
	if cfg.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(cfg.MaxPoolSize)
	}

	dialCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(dialCtx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(dialCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, client.Database(cfg.Database), nil
}

var (
	sharedOnce   sync.Once
	sharedClient *mongo.Client
	sharedDB     *mongo.Database
	sharedErr    error
)

// Shared returns the process-wide handle, connecting on first use. Later
// calls ignore cfg and get the same handle, or the same error: a failed
// first connect is not retried.
func Shared(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	sharedOnce.Do(func() {
		sharedClient, sharedDB, sharedErr = Connect(ctx, cfg)
	})
	return sharedClient, sharedDB, sharedErr
}

// Pinger returns a readiness check for client.
func Pinger(client *mongo.Client) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		return client.Ping(ctx, readpref.Primary())
	}
}
