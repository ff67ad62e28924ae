// @title        Storefront API
// @version      1.0
// @description  Session, role and order lifecycle API of the storefront.
// @BasePath     /
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/weinhaus/storefront/internal/api"
	"github.com/weinhaus/storefront/internal/api/handler"
	"github.com/weinhaus/storefront/internal/core/service"
	"github.com/weinhaus/storefront/internal/infrastructure/db/mongo"
	"github.com/weinhaus/storefront/internal/infrastructure/db/redis"
	"github.com/weinhaus/storefront/internal/infrastructure/flow"
	"github.com/weinhaus/storefront/internal/infrastructure/queue"
	"github.com/weinhaus/storefront/internal/infrastructure/token"
	"github.com/weinhaus/storefront/internal/pkg/config"
	"github.com/weinhaus/storefront/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		logger.Get().Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "storefront",
	})

	mongoClient, db, err := mongo.Shared(ctx, mongo.Config{
		URI:         cfg.Mongo.URI,
		Database:    cfg.Mongo.Database,
		MaxPoolSize: cfg.Mongo.MaxPoolSize,
	})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = mongoClient.Disconnect(dctx)
	}()

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})
	if err != nil {
		return err
	}
	defer rdb.Close()

	users := mongo.NewUserRepository(db)
	orders := mongo.NewOrderRepository(db)
	events := mongo.NewEventRepository(db)
	if err := users.EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := orders.EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := events.EnsureIndexes(ctx); err != nil {
		return err
	}

	tokens, err := token.NewManager(token.Config{
		Secret: []byte(cfg.Session.Secret),
		TTL:    cfg.Session.TTL,
		Issuer: cfg.Session.Issuer,
		Leeway: cfg.Session.Leeway,
	})
	if err != nil {
		return err
	}

	views := redis.NewViewRegistry(rdb)
	auditLog := logger.Component("audit")
	auditService := service.NewAuditService(events, redis.NewDedupChecker(rdb), auditLog)
	dispatcher := queue.NewDispatcher(cfg.AuditWorkers, auditService, auditLog)
	dispatcher.Start(ctx)

	router := api.NewRouter(api.Deps{
		Auth:      service.NewAuthService(users, tokens, log),
		Resolver:  service.NewIdentityService(tokens, users, log),
		Gateway:   service.NewQueryGateway(orders, users, views, log),
		Lifecycle: service.NewOrderLifecycle(orders, views, dispatcher, log),
		Users:     service.NewUserService(users, views, log),
		Sommelier: service.NewSommelierService(flow.NewClient(flow.Config{BaseURL: cfg.Flow.BaseURL, Timeout: cfg.Flow.Timeout}), logger.Component("sommelier")),
		Health: map[string]handler.HealthCheck{
			"mongodb": mongo.Pinger(mongoClient),
			"redis":   redis.Pinger(rdb),
		},
		Cookie: handler.CookieConfig{Secure: !cfg.IsDevelopment(), TTL: tokens.TTL()},
		Log:    log,
	})

	return serve(ctx, router, ":"+cfg.Port, log)
}

func serve(ctx context.Context, srv interface {
	Start(address string) error
	Shutdown(ctx context.Context) error
}, addr string, log zerolog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("http server listening")
		if err := srv.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(sctx)
}
