package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cookbook/internal/config"
	"cookbook/internal/logger"
	"cookbook/internal/middleware"
	"cookbook/internal/server"
	"cookbook/internal/services"
	"cookbook/pkg/rabbitmq"

	"github.com/redis/go-redis/v9"
	"github.com/streadway/amqp"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"
)

const auditQueue = "cookbook.audit"

var _ services.EventPublisher = (*rabbitmq.Client)(nil)

func serve(ctx context.Context, cmd *cli.Command) error {
	cfg, log, db, err := bootstrap()
	if err != nil {
		return err
	}
	defer log.Sync()

	deps := server.Deps{Config: cfg, DB: db, Log: log, Registry: server.NewRegistry()}

	var mq *rabbitmq.Client
	if cfg.RabbitMQURL != "" {
		mq, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Exchange: cfg.RabbitMQExchange}, log)
		if err != nil {
			return err
		}
		defer mq.Close()
		deps.Publisher = mq
	} else {
		log.Warn("RABBITMQ_URL is not set, domain events are disabled")
	}

	limiter, closeLimiter, err := newLimiter(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeLimiter()
	deps.Limiter = limiter

	app := server.NewApp(deps)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("Starting server", "port", cfg.AppPort)
		return app.Listen(cfg.AppPort)
	})

	if mq != nil && cmd.Bool("audit") {
		g.Go(func() error {
			err := mq.Consume(gctx, auditQueue, []string{"recipe.#", "rating.#"}, auditHandler(log))
			if err != nil {
				// the API keeps serving without the audit trail
				log.Error("Audit consumer stopped", "error", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return app.ShutdownWithContext(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}
	log.Info("Server gracefully stopped")
	return nil
}

// newLimiter picks the write limiter: Redis when reachable, otherwise one in process.
// A zero RATE_LIMIT_WRITES disables limiting.
func newLimiter(ctx context.Context, cfg *config.Config, log *logger.Logger) (middleware.Limiter, func(), error) {
	noop := func() {}
	if cfg.RateLimitWrites == 0 {
		return nil, noop, nil
	}
	if cfg.RedisURL == "" {
		return middleware.NewLocalLimiter(cfg.RateLimitWrites, cfg.RateLimitWindow), noop, nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, noop, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Warn("Redis unreachable, rate limiting in process", "error", err)
		_ = client.Close()
		return middleware.NewLocalLimiter(cfg.RateLimitWrites, cfg.RateLimitWindow), noop, nil
	}
	return middleware.NewRedisLimiter(client, cfg.RateLimitWrites, cfg.RateLimitWindow), func() { _ = client.Close() }, nil
}

// auditHandler logs each domain event. Undecodable messages are rejected.
func auditHandler(log *logger.Logger) func(amqp.Delivery) error {
	return func(msg amqp.Delivery) error {
		var ev services.Event
		if err := json.Unmarshal(msg.Body, &ev); err != nil {
			return fmt.Errorf("failed to decode event: %w", err)
		}
		log.Info("Domain event",
			"type", ev.Type,
			"routingKey", msg.RoutingKey,
			"entityId", ev.EntityID,
			"actorId", ev.ActorID,
			"occurredAt", ev.OccurredAt,
		)
		return nil
	}
}
