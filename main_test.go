package main

import (
	"context"
	"testing"
	"time"

	"cookbook/internal/config"
	"cookbook/internal/logger"
	"cookbook/internal/middleware"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_Subcommands(t *testing.T) {
	root := newRootCommand()
	var names []string
	for _, c := range root.Commands {
		names = append(names, c.Name)
	}
	assert.ElementsMatch(t, []string{"serve", "migrate", "seed"}, names)
}

func TestNewLimiter(t *testing.T) {
	ctx := context.Background()

	limiter, closeFn, err := newLimiter(ctx, &config.Config{RateLimitWrites: 0}, logger.Nop())
	require.NoError(t, err)
	assert.Nil(t, limiter)
	closeFn()

	limiter, closeFn, err = newLimiter(ctx, &config.Config{RateLimitWrites: 5, RateLimitWindow: time.Minute}, logger.Nop())
	require.NoError(t, err)
	assert.IsType(t, &middleware.LocalLimiter{}, limiter)
	closeFn()

	_, _, err = newLimiter(ctx, &config.Config{RateLimitWrites: 5, RateLimitWindow: time.Minute, RedisURL: "not a url"}, logger.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REDIS_URL")
}

func TestAuditHandler(t *testing.T) {
	handle := auditHandler(logger.Nop())

	err := handle(amqp.Delivery{
		RoutingKey: "recipe.created",
		Body:       []byte(`{"type":"recipe.created","entityId":"r1","actorId":"u1","occurredAt":"2024-01-02T03:04:05Z"}`),
	})
	assert.NoError(t, err)

	err = handle(amqp.Delivery{RoutingKey: "recipe.created", Body: []byte("not json")})
	assert.Error(t, err)
}
