package checkers

import (
	"context"
	"errors"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestPostgresChecker(t *testing.T) {
	var hadDeadline bool
	c := NewPostgresChecker(pingerFunc(func(ctx context.Context) error {
		_, hadDeadline = ctx.Deadline()
		return nil
	}))
	require.NoError(t, c.Check(context.Background()))
	assert.True(t, hadDeadline)
	assert.Equal(t, "postgres", c.Name())

	down := errors.New("down")
	require.ErrorIs(t, NewPostgresChecker(pingerFunc(func(context.Context) error { return down })).Check(context.Background()), down)
}

type fakeRedis struct {
	redis.Cmdable
	err error
}

func (f fakeRedis) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", f.err)
}

func TestRedisChecker(t *testing.T) {
	c := NewRedisChecker(fakeRedis{})
	require.NoError(t, c.Check(context.Background()))
	assert.Equal(t, "redis", c.Name())

	require.Error(t, NewRedisChecker(fakeRedis{err: errors.New("refused")}).Check(context.Background()))
}
