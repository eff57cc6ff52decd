package service

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/prperemyshlev/pomodoro-service/internal/domain"
	"github.com/prperemyshlev/pomodoro-service/pkg/database"
	"github.com/prperemyshlev/pomodoro-service/pkg/observability"
)

func newTestRedis(t *testing.T) (*database.Redis, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return database.NewRedisFromClient(client), mr
}

func newTestMetrics(t *testing.T) *observability.CacheMetrics {
	t.Helper()

	metrics, err := observability.NewCacheMetrics(noop.NewMeterProvider().Meter("test"))
	require.NoError(t, err)
	return metrics
}

// faultyCache fails the configured operations and records the rest
type faultyCache struct {
	getErr        error
	addErr        error
	invalidateErr error
	setCalls      int
	invalidations int
}

func (c *faultyCache) GetUserTasks(context.Context, string) ([]domain.Task, error) {
	return nil, c.getErr
}

func (c *faultyCache) SetUserTasks(context.Context, string, []domain.Task) error {
	c.setCalls++
	return nil
}

func (c *faultyCache) AddTask(context.Context, string, domain.Task) (bool, error) {
	return false, c.addErr
}

func (c *faultyCache) Invalidate(context.Context, string) error {
	c.invalidations++
	return c.invalidateErr
}
