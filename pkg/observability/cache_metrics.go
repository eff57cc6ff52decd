package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// CacheMetrics counts task cache lookups by outcome.
type CacheMetrics struct {
	hits   metric.Int64Counter
	misses metric.Int64Counter
	errors metric.Int64Counter
}

// NewCacheMetrics registers the cache counters on meter.
func NewCacheMetrics(meter metric.Meter) (*CacheMetrics, error) {
	hits, err := meter.Int64Counter("task_cache_hits",
		metric.WithDescription("Task list requests served from the cache"))
	if err != nil {
		return nil, fmt.Errorf("failed to create cache hits counter: %w", err)
	}

	misses, err := meter.Int64Counter("task_cache_misses",
		metric.WithDescription("Task list requests that fell through to the database"))
	if err != nil {
		return nil, fmt.Errorf("failed to create cache misses counter: %w", err)
	}

	errs, err := meter.Int64Counter("task_cache_errors",
		metric.WithDescription("Failed cache operations, by operation"))
	if err != nil {
		return nil, fmt.Errorf("failed to create cache errors counter: %w", err)
	}

	return &CacheMetrics{hits: hits, misses: misses, errors: errs}, nil
}

func (m *CacheMetrics) Hit(ctx context.Context) {
	m.hits.Add(ctx, 1)
}

func (m *CacheMetrics) Miss(ctx context.Context) {
	m.misses.Add(ctx, 1)
}

// Error records a failed cache operation such as "get", "set" or "invalidate".
func (m *CacheMetrics) Error(ctx context.Context, op string) {
	m.errors.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", op)))
}
