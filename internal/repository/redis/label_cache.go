package redis

import (
	"context"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/analytics"
	"github.com/redis/go-redis/v9"
)

const DefaultLabelTTL = 10 * time.Minute

// cacheClient is the subset of *redis.Client the label cache uses.
type cacheClient interface {
	MGet(ctx context.Context, keys ...string) *redis.SliceCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// LabelCache serves department and designation labels from Redis and falls
// back to the wrapped repository on a miss. Redis errors are logged, never
// returned: the cache is an optimisation, not a source of truth.
type LabelCache struct {
	next   analytics.LabelRepository
	rdb    cacheClient
	ttl    time.Duration
	logger *slog.Logger
}

func NewLabelCache(next analytics.LabelRepository, rdb cacheClient, ttl time.Duration, logger *slog.Logger) *LabelCache {
	if ttl <= 0 {
		ttl = DefaultLabelTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &LabelCache{
		next:   next,
		rdb:    rdb,
		ttl:    ttl,
		logger: logger.With("component", "label_cache"),
	}
}

func (c *LabelCache) DepartmentNames(ctx context.Context, companyID string, ids []string) (map[string]string, error) {
	return c.lookup(ctx, "department", companyID, ids, c.next.DepartmentNames)
}

func (c *LabelCache) DesignationTitles(ctx context.Context, companyID string, ids []string) (map[string]string, error) {
	return c.lookup(ctx, "designation", companyID, ids, c.next.DesignationTitles)
}

type labelSource func(ctx context.Context, companyID string, ids []string) (map[string]string, error)

func (c *LabelCache) lookup(ctx context.Context, kind, companyID string, ids []string, source labelSource) (map[string]string, error) {
	labels := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return labels, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = labelKey(kind, companyID, id)
	}

	misses := ids
	values, err := c.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		c.logger.WarnContext(ctx, "label cache read failed", slog.String("kind", kind), slog.Any("error", err))
	} else {
		misses = make([]string, 0, len(ids))
		for i, v := range values {
			if s, ok := v.(string); ok {
				labels[ids[i]] = s
				continue
			}
			misses = append(misses, ids[i])
		}
	}
	if len(misses) == 0 {
		return labels, nil
	}

	fetched, err := source(ctx, companyID, misses)
	if err != nil {
		return nil, err
	}
	for id, name := range fetched {
		labels[id] = name
		if err := c.rdb.Set(ctx, labelKey(kind, companyID, id), name, c.ttl).Err(); err != nil {
			c.logger.WarnContext(ctx, "label cache write failed", slog.String("kind", kind), slog.Any("error", err))
		}
	}
	return labels, nil
}

func labelKey(kind, companyID, id string) string {
	return "hris:label:" + kind + ":" + companyID + ":" + id
}
