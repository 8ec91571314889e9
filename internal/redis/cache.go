package redisdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"solo-sparks/internal/metrics"
	"solo-sparks/internal/recommend"
)

const recsKeyFmt = "recs:%s"

// RecommendationCache keeps a user's last ranked list for a short TTL. It is
// invalidated whenever the user's profile, moods or quest records change.
// A zero TTL or nil client disables it.
type RecommendationCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRecommendationCache(rdb *redis.Client, ttl time.Duration) *RecommendationCache {
	return &RecommendationCache{rdb: rdb, ttl: ttl}
}

func (c *RecommendationCache) enabled() bool {
	return c != nil && c.rdb != nil && c.ttl > 0
}

// Get returns the cached list and whether it was present.
func (c *RecommendationCache) Get(ctx context.Context, userID string) ([]recommend.Recommendation, bool, error) {
	if !c.enabled() {
		return nil, false, nil
	}
	raw, err := c.rdb.Get(ctx, fmt.Sprintf(recsKeyFmt, userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.RecommendationCache.WithLabelValues("miss").Inc()
		return nil, false, nil
	}
	if err != nil {
		metrics.RecommendationCache.WithLabelValues("error").Inc()
		return nil, false, err
	}
	var recs []recommend.Recommendation
	if err := json.Unmarshal(raw, &recs); err != nil {
		metrics.RecommendationCache.WithLabelValues("error").Inc()
		return nil, false, err
	}
	metrics.RecommendationCache.WithLabelValues("hit").Inc()
	return recs, true, nil
}

func (c *RecommendationCache) Set(ctx context.Context, userID string, recs []recommend.Recommendation) error {
	if !c.enabled() {
		return nil
	}
	raw, err := json.Marshal(recs)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, fmt.Sprintf(recsKeyFmt, userID), raw, c.ttl).Err()
}

func (c *RecommendationCache) Invalidate(ctx context.Context, userID string) error {
	if !c.enabled() {
		return nil
	}
	return c.rdb.Del(ctx, fmt.Sprintf(recsKeyFmt, userID)).Err()
}
