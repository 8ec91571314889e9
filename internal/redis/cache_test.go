package redisdb

import (
	"context"
	"testing"
	"time"

	"solo-sparks/internal/quest"
	"solo-sparks/internal/recommend"
)

func TestRecommendationCache_DisabledIsNoop(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name  string
		cache *RecommendationCache
	}{
		{"nil cache", nil},
		{"nil client", NewRecommendationCache(nil, time.Minute)},
		{"zero ttl", NewRecommendationCache(testClient(), 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs, ok, err := tt.cache.Get(ctx, "u1")
			if err != nil || ok || recs != nil {
				t.Errorf("expected a silent miss, got %v %v %v", recs, ok, err)
			}
			if err := tt.cache.Set(ctx, "u1", []recommend.Recommendation{{Score: 1}}); err != nil {
				t.Errorf("Set: %v", err)
			}
			if err := tt.cache.Invalidate(ctx, "u1"); err != nil {
				t.Errorf("Invalidate: %v", err)
			}
		})
	}
}

func TestRecommendationCache_RoundTrip(t *testing.T) {
	rdb := testClient()
	requireRedis(t, rdb)
	ctx := context.Background()
	c := NewRecommendationCache(rdb, time.Minute)
	userID := "cache-test-user"
	defer c.Invalidate(ctx, userID)

	if _, ok, err := c.Get(ctx, userID); err != nil || ok {
		t.Fatalf("expected empty cache, got ok=%v err=%v", ok, err)
	}

	recs := []recommend.Recommendation{
		{Quest: quest.Quest{ID: "quest_mindfulness_001", Category: quest.CategoryMindfulness, Difficulty: 1}, Score: 85, Reason: "calm"},
	}
	if err := c.Set(ctx, userID, recs); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, ok, err := c.Get(ctx, userID)
	if err != nil || !ok {
		t.Fatalf("expected cache hit, got ok=%v err=%v", ok, err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 recommendation, got %d", len(got))
	}
	if got[0].Quest.ID != "quest_mindfulness_001" || got[0].Score != 85 {
		t.Errorf("unexpected cached entry: %+v", got[0])
	}

	if err := c.Invalidate(ctx, userID); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	if _, ok, err := c.Get(ctx, userID); err != nil || ok {
		t.Errorf("expected miss after invalidate, got ok=%v err=%v", ok, err)
	}
}
