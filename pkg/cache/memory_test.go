package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryCacheRoundTrip(t *testing.T) {
	t.Parallel()

	c := NewMemoryCache()
	type payload struct {
		Name  string `json:"name"`
		Score int    `json:"score"`
	}

	if err := c.Set(context.Background(), ScoreKey("VENT"), payload{Name: "VENT", Score: 77}, time.Hour); err != nil {
		t.Fatalf("写入失败: %v", err)
	}

	var got payload
	if err := c.Get(context.Background(), ScoreKey("VENT"), &got); err != nil {
		t.Fatalf("读取失败: %v", err)
	}
	if got.Name != "VENT" || got.Score != 77 {
		t.Fatalf("往返结果不符: %+v", got)
	}
}

func TestMemoryCacheMiss(t *testing.T) {
	t.Parallel()

	c := NewMemoryCache()
	var got struct{}
	if err := c.Get(context.Background(), "missing", &got); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("期望ErrCacheMiss，得到 %v", err)
	}
}

func TestMemoryCacheTTLExpiry(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	current := base
	c := NewMemoryCache().WithClock(func() time.Time { return current })

	if err := c.Set(context.Background(), AnomalyKey("VENT"), 42, time.Hour); err != nil {
		t.Fatalf("写入失败: %v", err)
	}

	var got int
	current = base.Add(59 * time.Minute)
	if err := c.Get(context.Background(), AnomalyKey("VENT"), &got); err != nil {
		t.Fatalf("未过期读取失败: %v", err)
	}

	current = base.Add(61 * time.Minute)
	if err := c.Get(context.Background(), AnomalyKey("VENT"), &got); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("过期后期望ErrCacheMiss，得到 %v", err)
	}
}

func TestMemoryCacheDelete(t *testing.T) {
	t.Parallel()

	c := NewMemoryCache()
	if err := c.Set(context.Background(), ScoreKey("VENT"), 1, time.Hour); err != nil {
		t.Fatalf("写入失败: %v", err)
	}
	if err := c.Delete(context.Background(), ScoreKey("VENT")); err != nil {
		t.Fatalf("删除失败: %v", err)
	}
	var got int
	if err := c.Get(context.Background(), ScoreKey("VENT"), &got); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("删除后期望ErrCacheMiss，得到 %v", err)
	}
}

func TestMemoryCacheCursorDefaultsToZero(t *testing.T) {
	t.Parallel()

	c := NewMemoryCache()
	cursor, err := c.GetCursor(context.Background(), "entity_recompute")
	if err != nil {
		t.Fatalf("读取游标失败: %v", err)
	}
	if cursor != 0 {
		t.Fatalf("未设置的游标应为0，得到 %d", cursor)
	}

	if err := c.SetCursor(context.Background(), "entity_recompute", 120, time.Hour); err != nil {
		t.Fatalf("写入游标失败: %v", err)
	}
	cursor, err = c.GetCursor(context.Background(), "entity_recompute")
	if err != nil {
		t.Fatalf("读取游标失败: %v", err)
	}
	if cursor != 120 {
		t.Fatalf("期望游标120，得到 %d", cursor)
	}
}
