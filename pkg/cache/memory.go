// pkg/cache/memory.go
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// MemoryCache 进程内TTL缓存，用于本地开发与测试
type MemoryCache struct {
	mu      sync.RWMutex
	items   map[string]memoryItem
	cursors map[string]int
	now     func() time.Time
}

type memoryItem struct {
	raw       []byte
	expiresAt time.Time
}

// NewMemoryCache 创建进程内缓存
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		items:   make(map[string]memoryItem),
		cursors: make(map[string]int),
		now:     time.Now,
	}
}

// WithClock 覆盖时钟，仅测试使用
func (c *MemoryCache) WithClock(now func() time.Time) *MemoryCache {
	c.now = now
	return c
}

func (c *MemoryCache) Get(ctx context.Context, key string, value interface{}) error {
	c.mu.RLock()
	item, exists := c.items[key]
	c.mu.RUnlock()

	if !exists || c.now().After(item.expiresAt) {
		return ErrCacheMiss
	}
	if err := json.Unmarshal(item.raw, value); err != nil {
		return fmt.Errorf("反序列化缓存值失败: %w", err)
	}
	return nil
}

func (c *MemoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("序列化缓存值失败: %w", err)
	}

	c.mu.Lock()
	c.items[key] = memoryItem{raw: raw, expiresAt: c.now().Add(ttl)}
	c.mu.Unlock()
	return nil
}

func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
	return nil
}

func (c *MemoryCache) GetCursor(ctx context.Context, jobName string) (int, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cursors[jobName], nil
}

func (c *MemoryCache) SetCursor(ctx context.Context, jobName string, offset int, ttl time.Duration) error {
	c.mu.Lock()
	c.cursors[jobName] = offset
	c.mu.Unlock()
	return nil
}
