package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"ScoreRadar/pkg/config"
)

// ErrCacheMiss 缓存未命中
var ErrCacheMiss = errors.New("缓存未命中")

// Store 结果缓存与游标存储接口
type Store interface {
	Get(ctx context.Context, key string, value interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	GetCursor(ctx context.Context, jobName string) (int, error)
	SetCursor(ctx context.Context, jobName string, offset int, ttl time.Duration) error
}

// RedisCache 基于Redis的TTL缓存
type RedisCache struct {
	rdb *goredis.Client
}

// NewRedisCache 创建Redis缓存客户端
func NewRedisCache(cfg *config.Config) (*RedisCache, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        cfg.Redis.Addr,
		Password:    cfg.Redis.Password,
		DB:          cfg.Redis.DB,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("连接Redis失败: %w", err)
	}

	return &RedisCache{rdb: rdb}, nil
}

// Close 关闭Redis连接
func (c *RedisCache) Close() error {
	return c.rdb.Close()
}

// Get 读取缓存值并反序列化到value
func (c *RedisCache) Get(ctx context.Context, key string, value interface{}) error {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err == goredis.Nil {
			return ErrCacheMiss
		}
		return fmt.Errorf("读取缓存失败: %w", err)
	}
	if err := json.Unmarshal(raw, value); err != nil {
		return fmt.Errorf("反序列化缓存值失败: %w", err)
	}
	return nil
}

// Set 序列化value并写入缓存
func (c *RedisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("序列化缓存值失败: %w", err)
	}
	if err := c.rdb.Set(ctx, key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("写入缓存失败: %w", err)
	}
	return nil
}

// Delete 删除缓存键
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	if err := c.rdb.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("删除缓存失败: %w", err)
	}
	return nil
}

// GetCursor 读取任务游标，不存在时返回0
func (c *RedisCache) GetCursor(ctx context.Context, jobName string) (int, error) {
	offset, err := c.rdb.Get(ctx, CursorKey(jobName)).Int()
	if err != nil {
		if err == goredis.Nil {
			return 0, nil
		}
		return 0, fmt.Errorf("读取游标失败: %w", err)
	}
	return offset, nil
}

// SetCursor 写入任务游标
func (c *RedisCache) SetCursor(ctx context.Context, jobName string, offset int, ttl time.Duration) error {
	if err := c.rdb.Set(ctx, CursorKey(jobName), offset, ttl).Err(); err != nil {
		return fmt.Errorf("写入游标失败: %w", err)
	}
	return nil
}

// ScoreKey 主体评分结果的缓存键
func ScoreKey(entityKey string) string {
	return "score:" + entityKey
}

// AnomalyKey 主体红旗结果的缓存键
func AnomalyKey(entityKey string) string {
	return "anomaly:" + entityKey
}

// CursorKey 任务游标的缓存键
func CursorKey(jobName string) string {
	return "cursor:" + jobName
}
