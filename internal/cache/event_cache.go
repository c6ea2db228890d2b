package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-gin-event-hub/internal/model"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss key 不存在或已過期
var ErrCacheMiss = errors.New("cache miss")

type EventCache interface {
	// 讀取：依 slug 取得快取的活動
	Get(ctx context.Context, slug string) (*model.Event, error)
	// 寫入：以 slug 為 key 快取活動，TTL 到期自動失效
	Set(ctx context.Context, event *model.Event) error
	// 失效：刪除一或多個 slug 的快取（更新活動時舊 slug 與新 slug 都要清）
	Invalidate(ctx context.Context, slugs ...string) error
}

type RedisEventCacheImpl struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisEventCache(client *redis.Client, ttl time.Duration) EventCache {
	return &RedisEventCacheImpl{
		client: client,
		ttl:    ttl,
	}
}

// 活動 key
func (c *RedisEventCacheImpl) getEventKey(slug string) string {
	return fmt.Sprintf("event:%s", slug)
}

func (c *RedisEventCacheImpl) Get(ctx context.Context, slug string) (*model.Event, error) {
	raw, err := c.client.Get(ctx, c.getEventKey(slug)).Bytes()
	if err == redis.Nil {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}

	var event model.Event
	if err := json.Unmarshal(raw, &event); err != nil {
		return nil, fmt.Errorf("invalid cached event: %w", err)
	}
	return &event, nil
}

func (c *RedisEventCacheImpl) Set(ctx context.Context, event *model.Event) error {
	raw, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.getEventKey(event.Slug), raw, c.ttl).Err()
}

func (c *RedisEventCacheImpl) Invalidate(ctx context.Context, slugs ...string) error {
	keys := make([]string, 0, len(slugs))
	seen := make(map[string]struct{}, len(slugs))
	for _, s := range slugs {
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		keys = append(keys, c.getEventKey(s))
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

// NoopEventCache 未設定 Redis 時使用，永遠 miss
type NoopEventCache struct{}

func (NoopEventCache) Get(ctx context.Context, slug string) (*model.Event, error) {
	return nil, ErrCacheMiss
}

func (NoopEventCache) Set(ctx context.Context, event *model.Event) error { return nil }

func (NoopEventCache) Invalidate(ctx context.Context, slugs ...string) error { return nil }
