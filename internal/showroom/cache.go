package showroom

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mustakbalak/portal/internal/domain"
)

// SnapshotCache stores the latest fetched job list per list key. The
// server stays the source of truth; a stale snapshot is simply refetched.
type SnapshotCache interface {
	Get(ctx context.Context, key string) ([]domain.Job, bool)
	Set(ctx context.Context, key string, jobs []domain.Job)
	Invalidate(ctx context.Context, key string)
}

// RedisSnapshotCache keeps snapshots in Redis with a short TTL.
type RedisSnapshotCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSnapshotCache builds a Redis-backed snapshot cache.
func NewRedisSnapshotCache(client *redis.Client, ttl time.Duration) *RedisSnapshotCache {
	return &RedisSnapshotCache{client: client, ttl: ttl}
}

func (c *RedisSnapshotCache) Get(ctx context.Context, key string) ([]domain.Job, bool) {
	raw, err := c.client.Get(ctx, "jobs:"+key).Result()
	if err != nil {
		return nil, false
	}
	var jobs []domain.Job
	if err := json.Unmarshal([]byte(raw), &jobs); err != nil {
		return nil, false
	}
	return jobs, true
}

func (c *RedisSnapshotCache) Set(ctx context.Context, key string, jobs []domain.Job) {
	raw, err := json.Marshal(jobs)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, "jobs:"+key, raw, c.ttl).Err()
}

func (c *RedisSnapshotCache) Invalidate(ctx context.Context, key string) {
	_ = c.client.Del(ctx, "jobs:"+key).Err()
}

// MemorySnapshotCache is the in-process fallback used without Redis and
// in tests.
type MemorySnapshotCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]memorySnapshot
}

type memorySnapshot struct {
	jobs    []domain.Job
	expires time.Time
}

// NewMemorySnapshotCache builds an empty in-memory cache.
func NewMemorySnapshotCache(ttl time.Duration) *MemorySnapshotCache {
	return &MemorySnapshotCache{ttl: ttl, entries: make(map[string]memorySnapshot)}
}

func (c *MemorySnapshotCache) Get(_ context.Context, key string) ([]domain.Job, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	if !ok || time.Now().After(entry.expires) {
		delete(c.entries, key)
		return nil, false
	}
	jobs := make([]domain.Job, len(entry.jobs))
	copy(jobs, entry.jobs)
	return jobs, true
}

func (c *MemorySnapshotCache) Set(_ context.Context, key string, jobs []domain.Job) {
	c.mu.Lock()
	defer c.mu.Unlock()
	stored := make([]domain.Job, len(jobs))
	copy(stored, jobs)
	c.entries[key] = memorySnapshot{jobs: stored, expires: time.Now().Add(c.ttl)}
}

func (c *MemorySnapshotCache) Invalidate(_ context.Context, key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}
