// Package session caches each browser session's authentication state
// server-side. The portal fronts the job board's single-page web
// client, so this package holds what that client would otherwise keep
// in browser storage: the bearer token, the identity snapshot and the
// applied-job ids.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Storage is the persisted key/value area backing a session: a handful
// of string fields scoped to one client, surviving restarts.
type Storage interface {
	Get(ctx context.Context, sid, field string) (string, bool, error)
	// Set writes all given fields in one operation so paired fields
	// (token + user) are never observed half-written.
	Set(ctx context.Context, sid string, fields map[string]string) error
	Clear(ctx context.Context, sid string) error
}

// RedisStorage keeps each session in a Redis hash with a TTL.
type RedisStorage struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStorage builds Redis-backed session storage.
func NewRedisStorage(client *redis.Client, ttl time.Duration) *RedisStorage {
	return &RedisStorage{client: client, ttl: ttl}
}

func (s *RedisStorage) key(sid string) string {
	return "session:" + sid
}

func (s *RedisStorage) Get(ctx context.Context, sid, field string) (string, bool, error) {
	val, err := s.client.HGet(ctx, s.key(sid), field).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (s *RedisStorage) Set(ctx context.Context, sid string, fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}
	key := s.key(sid)
	args := make([]interface{}, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	if err := s.client.HSet(ctx, key, args...).Err(); err != nil {
		return err
	}
	return s.client.Expire(ctx, key, s.ttl).Err()
}

func (s *RedisStorage) Clear(ctx context.Context, sid string) error {
	return s.client.Del(ctx, s.key(sid)).Err()
}

// MemoryStorage is a process-local Storage used when Redis is not
// configured and throughout the tests.
type MemoryStorage struct {
	mu       sync.RWMutex
	sessions map[string]map[string]string
}

// NewMemoryStorage builds an empty in-memory storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{sessions: make(map[string]map[string]string)}
}

func (s *MemoryStorage) Get(_ context.Context, sid, field string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fields, ok := s.sessions[sid]
	if !ok {
		return "", false, nil
	}
	val, ok := fields[field]
	return val, ok, nil
}

func (s *MemoryStorage) Set(_ context.Context, sid string, fields map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.sessions[sid]
	if !ok {
		existing = make(map[string]string, len(fields))
		s.sessions[sid] = existing
	}
	for k, v := range fields {
		existing[k] = v
	}
	return nil
}

func (s *MemoryStorage) Clear(_ context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sid)
	return nil
}
