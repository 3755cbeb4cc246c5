package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store is a thin read-through cache over redis. A nil *Store is valid and
// disables caching entirely, so callers never branch on configuration.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects to redis at addr, or returns nil when addr is empty.
func New(addr string, ttl time.Duration) *Store {
	if addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Printf("⚠️ Redis unavailable at %s, caching disabled: %v", addr, err)
		return nil
	}

	log.Printf("✅ Redis connected at %s", addr)
	return &Store{client: client, ttl: ttl}
}

// Get unmarshals the cached value for key into dest, reporting a hit.
func (s *Store) Get(ctx context.Context, key string, dest interface{}) bool {
	if s == nil {
		return false
	}
	raw, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

// Set stores val under key for the configured TTL. Failures are logged and
// swallowed; the cache is never load-bearing.
func (s *Store) Set(ctx context.Context, key string, val interface{}) {
	if s == nil {
		return
	}
	raw, err := json.Marshal(val)
	if err != nil {
		return
	}
	if err := s.client.Set(ctx, key, raw, s.ttl).Err(); err != nil {
		log.Printf("⚠️ Failed to cache %s: %v", key, err)
	}
}
