package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Remote is a Redis-backed cache used for payloads worth sharing between
// replicas, currently the filter-option catalog. Every method swallows the
// underlying error so a dead Redis degrades to recomputing from the warehouse.
type Remote struct {
	client *redis.Client
}

// NewRemote connects a remote cache at addr (host:port)
func NewRemote(addr string, db int) *Remote {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})
	return &Remote{client: client}
}

// Get returns the cached string for key, or "" and false on miss or error
func (r *Remote) Get(ctx context.Context, key string) (string, bool) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

// Set stores value under key with the supplied TTL
func (r *Remote) Set(ctx context.Context, key, value string, ttl time.Duration) {
	_ = r.client.Set(ctx, key, value, ttl).Err()
}

// Del drops key from the remote cache
func (r *Remote) Del(ctx context.Context, key string) {
	_ = r.client.Del(ctx, key).Err()
}

// Ping verifies the Redis connection
func (r *Remote) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close releases the underlying connection pool
func (r *Remote) Close() error {
	return r.client.Close()
}
