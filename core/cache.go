package core

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const activeUsersCacheKey = "users:active"

// NewRedisClient returns a configured go-redis client from URL (e.g., redis://localhost:6379/0).
func NewRedisClient(redisURL string) (*redis.Client, error) {
	if redisURL == "" {
		return nil, errors.New("empty redis url")
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return client, nil
}

// CachedUserDirectory wraps a UserRepository and keeps the active-user
// listing in redis for a short TTL. Reads fall back to the repository on
// any cache miss or redis failure; Create writes through and drops the
// cached listing so a fresh registration shows up immediately.
type CachedUserDirectory struct {
	UserRepository
	client *redis.Client
	ttl    time.Duration
}

func NewCachedUserDirectory(repo UserRepository, client *redis.Client, ttl time.Duration) *CachedUserDirectory {
	return &CachedUserDirectory{UserRepository: repo, client: client, ttl: ttl}
}

func (d *CachedUserDirectory) ListActive(ctx context.Context) ([]UserListItem, error) {
	if raw, err := d.client.Get(ctx, activeUsersCacheKey).Bytes(); err == nil {
		var items []UserListItem
		if json.Unmarshal(raw, &items) == nil {
			return items, nil
		}
	}

	items, err := d.UserRepository.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	if raw, err := json.Marshal(items); err == nil {
		// Best effort: a failed cache write must not fail the request.
		d.client.Set(ctx, activeUsersCacheKey, raw, d.ttl)
	}
	return items, nil
}

func (d *CachedUserDirectory) Create(ctx context.Context, nu NewUser) (*UserRecord, error) {
	rec, err := d.UserRepository.Create(ctx, nu)
	if err != nil {
		return nil, err
	}
	d.client.Del(ctx, activeUsersCacheKey)
	return rec, nil
}
