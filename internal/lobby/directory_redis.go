package lobby

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const DefaultIdentifierTTL = 24 * time.Hour

// RedisDirectory reserves identifiers with SET NX so several server processes sharing one
// Redis never hand out the same identifier. Keys expire after ttl so abandoned sessions do
// not hold identifiers forever.
type RedisDirectory struct {
	rdb redis.UniversalClient
	ttl time.Duration
}

func NewRedisDirectory(rdb redis.UniversalClient, ttl time.Duration) *RedisDirectory {
	if ttl <= 0 {
		ttl = DefaultIdentifierTTL
	}
	return &RedisDirectory{rdb: rdb, ttl: ttl}
}

// DialRedis parses a redis:// or rediss:// URL and pings the server.
func DialRedis(ctx context.Context, rawURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(strings.TrimSpace(rawURL))
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

func (d *RedisDirectory) key(id string) string {
	return "chess:game:" + strings.ToLower(strings.TrimSpace(id))
}

func (d *RedisDirectory) Reserve(ctx context.Context, id string) (bool, error) {
	ok, err := d.rdb.SetNX(ctx, d.key(id), time.Now().Unix(), d.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("reserve identifier %s: %w", id, err)
	}
	return ok, nil
}

func (d *RedisDirectory) Release(ctx context.Context, id string) error {
	if err := d.rdb.Del(ctx, d.key(id)).Err(); err != nil {
		return fmt.Errorf("release identifier %s: %w", id, err)
	}
	return nil
}
