package redis

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"

	"ai-chat-dashboard/internal/config"
)

// RedisClient is the narrow surface the caches need; keeps go-redis out of
// everything above this package.
type RedisClient interface {
	Ping(ctx context.Context) error
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Del(ctx context.Context, keys ...string) error
	Close() error
}

var _ RedisClient = (*client)(nil)

type client struct {
	cli *redis.Client
}

// NewClient connects and pings. Accepts either a bare host:port or a full
// redis:// URL.
func NewClient(ctx context.Context, cfg *config.RedisConfig) (*client, error) {
	var opts *redis.Options
	if strings.Contains(cfg.URL, "://") {
		parsed, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, err
		}
		opts = parsed
	} else {
		opts = &redis.Options{Addr: cfg.URL, Password: cfg.Password, DB: cfg.DB}
	}
	c := redis.NewClient(opts)
	if err := c.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &client{cli: c}, nil
}

func (c *client) Ping(ctx context.Context) error { return c.cli.Ping(ctx).Err() }

func (c *client) Get(ctx context.Context, key string) (string, error) {
	return c.cli.Get(ctx, key).Result()
}

func (c *client) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return c.cli.Set(ctx, key, value, expiration).Err()
}

func (c *client) Del(ctx context.Context, keys ...string) error {
	return c.cli.Del(ctx, keys...).Err()
}

func (c *client) Close() error { return c.cli.Close() }

// IsNil reports the go-redis cache-miss sentinel.
func IsNil(err error) bool { return errors.Is(err, redis.Nil) }
