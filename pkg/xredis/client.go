package xredis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrNotFound = errors.New("not found key")

// Client stores JSON encoded objects with an expiration.
type Client interface {
	SetObj(ctx context.Context, key string, obj any, ttl time.Duration) error

	// ReplaceObj overwrites an existing key and keeps its remaining TTL. It
	// returns ErrNotFound if the key does not exist.
	ReplaceObj(ctx context.Context, key string, obj any) error

	GetObj(ctx context.Context, key string, v any) error
	Del(ctx context.Context, keys ...string) error
}

type client struct {
	rdb *redis.Client
}

func NewClient(ctx context.Context, addr string) (*client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:            addr,
		MaxRetries:      3,
		MinRetryBackoff: 8 * time.Millisecond,
		MaxRetryBackoff: 256 * time.Millisecond,
		DialTimeout:     3 * time.Second,
		ReadTimeout:     time.Second,
		WriteTimeout:    time.Second,
		PoolSize:        10,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &client{rdb: rdb}, nil
}

func (c *client) SetObj(ctx context.Context, key string, obj any, ttl time.Duration) error {
	b, err := json.Marshal(obj)
	if err != nil {
		return err
	}

	return c.rdb.Set(ctx, key, b, ttl).Err()
}

func (c *client) ReplaceObj(ctx context.Context, key string, obj any) error {
	b, err := json.Marshal(obj)
	if err != nil {
		return err
	}

	ok, err := c.rdb.SetArgs(ctx, key, b, redis.SetArgs{Mode: "XX", KeepTTL: true}).Result()
	if errors.Is(err, redis.Nil) || (err == nil && ok != "OK") {
		return ErrNotFound
	}

	return err
}

func (c *client) GetObj(ctx context.Context, key string, v any) error {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrNotFound
	}

	if err != nil {
		return err
	}

	return json.Unmarshal(b, v)
}

func (c *client) Del(ctx context.Context, keys ...string) error {
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return err
	}

	return nil
}
