// Package counter provides an invoice sequence shared by every server
// instance, backed by Redis.
package counter

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
)

const keyPrefix = "autoparts:invoice-seq:"

type Redis struct {
	rdb *redis.Client
}

// Dial parses redisURL, connects and pings the server.
func Dial(ctx context.Context, redisURL string) (*Redis, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return &Redis{rdb: rdb}, nil
}

func New(rdb *redis.Client) *Redis {
	return &Redis{rdb: rdb}
}

// Next increments the sequence for key. A key seen for the first time starts
// from floor, so the first value is floor+1.
func (r *Redis) Next(ctx context.Context, key string, floor int64) (int64, error) {
	k := keyPrefix + key
	if err := r.rdb.SetNX(ctx, k, floor, 0).Err(); err != nil {
		return 0, fmt.Errorf("seed %s: %w", k, err)
	}
	n, err := r.rdb.Incr(ctx, k).Result()
	if err != nil {
		return 0, fmt.Errorf("incr %s: %w", k, err)
	}
	return n, nil
}

func (r *Redis) Close() error {
	return r.rdb.Close()
}
