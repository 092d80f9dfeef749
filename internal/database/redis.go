package database

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedis builds the shared Redis client. Pool sizing matches the rest of
// the deployment: 16 connections, 8 idle, short acquire timeout.
func NewRedis(ctx context.Context, host string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:            host,
		PoolSize:        16,
		MinIdleConns:    8,
		PoolTimeout:     time.Second,
		ConnMaxIdleTime: 60 * time.Second,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return client, nil
}

// KV exposes plain string get/set over Redis, used for per-server
// liveness and current-match keys that never expire.
type KV struct {
	rdb *redis.Client
}

func NewKV(rdb *redis.Client) *KV {
	return &KV{rdb: rdb}
}

func (k *KV) GetString(ctx context.Context, key string) (string, bool, error) {
	value, err := k.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (k *KV) SetString(ctx context.Context, key, value string) error {
	return k.rdb.Set(ctx, key, value, 0).Err()
}
