package redis

import (
	"context"
	"time"
)

func (r *RedisClient) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, r.key(key)).Result()
	if err != nil {
		return "", TranslateError(err)
	}
	return val, nil
}

// Set stores value under key. A ttl of zero means no expiry.
func (r *RedisClient) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return TranslateError(r.client.Set(ctx, r.key(key), value, ttl).Err())
}

func (r *RedisClient) Delete(ctx context.Context, key string) error {
	return TranslateError(r.client.Del(ctx, r.key(key)).Err())
}

// TTL returns the remaining lifetime of key.
func (r *RedisClient) TTL(ctx context.Context, key string) (time.Duration, error) {
	d, err := r.client.TTL(ctx, r.key(key)).Result()
	return d, TranslateError(err)
}
