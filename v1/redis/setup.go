package redis

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

//go:generate mockgen -source=setup.go -destination=mock_logger.go -package=redis

// Logger is the logging surface the package needs.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}

// Cache is a string cache with per-key expiry.
type Cache interface {
	// Get returns ErrCacheMiss when key is absent.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// RedisClient implements Cache on a standalone Redis server.
type RedisClient struct {
	client redis.UniversalClient
	cfg    Config
	logger Logger

	closeOnce sync.Once
}

var _ Cache = (*RedisClient)(nil)

// NewClient creates the client. go-redis connects lazily, so an unreachable
// server surfaces on first use rather than here.
func NewClient(cfg Config, logger Logger) *RedisClient {
	cfg = cfg.withDefaults()

	client := redis.NewClient(&redis.Options{
		Addr:        fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Username:    cfg.Username,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.DialTimeout,
		ReadTimeout: cfg.ReadTimeout,
	})

	logger.Info("redis client initialized", nil, map[string]interface{}{
		"addr": client.Options().Addr,
		"db":   cfg.DB,
	})
	return &RedisClient{client: client, cfg: cfg, logger: logger}
}

// Client returns the underlying go-redis client.
func (r *RedisClient) Client() redis.UniversalClient {
	return r.client
}

func (r *RedisClient) key(k string) string {
	return r.cfg.KeyPrefix + k
}

func (r *RedisClient) Ping(ctx context.Context) error {
	return TranslateError(r.client.Ping(ctx).Err())
}

// Close releases the connection pool. It is safe to call more than once.
func (r *RedisClient) Close() error {
	var err error
	r.closeOnce.Do(func() {
		err = r.client.Close()
	})
	return err
}
