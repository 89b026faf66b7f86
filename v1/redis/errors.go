package redis

import (
	"errors"
	"strings"

	"github.com/redis/go-redis/v9"
)

// poolTimeoutMessage is the text of go-redis' pool timeout error, which the
// client package does not export.
const poolTimeoutMessage = "redis: connection pool timeout"

var (
	// ErrCacheMiss is returned when a key does not exist or has expired.
	ErrCacheMiss = errors.New("redis: cache miss")

	ErrClosed      = errors.New("redis: client is closed")
	ErrPoolTimeout = errors.New(poolTimeoutMessage)
)

// TranslateError maps go-redis errors to the package sentinels.
func TranslateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, redis.Nil):
		return ErrCacheMiss
	case errors.Is(err, redis.ErrClosed):
		return ErrClosed
	case strings.Contains(err.Error(), poolTimeoutMessage):
		return ErrPoolTimeout
	}
	return err
}
