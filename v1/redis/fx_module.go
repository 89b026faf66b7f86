package redis

import (
	"context"

	"go.uber.org/fx"
)

// FXModule provides *RedisClient and exposes it as Cache.
var FXModule = fx.Module("redis",
	fx.Provide(
		NewClient,
		func(r *RedisClient) Cache { return r },
	),
	fx.Invoke(RegisterRedisLifecycle),
)

// RegisterRedisLifecycle checks connectivity on start and closes the pool on
// stop. An unreachable server is logged, not fatal: the cache is optional and
// callers fall back to fetching tokens.
func RegisterRedisLifecycle(lc fx.Lifecycle, r *RedisClient) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := r.Ping(ctx); err != nil {
				r.logger.Error("redis is not reachable, token cache disabled until it is", err)
			}
			return nil
		},
		OnStop: func(context.Context) error {
			return r.Close()
		},
	})
}
