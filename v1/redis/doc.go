// Package redis caches short-lived values, such as access tokens for the
// remote vehicle API, in Redis under a common key prefix.
//
// # Architecture
//
// The package follows the "accept interfaces, return structs" pattern:
//   - Cache interface: Get, Set and Delete, the surface consumers depend on
//   - RedisClient struct: the concrete implementation over go-redis
//   - NewClient constructor: returns *RedisClient
//   - FX module: provides *RedisClient and the Cache interface
//
// Every key is written as KeyPrefix + key, so several services can share one
// Redis database. The prefix defaults to "digitaltwin:".
//
// # Direct Usage (Without FX)
//
//	import (
//		"context"
//		"time"
//
//		"github.com/Aleph-Alpha/digitaltwin/v1/redis"
//	)
//
//	client := redis.NewClient(redis.Config{
//		Host: "localhost",
//		Port: 6379,
//	}, log)
//	defer client.Close()
//
//	ctx := context.Background()
//	if err := client.Set(ctx, "token:remoteAccess", token, 55*time.Minute); err != nil {
//		return err
//	}
//
//	value, err := client.Get(ctx, "token:remoteAccess")
//	if errors.Is(err, redis.ErrCacheMiss) {
//		// fetch a fresh value
//	}
//
// # FX Module Integration
//
//	app := fx.New(
//		logger.FXModule,
//		redis.FXModule, // Provides *redis.RedisClient and redis.Cache
//		fx.Provide(func() redis.Config {
//			return redis.Config{Host: "localhost", Port: 6379}
//		}),
//		fx.Invoke(func(cache redis.Cache) {
//			// use the cache
//		}),
//	)
//
// The lifecycle hook pings Redis on start and closes the client on stop.
//
// # Error Handling
//
// Errors returned by the client go through TranslateError:
//   - ErrCacheMiss: the key does not exist or has expired
//   - ErrClosed: the client was closed
//   - ErrPoolTimeout: every pooled connection stayed busy past the pool timeout
//
// Anything else is returned unchanged.
package redis
