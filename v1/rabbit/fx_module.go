package rabbit

import (
	"context"
	"sync"

	"go.uber.org/fx"
)

// FXModule provides *RabbitClient and exposes it as Publisher.
var FXModule = fx.Module("rabbit",
	fx.Provide(
		NewClient,
		func(rb *RabbitClient) Publisher { return rb },
	),
	fx.Invoke(RegisterRabbitLifecycle),
)

// RegisterRabbitLifecycle runs the reconnect loop while the app is up.
func RegisterRabbitLifecycle(lc fx.Lifecycle, rb *RabbitClient) {
	wg := &sync.WaitGroup{}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			wg.Add(1)
			go func() {
				defer wg.Done()
				rb.RetryConnection()
			}()
			return nil
		},
		OnStop: func(context.Context) error {
			err := rb.GracefulShutdown()
			wg.Wait()
			return err
		},
	})
}
