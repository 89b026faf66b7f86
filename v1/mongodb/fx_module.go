package mongodb

import (
	"context"
	"sync"

	"go.uber.org/fx"
)

// FXModule provides *Mongo and exposes it as StateStore.
var FXModule = fx.Module("mongodb",
	fx.Provide(
		NewClient,
		ProvideStateStore,
	),
	fx.Invoke(RegisterMongoLifecycle),
)

// ProvideStateStore exposes the concrete client as StateStore.
func ProvideStateStore(m *Mongo) StateStore {
	return m
}

// RegisterMongoLifecycle ensures indexes and starts the connection monitor on
// start, and disconnects after the monitor has exited on stop.
func RegisterMongoLifecycle(lc fx.Lifecycle, m *Mongo) {
	wg := &sync.WaitGroup{}
	monitorCtx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := m.EnsureIndexes(ctx); err != nil {
				cancel()
				return err
			}

			wg.Add(1)
			go func() {
				defer wg.Done()
				m.MonitorConnection(monitorCtx)
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			cancel()
			m.closeShutdownOnce.Do(func() {
				close(m.shutdownSignal)
			})
			wg.Wait()
			return m.GracefulShutdown(ctx)
		},
	})
}
