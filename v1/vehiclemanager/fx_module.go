package vehiclemanager

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/digitaltwin/v1/mongodb"
	"github.com/Aleph-Alpha/digitaltwin/v1/rabbit"
	"github.com/Aleph-Alpha/digitaltwin/v1/remoteaccess"
	"github.com/Aleph-Alpha/digitaltwin/v1/tracer"
)

// FXModule provides the registry and the service, wiring the service to the
// platform API, the state store and the rabbit exchange.
var FXModule = fx.Module("vehiclemanager",
	fx.Provide(
		NewRegistry,
		NewService,
		func(api remoteaccess.API) VehicleSource { return api },
		func(store mongodb.StateStore) StateReader { return store },
		func(p rabbit.Publisher) Notifier { return p },
		func(t *tracer.Tracer) Tracer { return t },
	),
	fx.Invoke(RegisterVehicleManagerLifecycle),
)

// RegisterVehicleManagerLifecycle runs the initial UpdateLists in the
// background when SyncOnStart is set.
func RegisterVehicleManagerLifecycle(lc fx.Lifecycle, cfg Config, s *Service, logger Logger) {
	if !cfg.SyncOnStart {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	wg := &sync.WaitGroup{}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if err := s.UpdateLists(ctx); err != nil && !errors.Is(err, context.Canceled) {
					logger.Warn("initial vehicle list sync failed", err)
				}
			}()
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			wg.Wait()
			return nil
		},
	})
}
