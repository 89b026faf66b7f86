package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/Aleph-Alpha/digitaltwin/v1/constructionstate"
	"github.com/Aleph-Alpha/digitaltwin/v1/metrics"
	"github.com/Aleph-Alpha/digitaltwin/v1/minio"
	"github.com/Aleph-Alpha/digitaltwin/v1/remoteaccess"
	"github.com/Aleph-Alpha/digitaltwin/v1/vehiclemanager"
	"go.uber.org/fx"
)

// FXModule provides the handler and serves it for the lifetime of the app.
var FXModule = fx.Module("httpapi",
	fx.Provide(
		func(s *constructionstate.Service) StateService { return s },
		func(s *vehiclemanager.Service) VehicleManager { return s },
		func(c remoteaccess.API) CommandRelay { return c },
		func(b minio.BlobStore) BlobStore { return b },
		func(m *metrics.Metrics) Metrics { return m },
		NewHandler,
		NewServer,
	),
	fx.Invoke(RegisterServerLifecycle),
)

// RegisterServerLifecycle binds the listener on start so that address errors
// fail startup, then serves in the background until stop.
func RegisterServerLifecycle(lc fx.Lifecycle, srv *http.Server, logger Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			logger.Info("starting http api server", nil, map[string]interface{}{"address": ln.Addr().String()})
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("http api server stopped", err, nil)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("shutting down http api server", nil, nil)
			return srv.Shutdown(ctx)
		},
	})
}
