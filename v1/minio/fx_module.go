package minio

import (
	"context"

	"go.uber.org/fx"
)

// FXModule provides *Minio and exposes it as BlobStore.
var FXModule = fx.Module("minio",
	fx.Provide(
		NewClient,
		func(m *Minio) BlobStore { return m },
	),
	fx.Invoke(RegisterLifecycle),
)

// RegisterLifecycle stops the health check on shutdown.
func RegisterLifecycle(lc fx.Lifecycle, m *Minio) {
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			m.Close()
			return nil
		},
	})
}
