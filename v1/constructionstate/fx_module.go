package constructionstate

import (
	"go.uber.org/fx"

	"github.com/Aleph-Alpha/digitaltwin/v1/kafka"
	"github.com/Aleph-Alpha/digitaltwin/v1/metrics"
	"github.com/Aleph-Alpha/digitaltwin/v1/mongodb"
	"github.com/Aleph-Alpha/digitaltwin/v1/postgres"
	"github.com/Aleph-Alpha/digitaltwin/v1/remoteaccess"
	"github.com/Aleph-Alpha/digitaltwin/v1/tracer"
	"github.com/Aleph-Alpha/digitaltwin/v1/vehiclemanager"
)

// FXModule provides *Service.
var FXModule = fx.Module("constructionstate",
	fx.Provide(ProvideService),
)

// ServiceParams lists the application components the service is built from.
type ServiceParams struct {
	fx.In

	Store    mongodb.StateStore
	Ledger   *postgres.Ledger
	Events   kafka.Publisher
	Registry *vehiclemanager.Registry
	Vehicles remoteaccess.API
	Metrics  *metrics.Metrics
	Tracer   *tracer.Tracer
	Logger   Logger
}

func ProvideService(p ServiceParams) *Service {
	return NewService(Params{
		Store:    p.Store,
		Ledger:   p.Ledger,
		Events:   p.Events,
		Registry: p.Registry,
		Vehicles: p.Vehicles,
		Metrics:  p.Metrics,
		Tracer:   p.Tracer,
		Logger:   p.Logger,
	})
}
