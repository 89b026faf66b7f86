package main

import (
	"go.uber.org/fx"

	"github.com/Aleph-Alpha/digitaltwin/v1/constructionstate"
	"github.com/Aleph-Alpha/digitaltwin/v1/httpapi"
	"github.com/Aleph-Alpha/digitaltwin/v1/kafka"
	"github.com/Aleph-Alpha/digitaltwin/v1/logger"
	"github.com/Aleph-Alpha/digitaltwin/v1/metrics"
	"github.com/Aleph-Alpha/digitaltwin/v1/minio"
	"github.com/Aleph-Alpha/digitaltwin/v1/mongodb"
	"github.com/Aleph-Alpha/digitaltwin/v1/postgres"
	"github.com/Aleph-Alpha/digitaltwin/v1/rabbit"
	"github.com/Aleph-Alpha/digitaltwin/v1/redis"
	"github.com/Aleph-Alpha/digitaltwin/v1/remoteaccess"
	"github.com/Aleph-Alpha/digitaltwin/v1/tracer"
	"github.com/Aleph-Alpha/digitaltwin/v1/vehiclemanager"
)

// loggers hands the shared zap logger to every package under the package's
// own Logger interface.
type loggers struct {
	fx.Out

	Tracer            tracer.Logger
	Metrics           metrics.Logger
	MongoDB           mongodb.Logger
	Postgres          postgres.Logger
	Minio             minio.Logger
	Redis             redis.Logger
	Kafka             kafka.Logger
	Rabbit            rabbit.Logger
	RemoteAccess      remoteaccess.Logger
	VehicleManager    vehiclemanager.Logger
	ConstructionState constructionstate.Logger
	HTTP              httpapi.Logger
}

func provideLoggers(l *logger.Logger) loggers {
	return loggers{
		Tracer:            l,
		Metrics:           l,
		MongoDB:           l,
		Postgres:          l,
		Minio:             l,
		Redis:             l,
		Kafka:             l,
		Rabbit:            l,
		RemoteAccess:      l,
		VehicleManager:    l,
		ConstructionState: l,
		HTTP:              l,
	}
}
