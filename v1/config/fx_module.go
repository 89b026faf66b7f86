package config

import (
	"go.uber.org/fx"

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

// Out hands each component its own section of the configuration.
type Out struct {
	fx.Out

	Logger         logger.Config
	Metrics        metrics.Config
	Tracer         tracer.Config
	MongoDB        mongodb.Config
	Postgres       postgres.Config
	Minio          minio.Config
	Redis          redis.Config
	Kafka          kafka.Config
	Rabbit         rabbit.Config
	RemoteAccess   remoteaccess.Config
	VehicleManager vehiclemanager.Config
	HTTP           httpapi.Config
}

func Provide(cfg *Config) Out {
	return Out{
		Logger:         cfg.Logger,
		Metrics:        cfg.Metrics,
		Tracer:         cfg.Tracer,
		MongoDB:        cfg.MongoDB,
		Postgres:       cfg.Postgres,
		Minio:          cfg.Minio,
		Redis:          cfg.Redis,
		Kafka:          cfg.Kafka,
		Rabbit:         cfg.Rabbit,
		RemoteAccess:   cfg.RemoteAccess,
		VehicleManager: cfg.VehicleManager,
		HTTP:           cfg.HTTP,
	}
}

// Module supplies a loaded configuration to the application.
//
//	cfg, err := config.Load(path)
//	app := fx.New(config.Module(cfg), logger.FXModule, ...)
func Module(cfg *Config) fx.Option {
	return fx.Module("config",
		fx.Supply(cfg),
		fx.Provide(Provide),
	)
}
