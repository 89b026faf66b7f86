package config

import (
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

const (
	// EnvPrefix is prepended to every environment variable, e.g. DIGITALTWIN_MONGODB_URI.
	EnvPrefix = "DIGITALTWIN"

	DefaultServiceName = "digitaltwin"
)

// Config aggregates the settings of every component of the service.
type Config struct {
	Logger         logger.Config         `yaml:"logger"`
	Metrics        metrics.Config        `yaml:"metrics"`
	Tracer         tracer.Config         `yaml:"tracer"`
	MongoDB        mongodb.Config        `yaml:"mongodb"`
	Postgres       postgres.Config       `yaml:"postgres"`
	Minio          minio.Config          `yaml:"minio"`
	Redis          redis.Config          `yaml:"redis"`
	Kafka          kafka.Config          `yaml:"kafka"`
	Rabbit         rabbit.Config         `yaml:"rabbit"`
	RemoteAccess   remoteaccess.Config   `yaml:"remoteAccess"`
	VehicleManager vehiclemanager.Config `yaml:"vehicleManager"`
	HTTP           httpapi.Config        `yaml:"http"`
}

// Default returns the settings used for anything neither the config file nor
// the environment sets. Components fill in their own remaining defaults.
func Default() *Config {
	return &Config{
		Logger: logger.Config{
			Level:       logger.Info,
			ServiceName: DefaultServiceName,
		},
		Metrics: metrics.Config{
			ServiceName: DefaultServiceName,
		},
		Tracer: tracer.Config{
			ServiceName: DefaultServiceName,
		},
	}
}

// envTargets lists the structs envconfig fills. Nested structs are listed on
// their own so that their variables keep the flat DIGITALTWIN_<NAME> form.
func (c *Config) envTargets() []any {
	return []any{
		&c.Logger,
		&c.Metrics,
		&c.Tracer,
		&c.MongoDB,
		&c.Postgres.Connection,
		&c.Postgres.ConnectionDetails,
		&c.Minio.Connection,
		&c.Minio.DownloadConfig,
		&c.Redis,
		&c.Kafka,
		&c.Kafka.SASL,
		&c.Rabbit.Connection,
		&c.Rabbit.Channel,
		&c.RemoteAccess,
		&c.VehicleManager,
		&c.HTTP,
	}
}
