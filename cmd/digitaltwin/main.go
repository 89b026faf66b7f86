// Command digitaltwin serves the vehicle digital twin API.
package main

import (
	"fmt"
	"os"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/Aleph-Alpha/digitaltwin/v1/config"
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

func main() {
	path, err := config.ParseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fx.New(options(cfg)...).Run()
}

func options(cfg *config.Config) []fx.Option {
	return []fx.Option{
		config.Module(cfg),
		logger.FXModule,
		fx.WithLogger(func(l *logger.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: l.Zap.WithOptions(zap.IncreaseLevel(zap.WarnLevel))}
		}),
		fx.Provide(
			provideLoggers,
			func(t *tracer.Tracer) kafka.Propagator { return t },
		),

		tracer.FXModule,
		metrics.FXModule,
		mongodb.FXModule,
		postgres.FXModule,
		minio.FXModule,
		redis.FXModule,
		kafka.FXModule,
		rabbit.FXModule,
		remoteaccess.FXModule,
		vehiclemanager.FXModule,
		constructionstate.FXModule,
		httpapi.FXModule,
	}
}
