package kafka

import (
	"context"

	"go.uber.org/fx"
)

// FXModule provides *KafkaClient and exposes it as Publisher.
var FXModule = fx.Module("kafka",
	fx.Provide(
		NewClient,
		func(k *KafkaClient) Publisher { return k },
	),
	fx.Invoke(RegisterKafkaLifecycle),
)

func RegisterKafkaLifecycle(lc fx.Lifecycle, k *KafkaClient) {
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return k.Close()
		},
	})
}
