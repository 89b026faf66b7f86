// Package rabbit publishes vehicle registry notifications to a RabbitMQ
// exchange. Publishing uses publisher confirms, so Publish returns only after
// the broker has taken responsibility for the message.
//
// # Architecture
//
//   - Publisher interface: Publish(ctx, routingKey, body)
//   - RabbitClient struct: owns the connection and the confirm-mode channel
//   - NewClient constructor: connects, declares the exchange and returns *RabbitClient
//   - FX module: provides *RabbitClient and the Publisher interface
//
// The exchange is declared durable on connect. It defaults to the topic
// exchange "digitaltwin.vehicles".
//
// # Direct Usage (Without FX)
//
//	client, err := rabbit.NewClient(rabbit.Config{
//		Connection: rabbit.Connection{
//			Host:     "localhost",
//			Port:     5672,
//			User:     "guest",
//			Password: "guest",
//		},
//	}, log)
//	if err != nil {
//		return err
//	}
//	defer client.GracefulShutdown()
//
//	body, _ := json.Marshal(vehicleList)
//	err = client.Publish(ctx, "vehicles.list", body)
//
// # FX Module Integration
//
//	app := fx.New(
//		logger.FXModule,
//		rabbit.FXModule, // Provides *rabbit.RabbitClient and rabbit.Publisher
//		fx.Provide(func() rabbit.Config {
//			return rabbit.Config{Connection: rabbit.Connection{Host: "localhost", Port: 5672}}
//		}),
//	)
//
// # Reconnection
//
// The lifecycle hook starts RetryConnection in the background. When the
// broker closes the connection the client dials again every
// Channel.DelayToReconnect until it succeeds or the app stops. Publish calls
// made while reconnecting fail and are not queued.
package rabbit
