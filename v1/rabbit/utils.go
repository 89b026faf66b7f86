package rabbit

import (
	"context"
	"errors"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ErrNotConfirmed is returned when the broker nacks a published message.
var ErrNotConfirmed = errors.New("rabbit: publish not confirmed")

// Publisher publishes messages to the configured exchange.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, body []byte) error
}

var _ Publisher = (*RabbitClient)(nil)

// Publish sends a persistent JSON message and waits for the broker confirm.
func (rb *RabbitClient) Publish(ctx context.Context, routingKey string, body []byte) error {
	rb.mu.RLock()
	ch := rb.channel
	rb.mu.RUnlock()

	confirm, err := ch.PublishWithDeferredConfirmWithContext(ctx,
		rb.cfg.Channel.ExchangeName,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		})
	if err != nil {
		return fmt.Errorf("rabbit: publish to %q: %w", routingKey, err)
	}

	ok, err := confirm.WaitContext(ctx)
	if err != nil {
		return fmt.Errorf("rabbit: wait for confirm of %q: %w", routingKey, err)
	}
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotConfirmed, routingKey)
	}
	return nil
}
