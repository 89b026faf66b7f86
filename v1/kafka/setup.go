package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl"
	"github.com/segmentio/kafka-go/sasl/plain"
	"github.com/segmentio/kafka-go/sasl/scram"
)

// Logger is the logging surface the package needs.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}

// Propagator serializes the trace context of ctx into message headers.
type Propagator interface {
	GetCarrier(ctx context.Context) map[string]string
}

// Publisher publishes state change events.
type Publisher interface {
	PublishStateEvent(ctx context.Context, event StateEvent) error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaClient is the event producer.
type KafkaClient struct {
	cfg        Config
	writer     messageWriter
	propagator Propagator
	logger     Logger
}

var _ Publisher = (*KafkaClient)(nil)

// NewClient creates the producer. kafka-go dials lazily on the first write.
func NewClient(cfg Config, propagator Propagator, logger Logger) (*KafkaClient, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("kafka: no brokers configured")
	}
	if cfg.Topic == "" {
		cfg.Topic = DefaultTopic
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.MaxAttempts == 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}

	writer, err := createWriter(cfg, logger)
	if err != nil {
		return nil, err
	}

	logger.Info("kafka producer initialized", nil, map[string]interface{}{
		"brokers": cfg.Brokers,
		"topic":   cfg.Topic,
	})
	return &KafkaClient{cfg: cfg, writer: writer, propagator: propagator, logger: logger}, nil
}

func createWriter(cfg Config, logger Logger) (*kafka.Writer, error) {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		MaxAttempts:            cfg.MaxAttempts,
		WriteTimeout:           cfg.WriteTimeout,
		AllowAutoTopicCreation: true,
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...interface{}) {
			logger.Error("kafka writer error", fmt.Errorf(msg, args...))
		}),
	}

	switch cfg.CompressionCodec {
	case "":
	case "gzip":
		w.Compression = kafka.Gzip
	case "snappy":
		w.Compression = kafka.Snappy
	case "lz4":
		w.Compression = kafka.Lz4
	case "zstd":
		w.Compression = kafka.Zstd
	default:
		return nil, fmt.Errorf("kafka: unsupported compression codec %q", cfg.CompressionCodec)
	}

	if cfg.SASL.Enabled {
		mechanism, err := createSASLMechanism(cfg.SASL)
		if err != nil {
			return nil, err
		}
		w.Transport = &kafka.Transport{SASL: mechanism}
	}
	return w, nil
}

func createSASLMechanism(cfg SASLConfig) (sasl.Mechanism, error) {
	switch cfg.Mechanism {
	case "PLAIN":
		return plain.Mechanism{Username: cfg.Username, Password: cfg.Password}, nil
	case "SCRAM-SHA-256":
		return scram.Mechanism(scram.SHA256, cfg.Username, cfg.Password)
	case "SCRAM-SHA-512":
		return scram.Mechanism(scram.SHA512, cfg.Username, cfg.Password)
	default:
		return nil, fmt.Errorf("kafka: unsupported SASL mechanism %q", cfg.Mechanism)
	}
}

// PublishStateEvent writes event keyed by its vehicle ID, so all events of one
// vehicle land on the same partition in order.
func (k *KafkaClient) PublishStateEvent(ctx context.Context, event StateEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("kafka: encode event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.VehicleID),
		Value: body,
		Headers: []kafka.Header{
			{Key: "eventType", Value: []byte(event.Type)},
			{Key: "eventId", Value: []byte(event.ID)},
		},
	}
	if k.propagator != nil {
		for key, value := range k.propagator.GetCarrier(ctx) {
			msg.Headers = append(msg.Headers, kafka.Header{Key: key, Value: []byte(value)})
		}
	}

	if err := k.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka: publish %s event for %q: %w", event.Type, event.VehicleID, err)
	}
	return nil
}

// Close flushes pending messages and closes the writer.
func (k *KafkaClient) Close() error {
	return k.writer.Close()
}
