package kafka

import "time"

const (
	DefaultTopic        = "digitaltwin.construction-state"
	DefaultWriteTimeout = 10 * time.Second
	DefaultMaxAttempts  = 3
)

// Config holds the producer settings for state change events.
type Config struct {
	Brokers []string `yaml:"brokers" envconfig:"KAFKA_BROKERS"`
	Topic   string   `yaml:"topic" envconfig:"KAFKA_TOPIC"`

	WriteTimeout time.Duration `yaml:"writeTimeout" envconfig:"KAFKA_WRITE_TIMEOUT"`
	MaxAttempts  int           `yaml:"maxAttempts" envconfig:"KAFKA_MAX_ATTEMPTS"`

	// CompressionCodec is one of gzip, snappy, lz4 or zstd. Empty disables compression.
	CompressionCodec string `yaml:"compressionCodec" envconfig:"KAFKA_COMPRESSION_CODEC"`

	SASL SASLConfig `yaml:"sasl" ignored:"true"`
}

type SASLConfig struct {
	Enabled bool `yaml:"enabled" envconfig:"KAFKA_SASL_ENABLED"`
	// Mechanism is PLAIN, SCRAM-SHA-256 or SCRAM-SHA-512.
	Mechanism string `yaml:"mechanism" envconfig:"KAFKA_SASL_MECHANISM"`
	Username  string `yaml:"username" envconfig:"KAFKA_SASL_USERNAME"`
	Password  string `yaml:"password" envconfig:"KAFKA_SASL_PASSWORD"`
}
