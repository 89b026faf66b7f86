package rabbit

import "time"

const (
	DefaultExchangeName     = "digitaltwin.vehicles"
	DefaultExchangeType     = "topic"
	DefaultDelayToReconnect = time.Second
)

// Config holds the connection and exchange settings for registry notifications.
type Config struct {
	Connection Connection `yaml:"connection"`
	Channel    Channel    `yaml:"channel"`
}

type Connection struct {
	Host     string `yaml:"host" envconfig:"RABBIT_HOST"`
	Port     uint   `yaml:"port" envconfig:"RABBIT_PORT"`
	User     string `yaml:"user" envconfig:"RABBIT_USER"`
	Password string `yaml:"password" envconfig:"RABBIT_PASSWORD"`
	VHost    string `yaml:"vhost" envconfig:"RABBIT_VHOST"`

	// IsSSLEnabled switches to amqps with the system trust store.
	IsSSLEnabled bool `yaml:"isSSLEnabled" envconfig:"RABBIT_SSL_ENABLED"`
}

type Channel struct {
	ExchangeName string `yaml:"exchangeName" envconfig:"RABBIT_EXCHANGE_NAME"`
	// ExchangeType is direct, fanout, topic or headers.
	ExchangeType     string        `yaml:"exchangeType" envconfig:"RABBIT_EXCHANGE_TYPE"`
	DelayToReconnect time.Duration `yaml:"delayToReconnect" envconfig:"RABBIT_DELAY_TO_RECONNECT"`
}

func (c Config) withDefaults() Config {
	if c.Channel.ExchangeName == "" {
		c.Channel.ExchangeName = DefaultExchangeName
	}
	if c.Channel.ExchangeType == "" {
		c.Channel.ExchangeType = DefaultExchangeType
	}
	if c.Channel.DelayToReconnect == 0 {
		c.Channel.DelayToReconnect = DefaultDelayToReconnect
	}
	return c
}
