package redis

import "time"

const (
	DefaultHost        = "localhost"
	DefaultPort        = 6379
	DefaultDialTimeout = 5 * time.Second
	DefaultReadTimeout = 3 * time.Second
	DefaultKeyPrefix   = "digitaltwin:"
)

// Config holds the connection settings of the token cache.
type Config struct {
	Host     string `yaml:"host" envconfig:"REDIS_HOST"`
	Port     int    `yaml:"port" envconfig:"REDIS_PORT"`
	Username string `yaml:"username" envconfig:"REDIS_USERNAME"`
	Password string `yaml:"password" envconfig:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" envconfig:"REDIS_DB"`

	DialTimeout time.Duration `yaml:"dialTimeout" envconfig:"REDIS_DIAL_TIMEOUT"`
	ReadTimeout time.Duration `yaml:"readTimeout" envconfig:"REDIS_READ_TIMEOUT"`

	// KeyPrefix namespaces every key the cache writes.
	KeyPrefix string `yaml:"keyPrefix" envconfig:"REDIS_KEY_PREFIX"`
}

func (c Config) withDefaults() Config {
	if c.Host == "" {
		c.Host = DefaultHost
	}
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.DialTimeout == 0 {
		c.DialTimeout = DefaultDialTimeout
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = DefaultReadTimeout
	}
	if c.KeyPrefix == "" {
		c.KeyPrefix = DefaultKeyPrefix
	}
	return c
}
