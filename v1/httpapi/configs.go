package httpapi

import "time"

const (
	DefaultAddress           = ":8080"
	DefaultReadHeaderTimeout = 10 * time.Second
	DefaultReadTimeout       = 30 * time.Second
	DefaultWriteTimeout      = 60 * time.Second
	DefaultMaxBodyBytes      = 1 << 20
)

// Config controls the public HTTP server.
type Config struct {
	Address string `yaml:"address" envconfig:"HTTP_ADDRESS"`

	// APIKey grants access to every route except the master-only ones.
	APIKey string `yaml:"apiKey" envconfig:"HTTP_API_KEY"`

	// MasterKey grants access to every route.
	MasterKey string `yaml:"masterKey" envconfig:"HTTP_MASTER_KEY"`

	ReadHeaderTimeout time.Duration `yaml:"readHeaderTimeout" envconfig:"HTTP_READ_HEADER_TIMEOUT"`
	ReadTimeout       time.Duration `yaml:"readTimeout" envconfig:"HTTP_READ_TIMEOUT"`
	WriteTimeout      time.Duration `yaml:"writeTimeout" envconfig:"HTTP_WRITE_TIMEOUT"`

	// MaxBodyBytes limits request bodies.
	MaxBodyBytes int64 `yaml:"maxBodyBytes" envconfig:"HTTP_MAX_BODY_BYTES"`
}

func (c Config) withDefaults() Config {
	if c.Address == "" {
		c.Address = DefaultAddress
	}
	if c.ReadHeaderTimeout == 0 {
		c.ReadHeaderTimeout = DefaultReadHeaderTimeout
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = DefaultReadTimeout
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = DefaultWriteTimeout
	}
	if c.MaxBodyBytes == 0 {
		c.MaxBodyBytes = DefaultMaxBodyBytes
	}
	return c
}
