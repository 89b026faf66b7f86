package postgres

import "time"

// Config holds the connection settings of the insert ledger database.
type Config struct {
	Connection        Connection        `yaml:"connection"`
	ConnectionDetails ConnectionDetails `yaml:"connectionDetails"`
}

type Connection struct {
	Host     string `yaml:"host" envconfig:"POSTGRES_HOST"`
	Port     string `yaml:"port" envconfig:"POSTGRES_PORT"`
	User     string `yaml:"user" envconfig:"POSTGRES_USER"`
	Password string `yaml:"password" envconfig:"POSTGRES_PASSWORD"`
	DbName   string `yaml:"dbName" envconfig:"POSTGRES_DB"`
	SSLMode  string `yaml:"sslMode" envconfig:"POSTGRES_SSLMODE"`
}

// ConnectionDetails tunes the pool. Zero values fall back to 50 open, 25 idle
// and a one minute lifetime.
type ConnectionDetails struct {
	MaxOpenConns    int           `yaml:"maxOpenConns" envconfig:"POSTGRES_MAX_OPEN_CONNS"`
	MaxIdleConns    int           `yaml:"maxIdleConns" envconfig:"POSTGRES_MAX_IDLE_CONNS"`
	ConnMaxLifetime time.Duration `yaml:"connMaxLifetime" envconfig:"POSTGRES_CONN_MAX_LIFETIME"`
}
