package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/Aleph-Alpha/digitaltwin/v1/logger"
)

// ValidationError reports one invalid setting.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Message)
}

// ValidationErrors lists every invalid setting found by Validate.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

type validator struct {
	errs ValidationErrors
}

func (v *validator) fail(field, format string, args ...any) {
	v.errs = append(v.errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
}

func (v *validator) required(field, value string) {
	if strings.TrimSpace(value) == "" {
		v.fail(field, "is required")
	}
}

func (v *validator) nonNegative(field string, value int64) {
	if value < 0 {
		v.fail(field, "must not be negative, got %d", value)
	}
}

// Validate checks the settings needed to start the service. It returns
// ValidationErrors listing every problem, or nil.
func (c *Config) Validate() error {
	v := &validator{}

	switch c.Logger.Level {
	case "", logger.Debug, logger.Info, logger.Warning, logger.Error:
	default:
		v.fail("logger.level", "must be one of debug, info, warning or error, got %q", c.Logger.Level)
	}

	v.required("mongodb.uri", c.MongoDB.URI)
	if c.MongoDB.URI != "" && !strings.HasPrefix(c.MongoDB.URI, "mongodb://") && !strings.HasPrefix(c.MongoDB.URI, "mongodb+srv://") {
		v.fail("mongodb.uri", "must start with mongodb:// or mongodb+srv://")
	}

	v.required("postgres.connection.host", c.Postgres.Connection.Host)
	v.required("postgres.connection.dbName", c.Postgres.Connection.DbName)

	v.required("minio.connection.endpoint", c.Minio.Connection.Endpoint)
	v.required("minio.connection.accountName", c.Minio.Connection.AccountName)
	v.nonNegative("minio.download.smallFileThreshold", c.Minio.DownloadConfig.SmallFileThreshold)

	v.required("redis.host", c.Redis.Host)

	if len(c.Kafka.Brokers) == 0 {
		v.fail("kafka.brokers", "at least one broker is required")
	}
	if c.Kafka.SASL.Enabled {
		v.required("kafka.sasl.username", c.Kafka.SASL.Username)
	}

	v.required("rabbit.connection.host", c.Rabbit.Connection.Host)

	v.required("remoteAccess.domain", c.RemoteAccess.Domain)
	v.required("remoteAccess.tokenDomain", c.RemoteAccess.TokenDomain)
	v.required("remoteAccess.tenantId", c.RemoteAccess.TenantID)
	v.required("remoteAccess.clientId", c.RemoteAccess.ClientID)
	v.required("remoteAccess.clientSecret", c.RemoteAccess.ClientSecret)
	if c.RemoteAccess.Domain != "" {
		if _, err := url.Parse("https://" + c.RemoteAccess.Domain); err != nil {
			v.fail("remoteAccess.domain", "is not a valid host: %v", err)
		}
	}

	if c.VehicleManager.SyncOnStart {
		v.required("vehicleManager.userId", c.VehicleManager.UserID)
	}

	v.required("http.apiKey", c.HTTP.APIKey)
	v.required("http.masterKey", c.HTTP.MasterKey)
	if c.HTTP.APIKey != "" && c.HTTP.APIKey == c.HTTP.MasterKey {
		v.fail("http.masterKey", "must differ from http.apiKey")
	}
	v.nonNegative("http.maxBodyBytes", c.HTTP.MaxBodyBytes)

	if len(v.errs) == 0 {
		return nil
	}
	return v.errs
}
