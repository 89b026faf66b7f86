package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/Aleph-Alpha/digitaltwin/v1/httpapi"
	"github.com/Aleph-Alpha/digitaltwin/v1/mongodb"
)

const validYAML = `
logger:
  level: debug
mongodb:
  uri: mongodb://localhost:27017
  operationTimeout: 3s
postgres:
  connection:
    host: localhost
    dbName: digitaltwin
minio:
  connection:
    endpoint: localhost:9000
    accountName: fleetstorage
  download:
    smallFileThreshold: 1024
redis:
  host: localhost
kafka:
  brokers: [localhost:9092]
rabbit:
  connection:
    host: localhost
remoteAccess:
  domain: api.example.com
  tokenDomain: login.example.com
  tenantId: tenant-1
  clientId: client
  clientSecret: secret
http:
  apiKey: key
  masterKey: master
`

const validTOML = `
[mongodb]
uri = "mongodb://localhost:27017"
operationTimeout = "3s"

[postgres.connection]
host = "localhost"
dbName = "digitaltwin"

[minio.connection]
endpoint = "localhost:9000"
accountName = "fleetstorage"

[redis]
host = "localhost"

[kafka]
brokers = ["localhost:9092"]

[rabbit.connection]
host = "localhost"

[remoteAccess]
domain = "api.example.com"
tokenDomain = "login.example.com"
tenantId = "tenant-1"
clientId = "client"
clientSecret = "secret"

[http]
apiKey = "key"
masterKey = "master"
`

const validJSON = `{
  "mongodb": {"uri": "mongodb://localhost:27017", "operationTimeout": "3s"},
  "postgres": {"connection": {"host": "localhost", "dbName": "digitaltwin"}},
  "minio": {"connection": {"endpoint": "localhost:9000", "accountName": "fleetstorage"}},
  "redis": {"host": "localhost"},
  "kafka": {"brokers": ["localhost:9092"]},
  "rabbit": {"connection": {"host": "localhost"}},
  "remoteAccess": {"domain": "api.example.com", "tokenDomain": "login.example.com",
    "tenantId": "tenant-1", "clientId": "client", "clientSecret": "secret"},
  "http": {"apiKey": "key", "masterKey": "master"}
}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Formats(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"yaml", "config.yaml", validYAML},
		{"toml", "config.toml", validTOML},
		{"json", "config.json", validJSON},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeFile(t, tt.file, tt.content))
			require.NoError(t, err)

			assert.Equal(t, "mongodb://localhost:27017", cfg.MongoDB.URI)
			assert.Equal(t, 3*time.Second, cfg.MongoDB.OperationTimeout)
			assert.Equal(t, "digitaltwin", cfg.Postgres.Connection.DbName)
			assert.Equal(t, "fleetstorage", cfg.Minio.Connection.AccountName)
			assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
			assert.Equal(t, "tenant-1", cfg.RemoteAccess.TenantID)
			assert.Equal(t, "master", cfg.HTTP.MasterKey)
			assert.Equal(t, DefaultServiceName, cfg.Logger.ServiceName)
		})
	}
}

func TestLoad_YAMLNestedSections(t *testing.T) {
	cfg, err := Load(writeFile(t, "config.yml", validYAML))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.EqualValues(t, 1024, cfg.Minio.DownloadConfig.SmallFileThreshold)
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	t.Setenv("DIGITALTWIN_MONGODB_URI", "mongodb://override:27017")
	t.Setenv("DIGITALTWIN_KAFKA_BROKERS", "a:9092,b:9092")
	t.Setenv("DIGITALTWIN_KAFKA_SASL_ENABLED", "true")
	t.Setenv("DIGITALTWIN_KAFKA_SASL_USERNAME", "svc")
	t.Setenv("DIGITALTWIN_POSTGRES_MAX_OPEN_CONNS", "7")
	t.Setenv("HTTP_API_KEY", "unprefixed")

	cfg, err := Load(writeFile(t, "config.yaml", validYAML))
	require.NoError(t, err)

	assert.Equal(t, "mongodb://override:27017", cfg.MongoDB.URI)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.Kafka.SASL.Enabled)
	assert.Equal(t, "svc", cfg.Kafka.SASL.Username)
	assert.Equal(t, 7, cfg.Postgres.ConnectionDetails.MaxOpenConns)
	assert.Equal(t, "unprefixed", cfg.HTTP.APIKey)
}

func TestLoad_EnvironmentOnly(t *testing.T) {
	env := map[string]string{
		"DIGITALTWIN_MONGODB_URI":             "mongodb://db:27017",
		"DIGITALTWIN_POSTGRES_HOST":           "pg",
		"DIGITALTWIN_POSTGRES_DB":             "digitaltwin",
		"DIGITALTWIN_MINIO_ENDPOINT":          "minio:9000",
		"DIGITALTWIN_MINIO_ACCOUNT_NAME":      "fleetstorage",
		"DIGITALTWIN_REDIS_HOST":              "redis",
		"DIGITALTWIN_KAFKA_BROKERS":           "kafka:9092",
		"DIGITALTWIN_RABBIT_HOST":             "rabbit",
		"DIGITALTWIN_REMOTE_DOMAIN":           "api.example.com",
		"DIGITALTWIN_REMOTE_TOKEN_DOMAIN":     "login.example.com",
		"DIGITALTWIN_REMOTE_TENANT_ID":        "tenant-1",
		"DIGITALTWIN_REMOTE_CLIENT_ID":        "client",
		"DIGITALTWIN_REMOTE_CLIENT_SECRET":    "secret",
		"DIGITALTWIN_HTTP_API_KEY":            "key",
		"DIGITALTWIN_HTTP_MASTER_KEY":         "master",
		"DIGITALTWIN_HTTP_READ_TIMEOUT":       "5s",
		"DIGITALTWIN_RABBIT_EXCHANGE_NAME":    "vehicles",
		"DIGITALTWIN_VEHICLE_MANAGER_USER_ID": "user-1",
	}
	for k, v := range env {
		t.Setenv(k, v)
	}

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 5*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, "vehicles", cfg.Rabbit.Channel.ExchangeName)
	assert.Equal(t, "user-1", cfg.VehicleManager.UserID)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeFile(t, "config.ini", "x=1"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Load(writeFile(t, "config.json", "{"))
	assert.Error(t, err)
}

func TestValidate_ReportsEveryField(t *testing.T) {
	cfg := Default()
	cfg.Logger.Level = "loud"
	cfg.MongoDB.URI = "postgres://nope"
	cfg.VehicleManager.SyncOnStart = true
	cfg.HTTP.APIKey = "same"
	cfg.HTTP.MasterKey = "same"

	err := cfg.Validate()
	require.Error(t, err)

	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs))

	fields := make(map[string]bool, len(verrs))
	for _, e := range verrs {
		fields[e.Field] = true
	}
	for _, f := range []string{
		"logger.level",
		"mongodb.uri",
		"postgres.connection.host",
		"minio.connection.accountName",
		"kafka.brokers",
		"remoteAccess.clientSecret",
		"vehicleManager.userId",
		"http.masterKey",
	} {
		assert.True(t, fields[f], "expected a validation error for %s", f)
	}
	assert.Contains(t, err.Error(), "config: logger.level: must be one of")
}

func TestParseFlags(t *testing.T) {
	path, err := ParseFlags([]string{"--config", "/etc/digitaltwin.yaml"})
	require.NoError(t, err)
	assert.Equal(t, "/etc/digitaltwin.yaml", path)

	path, err = ParseFlags([]string{"-c", "local.toml"})
	require.NoError(t, err)
	assert.Equal(t, "local.toml", path)

	t.Setenv(EnvConfigPath, "/from/env.json")
	path, err = ParseFlags(nil)
	require.NoError(t, err)
	assert.Equal(t, "/from/env.json", path)

	_, err = ParseFlags([]string{"--unknown"})
	assert.Error(t, err)
}

func TestModule_ProvidesSections(t *testing.T) {
	cfg, err := Load(writeFile(t, "config.yaml", validYAML))
	require.NoError(t, err)

	var (
		mongoCfg mongodb.Config
		httpCfg  httpapi.Config
	)
	app := fxtest.New(t,
		Module(cfg),
		fx.Populate(&mongoCfg, &httpCfg),
	)
	app.RequireStart().RequireStop()

	assert.Equal(t, cfg.MongoDB, mongoCfg)
	assert.Equal(t, "key", httpCfg.APIKey)
}
