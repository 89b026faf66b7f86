package postgres

import (
	"context"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"go.uber.org/mock/gomock"
)

func setupPostgresContainer(ctx context.Context) (testcontainers.Container, Config, error) {
	port, err := getFreePort()
	if err != nil {
		return nil, Config{}, fmt.Errorf("could not get free port: %w", err)
	}

	req := testcontainers.ContainerRequest{
		Image: "postgres:15",
		Env: map[string]string{
			"POSTGRES_USER":     "testuser",
			"POSTGRES_PASSWORD": "testpass",
			"POSTGRES_DB":       "testdb",
		},
		ExposedPorts: []string{"5432/tcp"},
		HostConfigModifier: func(cfg *container.HostConfig) {
			cfg.PortBindings = nat.PortMap{
				"5432/tcp": []nat.PortBinding{{HostPort: fmt.Sprintf("%d", port)}},
			}
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, Config{}, fmt.Errorf("failed to start postgres container: %w", err)
	}

	host, err := c.Host(ctx)
	if err != nil {
		_ = c.Terminate(ctx)
		return nil, Config{}, err
	}
	mapped, err := c.MappedPort(ctx, "5432")
	if err != nil {
		_ = c.Terminate(ctx)
		return nil, Config{}, err
	}

	return c, Config{Connection: Connection{
		Host:     host,
		Port:     mapped.Port(),
		User:     "testuser",
		Password: "testpass",
		DbName:   "testdb",
		SSLMode:  "disable",
	}}, nil
}

func getFreePort() (int, error) {
	l, err := net.Listen("tcp", "localhost:0")
	if err != nil {
		return 0, err
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port, nil
}

func TestLedgerWithFXModule(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	c, cfg, err := setupPostgresContainer(ctx)
	require.NoError(t, err)
	defer func() {
		if err := c.Terminate(ctx); err != nil {
			t.Fatalf("failed to terminate container: %s", err)
		}
	}()

	ctrl := gomock.NewController(t)
	mockLogger := NewMockLogger(ctrl)
	mockLogger.EXPECT().Info(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Error(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()

	var ledger *Ledger
	app := fxtest.New(t,
		fx.Provide(
			func() Config { return cfg },
			func() Logger { return mockLogger },
		),
		FXModule,
		fx.Populate(&ledger),
	)
	app.RequireStart()
	defer app.RequireStop()

	first := NewInsertRecord("WVW1", "fleet", []string{"color"})
	require.NoError(t, ledger.Record(ctx, &first))
	assert.NotZero(t, first.ID)
	assert.False(t, first.CreatedAt.IsZero())

	second := NewInsertRecord("WVW1", "testcloud", []string{"doors", "color"})
	require.NoError(t, ledger.Record(ctx, &second))

	other := NewInsertRecord("WVW2", "fleet", []string{"color"})
	require.NoError(t, ledger.Record(ctx, &other))

	records, err := ledger.ListByVehicle(ctx, "WVW1", 0)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, second.ID, records[0].ID)
	assert.Equal(t, "color,doors", records[0].Keys)
	assert.Equal(t, first.ID, records[1].ID)

	limited, err := ledger.ListByVehicle(ctx, "WVW1", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	none, err := ledger.ListByVehicle(ctx, "unknown", 10)
	require.NoError(t, err)
	assert.Empty(t, none)
}
