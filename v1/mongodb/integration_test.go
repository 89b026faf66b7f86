package mongodb

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
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"go.uber.org/mock/gomock"

	"github.com/Aleph-Alpha/digitaltwin/v1/statequery"
)

type mongoContainer struct {
	testcontainers.Container
	URI string
}

func setupMongoContainer(ctx context.Context) (*mongoContainer, error) {
	port, err := getFreePort()
	if err != nil {
		return nil, fmt.Errorf("could not get free port: %w", err)
	}

	req := testcontainers.ContainerRequest{
		Image:        "mongo:7",
		ExposedPorts: []string{"27017/tcp"},
		HostConfigModifier: func(cfg *container.HostConfig) {
			cfg.PortBindings = nat.PortMap{
				"27017/tcp": []nat.PortBinding{{HostPort: fmt.Sprintf("%d", port)}},
			}
		},
		WaitingFor: wait.ForLog("Waiting for connections").WithStartupTimeout(60 * time.Second),
	}

	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start mongo container: %w", err)
	}

	host, err := c.Host(ctx)
	if err != nil {
		_ = c.Terminate(ctx)
		return nil, fmt.Errorf("failed to get host: %w", err)
	}
	mapped, err := c.MappedPort(ctx, "27017")
	if err != nil {
		_ = c.Terminate(ctx)
		return nil, fmt.Errorf("failed to get mapped port: %w", err)
	}

	return &mongoContainer{
		Container: c,
		URI:       fmt.Sprintf("mongodb://%s:%s", host, mapped.Port()),
	}, nil
}

func getFreePort() (int, error) {
	l, err := net.Listen("tcp", "localhost:0")
	if err != nil {
		return 0, err
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port, nil
}

func TestStateStoreWithFXModule(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	mc, err := setupMongoContainer(ctx)
	require.NoError(t, err)
	defer func() {
		if err := mc.Terminate(ctx); err != nil {
			t.Fatalf("failed to terminate container: %s", err)
		}
	}()

	ctrl := gomock.NewController(t)
	mockLogger := NewMockLogger(ctrl)
	mockLogger.EXPECT().Info(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Warn(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Error(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()

	var store StateStore
	app := fxtest.New(t,
		fx.Provide(
			func() Config {
				return Config{URI: mc.URI, Database: "digitaltwin_test"}
			},
			func() Logger { return mockLogger },
		),
		FXModule,
		fx.Populate(&store),
	)
	app.RequireStart()
	defer app.RequireStop()

	t.Run("FindOne unknown vehicle", func(t *testing.T) {
		_, err := store.FindOne(ctx, "unknown")
		assert.ErrorIs(t, err, ErrStateNotFound)
	})

	t.Run("UpsertLeaves creates the document", func(t *testing.T) {
		require.NoError(t, store.UpsertLeaves(ctx, "WVW1", "fleet", map[string]any{
			"color":                              "blue",
			"battery.highVoltage.chargingLevel0": "80",
		}))

		doc, err := store.FindOne(ctx, "WVW1")
		require.NoError(t, err)
		assert.Equal(t, "WVW1", doc.VehicleID)

		color := doc.State["color"]
		assert.Equal(t, "blue", color.Value)
		assert.Equal(t, "fleet", color.Owner)
		assert.False(t, color.HasConflict)
		assert.False(t, color.LastModified.IsZero())

		assert.Equal(t, "80", doc.State["battery/highVoltage/chargingLevel0"].Value)
	})

	t.Run("same owner rewrite is not a conflict", func(t *testing.T) {
		require.NoError(t, store.UpsertLeaves(ctx, "WVW1", "fleet", map[string]any{"color": "red"}))

		doc, err := store.FindOne(ctx, "WVW1")
		require.NoError(t, err)
		assert.Equal(t, "red", doc.State["color"].Value)
		assert.False(t, doc.State["color"].HasConflict)
	})

	t.Run("other owner with other value is a conflict", func(t *testing.T) {
		require.NoError(t, store.UpsertLeaves(ctx, "WVW1", "testcloud", map[string]any{"color": "green"}))

		doc, err := store.FindOne(ctx, "WVW1")
		require.NoError(t, err)
		assert.Equal(t, "green", doc.State["color"].Value)
		assert.Equal(t, "testcloud", doc.State["color"].Owner)
		assert.True(t, doc.State["color"].HasConflict)

		// untouched leaves keep their metadata
		assert.False(t, doc.State["battery/highVoltage/chargingLevel0"].HasConflict)
	})

	t.Run("compiled queries select vehicles", func(t *testing.T) {
		require.NoError(t, store.UpsertLeaves(ctx, "WVW2", "fleet", map[string]any{"color": "green", "doors": "2"}))
		require.NoError(t, store.UpsertLeaves(ctx, "WVW3", "fleet", map[string]any{"color": "black"}))

		filter, err := statequery.CompileJSON([]byte(`{"color":"green"}`))
		require.NoError(t, err)

		ids, err := store.FindVehicleIDs(ctx, filter)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"WVW1", "WVW2"}, ids)

		filter, err = statequery.CompileJSON([]byte(`{"or":[{"color":"black"},{"doors":{"exists":true}}]}`))
		require.NoError(t, err)

		n, err := store.Count(ctx, filter)
		require.NoError(t, err)
		assert.EqualValues(t, 2, n)

		all, err := store.Count(ctx, bson.D{})
		require.NoError(t, err)
		assert.EqualValues(t, 3, all)
	})

	t.Run("rendered scalars match compiled literals", func(t *testing.T) {
		before := time.Now().Add(-time.Minute).UTC().Format(time.RFC3339)
		require.NoError(t, store.UpsertLeaves(ctx, "WVW4", "fleet", map[string]any{
			"doors":    "4",
			"electric": "true",
			"color":    "blue",
		}))
		after := time.Now().Add(time.Minute).UTC().Format(time.RFC3339)

		tests := []struct {
			query string
			want  []string
		}{
			{`{"doors": 4}`, []string{"WVW4"}},
			{`{"doors": {"gt": 3}}`, []string{"WVW4"}},
			{`{"doors": {"gt": "1", "lt": "3"}}`, []string{"WVW2"}},
			{`{"electric": true}`, []string{"WVW4"}},
			{`{"color": "blue", "lastModified": {"gt": "` + before + `"}}`, []string{"WVW4"}},
			{`{"color": "blue", "lastModified": {"gt": "` + after + `"}}`, []string{}},
			{`{"doors": {"gt": "3", "lastModified": {"lt": "` + after + `"}}, "color": {"in": ["blue"], "ne": "red"}}`, []string{"WVW4"}},
		}

		for _, tt := range tests {
			filter, err := statequery.CompileJSON([]byte(tt.query))
			require.NoError(t, err, tt.query)

			ids, err := store.FindVehicleIDs(ctx, filter)
			require.NoError(t, err, tt.query)
			assert.ElementsMatch(t, tt.want, ids, tt.query)
		}
	})

	t.Run("invalid leaf path", func(t *testing.T) {
		err := store.UpsertLeaves(ctx, "WVW1", "fleet", map[string]any{"$set": "x"})
		assert.ErrorIs(t, err, ErrInvalidLeafPath)
	})
}
