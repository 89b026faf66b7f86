package vehiclemanager

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/mock/gomock"

	"github.com/Aleph-Alpha/digitaltwin/v1/mongodb"
	"github.com/Aleph-Alpha/digitaltwin/v1/statetree"
)

type fixture struct {
	svc      *Service
	registry *Registry
	vehicles *MockVehicleSource
	states   *MockStateReader
	notifier *MockNotifier
	sent     map[string][]byte
}

func newFixture(t *testing.T, cfg Config) *fixture {
	ctrl := gomock.NewController(t)

	logger := NewMockLogger(ctrl)
	logger.EXPECT().Info(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	logger.EXPECT().Warn(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	logger.EXPECT().Error(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()

	tracer := NewMockTracer(ctrl)
	tracer.EXPECT().StartSpan(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string) (context.Context, trace.Span) {
			return ctx, noop.Span{}
		}).AnyTimes()
	tracer.EXPECT().RecordErrorOnSpan(gomock.Any(), gomock.Any()).AnyTimes()

	f := &fixture{
		registry: NewRegistry(),
		vehicles: NewMockVehicleSource(ctrl),
		states:   NewMockStateReader(ctrl),
		notifier: NewMockNotifier(ctrl),
		sent:     map[string][]byte{},
	}
	f.notifier.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, key string, body []byte) error {
			f.sent[key] = body
			return nil
		}).AnyTimes()

	f.svc = NewService(cfg, f.registry, f.vehicles, f.states, f.notifier, tracer, logger)
	return f
}

func (f *fixture) decode(t *testing.T, key string, into any) {
	t.Helper()
	body, ok := f.sent[key]
	require.True(t, ok, "no notification on %s", key)
	require.NoError(t, json.Unmarshal(body, into))
}

func TestService_AddVehicleNotifies(t *testing.T) {
	f := newFixture(t, Config{})

	require.True(t, f.svc.AddVehicle(context.Background(), "WVW1"))
	assert.False(t, f.svc.AddVehicle(context.Background(), "WVW1"))

	var list vehicleListMessage
	f.decode(t, RoutingKeyVehicleList, &list)
	assert.Equal(t, []string{"WVW1"}, list.VehicleList)

	var topics topicListMessage
	f.decode(t, "vehicles.WVW1.topics", &topics)
	assert.Equal(t, "WVW1", topics.VehicleID)
	assert.Empty(t, topics.TopicList)
}

func TestService_RemoveVehicleAnnouncesEmptyTopics(t *testing.T) {
	f := newFixture(t, Config{})
	require.True(t, f.svc.AddVehicle(context.Background(), "WVW1"))
	require.True(t, f.svc.AddTopic(context.Background(), "WVW1", TopicObject{Name: "A"}))

	require.True(t, f.svc.RemoveVehicle(context.Background(), "WVW1"))

	var list vehicleListMessage
	f.decode(t, RoutingKeyVehicleList, &list)
	assert.Equal(t, []string{}, list.VehicleList)
	assert.JSONEq(t, `{"vehicleId":"WVW1","topicList":[]}`, string(f.sent["vehicles.WVW1.topics"]))
}

func TestService_TopicMutations(t *testing.T) {
	f := newFixture(t, Config{})
	ctx := context.Background()
	require.True(t, f.svc.AddVehicle(ctx, "WVW1"))

	require.True(t, f.svc.AddTopic(ctx, "WVW1", TopicObject{Name: "Level", Topic: "cso/level"}))
	require.True(t, f.svc.UpdateTopic(ctx, "WVW1", "Level", TopicUpdate{Priority: 3, TTL: 90}))

	var topics topicListMessage
	f.decode(t, "vehicles.WVW1.topics", &topics)
	assert.Equal(t, []TopicObject{{Name: "Level", Topic: "cso/level", Priority: 3, TTL: 90}}, topics.TopicList)

	require.True(t, f.svc.RemoveTopic(ctx, "WVW1", "Level"))
	assert.False(t, f.svc.RemoveTopic(ctx, "WVW1", "Level"))

	got, ok := f.svc.TopicList("WVW1")
	require.True(t, ok)
	assert.Empty(t, got)
}

func TestService_PublishFailureDoesNotFailMutation(t *testing.T) {
	ctrl := gomock.NewController(t)
	logger := NewMockLogger(ctrl)
	logger.EXPECT().Info(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	logger.EXPECT().Warn("failed to publish registry notification", gomock.Any(), gomock.Any()).Times(2)

	notifier := NewMockNotifier(ctrl)
	notifier.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("broker down")).Times(2)

	svc := NewService(Config{}, NewRegistry(), nil, nil, notifier, nil, logger)

	assert.True(t, svc.AddVehicle(context.Background(), "WVW1"))
	assert.Equal(t, []string{"WVW1"}, svc.VehicleList())
}

func TestService_UpdateLists(t *testing.T) {
	f := newFixture(t, Config{UserID: "dt-user"})
	ctx := context.Background()
	require.True(t, f.svc.AddVehicle(ctx, "LOCAL1"))

	f.vehicles.EXPECT().ListUserVehicles(gomock.Any(), "dt-user").Return([]string{"WVW1", "LOCAL1"}, nil)
	f.states.EXPECT().FindOne(gomock.Any(), "LOCAL1").Return(nil, mongodb.ErrStateNotFound)
	f.states.EXPECT().FindOne(gomock.Any(), "WVW1").Return(&mongodb.StateDocument{
		VehicleID: "WVW1",
		State: statetree.Flat{
			"api_cso/vehicle/speed":    {Value: "10"},
			"api_cso/vehicle/odometer": {Value: "5000"},
			"color":                    {Value: "blue"},
			"Heartbeat":                {Value: "x"},
		},
	}, nil)

	require.NoError(t, f.svc.UpdateLists(ctx))

	assert.Equal(t, []string{"LOCAL1", "WVW1"}, f.svc.VehicleList())

	topics, ok := f.svc.TopicList("WVW1")
	require.True(t, ok)
	assert.Equal(t, []TopicObject{
		{Name: "Heartbeat", Topic: "edgetwin/heartbeat", TTL: DefaultTTL},
		{Name: "Battery Charging Level", Topic: "cso/v0/vehicle/battery/highVoltage/chargingLevel0", TTL: DefaultTTL},
		{Name: "Battery Charging State", Topic: "cso/v0/vehicle/battery/highVoltage/chargingState0", TTL: DefaultTTL},
		{Name: "vehicle/odometer", Topic: "vehicle/odometer", TTL: DefaultTTL},
		{Name: "vehicle/speed", Topic: "vehicle/speed", TTL: DefaultTTL},
	}, topics)

	local, _ := f.svc.TopicList("LOCAL1")
	assert.Len(t, local, len(startupTopics))

	var list vehicleListMessage
	f.decode(t, RoutingKeyVehicleList, &list)
	assert.Equal(t, []string{"LOCAL1", "WVW1"}, list.VehicleList)
	assert.Contains(t, f.sent, "vehicles.WVW1.topics")
}

func TestService_UpdateListsIsIdempotent(t *testing.T) {
	f := newFixture(t, Config{UserID: "dt-user"})
	f.vehicles.EXPECT().ListUserVehicles(gomock.Any(), "dt-user").Return([]string{"WVW1"}, nil).Times(2)
	f.states.EXPECT().FindOne(gomock.Any(), "WVW1").Return(nil, mongodb.ErrStateNotFound).Times(2)

	require.NoError(t, f.svc.UpdateLists(context.Background()))
	require.NoError(t, f.svc.UpdateLists(context.Background()))

	topics, _ := f.svc.TopicList("WVW1")
	assert.Len(t, topics, len(startupTopics))
}

func TestService_UpdateListsErrors(t *testing.T) {
	f := newFixture(t, Config{})
	assert.ErrorIs(t, f.svc.UpdateLists(context.Background()), ErrNoUserID)

	f = newFixture(t, Config{UserID: "dt-user"})
	f.vehicles.EXPECT().ListUserVehicles(gomock.Any(), "dt-user").Return(nil, errors.New("502"))

	err := f.svc.UpdateLists(context.Background())
	assert.ErrorIs(t, err, ErrVehicleListUnavailable)
	assert.Empty(t, f.sent)
}
