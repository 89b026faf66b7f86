package constructionstate

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/mock/gomock"

	"github.com/Aleph-Alpha/digitaltwin/v1/kafka"
	"github.com/Aleph-Alpha/digitaltwin/v1/mongodb"
	"github.com/Aleph-Alpha/digitaltwin/v1/postgres"
	"github.com/Aleph-Alpha/digitaltwin/v1/statequery"
	"github.com/Aleph-Alpha/digitaltwin/v1/statetree"
)

type mocks struct {
	store    *MockStore
	ledger   *MockLedger
	events   *MockEventPublisher
	registry *MockVehicleRegistry
	vehicles *MockVehiclePlatform
	metrics  *MockMetrics
	logger   *MockLogger
}

func newTestService(t *testing.T) (*Service, mocks) {
	ctrl := gomock.NewController(t)
	m := mocks{
		store:    NewMockStore(ctrl),
		ledger:   NewMockLedger(ctrl),
		events:   NewMockEventPublisher(ctrl),
		registry: NewMockVehicleRegistry(ctrl),
		vehicles: NewMockVehiclePlatform(ctrl),
		metrics:  NewMockMetrics(ctrl),
		logger:   NewMockLogger(ctrl),
	}

	tracer := NewMockTracer(ctrl)
	tracer.EXPECT().StartSpan(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string) (context.Context, trace.Span) {
			return ctx, noop.Span{}
		}).AnyTimes()
	tracer.EXPECT().SetAttributes(gomock.Any(), gomock.Any()).AnyTimes()
	tracer.EXPECT().RecordErrorOnSpan(gomock.Any(), gomock.Any()).AnyTimes()

	m.logger.EXPECT().Info(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()

	svc := NewService(Params{
		Store:    m.store,
		Ledger:   m.ledger,
		Events:   m.events,
		Registry: m.registry,
		Vehicles: m.vehicles,
		Metrics:  m.metrics,
		Tracer:   tracer,
		Logger:   m.logger,
	})
	return svc, m
}

var modified = time.Date(2022, 3, 11, 12, 41, 35, 0, time.UTC)

func stored(vehicleID string, leaves map[string]any) *mongodb.StateDocument {
	flat := statetree.Flat{}
	for p, v := range leaves {
		flat[p] = statetree.LeafValue{Value: v, LastModified: modified, Owner: "fleet"}
	}
	return &mongodb.StateDocument{VehicleID: vehicleID, State: flat}
}

func TestGet_UnknownVehicleIsEmpty(t *testing.T) {
	svc, m := newTestService(t)
	m.store.EXPECT().FindOne(gomock.Any(), "WVW1").Return(nil, mongodb.ErrStateNotFound)

	got, err := svc.Get(context.Background(), "WVW1", true)

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestGet_Structured(t *testing.T) {
	svc, m := newTestService(t)
	m.store.EXPECT().FindOne(gomock.Any(), "WVW1").Return(stored("WVW1", map[string]any{
		"color":                              "blue",
		"battery/highVoltage/chargingLevel0": int32(80),
	}), nil)

	got, err := svc.Get(context.Background(), "WVW1", true)

	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"color":   "blue",
		"battery": map[string]any{"highVoltage": map[string]any{"chargingLevel0": "80"}},
	}, got)
}

func TestGet_StructuredSkipsBrokenLeaves(t *testing.T) {
	svc, m := newTestService(t)
	m.store.EXPECT().FindOne(gomock.Any(), "WVW1").Return(stored("WVW1", map[string]any{
		"color":          "blue",
		"modules//image": "repo/edge_twin",
	}), nil)
	m.metrics.EXPECT().LeavesSkipped(1)
	m.logger.EXPECT().Warn("state tree built with skipped leaves", gomock.Any(), gomock.Any()).
		Do(func(_ string, err error, fields ...map[string]interface{}) {
			assert.ErrorIs(t, err, statetree.ErrLeafSkipped)
			assert.Equal(t, []string{"modules//image"}, fields[0]["paths"])
		})

	got, err := svc.Get(context.Background(), "WVW1", true)

	require.NoError(t, err)
	assert.Equal(t, map[string]any{"color": "blue"}, got)
}

func TestGet_Raw(t *testing.T) {
	svc, m := newTestService(t)
	m.store.EXPECT().FindOne(gomock.Any(), "WVW1").Return(stored("WVW1", map[string]any{"color": "blue"}), nil)

	got, err := svc.Get(context.Background(), "WVW1", false)
	require.NoError(t, err)

	body, err := json.Marshal(got)
	require.NoError(t, err)
	assert.JSONEq(t, `{"color":{"value":"blue","hasConflict":false,"lastModified":"2022-03-11T12:41:35Z","owner":"fleet"}}`, string(body))
}

func TestGet_StoreError(t *testing.T) {
	svc, m := newTestService(t)
	m.store.EXPECT().FindOne(gomock.Any(), "WVW1").Return(nil, mongodb.ErrUnavailable)

	_, err := svc.Get(context.Background(), "WVW1", false)

	assert.ErrorIs(t, err, mongodb.ErrUnavailable)
}

func TestListByKeyValue_NormalizesKey(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"color", "state.color.value"},
		{"battery.highVoltage.chargingLevel0", "state.battery/highVoltage/chargingLevel0.value"},
		{"battery%2FhighVoltage%2FchargingLevel0", "state.battery/highVoltage/chargingLevel0.value"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			svc, m := newTestService(t)
			m.store.EXPECT().FindVehicleIDs(gomock.Any(), bson.D{{Key: tt.want, Value: "80"}}).Return([]string{"WVW1"}, nil)

			ids, err := svc.ListByKeyValue(context.Background(), tt.key, "80")

			require.NoError(t, err)
			assert.Equal(t, []string{"WVW1"}, ids)
		})
	}
}

func TestCountByKeyValue(t *testing.T) {
	svc, m := newTestService(t)
	m.store.EXPECT().Count(gomock.Any(), bson.D{{Key: "state.brand_name.value", Value: "Audi"}}).Return(int64(3), nil)

	n, err := svc.CountByKeyValue(context.Background(), "brand_name", "Audi")

	require.NoError(t, err)
	assert.EqualValues(t, 3, n)
}

func TestListByQuery(t *testing.T) {
	svc, m := newTestService(t)
	m.metrics.EXPECT().QueryCompiled(true)
	m.store.EXPECT().FindVehicleIDs(gomock.Any(), bson.D{{Key: "state.color.value", Value: "blue"}}).Return([]string{"WVW1", "WVW2"}, nil)

	ids, err := svc.ListByQuery(context.Background(), []byte(`{"color":"blue"}`))

	require.NoError(t, err)
	assert.Equal(t, []string{"WVW1", "WVW2"}, ids)
}

func TestListByQuery_EmptyMatchesAll(t *testing.T) {
	svc, m := newTestService(t)
	m.metrics.EXPECT().QueryCompiled(true)
	m.store.EXPECT().FindVehicleIDs(gomock.Any(), bson.D{}).Return([]string{"WVW1"}, nil)

	_, err := svc.ListByQuery(context.Background(), []byte(`{}`))

	require.NoError(t, err)
}

func TestQuery_InvalidNeverReachesStore(t *testing.T) {
	svc, m := newTestService(t)
	m.metrics.EXPECT().QueryCompiled(false).Times(2)

	_, err := svc.ListByQuery(context.Background(), []byte(`{"gt": 5}`))
	assert.ErrorIs(t, err, statequery.ErrInvalidQuery)

	_, err = svc.CountByQuery(context.Background(), []byte(`[1,2]`))
	assert.ErrorIs(t, err, statequery.ErrInvalidQuery)
}

func TestCountByQuery(t *testing.T) {
	svc, m := newTestService(t)
	m.metrics.EXPECT().QueryCompiled(true)
	m.store.EXPECT().Count(gomock.Any(), gomock.Any()).Return(int64(7), nil)

	n, err := svc.CountByQuery(context.Background(), []byte(`{"doors":{"gt":2}}`))

	require.NoError(t, err)
	assert.EqualValues(t, 7, n)
}

func expectSideChannels(m mocks, vehicleID, owner string, keys []string) {
	m.metrics.EXPECT().Inserted(owner)
	m.ledger.EXPECT().Record(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, rec *postgres.InsertRecord) error {
			want := postgres.NewInsertRecord(vehicleID, owner, keys)
			if rec.VehicleID != want.VehicleID || rec.Owner != want.Owner || rec.Keys != want.Keys {
				return errors.New("unexpected ledger record")
			}
			return nil
		})
	m.events.EXPECT().PublishStateEvent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, ev kafka.StateEvent) error {
			if ev.Type != kafka.EventInserted || ev.VehicleID != vehicleID || ev.Owner != owner {
				return errors.New("unexpected event")
			}
			return nil
		})
}

func TestInsert_FlatPassthrough(t *testing.T) {
	svc, m := newTestService(t)
	m.store.EXPECT().UpsertLeaves(gomock.Any(), "WVW1", "fleet", map[string]any{
		"color":    "blue",
		"doors":    "4",
		"ratio":    "0.5",
		"a.b":      "dotted",
		"settings": map[string]any{"x": "y"},
	}).Return(nil)
	expectSideChannels(m, "WVW1", "fleet", []string{"a.b", "color", "doors", "ratio", "settings"})

	err := svc.Insert(context.Background(), "", "WVW1",
		[]byte(`{"color":"blue","doors":4,"ratio":0.5,"a.b":"dotted","settings":{"x":"y"}}`), false)

	require.NoError(t, err)
}

func TestInsert_Transform(t *testing.T) {
	svc, m := newTestService(t)
	m.store.EXPECT().UpsertLeaves(gomock.Any(), "WVW1", "oemil", map[string]any{
		"modules/EdgeTwin/status":  "running",
		"modules/EdgeTwin/version": "0.2.0",
		"color":                    "blue",
	}).Return(nil)
	expectSideChannels(m, "WVW1", "oemil", []string{"color", "modules/EdgeTwin/status", "modules/EdgeTwin/version"})

	err := svc.Insert(context.Background(), "oemil", "WVW1",
		[]byte(`{"modules":{"EdgeTwin":{"status":"running","version":"0.2.0"}},"color":"blue"}`), true)

	require.NoError(t, err)
}

func TestInsert_RejectsReservedFields(t *testing.T) {
	for _, transform := range []bool{false, true} {
		svc, _ := newTestService(t)

		err := svc.Insert(context.Background(), "fleet", "WVW1", []byte(`{"color":{"value":"blue"}}`), transform)

		var rf *statetree.ReservedFieldError
		require.ErrorAs(t, err, &rf)
		assert.Equal(t, "color/value", rf.Path)
	}
}

func TestInsert_RejectsNonObjects(t *testing.T) {
	svc, _ := newTestService(t)

	for _, body := range []string{`[1]`, `"x"`, `{"a":1}{"b":2}`, `{`} {
		err := svc.Insert(context.Background(), "fleet", "WVW1", []byte(body), false)
		assert.ErrorIs(t, err, ErrInvalidPayload, body)
	}
	assert.ErrorIs(t, svc.Insert(context.Background(), "fleet", "", []byte(`{}`), false), ErrMissingVehicleID)
}

func TestInsert_OwnerResolution(t *testing.T) {
	t.Run("owner names a managed vehicle", func(t *testing.T) {
		svc, m := newTestService(t)
		m.registry.EXPECT().Contains("WVW9").Return(true)
		m.store.EXPECT().UpsertLeaves(gomock.Any(), "WVW1", "fleet", gomock.Any()).Return(nil)
		expectSideChannels(m, "WVW1", "fleet", []string{"color"})

		require.NoError(t, svc.Insert(context.Background(), "WVW9", "WVW1", []byte(`{"color":"red"}`), false))
	})

	t.Run("target registered on the platform", func(t *testing.T) {
		svc, m := newTestService(t)
		m.registry.EXPECT().Contains("someone").Return(false)
		m.vehicles.EXPECT().VehicleRegistered(gomock.Any(), "WVW1").Return(true, nil)
		m.store.EXPECT().UpsertLeaves(gomock.Any(), "WVW1", "fleet", gomock.Any()).Return(nil)
		expectSideChannels(m, "WVW1", "fleet", []string{"color"})

		require.NoError(t, svc.Insert(context.Background(), "someone", "WVW1", []byte(`{"color":"red"}`), false))
	})

	t.Run("unknown owner", func(t *testing.T) {
		svc, m := newTestService(t)
		m.registry.EXPECT().Contains("someone").Return(false)
		m.vehicles.EXPECT().VehicleRegistered(gomock.Any(), "WVW1").Return(false, nil)

		err := svc.Insert(context.Background(), "someone", "WVW1", []byte(`{"color":"red"}`), false)
		assert.ErrorIs(t, err, ErrInvalidOwner)
	})

	t.Run("registration check fails", func(t *testing.T) {
		svc, m := newTestService(t)
		m.registry.EXPECT().Contains("someone").Return(false)
		m.vehicles.EXPECT().VehicleRegistered(gomock.Any(), "WVW1").Return(false, errors.New("dial tcp: timeout"))

		err := svc.Insert(context.Background(), "someone", "WVW1", []byte(`{"color":"red"}`), false)
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrInvalidOwner)
	})
}

func TestInsert_SideChannelFailuresAreLogged(t *testing.T) {
	svc, m := newTestService(t)
	m.store.EXPECT().UpsertLeaves(gomock.Any(), "WVW1", "fleet", gomock.Any()).Return(nil)
	m.metrics.EXPECT().Inserted("fleet")
	m.ledger.EXPECT().Record(gomock.Any(), gomock.Any()).Return(postgres.ErrConnection)
	m.events.EXPECT().PublishStateEvent(gomock.Any(), gomock.Any()).Return(errors.New("kafka down"))
	m.logger.EXPECT().Warn("failed to record insert in ledger", postgres.ErrConnection, gomock.Any())
	m.logger.EXPECT().Warn("failed to publish state event", gomock.Any(), gomock.Any())

	require.NoError(t, svc.Insert(context.Background(), "fleet", "WVW1", []byte(`{"color":"red"}`), false))
}

func TestInsert_StoreErrorSkipsSideChannels(t *testing.T) {
	svc, m := newTestService(t)
	m.store.EXPECT().UpsertLeaves(gomock.Any(), "WVW1", "fleet", gomock.Any()).Return(mongodb.ErrInvalidLeafPath)

	err := svc.Insert(context.Background(), "fleet", "WVW1", []byte(`{"$bad":"x"}`), false)

	assert.ErrorIs(t, err, mongodb.ErrInvalidLeafPath)
}

func TestFlush(t *testing.T) {
	svc, m := newTestService(t)
	m.store.EXPECT().FindOne(gomock.Any(), "WVW1").Return(stored("WVW1", map[string]any{"color": "blue"}), nil)
	m.vehicles.EXPECT().SendCommand(gomock.Any(), "WVW1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, payload []byte) (int, error) {
			var body map[string]map[string]statetree.LeafValue
			if err := json.Unmarshal(payload, &body); err != nil {
				return 0, err
			}
			if body["constructionStateChanges"]["color"].Value != "blue" {
				return http.StatusBadRequest, nil
			}
			return http.StatusAccepted, nil
		})
	m.metrics.EXPECT().CommandSent(http.StatusAccepted)
	m.events.EXPECT().PublishStateEvent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, ev kafka.StateEvent) error {
			assert.Equal(t, kafka.EventFlushed, ev.Type)
			assert.Equal(t, []string{"color"}, ev.Keys)
			return nil
		})

	require.NoError(t, svc.Flush(context.Background(), "WVW1"))
}

func TestFlush_RejectedCommand(t *testing.T) {
	svc, m := newTestService(t)
	m.store.EXPECT().FindOne(gomock.Any(), "WVW1").Return(stored("WVW1", map[string]any{"color": "blue"}), nil)
	m.vehicles.EXPECT().SendCommand(gomock.Any(), "WVW1", gomock.Any()).Return(http.StatusOK, nil)
	m.metrics.EXPECT().CommandSent(http.StatusOK)

	err := svc.Flush(context.Background(), "WVW1")

	var rejected *CommandRejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, http.StatusOK, rejected.StatusCode)
	assert.ErrorIs(t, err, ErrCommandRejected)
}

func TestFlush_UnknownVehicle(t *testing.T) {
	svc, m := newTestService(t)
	m.store.EXPECT().FindOne(gomock.Any(), "WVW1").Return(nil, mongodb.ErrStateNotFound)

	assert.ErrorIs(t, svc.Flush(context.Background(), "WVW1"), mongodb.ErrStateNotFound)
}

func TestHistory(t *testing.T) {
	svc, m := newTestService(t)
	recs := []postgres.InsertRecord{postgres.NewInsertRecord("WVW1", "fleet", []string{"color"})}
	m.ledger.EXPECT().ListByVehicle(gomock.Any(), "WVW1", 10).Return(recs, nil)

	got, err := svc.History(context.Background(), "WVW1", 10)

	require.NoError(t, err)
	assert.Equal(t, recs, got)
}
