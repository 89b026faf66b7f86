package constructionstate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.opentelemetry.io/otel/trace"

	"github.com/Aleph-Alpha/digitaltwin/v1/kafka"
	"github.com/Aleph-Alpha/digitaltwin/v1/mongodb"
	"github.com/Aleph-Alpha/digitaltwin/v1/postgres"
	"github.com/Aleph-Alpha/digitaltwin/v1/statequery"
	"github.com/Aleph-Alpha/digitaltwin/v1/statetree"
)

//go:generate mockgen -source=service.go -destination=mock_service.go -package=constructionstate

type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}

type Tracer interface {
	StartSpan(ctx context.Context, name string) (context.Context, trace.Span)
	RecordErrorOnSpan(span trace.Span, err error)
	SetAttributes(span trace.Span, attrs map[string]interface{})
}

type Metrics interface {
	QueryCompiled(ok bool)
	LeavesSkipped(n int)
	Inserted(owner string)
	CommandSent(statusCode int)
}

// Store reads and writes state documents.
type Store interface {
	FindOne(ctx context.Context, vehicleID string) (*mongodb.StateDocument, error)
	FindVehicleIDs(ctx context.Context, filter bson.D) ([]string, error)
	Count(ctx context.Context, filter bson.D) (int64, error)
	UpsertLeaves(ctx context.Context, vehicleID, owner string, leaves map[string]any) error
}

// Ledger keeps the audit trail of inserts.
type Ledger interface {
	Record(ctx context.Context, rec *postgres.InsertRecord) error
	ListByVehicle(ctx context.Context, vehicleID string, limit int) ([]postgres.InsertRecord, error)
}

type EventPublisher interface {
	PublishStateEvent(ctx context.Context, event kafka.StateEvent) error
}

// VehicleRegistry answers whether a vehicle is managed locally.
type VehicleRegistry interface {
	Contains(vehicleID string) bool
}

// VehiclePlatform relays commands to vehicles and knows their registrations.
type VehiclePlatform interface {
	SendCommand(ctx context.Context, vehicleID string, payload []byte) (int, error)
	VehicleRegistered(ctx context.Context, vehicleID string) (bool, error)
}

// Service implements the construction-state operations on top of the store.
type Service struct {
	store    Store
	ledger   Ledger
	events   EventPublisher
	registry VehicleRegistry
	vehicles VehiclePlatform
	metrics  Metrics
	tracer   Tracer
	logger   Logger
}

// Params groups the collaborators of NewService.
type Params struct {
	Store    Store
	Ledger   Ledger
	Events   EventPublisher
	Registry VehicleRegistry
	Vehicles VehiclePlatform
	Metrics  Metrics
	Tracer   Tracer
	Logger   Logger
}

func NewService(p Params) *Service {
	return &Service{
		store:    p.Store,
		ledger:   p.Ledger,
		events:   p.Events,
		registry: p.Registry,
		vehicles: p.Vehicles,
		metrics:  p.Metrics,
		tracer:   p.Tracer,
		logger:   p.Logger,
	}
}

func (s *Service) startSpan(ctx context.Context, op string, attrs map[string]interface{}) (context.Context, trace.Span) {
	ctx, span := s.tracer.StartSpan(ctx, "constructionstate."+op)
	s.tracer.SetAttributes(span, attrs)
	return ctx, span
}

func (s *Service) fail(span trace.Span, err error) error {
	s.tracer.RecordErrorOnSpan(span, err)
	return err
}

// Get returns a vehicle's state. structured selects the nested tree view;
// otherwise the flat leaves are returned with their metadata. A vehicle
// without a document yields an empty map.
func (s *Service) Get(ctx context.Context, vehicleID string, structured bool) (map[string]any, error) {
	ctx, span := s.startSpan(ctx, "Get", map[string]interface{}{
		"vehicle_id": vehicleID,
		"structured": structured,
	})
	defer span.End()

	doc, err := s.store.FindOne(ctx, vehicleID)
	if errors.Is(err, mongodb.ErrStateNotFound) {
		return map[string]any{}, nil
	}
	if err != nil {
		return nil, s.fail(span, err)
	}

	if !structured {
		return rawState(doc.State), nil
	}

	res := statetree.ToTree(doc.State)
	if !res.Complete() {
		paths := make([]string, 0, len(res.Failures))
		for _, f := range res.Failures {
			paths = append(paths, f.Path)
		}
		s.logger.Warn("state tree built with skipped leaves", errors.Join(failureErrors(res.Failures)...), map[string]interface{}{
			"vehicle_id": vehicleID,
			"built":      res.Built,
			"skipped":    len(res.Failures),
			"paths":      paths,
		})
		s.metrics.LeavesSkipped(len(res.Failures))
	}
	return res.Tree, nil
}

func failureErrors(failures []*statetree.PartialTreeBuildFailure) []error {
	errs := make([]error, 0, len(failures))
	for _, f := range failures {
		errs = append(errs, f)
	}
	return errs
}

func rawState(flat statetree.Flat) map[string]any {
	out := make(map[string]any, len(flat))
	for p, leaf := range flat {
		out[p] = leaf
	}
	return out
}

func keyValueFilter(key, value string) bson.D {
	return bson.D{{Key: statequery.ValueKey(statequery.Normalize(key)), Value: value}}
}

// ListByKeyValue returns the vehicles whose leaf at key holds value.
func (s *Service) ListByKeyValue(ctx context.Context, key, value string) ([]string, error) {
	ctx, span := s.startSpan(ctx, "ListByKeyValue", map[string]interface{}{"key": key})
	defer span.End()

	ids, err := s.store.FindVehicleIDs(ctx, keyValueFilter(key, value))
	if err != nil {
		return nil, s.fail(span, err)
	}
	return ids, nil
}

func (s *Service) CountByKeyValue(ctx context.Context, key, value string) (int64, error) {
	ctx, span := s.startSpan(ctx, "CountByKeyValue", map[string]interface{}{"key": key})
	defer span.End()

	n, err := s.store.Count(ctx, keyValueFilter(key, value))
	if err != nil {
		return 0, s.fail(span, err)
	}
	return n, nil
}

func (s *Service) compile(raw []byte) (bson.D, error) {
	filter, err := statequery.CompileJSON(raw)
	s.metrics.QueryCompiled(err == nil)
	return filter, err
}

// ListByQuery compiles a client query and returns the matching vehicles.
// Invalid queries fail with an error wrapping statequery.ErrInvalidQuery.
func (s *Service) ListByQuery(ctx context.Context, raw []byte) ([]string, error) {
	ctx, span := s.startSpan(ctx, "ListByQuery", nil)
	defer span.End()

	filter, err := s.compile(raw)
	if err != nil {
		return nil, s.fail(span, err)
	}
	ids, err := s.store.FindVehicleIDs(ctx, filter)
	if err != nil {
		return nil, s.fail(span, err)
	}
	return ids, nil
}

func (s *Service) CountByQuery(ctx context.Context, raw []byte) (int64, error) {
	ctx, span := s.startSpan(ctx, "CountByQuery", nil)
	defer span.End()

	filter, err := s.compile(raw)
	if err != nil {
		return 0, s.fail(span, err)
	}
	n, err := s.store.Count(ctx, filter)
	if err != nil {
		return 0, s.fail(span, err)
	}
	return n, nil
}

// Insert writes payload into the vehicle's state. Flat payloads are stored
// key by key; with transform set the payload is flattened first. Recording
// the insert in the ledger and publishing the event are best effort.
func (s *Service) Insert(ctx context.Context, owner, vehicleID string, payload []byte, transform bool) error {
	ctx, span := s.startSpan(ctx, "Insert", map[string]interface{}{
		"vehicle_id": vehicleID,
		"owner":      owner,
		"transform":  transform,
	})
	defer span.End()

	if vehicleID == "" {
		return s.fail(span, ErrMissingVehicleID)
	}

	obj, err := decodeObject(payload)
	if err != nil {
		return s.fail(span, err)
	}

	leaves := obj
	if transform {
		leaves, err = statetree.ToFlat(obj)
	} else {
		err = statetree.CheckReserved(obj)
	}
	if err != nil {
		return s.fail(span, err)
	}

	owner, err = s.resolveOwner(ctx, owner, vehicleID)
	if err != nil {
		return s.fail(span, err)
	}

	if len(leaves) == 0 {
		return nil
	}
	if err := s.store.UpsertLeaves(ctx, vehicleID, owner, leaves); err != nil {
		return s.fail(span, err)
	}
	s.metrics.Inserted(owner)

	keys := sortedKeys(leaves)
	rec := postgres.NewInsertRecord(vehicleID, owner, keys)
	if err := s.ledger.Record(ctx, &rec); err != nil {
		s.logger.Warn("failed to record insert in ledger", err, map[string]interface{}{
			"vehicle_id": vehicleID,
		})
	}
	s.publish(ctx, kafka.NewStateEvent(kafka.EventInserted, vehicleID, owner, keys))

	s.logger.Info("construction state inserted", nil, map[string]interface{}{
		"vehicle_id": vehicleID,
		"owner":      owner,
		"leaves":     len(leaves),
	})
	return nil
}

// Flush sends the vehicle's raw state to the vehicle as a
// constructionStateChanges command. Only 202 Accepted counts as success.
func (s *Service) Flush(ctx context.Context, vehicleID string) error {
	ctx, span := s.startSpan(ctx, "Flush", map[string]interface{}{"vehicle_id": vehicleID})
	defer span.End()

	doc, err := s.store.FindOne(ctx, vehicleID)
	if err != nil {
		return s.fail(span, err)
	}

	body, err := json.Marshal(map[string]any{"constructionStateChanges": rawState(doc.State)})
	if err != nil {
		return s.fail(span, fmt.Errorf("constructionstate: encode flush command: %w", err))
	}

	code, err := s.vehicles.SendCommand(ctx, vehicleID, body)
	s.metrics.CommandSent(code)
	if err != nil {
		return s.fail(span, err)
	}
	if code != http.StatusAccepted {
		return s.fail(span, &CommandRejectedError{VehicleID: vehicleID, StatusCode: code})
	}

	s.publish(ctx, kafka.NewStateEvent(kafka.EventFlushed, vehicleID, "", sortedKeys(doc.State)))
	s.logger.Info("construction state flushed", nil, map[string]interface{}{
		"vehicle_id": vehicleID,
		"leaves":     len(doc.State),
	})
	return nil
}

// History returns the newest inserts for a vehicle. A limit of zero or less
// uses the ledger's default.
func (s *Service) History(ctx context.Context, vehicleID string, limit int) ([]postgres.InsertRecord, error) {
	ctx, span := s.startSpan(ctx, "History", map[string]interface{}{"vehicle_id": vehicleID})
	defer span.End()

	recs, err := s.ledger.ListByVehicle(ctx, vehicleID, limit)
	if err != nil {
		return nil, s.fail(span, err)
	}
	return recs, nil
}

func (s *Service) publish(ctx context.Context, ev kafka.StateEvent) {
	if err := s.events.PublishStateEvent(ctx, ev); err != nil {
		s.logger.Warn("failed to publish state event", err, map[string]interface{}{
			"vehicle_id": ev.VehicleID,
			"type":       string(ev.Type),
		})
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
