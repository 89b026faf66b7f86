package vehiclemanager

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.opentelemetry.io/otel/trace"

	"github.com/Aleph-Alpha/digitaltwin/v1/mongodb"
)

//go:generate mockgen -source=service.go -destination=mock_service.go -package=vehiclemanager

var (
	// ErrNoUserID is returned by UpdateLists when no platform user is configured.
	ErrNoUserID = errors.New("vehiclemanager: no user id configured")

	// ErrVehicleListUnavailable wraps failures to fetch the user's vehicles.
	ErrVehicleListUnavailable = errors.New("vehiclemanager: vehicle list unavailable")
)

const (
	RoutingKeyVehicleList = "vehicles.list"
	routingKeyTopicsFmt   = "vehicles.%s.topics"
)

// startupTopics are added to every vehicle by UpdateLists.
var startupTopics = []TopicObject{
	{Name: "Heartbeat", Topic: "edgetwin/heartbeat"},
	{Name: "Battery Charging Level", Topic: "cso/v0/vehicle/battery/highVoltage/chargingLevel0"},
	{Name: "Battery Charging State", Topic: "cso/v0/vehicle/battery/highVoltage/chargingState0"},
}

type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}

type Tracer interface {
	StartSpan(ctx context.Context, name string) (context.Context, trace.Span)
	RecordErrorOnSpan(span trace.Span, err error)
}

// Notifier publishes registry changes.
type Notifier interface {
	Publish(ctx context.Context, routingKey string, body []byte) error
}

// VehicleSource lists the vehicles assigned to a platform user.
type VehicleSource interface {
	ListUserVehicles(ctx context.Context, userID string) ([]string, error)
}

// StateReader reads a vehicle's stored construction state.
type StateReader interface {
	FindOne(ctx context.Context, vehicleID string) (*mongodb.StateDocument, error)
}

// Service manages the registry and announces every change on the notifier.
type Service struct {
	cfg      Config
	registry *Registry
	vehicles VehicleSource
	states   StateReader
	notifier Notifier
	tracer   Tracer
	logger   Logger
}

func NewService(cfg Config, registry *Registry, vehicles VehicleSource, states StateReader,
	notifier Notifier, tracer Tracer, logger Logger) *Service {
	return &Service{
		cfg:      cfg.withDefaults(),
		registry: registry,
		vehicles: vehicles,
		states:   states,
		notifier: notifier,
		tracer:   tracer,
		logger:   logger,
	}
}

func (s *Service) VehicleList() []string {
	return s.registry.Vehicles()
}

// TopicList returns false for an unknown vehicle.
func (s *Service) TopicList(vehicleID string) ([]TopicObject, bool) {
	return s.registry.Topics(vehicleID)
}

func (s *Service) Topic(vehicleID, name string) (TopicObject, bool) {
	return s.registry.Topic(vehicleID, name)
}

func (s *Service) AddVehicle(ctx context.Context, vehicleID string) bool {
	if !s.registry.AddVehicle(vehicleID) {
		return false
	}
	s.logger.Info("vehicle added", nil, map[string]interface{}{"vehicle_id": vehicleID})
	s.notifyVehicleList(ctx)
	s.notifyTopics(ctx, vehicleID)
	return true
}

func (s *Service) RemoveVehicle(ctx context.Context, vehicleID string) bool {
	if !s.registry.RemoveVehicle(vehicleID) {
		return false
	}
	s.logger.Info("vehicle removed", nil, map[string]interface{}{"vehicle_id": vehicleID})
	s.notifyVehicleList(ctx)
	s.notifyTopics(ctx, vehicleID)
	return true
}

func (s *Service) AddTopic(ctx context.Context, vehicleID string, t TopicObject) bool {
	if !s.registry.AddTopic(vehicleID, t) {
		return false
	}
	s.notifyTopics(ctx, vehicleID)
	return true
}

func (s *Service) UpdateTopic(ctx context.Context, vehicleID, name string, u TopicUpdate) bool {
	if !s.registry.UpdateTopic(vehicleID, name, u) {
		return false
	}
	s.notifyTopics(ctx, vehicleID)
	return true
}

func (s *Service) RemoveTopic(ctx context.Context, vehicleID, name string) bool {
	if !s.registry.RemoveTopic(vehicleID, name) {
		return false
	}
	s.notifyTopics(ctx, vehicleID)
	return true
}

// UpdateLists adds the configured user's vehicles to the registry and gives
// every managed vehicle the startup topics plus one topic per stored leaf
// under the cso prefix. Existing vehicles and topics are left untouched.
func (s *Service) UpdateLists(ctx context.Context) error {
	ctx, span := s.tracer.StartSpan(ctx, "vehiclemanager.UpdateLists")
	defer span.End()

	if s.cfg.UserID == "" {
		s.tracer.RecordErrorOnSpan(span, ErrNoUserID)
		return ErrNoUserID
	}

	ids, err := s.vehicles.ListUserVehicles(ctx, s.cfg.UserID)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrVehicleListUnavailable, err)
		s.tracer.RecordErrorOnSpan(span, err)
		s.logger.Error("failed to fetch vehicle list", err, map[string]interface{}{"user_id": s.cfg.UserID})
		return err
	}
	for _, id := range ids {
		s.registry.AddVehicle(id)
	}

	managed := s.registry.Vehicles()
	for _, id := range managed {
		for _, t := range startupTopics {
			s.registry.AddTopic(id, t)
		}
		s.addCsoTopics(ctx, id)
		s.notifyTopics(ctx, id)
	}
	s.notifyVehicleList(ctx)

	s.logger.Info("vehicle lists updated", nil, map[string]interface{}{
		"user_id":  s.cfg.UserID,
		"fetched":  len(ids),
		"vehicles": len(managed),
	})
	return nil
}

func (s *Service) addCsoTopics(ctx context.Context, vehicleID string) {
	doc, err := s.states.FindOne(ctx, vehicleID)
	if err != nil {
		if !errors.Is(err, mongodb.ErrStateNotFound) {
			s.logger.Warn("failed to read state for cso topics", err, map[string]interface{}{"vehicle_id": vehicleID})
		}
		return
	}

	paths := make([]string, 0, len(doc.State))
	for p := range doc.State {
		if strings.HasPrefix(p, s.cfg.CsoTopicPrefix) {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)

	for _, p := range paths {
		name := strings.TrimPrefix(p, s.cfg.CsoTopicPrefix)
		s.registry.AddTopic(vehicleID, TopicObject{Name: name, Topic: name})
	}
}

type vehicleListMessage struct {
	VehicleList []string `json:"vehicleList"`
}

type topicListMessage struct {
	VehicleID string        `json:"vehicleId"`
	TopicList []TopicObject `json:"topicList"`
}

func (s *Service) notifyVehicleList(ctx context.Context) {
	list := s.registry.Vehicles()
	if list == nil {
		list = []string{}
	}
	s.publish(ctx, RoutingKeyVehicleList, vehicleListMessage{VehicleList: list})
}

// notifyTopics announces the vehicle's current topics; a removed vehicle is
// announced with an empty list.
func (s *Service) notifyTopics(ctx context.Context, vehicleID string) {
	topics, _ := s.registry.Topics(vehicleID)
	if topics == nil {
		topics = []TopicObject{}
	}
	s.publish(ctx, TopicsRoutingKey(vehicleID), topicListMessage{VehicleID: vehicleID, TopicList: topics})
}

func (s *Service) publish(ctx context.Context, routingKey string, msg any) {
	body, err := json.Marshal(msg)
	if err != nil {
		s.logger.Error("failed to encode registry notification", err, map[string]interface{}{"routing_key": routingKey})
		return
	}
	if err := s.notifier.Publish(ctx, routingKey, body); err != nil {
		s.logger.Warn("failed to publish registry notification", err, map[string]interface{}{"routing_key": routingKey})
	}
}

// TopicsRoutingKey is the routing key of a vehicle's topic list notifications.
func TopicsRoutingKey(vehicleID string) string {
	return fmt.Sprintf(routingKeyTopicsFmt, vehicleID)
}
