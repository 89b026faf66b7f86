package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Aleph-Alpha/digitaltwin/v1/postgres"
	"github.com/Aleph-Alpha/digitaltwin/v1/vehiclemanager"
)

//go:generate mockgen -source=handler.go -destination=mock_handler.go -package=httpapi

type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}

type Metrics interface {
	ObserveHTTPRequest(route string, code int, start time.Time)
	CommandSent(statusCode int)
}

// StateService serves the ConstructionState routes.
type StateService interface {
	Get(ctx context.Context, vehicleID string, structured bool) (map[string]any, error)
	ListByKeyValue(ctx context.Context, key, value string) ([]string, error)
	CountByKeyValue(ctx context.Context, key, value string) (int64, error)
	ListByQuery(ctx context.Context, raw []byte) ([]string, error)
	CountByQuery(ctx context.Context, raw []byte) (int64, error)
	Insert(ctx context.Context, owner, vehicleID string, payload []byte, transform bool) error
	Flush(ctx context.Context, vehicleID string) error
	History(ctx context.Context, vehicleID string, limit int) ([]postgres.InsertRecord, error)
}

// VehicleManager serves the VehicleManager routes.
type VehicleManager interface {
	VehicleList() []string
	TopicList(vehicleID string) ([]vehiclemanager.TopicObject, bool)
	Topic(vehicleID, name string) (vehiclemanager.TopicObject, bool)
	AddVehicle(ctx context.Context, vehicleID string) bool
	RemoveVehicle(ctx context.Context, vehicleID string) bool
	AddTopic(ctx context.Context, vehicleID string, t vehiclemanager.TopicObject) bool
	UpdateTopic(ctx context.Context, vehicleID, name string, u vehiclemanager.TopicUpdate) bool
	RemoveTopic(ctx context.Context, vehicleID, name string) bool
	UpdateLists(ctx context.Context) error
}

// CommandRelay forwards RemoteAccess payloads to a vehicle.
type CommandRelay interface {
	SendCommand(ctx context.Context, vehicleID string, payload []byte) (int, error)
}

type BlobStore interface {
	GetFile(ctx context.Context, storageAccount, container, vehicleID, serviceID, blobID string) ([]byte, error)
}

// Handler owns the routes of the public API.
type Handler struct {
	cfg      Config
	state    StateService
	vehicles VehicleManager
	commands CommandRelay
	blobs    BlobStore
	metrics  Metrics
	logger   Logger
	schemas  schemas
}

func NewHandler(cfg Config, state StateService, vehicles VehicleManager, commands CommandRelay,
	blobs BlobStore, metrics Metrics, logger Logger) (*Handler, error) {
	s, err := loadSchemas()
	if err != nil {
		return nil, fmt.Errorf("httpapi: %w", err)
	}
	return &Handler{
		cfg:      cfg.withDefaults(),
		state:    state,
		vehicles: vehicles,
		commands: commands,
		blobs:    blobs,
		metrics:  metrics,
		logger:   logger,
		schemas:  s,
	}, nil
}

// Routes returns the complete API wrapped in the request middleware.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("GET /ConstructionState/get", h.withKey(h.getState(false)))
	mux.Handle("GET /ConstructionState/getJSON", h.withKey(h.getState(true)))
	mux.Handle("GET /ConstructionState/listByKeyValue", h.withKey(http.HandlerFunc(h.listByKeyValue)))
	mux.Handle("GET /ConstructionState/countByKeyValue", h.withKey(http.HandlerFunc(h.countByKeyValue)))
	mux.Handle("POST /ConstructionState/listByQuery", h.withKey(http.HandlerFunc(h.listByQuery)))
	mux.Handle("POST /ConstructionState/countByQuery", h.withKey(http.HandlerFunc(h.countByQuery)))
	mux.Handle("POST /ConstructionState/insert", h.withKey(h.insert(false)))
	mux.Handle("POST /ConstructionState/insertJSON", h.withKey(h.insert(true)))
	mux.Handle("GET /ConstructionState/flush", h.withMasterKey(http.HandlerFunc(h.flush)))
	mux.Handle("GET /ConstructionState/history", h.withKey(http.HandlerFunc(h.history)))

	mux.Handle("GET /VehicleManager/VehicleList", h.withKey(http.HandlerFunc(h.vehicleList)))
	mux.Handle("POST /VehicleManager/VehicleList", h.withMasterKey(http.HandlerFunc(h.addVehicle)))
	mux.Handle("DELETE /VehicleManager/VehicleList/{vehicleId}", h.withMasterKey(http.HandlerFunc(h.removeVehicle)))
	mux.Handle("GET /VehicleManager/TopicList/{vehicleId}", h.withKey(http.HandlerFunc(h.topicList)))
	mux.Handle("GET /VehicleManager/TopicList/{vehicleId}/{topicName}", h.withKey(http.HandlerFunc(h.topic)))
	mux.Handle("POST /VehicleManager/TopicList/{vehicleId}", h.withKey(http.HandlerFunc(h.addTopic)))
	mux.Handle("PUT /VehicleManager/TopicList/{vehicleId}/{topicName}", h.withKey(http.HandlerFunc(h.updateTopic)))
	mux.Handle("DELETE /VehicleManager/TopicList/{vehicleId}/{topicName}", h.withMasterKey(http.HandlerFunc(h.removeTopic)))
	mux.Handle("GET /VehicleManager/UpdateLists", h.withKey(http.HandlerFunc(h.updateLists)))

	for _, kind := range []string{"subscribe", "trigger", "call", "request"} {
		mux.Handle("POST /RemoteAccess/"+kind+"/{vehicleId}", h.withKey(h.relayCommand(kind)))
	}

	mux.Handle("GET /BlobStorage/{storageAccount}/{containerName}/{vehicleId}/{serviceId}/{blobId}/largefiledownload",
		h.withKey(http.HandlerFunc(h.largeFileDownload)))

	return h.requestID(h.observe(mux))
}
