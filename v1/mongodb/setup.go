package mongodb

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

//go:generate mockgen -source=setup.go -destination=mock_logger.go -package=mongodb

// Logger is the logging surface the store needs.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}

// Mongo owns the driver client and keeps it healthy.
//
// The active *mongo.Client sits behind an atomic pointer so a reconnect can swap
// it without blocking readers.
type Mongo struct {
	cfg    Config
	logger Logger

	client atomic.Pointer[mongo.Client]

	shutdownSignal    chan struct{}
	closeShutdownOnce sync.Once
}

// NewClient connects to MongoDB and verifies the connection with a ping.
func NewClient(cfg Config, logger Logger) (*Mongo, error) {
	cfg = cfg.withDefaults()

	client, err := connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("error in connecting to mongodb: %w", err)
	}

	m := &Mongo{
		cfg:            cfg,
		logger:         logger,
		shutdownSignal: make(chan struct{}),
	}
	m.client.Store(client)

	logger.Info("connected to mongodb", nil, map[string]interface{}{
		"database":   cfg.Database,
		"collection": cfg.Collection,
	})
	return m, nil
}

func connect(cfg Config) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(cfg.ConnectTimeout))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping failed: %w", err)
	}
	return client, nil
}

// Client returns the current driver client.
func (m *Mongo) Client() *mongo.Client {
	return m.client.Load()
}

func (m *Mongo) collection() *mongo.Collection {
	return m.Client().Database(m.cfg.Database).Collection(m.cfg.Collection)
}

// EnsureIndexes creates the unique vehicleId index the store relies on.
func (m *Mongo) EnsureIndexes(ctx context.Context) error {
	_, err := m.collection().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "vehicleId", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("vehicleId_unique"),
	})
	return TranslateError(err)
}

// MonitorConnection pings the server every MonitorInterval and replaces the
// client when a ping fails. It returns when ctx is done or the store shuts down.
func (m *Mongo) MonitorConnection(ctx context.Context) {
	ticker := time.NewTicker(m.cfg.MonitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.shutdownSignal:
			m.logger.Info("stopping mongodb connection monitor", nil)
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := m.healthCheck(); err != nil {
				m.logger.Warn("mongodb health check failed, reconnecting", err)
				m.reconnect(ctx)
			}
		}
	}
}

func (m *Mongo) healthCheck() error {
	ctx, cancel := context.WithTimeout(context.Background(), m.cfg.OperationTimeout)
	defer cancel()
	return m.Client().Ping(ctx, readpref.Primary())
}

func (m *Mongo) reconnect(ctx context.Context) {
	for {
		select {
		case <-m.shutdownSignal:
			return
		case <-ctx.Done():
			return
		default:
		}

		client, err := connect(m.cfg)
		if err != nil {
			m.logger.Error("mongodb reconnection failed", err)
			time.Sleep(time.Second)
			continue
		}

		old := m.client.Swap(client)
		if old != nil {
			_ = old.Disconnect(context.Background())
		}
		m.logger.Info("reconnected to mongodb", nil)
		return
	}
}

// GracefulShutdown stops the monitor and disconnects.
func (m *Mongo) GracefulShutdown(ctx context.Context) error {
	m.closeShutdownOnce.Do(func() {
		close(m.shutdownSignal)
	})
	return m.Client().Disconnect(ctx)
}
