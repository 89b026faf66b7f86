package minio

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

//go:generate mockgen -source=setup.go -destination=mock_logger.go -package=minio

// Logger is the logging surface the package needs.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}

// Minio serves stored files from an S3 compatible object store.
type Minio struct {
	Client *minio.Client

	cfg        Config
	logger     Logger
	bufferPool *BufferPool

	stopHealthCheck context.CancelFunc
}

// BufferPool recycles the buffers used to read large objects.
type BufferPool struct {
	pool sync.Pool
}

func NewBufferPool() *BufferPool {
	return &BufferPool{
		pool: sync.Pool{
			New: func() interface{} {
				return new(bytes.Buffer)
			},
		},
	}
}

// Get returns an empty buffer.
func (bp *BufferPool) Get() *bytes.Buffer {
	b := bp.pool.Get().(*bytes.Buffer)
	b.Reset()
	return b
}

func (bp *BufferPool) Put(b *bytes.Buffer) {
	bp.pool.Put(b)
}

// NewClient creates the client and starts the SDK's background health check.
func NewClient(cfg Config, logger Logger) (*Minio, error) {
	if cfg.DownloadConfig.SmallFileThreshold == 0 {
		cfg.DownloadConfig.SmallFileThreshold = DefaultSmallFileThreshold
	}
	if cfg.DownloadConfig.InitialBufferSize == 0 {
		cfg.DownloadConfig.InitialBufferSize = DefaultInitialBufferSize
	}

	client, err := minio.New(cfg.Connection.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Connection.AccessKeyID, cfg.Connection.SecretAccessKey, ""),
		Secure: cfg.Connection.UseSSL,
		Region: cfg.Connection.Region,
	})
	if err != nil {
		logger.Error("failed to create minio client", err, map[string]interface{}{
			"endpoint": cfg.Connection.Endpoint,
			"secure":   cfg.Connection.UseSSL,
		})
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	stop, err := client.HealthCheck(connectionHealthCheckInterval)
	if err != nil {
		return nil, fmt.Errorf("failed to start minio health check: %w", err)
	}

	logger.Info("minio client created", nil, map[string]interface{}{
		"endpoint": cfg.Connection.Endpoint,
		"account":  cfg.Connection.AccountName,
	})
	return &Minio{
		Client:          client,
		cfg:             cfg,
		logger:          logger,
		bufferPool:      NewBufferPool(),
		stopHealthCheck: stop,
	}, nil
}

// IsOnline reports the result of the latest health check.
func (m *Minio) IsOnline() bool {
	return m.Client.IsOnline()
}

// Close stops the health check.
func (m *Minio) Close() {
	if m.stopHealthCheck != nil {
		m.stopHealthCheck()
	}
}
