package minio

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
)

// BlobStore reads files vehicles uploaded through their services.
type BlobStore interface {
	// GetFile returns the content of vehicleID/serviceID/blobID in the
	// container of storageAccount. An empty file yields an empty slice.
	GetFile(ctx context.Context, storageAccount, container, vehicleID, serviceID, blobID string) ([]byte, error)
}

var _ BlobStore = (*Minio)(nil)

// ObjectKey joins the path segments of a vehicle file.
func ObjectKey(vehicleID, serviceID, blobID string) (string, error) {
	for _, s := range []string{vehicleID, serviceID, blobID} {
		if s == "" || strings.Contains(s, "/") {
			return "", fmt.Errorf("%w: segment %q", ErrInvalidObjectKey, s)
		}
	}
	return vehicleID + "/" + serviceID + "/" + blobID, nil
}

func (m *Minio) GetFile(ctx context.Context, storageAccount, container, vehicleID, serviceID, blobID string) ([]byte, error) {
	if storageAccount != m.cfg.Connection.AccountName {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAccount, storageAccount)
	}
	if container == "" {
		return nil, fmt.Errorf("%w: empty container", ErrInvalidObjectKey)
	}
	key, err := ObjectKey(vehicleID, serviceID, blobID)
	if err != nil {
		return nil, err
	}

	return m.get(ctx, container, key)
}

func (m *Minio) get(ctx context.Context, bucket, key string) ([]byte, error) {
	reader, err := m.Client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, TranslateError(err)
	}
	defer func() {
		if err := reader.Close(); err != nil {
			m.logger.Error("failed to close object reader", err, map[string]interface{}{"key": key})
		}
	}()

	// GetObject is lazy; Stat is the first request that reaches the server.
	info, err := reader.Stat()
	if err != nil {
		return nil, TranslateError(err)
	}

	if info.Size < m.cfg.DownloadConfig.SmallFileThreshold {
		data := make([]byte, info.Size)
		if _, err := io.ReadFull(reader, data); err != nil {
			return nil, fmt.Errorf("failed to read object %q: %w", key, err)
		}
		return data, nil
	}

	buffer := m.bufferPool.Get()
	defer m.bufferPool.Put(buffer)
	buffer.Grow(int(min(info.Size, int64(m.cfg.DownloadConfig.InitialBufferSize))))

	if _, err := io.Copy(buffer, reader); err != nil {
		return nil, fmt.Errorf("failed to read object %q: %w", key, err)
	}

	result := make([]byte, buffer.Len())
	copy(result, buffer.Bytes())
	return result, nil
}
