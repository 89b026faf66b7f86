package minio

import "time"

const (
	DefaultSmallFileThreshold = 1 << 20
	DefaultInitialBufferSize  = 4 << 20

	connectionHealthCheckInterval = 3 * time.Second
)

// Config holds the object storage settings for large file downloads.
type Config struct {
	Connection     ConnectionConfig `yaml:"connection"`
	DownloadConfig DownloadConfig   `yaml:"download"`
}

type ConnectionConfig struct {
	Endpoint        string `yaml:"endpoint" envconfig:"MINIO_ENDPOINT"`
	AccessKeyID     string `yaml:"accessKeyId" envconfig:"MINIO_ACCESS_KEY_ID"`
	SecretAccessKey string `yaml:"secretAccessKey" envconfig:"MINIO_SECRET_ACCESS_KEY"`
	UseSSL          bool   `yaml:"useSSL" envconfig:"MINIO_USE_SSL"`
	Region          string `yaml:"region" envconfig:"MINIO_REGION"`

	// AccountName is the storage account clients address in download URLs.
	// Requests naming any other account are rejected.
	AccountName string `yaml:"accountName" envconfig:"MINIO_ACCOUNT_NAME"`
}

// DownloadConfig tunes buffering. Objects smaller than SmallFileThreshold are
// read into an exactly sized slice, larger ones through the buffer pool.
type DownloadConfig struct {
	SmallFileThreshold int64 `yaml:"smallFileThreshold" envconfig:"MINIO_SMALL_FILE_THRESHOLD"`
	InitialBufferSize  int   `yaml:"initialBufferSize" envconfig:"MINIO_INITIAL_BUFFER_SIZE"`
}
