// Package storage keeps payment receipts in S3-compatible object storage.
package storage

import (
	"context"
	"io"
	"time"
)

// PresignedURL is a time-limited link to one stored object.
type PresignedURL struct {
	URL       string    `json:"url"`
	FileKey   string    `json:"fileKey"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// ReceiptStore holds receipt files. Keys are opaque to callers.
type ReceiptStore interface {
	// Upload stores a receipt under folder and returns its key.
	Upload(ctx context.Context, folder, fileName, contentType string, reader io.Reader, size int64) (string, error)

	// DownloadURL presigns a GET for fileKey.
	DownloadURL(ctx context.Context, fileKey string) (*PresignedURL, error)

	// Delete removes fileKey. A missing object is not an error.
	Delete(ctx context.Context, fileKey string) error

	// ValidateUpload checks content type and size before any transfer.
	ValidateUpload(contentType string, sizeBytes int64) error
}

// Config defines the configuration interface for storage.
type Config interface {
	GetMinIOEndpoint() string
	GetMinIOAccessKey() string
	GetMinIOSecretKey() string
	GetMinIOUseSSL() bool
	GetMinIOMaxFileSize() int64
	GetMinioBucketReceipts() string
	IsMinIOEnabled() bool
}
