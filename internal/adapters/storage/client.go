package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const (
	// PresignedURLTTL is the lifetime of a receipt download link.
	PresignedURLTTL = 15 * time.Minute
)

// MinIOStore implements ReceiptStore on a single MinIO bucket.
type MinIOStore struct {
	client      *minio.Client
	bucket      string
	maxFileSize int64
}

// NewMinIOStore connects to MinIO. It does not touch the network until
// EnsureBucket or the first request.
func NewMinIOStore(cfg Config) (*MinIOStore, error) {
	if !cfg.IsMinIOEnabled() {
		return nil, fmt.Errorf("MinIO is not configured")
	}

	client, err := minio.New(cfg.GetMinIOEndpoint(), &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.GetMinIOAccessKey(), cfg.GetMinIOSecretKey(), ""),
		Secure: cfg.GetMinIOUseSSL(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	return &MinIOStore{
		client:      client,
		bucket:      cfg.GetMinioBucketReceipts(),
		maxFileSize: cfg.GetMinIOMaxFileSize(),
	}, nil
}

// EnsureBucket creates the receipts bucket if it doesn't exist.
func (s *MinIOStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", s.bucket, err)
	}
	return nil
}

// Upload stores reader under folder with a collision-free name.
func (s *MinIOStore) Upload(ctx context.Context, folder, fileName, contentType string, reader io.Reader, size int64) (string, error) {
	fileKey := objectKey(folder, fileName)
	_, err := s.client.PutObject(ctx, s.bucket, fileKey, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file %s: %w", fileKey, err)
	}
	return fileKey, nil
}

// DownloadURL presigns a GET for fileKey.
func (s *MinIOStore) DownloadURL(ctx context.Context, fileKey string) (*PresignedURL, error) {
	expiresAt := time.Now().Add(PresignedURLTTL)
	presignedURL, err := s.client.PresignedGetObject(ctx, s.bucket, fileKey, PresignedURLTTL, make(url.Values))
	if err != nil {
		return nil, fmt.Errorf("failed to generate presigned download URL: %w", err)
	}
	return &PresignedURL{
		URL:       presignedURL.String(),
		FileKey:   fileKey,
		ExpiresAt: expiresAt,
	}, nil
}

// Delete removes fileKey from the bucket.
func (s *MinIOStore) Delete(ctx context.Context, fileKey string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, fileKey, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete object %s: %w", fileKey, err)
	}
	return nil
}

// objectKey builds folder/base_xxxxxxxx.ext from a client file name.
func objectKey(folder, fileName string) string {
	name := path.Base(strings.ReplaceAll(fileName, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		name = "receipt"
	}
	ext := path.Ext(name)
	base := strings.TrimSuffix(name, ext)
	unique := fmt.Sprintf("%s_%s%s", base, uuid.New().String()[:8], strings.ToLower(ext))
	return path.Join(folder, unique)
}

var _ ReceiptStore = (*MinIOStore)(nil)
