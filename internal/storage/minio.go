package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ObjectStore abstracts the object-storage backend holding file bytes.
type ObjectStore interface {
	// Put stores an object. Size must be the exact byte length.
	Put(ctx context.Context, objectKey string, reader io.Reader, size int64, contentType string) error

	// Get opens an object for reading. A missing object surfaces here, not
	// on first read. The caller must close the reader.
	Get(ctx context.Context, objectKey string) (io.ReadCloser, error)

	// Remove deletes an object. Removing a missing object is not an error.
	Remove(ctx context.Context, objectKey string) error
}

// MinioStore implements ObjectStore against any S3-compatible endpoint.
type MinioStore struct {
	client *minio.Client
	bucket string
	logger *slog.Logger
}

// NewMinioStore initializes the client and ensures the bucket exists.
func NewMinioStore(ctx context.Context, endpoint, accessKey, secretKey, bucket string, useSSL bool, logger *slog.Logger) (*MinioStore, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create object storage client: %w", err)
	}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket existence: %w", err)
	}

	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
		logger.Info("bucket created", "bucket", bucket)
	}

	return &MinioStore{
		client: client,
		bucket: bucket,
		logger: logger,
	}, nil
}

// Put stores an object
func (s *MinioStore) Put(ctx context.Context, objectKey string, reader io.Reader, size int64, contentType string) error {
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := s.client.PutObject(ctx, s.bucket, objectKey, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("put object %s: %w", objectKey, err)
	}

	return nil
}

// Get opens an object for reading
func (s *MinioStore) Get(ctx context.Context, objectKey string) (io.ReadCloser, error) {
	// GetObject defers the existence check to the first Read, which is too
	// late for callers that write response headers before copying. Stat
	// up front so a missing object fails while an error can still be sent.
	if _, err := s.client.StatObject(ctx, s.bucket, objectKey, minio.StatObjectOptions{}); err != nil {
		return nil, fmt.Errorf("stat object %s: %w", objectKey, err)
	}

	object, err := s.client.GetObject(ctx, s.bucket, objectKey, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get object %s: %w", objectKey, err)
	}

	return object, nil
}

// Remove deletes an object
func (s *MinioStore) Remove(ctx context.Context, objectKey string) error {
	err := s.client.RemoveObject(ctx, s.bucket, objectKey, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("remove object %s: %w", objectKey, err)
	}

	return nil
}
