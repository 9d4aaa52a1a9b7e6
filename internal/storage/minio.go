package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/ltsmerch/storefront/internal/config"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type minioStore struct {
	client *minio.Client
	bucket string
}

func NewMinioStore(cfg *config.Storage) (FileStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	return &minioStore{client: client, bucket: cfg.Bucket}, nil
}

func (s *minioStore) Save(ctx context.Context, name, contentType string, size int64, content io.Reader) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucket, name, content, size,
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("failed to store object %s: %w", name, err)
	}

	return fmt.Sprintf("%s/%s", s.bucket, name), nil
}
