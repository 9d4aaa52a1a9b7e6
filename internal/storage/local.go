package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// localStore writes files under a base directory. Used for development and
// tests; production deployments point Storage.Backend at minio.
type localStore struct {
	baseDir string
}

func NewLocalStore(baseDir string) (FileStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", baseDir, err)
	}

	return &localStore{baseDir: baseDir}, nil
}

func (s *localStore) Save(ctx context.Context, name, contentType string, size int64, content io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path := filepath.Join(s.baseDir, filepath.Base(name))

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file %s: %w", path, err)
	}

	defer file.Close()

	if _, err := io.Copy(file, content); err != nil {
		os.Remove(path)

		return "", fmt.Errorf("failed to write file %s: %w", path, err)
	}

	return path, nil
}
