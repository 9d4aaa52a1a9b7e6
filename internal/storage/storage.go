package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/ltsmerch/storefront/internal/config"
)

// FileStore persists uploaded files (payment vouchers, product images) and
// returns a stable path/identifier for the stored object.
type FileStore interface {
	Save(ctx context.Context, name string, contentType string, size int64, content io.Reader) (string, error)
}

// New selects the backend from configuration: "minio" for object storage,
// anything else falls back to the local-disk store.
func New(cfg *config.Storage) (FileStore, error) {
	if cfg.Backend == "minio" {
		return NewMinioStore(cfg)
	}

	return NewLocalStore(cfg.LocalDir)
}

// ObjectName prefixes the original file name with a random UUID so concurrent
// uploads of identically named files never collide.
func ObjectName(original string) string {
	return fmt.Sprintf("%s_%s", uuid.NewString(), filepath.Base(original))
}
