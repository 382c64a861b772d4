// Package storage persists uploaded image bytes. The local driver writes to
// a directory served as static files; the minio driver writes to a bucket.
package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/iliyamo/studio-showcase/internal/config"
)

// Object describes a stored file.
type Object struct {
	Path string // public path or URL recorded on the image row
	Size int64  // bytes written
}

// FileStore saves and removes files by name. Names are generated by the
// caller and never reused.
type FileStore interface {
	Save(ctx context.Context, name string, r io.Reader, contentType string) (Object, error)
	Remove(ctx context.Context, name string) error
}

// New builds the store selected by cfg.Driver.
func New(ctx context.Context, cfg config.StorageConfig, uploadDir string) (FileStore, error) {
	switch cfg.Driver {
	case "", "local":
		return NewLocal(uploadDir)
	case "minio":
		return NewMinio(ctx, cfg)
	default:
		return nil, fmt.Errorf("storage: unknown driver %q", cfg.Driver)
	}
}
