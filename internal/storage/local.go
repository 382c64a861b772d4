package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path"
	"path/filepath"
)

// Local writes files under dir.
type Local struct {
	dir string
}

func NewLocal(dir string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Local{dir: dir}, nil
}

func (l *Local) Save(_ context.Context, name string, r io.Reader, _ string) (Object, error) {
	full := filepath.Join(l.dir, filepath.Base(name))
	f, err := os.OpenFile(full, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return Object{}, err
	}
	n, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(full)
		return Object{}, err
	}
	return Object{Path: path.Join(filepath.ToSlash(l.dir), filepath.Base(name)), Size: n}, nil
}

// Remove deletes the file; a file that is already gone is not an error.
func (l *Local) Remove(_ context.Context, name string) error {
	err := os.Remove(filepath.Join(l.dir, filepath.Base(name)))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
