package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// writes blobs under a local directory
type FileSink struct {
	dir string
}

// dir "" means the working directory
func NewFileSink(dir string) *FileSink {
	if dir == "" {
		dir = "."
	}

	return &FileSink{dir: dir}
}

func (s *FileSink) path(key string) (string, error) {
	normalized, err := normalizeKey(key)
	if err != nil {
		return "", err
	}

	return filepath.Join(s.dir, filepath.FromSlash(normalized)), nil
}

// writes data to dir/key through a temp file and rename, so readers never see a partial blob
func (s *FileSink) Put(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	target, err := s.path(key)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("create directory for %q: %w", key, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), ".tmp-"+filepath.Base(target)+"-*")
	if err != nil {
		return fmt.Errorf("create temp file for %q: %w", key, err)
	}

	defer os.Remove(tmp.Name()) //nolint:errcheck

	if _, err := tmp.Write(data); err != nil {
		tmp.Close() //nolint:errcheck
		return fmt.Errorf("write %q: %w", key, err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %q: %w", key, err)
	}

	if err := os.Rename(tmp.Name(), target); err != nil {
		return fmt.Errorf("rename %q: %w", key, err)
	}

	return nil
}

func (s *FileSink) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	target, err := s.path(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(target)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrObjectNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("read %q: %w", key, err)
	}

	return data, nil
}
