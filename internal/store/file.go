package store

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/desertthunder/roster/internal/shared"
)

// FileBackend keeps each collection in its own file under a directory.
type FileBackend struct {
	dir   string
	codec Codec
}

// NewFileBackend creates a [FileBackend] rooted at dir using the named encoding.
func NewFileBackend(dir, encoding string) (*FileBackend, error) {
	codec, err := NewCodec(encoding)
	if err != nil {
		return nil, err
	}
	return &FileBackend{dir: dir, codec: codec}, nil
}

// Path returns the file a collection is stored in.
func (b *FileBackend) Path(name string) string {
	return filepath.Join(b.dir, name+b.codec.Ext())
}

// Load decodes the named collection into v.
//
// A missing or whitespace-only file is [ErrAbsent]; a file that fails to decode is [shared.ErrCorruptCollection].
func (b *FileBackend) Load(name string, v any) error {
	if err := checkName(name); err != nil {
		return err
	}

	path := b.Path(name)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return ErrAbsent
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return ErrAbsent
	}

	if err := b.codec.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %s: %v", shared.ErrCorruptCollection, path, err)
	}
	return nil
}

// Save encodes v and replaces the collection file atomically.
func (b *FileBackend) Save(name string, v any) error {
	if err := checkName(name); err != nil {
		return err
	}

	data, err := b.codec.Marshal(v)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(b.dir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(b.dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, b.Path(name)); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	return nil
}
