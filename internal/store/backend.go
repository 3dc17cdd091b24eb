package store

import (
	"fmt"

	"github.com/desertthunder/roster/internal/shared"
)

// NewBackend builds the [Backend] selected by config. The returned close func releases it.
func NewBackend(config *shared.Config) (Backend, func() error, error) {
	switch config.Storage.Backend {
	case shared.BackendFile, "":
		b, err := NewFileBackend(config.Storage.Dir, config.Storage.Encoding)
		if err != nil {
			return nil, nil, err
		}
		return b, func() error { return nil }, nil
	case shared.BackendSQLite:
		b, err := OpenSQLiteBackend(config.Database.Path, config.Database.MaxOpenConns, config.Database.MaxIdleConns)
		if err != nil {
			return nil, nil, err
		}
		return b, b.Close, nil
	default:
		return nil, nil, fmt.Errorf("%w: unknown storage backend %q", shared.ErrInvalidConfig, config.Storage.Backend)
	}
}
