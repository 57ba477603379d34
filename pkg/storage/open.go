package storage

import (
	"io"

	perrors "github.com/vango-dev/productpage/internal/errors"
)

// Backend names accepted by Open.
const (
	BackendMemory      = "memory"
	BackendFile        = "file"
	BackendSQLite      = "sqlite"
	BackendUnavailable = "none"
)

// Config selects and configures a backend.
type Config struct {
	Backend string
	Path    string
}

// Open returns the store described by cfg and a closer releasing it.
func Open(cfg Config) (Store, io.Closer, error) {
	switch cfg.Backend {
	case "", BackendMemory:
		return NewMemory(nil), nopCloser{}, nil
	case BackendFile:
		f, err := OpenFile(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		return f, nopCloser{}, nil
	case BackendSQLite:
		s, err := OpenSQLite(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	case BackendUnavailable:
		return Unavailable{}, nopCloser{}, nil
	default:
		return nil, nil, perrors.New("P004").
			WithDetailf("unknown backend %q", cfg.Backend).
			WithSuggestion("Use one of: memory, file, sqlite, none")
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
