// Package storage provides the key-value store the product page persists
// selections to.
//
// A Store has the semantics of a browser's local storage: string values
// under string keys, synchronous get/set, and any operation may fail when
// storage is disabled, blocked or out of quota. Backends:
//
//   - Memory: in-process map, the default for tests
//   - File: a JSON document on disk
//   - SQLite: a single-table SQLite database (modernc.org/sqlite)
//   - Unavailable: every operation fails, modelling disabled storage
package storage

import (
	perrors "github.com/vango-dev/productpage/internal/errors"
)

// Store is a fallible string key-value store.
type Store interface {
	// Get returns the value stored under key. ok is false when the key is
	// absent.
	Get(key string) (value string, ok bool, err error)

	// Set stores value under key.
	Set(key, value string) error
}

// Remover is implemented by stores that can delete keys.
type Remover interface {
	Remove(key string) error
}

// Keyser is implemented by stores that can list their keys.
type Keyser interface {
	Keys() ([]string, error)
}

// ErrUnavailable matches (via errors.Is) any error reporting that storage
// is disabled or blocked.
var ErrUnavailable = perrors.New("P001")

// Unavailable is a Store whose every operation fails with ErrUnavailable.
type Unavailable struct{}

// Get implements Store.
func (Unavailable) Get(key string) (string, bool, error) {
	return "", false, perrors.New("P001").WithDetailf("get %q", key)
}

// Set implements Store.
func (Unavailable) Set(key, value string) error {
	return perrors.New("P001").WithDetailf("set %q", key)
}
