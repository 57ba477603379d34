package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	perrors "github.com/vango-dev/productpage/internal/errors"
)

// File is a Store persisted as a JSON object in a single file. Every Set
// rewrites the file atomically.
type File struct {
	mu   sync.Mutex
	path string
	data map[string]string
}

// OpenFile opens the store at path, creating an empty store if the file
// does not exist yet.
func OpenFile(path string) (*File, error) {
	if strings.TrimSpace(path) == "" {
		return nil, perrors.New("P004").WithDetail("storage path is required")
	}
	f := &File{path: filepath.Clean(path), data: make(map[string]string)}

	raw, err := os.ReadFile(f.path)
	switch {
	case os.IsNotExist(err):
		return f, nil
	case err != nil:
		return nil, perrors.New("P004").Wrap(err)
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return f, nil
	}
	if err := json.Unmarshal(raw, &f.data); err != nil {
		return nil, perrors.New("P004").WithDetailf("decode %s", f.path).Wrap(err)
	}
	return f, nil
}

// Path returns the backing file path.
func (f *File) Path() string {
	return f.path
}

// Get implements Store.
func (f *File) Get(key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	return v, ok, nil
}

// Set implements Store.
func (f *File) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	prev, had := f.data[key]
	f.data[key] = value
	if err := f.flush(); err != nil {
		if had {
			f.data[key] = prev
		} else {
			delete(f.data, key)
		}
		return perrors.New("P003").WithDetailf("set %q", key).Wrap(err)
	}
	return nil
}

// Remove implements Remover.
func (f *File) Remove(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.data[key]; !ok {
		return nil
	}
	delete(f.data, key)
	if err := f.flush(); err != nil {
		return perrors.New("P003").WithDetailf("remove %q", key).Wrap(err)
	}
	return nil
}

// Keys implements Keyser. Keys are sorted.
func (f *File) Keys() ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	keys := make([]string, 0, len(f.data))
	for k := range f.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (f *File) flush() error {
	raw, err := json.MarshalIndent(f.data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create dir: %w", err)
		}
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, append(raw, '\n'), 0o644); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
