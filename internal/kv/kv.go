// internal/kv/kv.go
//
// Durable local key-value storage.
// The progress store keeps exactly one record in here (the player's save),
// so the interface is intentionally tiny: Get, Set, Close.
//
// Implementations:
//   - Memory: map-backed, lost on restart (tests, --storage memory).
//   - File:   one JSON file per key, atomic temp-file-then-rename writes.
//   - SQLite: single kv table in a local database file (default).

package kv

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("kv: not found")

// KV is a durable key-value store.
type KV interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Close releases any underlying resources.
	Close() error
}

// Driver names accepted by Open.
const (
	DriverSQLite = "sqlite"
	DriverFile   = "file"
	DriverMemory = "memory"
)

// Open constructs a KV for the named driver.
// path is a database file for sqlite and a directory for file; memory ignores it.
func Open(driver, path string) (KV, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case DriverSQLite, "sqlite3", "":
		s, err := OpenSQLite(path)
		if err != nil {
			return nil, err
		}
		return s, nil
	case DriverFile:
		return NewFile(path), nil
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("kv: unknown driver %q", driver)
	}
}
