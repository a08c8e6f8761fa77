// internal/kv/file.go
//
// File-backed KV: one file per key inside a directory.
// Writes use the temp-file-then-rename pattern so a crash mid-write never
// leaves a truncated save behind.

package kv

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// File stores each key as <dir>/<key>.json.
type File struct {
	dir string
}

// NewFile creates a File KV rooted at dir.
// The directory is created on the first Set. An empty dir means the default
// XDG state directory.
func NewFile(dir string) *File {
	if dir == "" {
		dir = DefaultDir()
	}
	return &File{dir: dir}
}

// Path returns the file that holds key.
func (f *File) Path(key string) string {
	return filepath.Join(f.dir, sanitizeKey(key)+".json")
}

func (f *File) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(f.Path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading %s: %w", key, err)
	}
	return data, nil
}

func (f *File) Set(ctx context.Context, key string, value []byte) error {
	if err := os.MkdirAll(f.dir, 0o700); err != nil {
		return fmt.Errorf("creating kv dir: %w", err)
	}

	tmp, err := os.CreateTemp(f.dir, ".kv-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, f.Path(key)); err != nil {
		return fmt.Errorf("renaming %s: %w", key, err)
	}
	committed = true
	return nil
}

func (f *File) Close() error { return nil }

// sanitizeKey keeps keys usable as file names.
func sanitizeKey(key string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, key)
}

// DefaultDir returns ~/.local/state/magicnumbers, respecting XDG_STATE_HOME.
func DefaultDir() string {
	if base := os.Getenv("XDG_STATE_HOME"); base != "" {
		return filepath.Join(base, "magicnumbers")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.TempDir()
	}
	return filepath.Join(home, ".local", "state", "magicnumbers")
}
