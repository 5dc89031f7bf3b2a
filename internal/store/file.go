package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"obsui/internal/common/fsutil"
)

// File keeps one JSON file per key inside a directory.
type File struct {
	dir string
	mu  sync.Mutex
}

// OpenFile creates dir if needed. A leading '~' is expanded.
func OpenFile(dir string) (*File, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("storage directory is required")
	}
	dir, err := fsutil.ExpandHome(dir)
	if err != nil {
		return nil, err
	}
	if err := fsutil.EnsureDir(dir); err != nil {
		return nil, err
	}
	return &File{dir: filepath.Clean(dir)}, nil
}

// Dir returns the storage directory.
func (f *File) Dir() string { return f.dir }

func (f *File) path(key string) (string, error) {
	key, err := checkKey(key)
	if err != nil {
		return "", err
	}
	if strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(f.dir, key+".json"), nil
}

func (f *File) Get(_ context.Context, key string) (string, bool, error) {
	p, err := f.path(key)
	if err != nil {
		return "", false, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	b, err := os.ReadFile(p)
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read %s: %w", p, err)
	}
	return string(b), true, nil
}

func (f *File) Set(_ context.Context, key, value string) error {
	p, err := f.path(key)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return fsutil.WriteFileAtomic(p, []byte(value))
}

func (f *File) Kind() string { return KindFile }

func (f *File) Close() error { return nil }
