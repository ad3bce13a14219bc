package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"sync"
)

// File is a Storage kept in a single JSON object file, {"key": "value", ...}.
// The whole file is rewritten on every change; the rewrite is atomic, so a
// crash leaves either the old or the new file, never a torn one.
type File struct {
	path string

	mu   sync.Mutex
	data map[string]string
}

// NewFile opens the slot file at path, creating its directory if needed.
// A missing file is an empty store. A file that is not a JSON object of
// strings is an error: it is never overwritten silently.
func NewFile(path string) (*File, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("storage.NewFile: resolve path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return nil, fmt.Errorf("storage.NewFile: mkdir: %w", err)
	}

	f := &File{path: abs, data: make(map[string]string)}

	raw, err := os.ReadFile(abs)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return f, nil
	case err != nil:
		return nil, fmt.Errorf("storage.NewFile: read %s: %w", abs, err)
	}
	if len(raw) == 0 {
		return f, nil
	}
	if err := json.Unmarshal(raw, &f.data); err != nil {
		return nil, fmt.Errorf("storage.NewFile: parse %s: %w", abs, err)
	}
	if f.data == nil {
		f.data = make(map[string]string)
	}
	return f, nil
}

// Path returns the absolute path of the slot file.
func (f *File) Path() string {
	return f.path
}

// Get implements Storage.
func (f *File) Get(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	return v, ok, nil
}

// Set implements Storage.
func (f *File) Set(_ context.Context, key, value string) error {
	return f.replace(func(next map[string]string) { next[key] = value })
}

// Delete implements Storage.
func (f *File) Delete(_ context.Context, key string) error {
	return f.replace(func(next map[string]string) { delete(next, key) })
}

// Clear implements Storage.
func (f *File) Clear(_ context.Context) error {
	return f.replace(func(next map[string]string) { clear(next) })
}

// replace applies change to a copy of the current contents, writes the copy
// to disk and only then makes it current. A failed write changes nothing.
func (f *File) replace(change func(map[string]string)) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	next := maps.Clone(f.data)
	change(next)

	content, err := json.MarshalIndent(next, "", "  ")
	if err != nil {
		return fmt.Errorf("storage.File: encode: %w", err)
	}
	if err := writeAtomic(f.path, content); err != nil {
		return err
	}
	f.data = next
	return nil
}

// writeAtomic writes content to path: tmp file → fsync → rename.
func writeAtomic(path string, content []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".trip-tmp-*")
	if err != nil {
		return fmt.Errorf("storage.File: create temp: %w", err)
	}
	tmpName := tmp.Name()

	// Clean up on any failure path.
	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("storage.File: write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("storage.File: fsync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("storage.File: close temp: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("storage.File: rename: %w", err)
	}
	success = true
	return nil
}
