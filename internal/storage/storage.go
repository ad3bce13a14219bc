// Package storage contains the durable slot backends behind the Trip Store.
// A slot is a string value under a string key; the Trip Store decides what the
// strings mean. No business logic lives here.
package storage

import (
	"context"
	"fmt"
	"sync"
)

// Storage is a flat namespace of string keys to string values that survives
// restarts. Set overwrites unconditionally; there is one writer.
type Storage interface {
	// Get returns the value stored under key. ok is false when the key has
	// never been written or has been deleted.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Clear removes every key.
	Clear(ctx context.Context) error
}

// Drivers accepted by Open.
const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// Open constructs the backend named by driver at path.
// The returned close function releases the backend and is never nil.
func Open(ctx context.Context, driver, path string) (Storage, func() error, error) {
	noop := func() error { return nil }
	switch driver {
	case DriverMemory:
		return NewMemory(), noop, nil
	case DriverFile:
		f, err := NewFile(path)
		if err != nil {
			return nil, noop, err
		}
		return f, noop, nil
	case DriverSQLite:
		db, err := OpenSQLite(ctx, path)
		if err != nil {
			return nil, noop, err
		}
		return NewSQLite(db), db.Close, nil
	default:
		return nil, noop, fmt.Errorf("storage.Open: unknown driver %q", driver)
	}
}

// Memory is an in-process Storage. Its contents are lost on exit.
type Memory struct {
	mu   sync.Mutex
	data map[string]string
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

// Get implements Storage.
func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

// Set implements Storage.
func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

// Delete implements Storage.
func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Clear implements Storage.
func (m *Memory) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.data)
	return nil
}
