package store

import (
	"context"
	"sync"
)

// Memory is an in-process store. The zero value is not usable; use NewMemory.
type Memory struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory { return &Memory{data: make(map[string]string)} }

func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	key, err := checkKey(key)
	if err != nil {
		return "", false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	key, err := checkKey(key)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.data[key] = value
	m.mu.Unlock()
	return nil
}

func (m *Memory) Kind() string { return KindMemory }

func (m *Memory) Close() error { return nil }
