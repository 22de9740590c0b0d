package storage

import (
	"context"
	"sync"
)

// MemoryKV keeps values in a map. State is lost at process exit.
type MemoryKV struct {
	mu    sync.RWMutex
	store map[string]string
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{
		store: make(map[string]string),
	}
}

func (m *MemoryKV) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	val, ok := m.store[key]
	return val, ok, nil
}

func (m *MemoryKV) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store[key] = value
	return nil
}

func (m *MemoryKV) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.store, key)
	return nil
}

func (m *MemoryKV) Ping(ctx context.Context) error { return nil }

func (m *MemoryKV) Close() error { return nil }
