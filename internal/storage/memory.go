package storage

import (
	"context"
	"sync"
)

// Memory is an in-process gateway used in tests and as a fallback when no
// durable store is wanted.
type Memory struct {
	mu    sync.Mutex
	blobs map[string][]byte

	// FailSaves makes every Save return this error when non-nil; lets
	// tests exercise the persistence-failure path.
	FailSaves error
}

func NewMemory() *Memory {
	return &Memory{blobs: make(map[string][]byte)}
}

func (m *Memory) Load(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.blobs[key]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out, nil
}

func (m *Memory) Save(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailSaves != nil {
		return m.FailSaves
	}
	b := make([]byte, len(value))
	copy(b, value)
	m.blobs[key] = b
	return nil
}

func (m *Memory) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.blobs, key)
	return nil
}

func (m *Memory) Close() error { return nil }

// Has reports whether a key currently holds a blob.
func (m *Memory) Has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.blobs[key]
	return ok
}
