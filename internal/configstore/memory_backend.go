package configstore

import (
	"context"
	"sync"
)

// MemoryBackend keeps values in process memory. Used in tests and when the
// service runs without a database.
type MemoryBackend struct {
	mu   sync.RWMutex
	data map[string]map[string]string
}

// NewMemoryBackend creates an empty MemoryBackend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{data: make(map[string]map[string]string)}
}

// Load returns the value stored for key.
func (b *MemoryBackend) Load(_ context.Context, namespace, key string) (string, bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	value, ok := b.data[namespace][key]
	return value, ok, nil
}

// LoadAll returns a copy of every value in namespace.
func (b *MemoryBackend) LoadAll(_ context.Context, namespace string) (map[string]string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	values := make(map[string]string, len(b.data[namespace]))
	for k, v := range b.data[namespace] {
		values[k] = v
	}
	return values, nil
}

// SaveAll writes values under a single lock.
func (b *MemoryBackend) SaveAll(_ context.Context, namespace string, values map[string]string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	ns, ok := b.data[namespace]
	if !ok {
		ns = make(map[string]string, len(values))
		b.data[namespace] = ns
	}
	for k, v := range values {
		ns[k] = v
	}
	return nil
}
