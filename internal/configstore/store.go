// Package configstore provides namespaced configuration objects with
// get/set/save semantics. Values staged with Set are only persisted by Save,
// and every Save is an atomic overwrite of the staged keys.
package configstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/mitchellh/mapstructure"

	"github.com/makehaven/tasks-display/pkg/debug"
)

// Store is the accessor handed to services for one namespace.
type Store interface {
	// Get returns the value for key, or "" when it has never been set.
	Get(ctx context.Context, key string) (string, error)
	// Set stages a value until the next Save.
	Set(key, value string)
	// Save persists every staged value.
	Save(ctx context.Context) error
	// Data returns every value in the namespace, staged values included.
	Data(ctx context.Context) (map[string]string, error)
}

// Factory hands out Store instances bound to a namespace.
type Factory interface {
	Editable(namespace string) Store
}

// Backend persists namespaced values.
type Backend interface {
	Load(ctx context.Context, namespace, key string) (value string, found bool, err error)
	LoadAll(ctx context.Context, namespace string) (map[string]string, error)
	SaveAll(ctx context.Context, namespace string, values map[string]string) error
}

// Manager is the Factory implementation over a Backend.
type Manager struct {
	backend Backend
}

// NewManager creates a Factory persisting through backend.
func NewManager(backend Backend) *Manager {
	return &Manager{backend: backend}
}

// Editable returns a fresh configuration object for namespace.
func (m *Manager) Editable(namespace string) Store {
	return &Config{
		namespace: namespace,
		backend:   m.backend,
		staged:    make(map[string]string),
	}
}

// Config is a single namespace with staged, unsaved changes.
type Config struct {
	namespace string
	backend   Backend

	mu     sync.Mutex
	staged map[string]string
}

// Get returns the staged value for key if there is one, else the stored value.
func (c *Config) Get(ctx context.Context, key string) (string, error) {
	c.mu.Lock()
	value, ok := c.staged[key]
	c.mu.Unlock()
	if ok {
		return value, nil
	}

	value, _, err := c.backend.Load(ctx, c.namespace, key)
	if err != nil {
		return "", fmt.Errorf("failed to read %s.%s: %w", c.namespace, key, err)
	}
	return value, nil
}

// Set stages value for key.
func (c *Config) Set(key, value string) {
	c.mu.Lock()
	c.staged[key] = value
	c.mu.Unlock()
}

// Save writes all staged values and clears the stage.
func (c *Config) Save(ctx context.Context) error {
	c.mu.Lock()
	pending := make(map[string]string, len(c.staged))
	for k, v := range c.staged {
		pending[k] = v
	}
	c.mu.Unlock()

	if len(pending) == 0 {
		return nil
	}

	if err := c.backend.SaveAll(ctx, c.namespace, pending); err != nil {
		return fmt.Errorf("failed to save %s: %w", c.namespace, err)
	}
	debug.Info("Saved %d value(s) in %s", len(pending), c.namespace)

	c.mu.Lock()
	for k, v := range pending {
		if c.staged[k] == v {
			delete(c.staged, k)
		}
	}
	c.mu.Unlock()
	return nil
}

// Data returns stored values overlaid with staged ones.
func (c *Config) Data(ctx context.Context) (map[string]string, error) {
	stored, err := c.backend.LoadAll(ctx, c.namespace)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", c.namespace, err)
	}

	data := make(map[string]string, len(stored))
	for k, v := range stored {
		data[k] = v
	}

	c.mu.Lock()
	for k, v := range c.staged {
		data[k] = v
	}
	c.mu.Unlock()
	return data, nil
}

// Decode fills out, a pointer to a struct with mapstructure tags, from the
// namespace.
func Decode(ctx context.Context, store Store, out interface{}) error {
	data, err := store.Data(ctx)
	if err != nil {
		return err
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("failed to build decoder: %w", err)
	}
	if err := decoder.Decode(data); err != nil {
		return fmt.Errorf("failed to decode configuration: %w", err)
	}
	return nil
}
