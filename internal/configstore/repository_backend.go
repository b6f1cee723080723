package configstore

import (
	"context"
	"errors"

	"github.com/makehaven/tasks-display/internal/repository"
)

// RepositoryBackend persists values in the config_items table.
type RepositoryBackend struct {
	repo *repository.ConfigRepository
}

// NewRepositoryBackend creates a Backend over repo.
func NewRepositoryBackend(repo *repository.ConfigRepository) *RepositoryBackend {
	return &RepositoryBackend{repo: repo}
}

// Load returns the value stored for key. NULL values count as not found.
func (b *RepositoryBackend) Load(ctx context.Context, namespace, key string) (string, bool, error) {
	item, err := b.repo.Get(ctx, namespace, key)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	if item.Value == nil {
		return "", false, nil
	}
	return item.StringValue(), true, nil
}

// LoadAll returns every non-NULL value in namespace.
func (b *RepositoryBackend) LoadAll(ctx context.Context, namespace string) (map[string]string, error) {
	items, err := b.repo.List(ctx, namespace)
	if err != nil {
		return nil, err
	}

	values := make(map[string]string, len(items))
	for _, item := range items {
		if item.Value != nil {
			values[item.Key] = item.StringValue()
		}
	}
	return values, nil
}

// SaveAll upserts values in one transaction.
func (b *RepositoryBackend) SaveAll(ctx context.Context, namespace string, values map[string]string) error {
	return b.repo.SaveAll(ctx, namespace, values)
}
