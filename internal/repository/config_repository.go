package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/makehaven/tasks-display/internal/db"
	"github.com/makehaven/tasks-display/internal/db/queries"
	"github.com/makehaven/tasks-display/internal/models"
	"github.com/makehaven/tasks-display/pkg/debug"
)

// ConfigRepository handles database operations for namespaced config items.
type ConfigRepository struct {
	db *db.DB
}

// NewConfigRepository creates a new instance of ConfigRepository.
func NewConfigRepository(database *db.DB) *ConfigRepository {
	return &ConfigRepository{db: database}
}

// Get retrieves a single item. A missing row yields ErrNotFound.
func (r *ConfigRepository) Get(ctx context.Context, namespace, key string) (*models.ConfigItem, error) {
	row := r.db.QueryRowContext(ctx, queries.GetConfigItem, namespace, key)

	var item models.ConfigItem
	err := row.Scan(&item.Namespace, &item.Key, &item.Value, &item.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("config item '%s.%s' not found: %w", namespace, key, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get config item '%s.%s': %w", namespace, key, err)
	}
	return &item, nil
}

// List retrieves every item in a namespace ordered by key.
func (r *ConfigRepository) List(ctx context.Context, namespace string) ([]models.ConfigItem, error) {
	rows, err := r.db.QueryContext(ctx, queries.ListConfigItems, namespace)
	if err != nil {
		return nil, fmt.Errorf("failed to list config items for '%s': %w", namespace, err)
	}
	defer rows.Close()

	var items []models.ConfigItem
	for rows.Next() {
		var item models.ConfigItem
		if err := rows.Scan(&item.Namespace, &item.Key, &item.Value, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan config item row: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating config item rows: %w", err)
	}

	return items, nil
}

// SaveAll upserts values into a namespace inside a single transaction.
func (r *ConfigRepository) SaveAll(ctx context.Context, namespace string, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}

	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	now := time.Now()
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		for _, key := range keys {
			value := values[key]
			debug.Debug("Saving config item %s.%s", namespace, key)
			if _, err := tx.ExecContext(ctx, queries.UpsertConfigItem, namespace, key, value, now); err != nil {
				return fmt.Errorf("failed to save config item '%s.%s': %w", namespace, key, err)
			}
		}
		return nil
	})
}
