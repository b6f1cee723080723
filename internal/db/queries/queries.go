package queries

// Config item queries
const (
	GetConfigItem = `
		SELECT namespace, key, value, updated_at
		FROM config_items
		WHERE namespace = $1 AND key = $2`

	ListConfigItems = `
		SELECT namespace, key, value, updated_at
		FROM config_items
		WHERE namespace = $1
		ORDER BY key ASC`

	UpsertConfigItem = `
		INSERT INTO config_items (namespace, key, value, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (namespace, key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at`
)
