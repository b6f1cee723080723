package models

import "time"

// ConfigItem is one key/value pair inside a configuration namespace.
type ConfigItem struct {
	Namespace string    `json:"namespace" db:"namespace"`
	Key       string    `json:"key" db:"key"`
	Value     *string   `json:"value,omitempty" db:"value"` // NULL until first saved
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// StringValue returns the value, or "" when it is NULL.
func (c ConfigItem) StringValue() string {
	if c.Value == nil {
		return ""
	}
	return *c.Value
}
