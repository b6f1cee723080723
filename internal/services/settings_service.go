package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/makehaven/tasks-display/internal/configstore"
	"github.com/makehaven/tasks-display/internal/models"
)

const (
	// SettingsFormID identifies the settings form.
	SettingsFormID = "makehaven_tasks_settings"
	// SettingsSavedMessage is reported after a successful submission.
	SettingsSavedMessage = "The configuration options have been saved."

	codeWordTitle = "Display Code Word"
)

// FormField describes one input of a settings form.
type FormField struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	DefaultValue string `json:"default_value"`
	Required     bool   `json:"required"`
}

// FormDescriptor describes a settings form and its current values.
type FormDescriptor struct {
	ID     string      `json:"id"`
	Fields []FormField `json:"fields"`
}

// SettingsService reads and writes the display settings.
type SettingsService struct {
	configs configstore.Factory
}

// NewSettingsService creates a new settings service
func NewSettingsService(configs configstore.Factory) *SettingsService {
	return &SettingsService{configs: configs}
}

// CurrentConfig returns the stored display settings.
func (s *SettingsService) CurrentConfig(ctx context.Context) (*models.DisplayConfig, error) {
	var cfg models.DisplayConfig
	if err := configstore.Decode(ctx, s.configs.Editable(models.DisplayConfigNamespace), &cfg); err != nil {
		return nil, fmt.Errorf("failed to load display settings: %w", err)
	}
	return &cfg, nil
}

// RenderSettingsForm describes the settings form pre-filled with the stored code word.
func (s *SettingsService) RenderSettingsForm(ctx context.Context) (*FormDescriptor, error) {
	cfg, err := s.CurrentConfig(ctx)
	if err != nil {
		return nil, err
	}

	return &FormDescriptor{
		ID: SettingsFormID,
		Fields: []FormField{
			{
				Name:         models.DisplayConfigCodeWordKey,
				Type:         "textfield",
				Title:        codeWordTitle,
				Description:  "Secret code word to access the public task display at " + DisplayPathPrefix + "CODEWORD",
				DefaultValue: cfg.CodeWord,
				Required:     true,
			},
		},
	}, nil
}

// SubmitSettingsForm validates value and overwrites the stored code word.
// Surrounding whitespace is trimmed. An empty result, or one that cannot be
// a single path segment of DisplayPathPrefix, is a *ValidationError and
// leaves the stored value untouched.
func (s *SettingsService) SubmitSettingsForm(ctx context.Context, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return &ValidationError{
			Field:   models.DisplayConfigCodeWordKey,
			Message: codeWordTitle + " field is required.",
		}
	}
	if strings.Contains(value, "/") || value == "." || value == ".." {
		return &ValidationError{
			Field:   models.DisplayConfigCodeWordKey,
			Message: codeWordTitle + ` cannot contain "/" or be "." or "..".`,
		}
	}

	config := s.configs.Editable(models.DisplayConfigNamespace)
	config.Set(models.DisplayConfigCodeWordKey, value)
	if err := config.Save(ctx); err != nil {
		return fmt.Errorf("failed to save display code word: %w", err)
	}

	return nil
}
