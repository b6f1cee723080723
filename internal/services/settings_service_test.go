package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/makehaven/tasks-display/internal/configstore"
	"github.com/makehaven/tasks-display/internal/models"
)

func storedCodeWord(t *testing.T, configs configstore.Factory) string {
	t.Helper()

	value, err := configs.Editable(models.DisplayConfigNamespace).Get(context.Background(), models.DisplayConfigCodeWordKey)
	require.NoError(t, err)
	return value
}

func TestRenderSettingsForm(t *testing.T) {
	service := NewSettingsService(newConfigs(t, "abc123"))

	form, err := service.RenderSettingsForm(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "makehaven_tasks_settings", form.ID)
	require.Len(t, form.Fields, 1)

	field := form.Fields[0]
	assert.Equal(t, "code_word", field.Name)
	assert.Equal(t, "textfield", field.Type)
	assert.Equal(t, "Display Code Word", field.Title)
	assert.Contains(t, field.Description, "/display/tasks/CODEWORD")
	assert.Equal(t, "abc123", field.DefaultValue)
	assert.True(t, field.Required)
}

func TestRenderSettingsFormUnset(t *testing.T) {
	service := NewSettingsService(newConfigs(t, ""))

	form, err := service.RenderSettingsForm(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "", form.Fields[0].DefaultValue)
}

func TestSubmitSettingsForm(t *testing.T) {
	configs := newConfigs(t, "old-word")
	service := NewSettingsService(configs)

	require.NoError(t, service.SubmitSettingsForm(context.Background(), "abc123"))
	assert.Equal(t, "abc123", storedCodeWord(t, configs))
}

// Stored code words never carry surrounding whitespace, so a pasted value
// with a trailing space still matches the URL segment.
func TestSubmitSettingsFormTrimsWhitespaceBeforeSaving(t *testing.T) {
	configs := newConfigs(t, "old-word")
	service := NewSettingsService(configs)

	require.NoError(t, service.SubmitSettingsForm(context.Background(), "  padded  "))
	assert.Equal(t, "padded", storedCodeWord(t, configs))
}

func TestSubmitSettingsFormRequiresValue(t *testing.T) {
	for _, value := range []string{"", "   ", "\t\n"} {
		configs := newConfigs(t, "old-word")
		service := NewSettingsService(configs)

		err := service.SubmitSettingsForm(context.Background(), value)
		require.Error(t, err)

		ve, ok := IsValidationError(err)
		require.True(t, ok, "expected a validation error for %q", value)
		assert.Equal(t, "code_word", ve.Field)
		assert.Equal(t, "Display Code Word field is required.", ve.Message)

		assert.Equal(t, "old-word", storedCodeWord(t, configs), "rejected submissions leave the stored value alone")
	}
}

func TestSubmitSettingsFormRejectsUnroutableCodeWords(t *testing.T) {
	for _, value := range []string{"shop/tv", "/abc", "abc/", ".", "..", " .. "} {
		configs := newConfigs(t, "old-word")
		service := NewSettingsService(configs)

		err := service.SubmitSettingsForm(context.Background(), value)
		ve, ok := IsValidationError(err)
		require.True(t, ok, "expected a validation error for %q", value)
		assert.Equal(t, "code_word", ve.Field)
		assert.Contains(t, ve.Message, "cannot contain")
		assert.Equal(t, "old-word", storedCodeWord(t, configs))
	}

	service := NewSettingsService(newConfigs(t, ""))
	assert.NoError(t, service.SubmitSettingsForm(context.Background(), "a.b..c"))
}

type fixedStore map[string]string

func (s fixedStore) Get(_ context.Context, key string) (string, error) { return s[key], nil }
func (s fixedStore) Set(string, string)                                {}
func (s fixedStore) Save(context.Context) error                        { return nil }
func (s fixedStore) Data(context.Context) (map[string]string, error)   { return s, nil }

type fixedFactory map[string]string

func (f fixedFactory) Editable(string) configstore.Store { return fixedStore(f) }

func TestCurrentConfigReadsThroughStore(t *testing.T) {
	service := NewSettingsService(fixedFactory{"code_word": "abc123"})

	cfg, err := service.CurrentConfig(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "abc123", cfg.CodeWord)
}

func TestSubmitThenDisplay(t *testing.T) {
	configs := newConfigs(t, "")
	settings := NewSettingsService(configs)
	display := NewDisplayService(configs, &stubRenderer{html: "<div>tasks</div>"})
	ctx := context.Background()

	_, err := display.GetFragment(ctx, "abc123")
	assert.ErrorIs(t, err, ErrAccessDenied, "no code word configured yet")

	require.NoError(t, settings.SubmitSettingsForm(ctx, "abc123"))

	_, err = display.GetFragment(ctx, "abc123")
	assert.NoError(t, err)

	_, err = display.GetFragment(ctx, "wrong")
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestSubmitSettingsFormSaveFailure(t *testing.T) {
	boom := errors.New("database unavailable")
	service := NewSettingsService(brokenFactory{err: boom})

	err := service.SubmitSettingsForm(context.Background(), "abc123")
	assert.ErrorIs(t, err, boom)
	_, ok := IsValidationError(err)
	assert.False(t, ok)
}
