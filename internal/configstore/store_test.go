package configstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/makehaven/tasks-display/internal/db"
	"github.com/makehaven/tasks-display/internal/models"
	"github.com/makehaven/tasks-display/internal/repository"
)

const testNamespace = models.DisplayConfigNamespace

func TestConfigGetSetSave(t *testing.T) {
	ctx := context.Background()
	manager := NewManager(NewMemoryBackend())

	config := manager.Editable(testNamespace)
	value, err := config.Get(ctx, "code_word")
	require.NoError(t, err)
	assert.Equal(t, "", value, "unset keys read as empty")

	config.Set("code_word", "abc123")
	value, err = config.Get(ctx, "code_word")
	require.NoError(t, err)
	assert.Equal(t, "abc123", value, "staged value is visible on the same object")

	other := manager.Editable(testNamespace)
	value, err = other.Get(ctx, "code_word")
	require.NoError(t, err)
	assert.Equal(t, "", value, "staged value is not persisted before Save")

	require.NoError(t, config.Save(ctx))

	value, err = other.Get(ctx, "code_word")
	require.NoError(t, err)
	assert.Equal(t, "abc123", value)
}

func TestConfigSaveOverwrites(t *testing.T) {
	ctx := context.Background()
	manager := NewManager(NewMemoryBackend())

	first := manager.Editable(testNamespace)
	first.Set("code_word", "first")
	require.NoError(t, first.Save(ctx))

	second := manager.Editable(testNamespace)
	second.Set("code_word", "second")
	require.NoError(t, second.Save(ctx))

	value, err := manager.Editable(testNamespace).Get(ctx, "code_word")
	require.NoError(t, err)
	assert.Equal(t, "second", value)
}

func TestNamespacesAreIsolated(t *testing.T) {
	ctx := context.Background()
	manager := NewManager(NewMemoryBackend())

	config := manager.Editable("other.settings")
	config.Set("code_word", "elsewhere")
	require.NoError(t, config.Save(ctx))

	value, err := manager.Editable(testNamespace).Get(ctx, "code_word")
	require.NoError(t, err)
	assert.Equal(t, "", value)
}

func TestDecode(t *testing.T) {
	ctx := context.Background()
	manager := NewManager(NewMemoryBackend())

	config := manager.Editable(testNamespace)
	config.Set("code_word", "abc123")
	require.NoError(t, config.Save(ctx))

	var displayConfig models.DisplayConfig
	require.NoError(t, Decode(ctx, manager.Editable(testNamespace), &displayConfig))
	assert.Equal(t, "abc123", displayConfig.CodeWord)
	assert.True(t, displayConfig.AccessEnforced())
}

type fixedStore map[string]string

func (s fixedStore) Get(_ context.Context, key string) (string, error) { return s[key], nil }
func (s fixedStore) Set(string, string)                                {}
func (s fixedStore) Save(context.Context) error                        { return nil }
func (s fixedStore) Data(context.Context) (map[string]string, error)   { return s, nil }

func TestDecodeAnyStore(t *testing.T) {
	var displayConfig models.DisplayConfig
	require.NoError(t, Decode(context.Background(), fixedStore{"code_word": "from-elsewhere"}, &displayConfig))
	assert.Equal(t, "from-elsewhere", displayConfig.CodeWord)
}

func TestDecodeIncludesStagedValues(t *testing.T) {
	config := NewManager(NewMemoryBackend()).Editable(testNamespace)
	config.Set("code_word", "staged")

	var displayConfig models.DisplayConfig
	require.NoError(t, Decode(context.Background(), config, &displayConfig))
	assert.Equal(t, "staged", displayConfig.CodeWord)
}

func TestDecodeBackendError(t *testing.T) {
	boom := errors.New("database unavailable")
	config := NewManager(failingBackend{err: boom}).Editable(testNamespace)

	var displayConfig models.DisplayConfig
	assert.ErrorIs(t, Decode(context.Background(), config, &displayConfig), boom)
}

type failingBackend struct{ err error }

func (f failingBackend) Load(context.Context, string, string) (string, bool, error) {
	return "", false, f.err
}
func (f failingBackend) LoadAll(context.Context, string) (map[string]string, error) {
	return nil, f.err
}
func (f failingBackend) SaveAll(context.Context, string, map[string]string) error { return f.err }

func TestBackendErrorsPropagate(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("database unavailable")
	config := NewManager(failingBackend{err: boom}).Editable(testNamespace)

	_, err := config.Get(ctx, "code_word")
	assert.ErrorIs(t, err, boom)

	config.Set("code_word", "abc123")
	assert.ErrorIs(t, config.Save(ctx), boom)

	value, err := config.Get(ctx, "code_word")
	require.NoError(t, err)
	assert.Equal(t, "abc123", value, "a failed save keeps the value staged")
}

func TestRepositoryBackend(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	ctx := context.Background()
	backend := NewRepositoryBackend(repository.NewConfigRepository(db.NewDB(mockDB)))
	columns := []string{"namespace", "key", "value", "updated_at"}

	t.Run("null value reads as unset", func(t *testing.T) {
		mock.ExpectQuery("FROM config_items").
			WithArgs(testNamespace, "code_word").
			WillReturnRows(sqlmock.NewRows(columns).AddRow(testNamespace, "code_word", nil, time.Now()))

		value, found, err := backend.Load(ctx, testNamespace, "code_word")
		require.NoError(t, err)
		assert.False(t, found)
		assert.Equal(t, "", value)
	})

	t.Run("missing row reads as unset", func(t *testing.T) {
		mock.ExpectQuery("FROM config_items").
			WithArgs(testNamespace, "code_word").
			WillReturnRows(sqlmock.NewRows(columns))

		_, found, err := backend.Load(ctx, testNamespace, "code_word")
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("stored value", func(t *testing.T) {
		mock.ExpectQuery("FROM config_items").
			WithArgs(testNamespace, "code_word").
			WillReturnRows(sqlmock.NewRows(columns).AddRow(testNamespace, "code_word", "abc123", time.Now()))

		value, found, err := backend.Load(ctx, testNamespace, "code_word")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "abc123", value)
	})

	t.Run("load all skips nulls", func(t *testing.T) {
		mock.ExpectQuery("FROM config_items").
			WithArgs(testNamespace).
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow(testNamespace, "code_word", "abc123", time.Now()).
				AddRow(testNamespace, "legacy", nil, time.Now()))

		values, err := backend.LoadAll(ctx, testNamespace)
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"code_word": "abc123"}, values)
	})

	t.Run("save through manager", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO config_items").
			WithArgs(testNamespace, "code_word", "new-word", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		config := NewManager(backend).Editable(testNamespace)
		config.Set("code_word", "new-word")
		require.NoError(t, config.Save(ctx))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
