package services

import (
	"context"
	"errors"
	"html/template"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/makehaven/tasks-display/internal/configstore"
	"github.com/makehaven/tasks-display/internal/models"
	"github.com/makehaven/tasks-display/internal/views"
)

type stubRenderer struct {
	html  template.HTML
	err   error
	calls []string
}

func (r *stubRenderer) Render(ctx context.Context, viewName, displayName string) (template.HTML, error) {
	r.calls = append(r.calls, viewName+"/"+displayName)
	return r.html, r.err
}

func newConfigs(t *testing.T, codeWord string) *configstore.Manager {
	t.Helper()

	manager := configstore.NewManager(configstore.NewMemoryBackend())
	if codeWord != "" {
		config := manager.Editable(models.DisplayConfigNamespace)
		config.Set(models.DisplayConfigCodeWordKey, codeWord)
		require.NoError(t, config.Save(context.Background()))
	}
	return manager
}

func TestCheckAccess(t *testing.T) {
	tests := []struct {
		name      string
		stored    string
		requested string
		allowed   bool
	}{
		{name: "matching code word", stored: "abc123", requested: "abc123", allowed: true},
		{name: "wrong code word", stored: "abc123", requested: "wrong", allowed: false},
		{name: "prefix of code word", stored: "abc123", requested: "abc", allowed: false},
		{name: "case differs", stored: "abc123", requested: "ABC123", allowed: false},
		{name: "empty request", stored: "abc123", requested: "", allowed: false},
		{name: "no stored code word", stored: "", requested: "", allowed: false},
		{name: "no stored code word with guess", stored: "", requested: "anything", allowed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			renderer := &stubRenderer{html: "<div>tasks</div>"}
			service := NewDisplayService(newConfigs(t, tt.stored), renderer)
			ctx := context.Background()

			_, pageErr := service.GetFullPage(ctx, tt.requested)
			_, fragmentErr := service.GetFragment(ctx, tt.requested)

			if tt.allowed {
				assert.NoError(t, pageErr)
				assert.NoError(t, fragmentErr)
				return
			}
			assert.ErrorIs(t, pageErr, ErrAccessDenied)
			assert.ErrorIs(t, fragmentErr, ErrAccessDenied)
			assert.Empty(t, renderer.calls, "denied requests never reach the renderer")
		})
	}
}

func TestGetFullPage(t *testing.T) {
	service := NewDisplayService(newConfigs(t, "abc123"), &stubRenderer{})

	page, err := service.GetFullPage(context.Background(), "abc123")
	require.NoError(t, err)

	html := string(page)
	assert.Contains(t, html, "/display/tasks/fragment/abc123")
	assert.Contains(t, html, `<div id="loading">Updating...</div>`)
	assert.Contains(t, html, `id="tasks-container"`)
	assert.Contains(t, html, "Loading Tasks...")
	assert.Contains(t, html, "background-color: #121212")
	assert.Contains(t, html, "updateContent();")
	assert.Contains(t, html, "setInterval(updateContent, 60000)")
	assert.Contains(t, html, "setTimeout(() => loader.classList.remove('active'), 500)")
	assert.Contains(t, html, "finally")
	assert.Contains(t, html, "console.error")

	initial := strings.Index(html, "updateContent();")
	interval := strings.Index(html, "setInterval(")
	require.NotEqual(t, -1, initial)
	require.NotEqual(t, -1, interval)
	assert.Less(t, initial, interval, "first refresh runs before the interval is scheduled")
	assert.Equal(t, 1, strings.Count(html, "setInterval("))
}

func TestGetFullPageEscapesCodeWord(t *testing.T) {
	codeWord := `a"b <c>/d`
	service := NewDisplayService(newConfigs(t, codeWord), &stubRenderer{})

	page, err := service.GetFullPage(context.Background(), codeWord)
	require.NoError(t, err)

	html := string(page)
	assert.NotContains(t, html, `a"b <c>`)
	assert.Contains(t, html, "/display/tasks/fragment/a%22b%20%3Cc%3E%2Fd")
}

func TestFragmentURL(t *testing.T) {
	assert.Equal(t, "/display/tasks/fragment/abc123", FragmentURL("abc123"))
	assert.Equal(t, "/display/tasks/fragment/two%20words", FragmentURL("two words"))
}

func TestGetFragment(t *testing.T) {
	renderer := &stubRenderer{html: `<div class="view-tasks">tasks</div>`}
	service := NewDisplayService(newConfigs(t, "abc123"), renderer)

	html, err := service.GetFragment(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, template.HTML(`<div class="view-tasks">tasks</div>`), html)
	assert.Equal(t, []string{"tasks/page_tasks_display"}, renderer.calls)
}

func TestGetFragmentViewMissing(t *testing.T) {
	service := NewDisplayService(newConfigs(t, "abc123"), views.NewRegistry())

	_, err := service.GetFragment(context.Background(), "abc123")
	assert.ErrorIs(t, err, views.ErrViewNotFound)
}

type brokenFactory struct{ err error }

func (f brokenFactory) Editable(namespace string) configstore.Store {
	return brokenStore{err: f.err}
}

type brokenStore struct{ err error }

func (s brokenStore) Get(context.Context, string) (string, error) { return "", s.err }
func (s brokenStore) Set(string, string)                           {}
func (s brokenStore) Save(context.Context) error                   { return s.err }
func (s brokenStore) Data(context.Context) (map[string]string, error) {
	return nil, s.err
}

func TestCheckAccessStoreFailure(t *testing.T) {
	boom := errors.New("database unavailable")
	service := NewDisplayService(brokenFactory{err: boom}, &stubRenderer{})

	err := service.CheckAccess(context.Background(), "abc123")
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrAccessDenied)
}
