package services

import (
	"bytes"
	"context"
	"crypto/subtle"
	"embed"
	"fmt"
	"html/template"
	"net/url"

	"github.com/makehaven/tasks-display/internal/configstore"
	"github.com/makehaven/tasks-display/internal/models"
	"github.com/makehaven/tasks-display/internal/views"
	"github.com/makehaven/tasks-display/pkg/debug"
)

const (
	// DisplayPathPrefix is the route of the kiosk page.
	DisplayPathPrefix = "/display/tasks/"
	// FragmentPathPrefix is the route the kiosk page polls.
	FragmentPathPrefix = "/display/tasks/fragment/"
)

//go:embed templates/display_page.html.tmpl
var pageFS embed.FS

// The page polls on a fixed interval with no in-flight guard, so a response
// slower than the interval can overlap the next poll (last write wins).
var displayPageTemplate = template.Must(template.ParseFS(pageFS, "templates/display_page.html.tmpl"))

type displayPage struct {
	RefreshURL string
}

// FragmentURL returns the polling URL for codeWord.
func FragmentURL(codeWord string) string {
	return FragmentPathPrefix + url.PathEscape(codeWord)
}

// DisplayService serves the code-word protected tasks display.
type DisplayService struct {
	configs  configstore.Factory
	renderer views.ViewRenderer
}

// NewDisplayService creates a new display service
func NewDisplayService(configs configstore.Factory, renderer views.ViewRenderer) *DisplayService {
	return &DisplayService{
		configs:  configs,
		renderer: renderer,
	}
}

// CheckAccess returns ErrAccessDenied unless codeWord equals the configured
// code word. An unset code word denies everyone.
func (s *DisplayService) CheckAccess(ctx context.Context, codeWord string) error {
	configured, err := s.configs.Editable(models.DisplayConfigNamespace).Get(ctx, models.DisplayConfigCodeWordKey)
	if err != nil {
		return fmt.Errorf("failed to load display code word: %w", err)
	}

	cfg := models.DisplayConfig{CodeWord: configured}
	if !cfg.AccessEnforced() {
		debug.Warning("Display requested but no code word is configured")
		return ErrAccessDenied
	}
	if subtle.ConstantTimeCompare([]byte(codeWord), []byte(cfg.CodeWord)) != 1 {
		debug.Debug("Display requested with an incorrect code word")
		return ErrAccessDenied
	}
	return nil
}

// GetFullPage returns the kiosk page shell for codeWord.
func (s *DisplayService) GetFullPage(ctx context.Context, codeWord string) ([]byte, error) {
	if err := s.CheckAccess(ctx, codeWord); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := displayPageTemplate.Execute(&buf, displayPage{RefreshURL: FragmentURL(codeWord)}); err != nil {
		return nil, fmt.Errorf("failed to render display page: %w", err)
	}
	return buf.Bytes(), nil
}

// GetFragment renders the tasks list for codeWord. A missing view surfaces
// as views.ErrViewNotFound.
func (s *DisplayService) GetFragment(ctx context.Context, codeWord string) (template.HTML, error) {
	if err := s.CheckAccess(ctx, codeWord); err != nil {
		return "", err
	}

	html, err := s.renderer.Render(ctx, views.TasksViewName, views.TasksDisplayID)
	if err != nil {
		return "", err
	}
	return html, nil
}
