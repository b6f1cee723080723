// Package views renders named views and their displays into HTML fragments.
package views

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"sync"
)

var (
	// ErrViewNotFound is returned when no view is registered under a name.
	ErrViewNotFound = errors.New("view not found")
	// ErrDisplayNotFound is returned when a view has no display with the requested id.
	ErrDisplayNotFound = errors.New("display not found")
)

// ViewRenderer renders one display of a named view.
type ViewRenderer interface {
	Render(ctx context.Context, viewName, displayName string) (template.HTML, error)
}

// Display produces the markup of one presentation of a view.
type Display interface {
	Render(ctx context.Context) (template.HTML, error)
}

// DisplayFunc adapts a function to the Display interface.
type DisplayFunc func(ctx context.Context) (template.HTML, error)

// Render calls f(ctx).
func (f DisplayFunc) Render(ctx context.Context) (template.HTML, error) {
	return f(ctx)
}

// View is a named collection of displays.
type View struct {
	Name     string
	displays map[string]Display
}

// NewView creates an empty view.
func NewView(name string) *View {
	return &View{Name: name, displays: make(map[string]Display)}
}

// AddDisplay registers display under id, replacing any previous one.
func (v *View) AddDisplay(id string, display Display) *View {
	v.displays[id] = display
	return v
}

// Registry looks views up by name. It is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	views map[string]*View
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{views: make(map[string]*View)}
}

// Register adds view, replacing any view with the same name.
func (r *Registry) Register(view *View) {
	r.mu.Lock()
	r.views[view.Name] = view
	r.mu.Unlock()
}

// Render implements ViewRenderer.
func (r *Registry) Render(ctx context.Context, viewName, displayName string) (template.HTML, error) {
	r.mu.RLock()
	view, ok := r.views[viewName]
	r.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrViewNotFound, viewName)
	}

	display, ok := view.displays[displayName]
	if !ok {
		return "", fmt.Errorf("%w: %s/%s", ErrDisplayNotFound, viewName, displayName)
	}

	html, err := display.Render(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to render %s/%s: %w", viewName, displayName, err)
	}
	return html, nil
}
