package views

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/makehaven/tasks-display/internal/models"
)

const (
	// TasksViewName is the view the display fragment renders.
	TasksViewName = "tasks"
	// TasksDisplayID is the display of TasksViewName used by the kiosk page.
	TasksDisplayID = "page_tasks_display"

	recentlyCompletedWindow = 7 * 24 * time.Hour
	recentlyCompletedLimit  = 5
)

//go:embed templates/tasks.html.tmpl
var templateFS embed.FS

var tasksTemplate = template.Must(template.ParseFS(templateFS, "templates/tasks.html.tmpl"))

// TaskSource supplies the tasks listed by the tasks view.
type TaskSource interface {
	ListOpen(ctx context.Context) ([]models.Task, error)
	ListCompletedSince(ctx context.Context, since time.Time, limit int) ([]models.Task, error)
}

type tasksPage struct {
	DisplayID string
	Title     string
	Open      []models.Task
	Completed []models.Task
}

// TasksDisplay lists open tasks followed by a recently completed attachment.
type TasksDisplay struct {
	source TaskSource
	now    func() time.Time
}

// NewTasksDisplay creates the page display of the tasks view.
func NewTasksDisplay(source TaskSource) *TasksDisplay {
	return &TasksDisplay{source: source, now: time.Now}
}

// Render implements Display.
func (d *TasksDisplay) Render(ctx context.Context) (template.HTML, error) {
	open, err := d.source.ListOpen(ctx)
	if err != nil {
		return "", err
	}

	completed, err := d.source.ListCompletedSince(ctx, d.now().Add(-recentlyCompletedWindow), recentlyCompletedLimit)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tasksTemplate.Execute(&buf, tasksPage{
		DisplayID: TasksDisplayID,
		Title:     "Shop Tasks",
		Open:      open,
		Completed: completed,
	}); err != nil {
		return "", fmt.Errorf("failed to execute tasks template: %w", err)
	}

	return template.HTML(buf.String()), nil
}

// NewTasksView builds the tasks view with its page display.
func NewTasksView(source TaskSource) *View {
	return NewView(TasksViewName).AddDisplay(TasksDisplayID, NewTasksDisplay(source))
}
