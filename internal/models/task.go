package models

import (
	"time"

	"github.com/google/uuid"
)

// TaskPriority orders tasks on the display.
type TaskPriority string

const (
	PriorityHigh   TaskPriority = "high"
	PriorityNormal TaskPriority = "normal"
	PriorityLow    TaskPriority = "low"
)

// TaskStatus tracks a task through its lifecycle.
type TaskStatus string

const (
	TaskStatusOpen       TaskStatus = "open"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
)

// Task is a shop task shown on the display.
type Task struct {
	ID          uuid.UUID    `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Title       string       `json:"title" gorm:"not null"`
	Body        string       `json:"body"`
	Priority    TaskPriority `json:"priority" gorm:"not null;default:normal"`
	Status      TaskStatus   `json:"status" gorm:"not null;default:open"`
	CompletedAt *time.Time   `json:"completed_at,omitempty"`
	CreatedAt   time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time    `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName specifies the table name for Task
func (Task) TableName() string {
	return "tasks"
}

// IsDone reports whether the task has been completed.
func (t *Task) IsDone() bool {
	return t.Status == TaskStatusDone
}
