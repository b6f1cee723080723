package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/makehaven/tasks-display/internal/models"
)

const priorityOrder = "CASE priority WHEN 'high' THEN 0 WHEN 'normal' THEN 1 WHEN 'low' THEN 2 ELSE 3 END"

// TaskRepository reads tasks for the display views.
type TaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// ListOpen returns every task that is not done, most urgent first.
func (r *TaskRepository) ListOpen(ctx context.Context) ([]models.Task, error) {
	var tasks []models.Task
	if err := r.db.WithContext(ctx).
		Where("status <> ?", string(models.TaskStatusDone)).
		Order(priorityOrder).
		Order("created_at ASC").
		Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to list open tasks: %w", err)
	}
	return tasks, nil
}

// ListCompletedSince returns up to limit tasks completed at or after since,
// newest first.
func (r *TaskRepository) ListCompletedSince(ctx context.Context, since time.Time, limit int) ([]models.Task, error) {
	var tasks []models.Task
	if err := r.db.WithContext(ctx).
		Where("status = ? AND completed_at >= ?", string(models.TaskStatusDone), since).
		Order("completed_at DESC").
		Limit(limit).
		Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to list completed tasks: %w", err)
	}
	return tasks, nil
}
