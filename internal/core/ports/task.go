package ports

import (
	"context"
	"time"

	"eisenq/internal/core/domain"
)

// TaskRepository is the task store. Every method is scoped by the owner's
// user id; a record owned by someone else behaves as if it did not exist.
type TaskRepository interface {
	// ListTasks returns parent-eligible tasks newest first, each carrying
	// its aggregated subtask counts.
	ListTasks(ctx context.Context, userID string, filter domain.TaskFilter) ([]domain.Task, error)
	// GetTask returns one task with aggregated subtask counts or
	// domain.ErrTaskNotFound.
	GetTask(ctx context.Context, userID, taskID string) (domain.Task, error)
	// ListSubtasks returns the tasks referencing parentID, oldest first.
	ListSubtasks(ctx context.Context, userID, parentID string) ([]domain.Task, error)
	CreateTask(ctx context.Context, task domain.Task) error
	// UpdateTask writes the changes or returns domain.ErrTaskNotFound.
	UpdateTask(ctx context.Context, userID, taskID string, changes domain.TaskChanges) error
	// SetSubtasksQuadrant moves every subtask of parentID to quadrant and
	// returns how many were updated.
	SetSubtasksQuadrant(ctx context.Context, userID, parentID string, quadrant domain.Quadrant, updatedAt time.Time) (int64, error)
	// DeleteSubtasks removes every subtask of parentID.
	DeleteSubtasks(ctx context.Context, userID, parentID string) (int64, error)
	// DeleteTask removes one task or returns domain.ErrTaskNotFound.
	DeleteTask(ctx context.Context, userID, taskID string) error
}

type TaskService interface {
	ListTasks(ctx context.Context, userID string, filter domain.TaskFilter) ([]domain.Task, error)
	GetTask(ctx context.Context, userID, taskID string) (domain.Task, error)
	ListSubtasks(ctx context.Context, userID, parentID string) ([]domain.Task, error)
	CreateTask(ctx context.Context, userID string, input domain.CreateTaskInput) (domain.Task, error)
	UpdateTask(ctx context.Context, userID, taskID string, input domain.UpdateTaskInput) (domain.Task, error)
	DeleteTask(ctx context.Context, userID, taskID string) error
	BulkDeleteTasks(ctx context.Context, userID string, taskIDs []string) (domain.BulkDeleteResult, error)
	Stats(ctx context.Context, userID string, now time.Time) (domain.TaskStats, error)
}

type CalendarService interface {
	View(ctx context.Context, userID string, query domain.CalendarQuery) (domain.CalendarView, error)
}
