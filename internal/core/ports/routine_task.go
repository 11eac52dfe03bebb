package ports

import (
	"context"
	"time"

	"eisenq/internal/core/domain"
)

type RoutineTaskRepository interface {
	// ListRoutineTasks orders by usage count, then last use, then creation,
	// all descending.
	ListRoutineTasks(ctx context.Context, userID string) ([]domain.RoutineTask, error)
	GetRoutineTask(ctx context.Context, userID, routineTaskID string) (domain.RoutineTask, error)
	CreateRoutineTask(ctx context.Context, routineTask domain.RoutineTask) error
	UpdateRoutineTask(ctx context.Context, userID, routineTaskID string, changes domain.RoutineTaskChanges) error
	DeleteRoutineTask(ctx context.Context, userID, routineTaskID string) error
	// IncrementUsage bumps the usage count and stamps the last use.
	IncrementUsage(ctx context.Context, userID, routineTaskID string, usedAt time.Time) error
}

type RoutineTaskService interface {
	ListRoutineTasks(ctx context.Context, userID string) ([]domain.RoutineTask, error)
	CreateRoutineTask(ctx context.Context, userID string, input domain.CreateRoutineTaskInput) (domain.RoutineTask, error)
	UpdateRoutineTask(ctx context.Context, userID, routineTaskID string, input domain.UpdateRoutineTaskInput) (domain.RoutineTask, error)
	DeleteRoutineTask(ctx context.Context, userID, routineTaskID string) error
	MarkUsed(ctx context.Context, userID, routineTaskID string) error
}
