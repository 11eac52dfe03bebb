package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"eisenq/internal/core/domain"
	"eisenq/internal/core/ports"
)

const routineTaskColumns = `id, user_id, title, description, quadrant, priority, duration,
  usage_count, last_used_at, created_at, updated_at`

const listRoutineTasksQuery = `
SELECT ` + routineTaskColumns + `
FROM routine_tasks
WHERE user_id = ?
ORDER BY usage_count DESC, last_used_at DESC, created_at DESC, id DESC
`

const getRoutineTaskQuery = `
SELECT ` + routineTaskColumns + `
FROM routine_tasks
WHERE user_id = ? AND id = ?
`

const insertRoutineTaskQuery = `
INSERT INTO routine_tasks (
  id, user_id, title, description, quadrant, priority, duration,
  usage_count, last_used_at, created_at, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

type RoutineTaskRepository struct {
	db *sqlx.DB
}

type routineTaskRow struct {
	ID          string         `db:"id"`
	UserID      string         `db:"user_id"`
	Title       string         `db:"title"`
	Description sql.NullString `db:"description"`
	Quadrant    string         `db:"quadrant"`
	Priority    string         `db:"priority"`
	Duration    sql.NullInt64  `db:"duration"`
	UsageCount  int            `db:"usage_count"`
	LastUsedAt  sql.NullTime   `db:"last_used_at"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

var _ ports.RoutineTaskRepository = (*RoutineTaskRepository)(nil)

func NewRoutineTaskRepository(db *sqlx.DB) *RoutineTaskRepository {
	return &RoutineTaskRepository{db: db}
}

func (r *RoutineTaskRepository) ListRoutineTasks(ctx context.Context, userID string) ([]domain.RoutineTask, error) {
	var rows []routineTaskRow
	if err := sqlx.SelectContext(ctx, executor(ctx, r.db), &rows, listRoutineTasksQuery, userID); err != nil {
		return nil, fmt.Errorf("list routine tasks: %w", err)
	}

	routineTasks := make([]domain.RoutineTask, 0, len(rows))
	for _, row := range rows {
		routineTasks = append(routineTasks, mapRoutineTaskRow(row))
	}
	return routineTasks, nil
}

func (r *RoutineTaskRepository) GetRoutineTask(ctx context.Context, userID, routineTaskID string) (domain.RoutineTask, error) {
	var row routineTaskRow
	err := sqlx.GetContext(ctx, executor(ctx, r.db), &row, getRoutineTaskQuery, userID, routineTaskID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.RoutineTask{}, domain.ErrRoutineTaskNotFound
	}
	if err != nil {
		return domain.RoutineTask{}, fmt.Errorf("get routine task: %w", err)
	}
	return mapRoutineTaskRow(row), nil
}

func (r *RoutineTaskRepository) CreateRoutineTask(ctx context.Context, routineTask domain.RoutineTask) error {
	_, err := executor(ctx, r.db).ExecContext(ctx, insertRoutineTaskQuery,
		routineTask.ID,
		routineTask.UserID,
		routineTask.Title,
		routineTask.Description,
		string(routineTask.Quadrant),
		string(routineTask.Priority),
		routineTask.Duration,
		routineTask.UsageCount,
		utcPtr(routineTask.LastUsedAt),
		routineTask.CreatedAt.UTC(),
		routineTask.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert routine task: %w", err)
	}
	return nil
}

func (r *RoutineTaskRepository) UpdateRoutineTask(ctx context.Context, userID, routineTaskID string, changes domain.RoutineTaskChanges) error {
	var set assignments
	setPatch(&set, "title", changes.Title, identity[string])
	setPatch(&set, "description", changes.Description, identity[string])
	setPatch(&set, "quadrant", changes.Quadrant, func(q domain.Quadrant) any { return string(q) })
	setPatch(&set, "priority", changes.Priority, func(p domain.Priority) any { return string(p) })
	setPatch(&set, "duration", changes.Duration, identity[int])
	set.add("updated_at", changes.UpdatedAt.UTC())

	query := "UPDATE routine_tasks SET " + set.clause() + " WHERE user_id = ? AND id = ?"
	args := append(set.args, userID, routineTaskID)

	result, err := executor(ctx, r.db).ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update routine task: %w", err)
	}
	return requireAffected(result, domain.ErrRoutineTaskNotFound)
}

func (r *RoutineTaskRepository) DeleteRoutineTask(ctx context.Context, userID, routineTaskID string) error {
	result, err := executor(ctx, r.db).ExecContext(ctx,
		`DELETE FROM routine_tasks WHERE user_id = ? AND id = ?`,
		userID, routineTaskID,
	)
	if err != nil {
		return fmt.Errorf("delete routine task: %w", err)
	}
	return requireAffected(result, domain.ErrRoutineTaskNotFound)
}

func (r *RoutineTaskRepository) IncrementUsage(ctx context.Context, userID, routineTaskID string, usedAt time.Time) error {
	result, err := executor(ctx, r.db).ExecContext(ctx,
		`UPDATE routine_tasks SET usage_count = usage_count + 1, last_used_at = ?, updated_at = ? WHERE user_id = ? AND id = ?`,
		usedAt.UTC(), usedAt.UTC(), userID, routineTaskID,
	)
	if err != nil {
		return fmt.Errorf("increment routine task usage: %w", err)
	}
	return requireAffected(result, domain.ErrRoutineTaskNotFound)
}

func mapRoutineTaskRow(row routineTaskRow) domain.RoutineTask {
	routineTask := domain.RoutineTask{
		ID:         row.ID,
		UserID:     row.UserID,
		Title:      row.Title,
		Quadrant:   domain.Quadrant(row.Quadrant),
		Priority:   domain.Priority(row.Priority),
		UsageCount: row.UsageCount,
		CreatedAt:  row.CreatedAt.UTC(),
		UpdatedAt:  row.UpdatedAt.UTC(),
	}

	if row.Description.Valid {
		value := row.Description.String
		routineTask.Description = &value
	}

	if row.Duration.Valid {
		value := int(row.Duration.Int64)
		routineTask.Duration = &value
	}

	if row.LastUsedAt.Valid {
		value := row.LastUsedAt.Time.UTC()
		routineTask.LastUsedAt = &value
	}

	return routineTask
}
