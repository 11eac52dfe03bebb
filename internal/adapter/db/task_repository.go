package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"eisenq/internal/core/domain"
	"eisenq/internal/core/ports"
)

const taskColumns = `t.id, t.user_id, t.title, t.description, t.quadrant, t.priority, t.status,
  t.due_date, t.duration, t.parent_task_id, t.completed_at, t.created_at, t.updated_at`

// Subtask counts are joined in rather than stored, so they always reflect
// the live subtask set.
const selectTasksWithCountsQuery = `
SELECT
  ` + taskColumns + `,
  COUNT(s.id) AS subtask_count,
  COALESCE(SUM(CASE WHEN s.status = 'completed' THEN 1 ELSE 0 END), 0) AS subtask_completed_count
FROM tasks t
LEFT JOIN tasks s ON s.parent_task_id = t.id AND s.user_id = t.user_id
`

const listSubtasksQuery = `
SELECT
  ` + taskColumns + `,
  0 AS subtask_count,
  0 AS subtask_completed_count
FROM tasks t
WHERE t.user_id = ? AND t.parent_task_id = ?
ORDER BY t.created_at ASC, t.id ASC
`

const insertTaskQuery = `
INSERT INTO tasks (
  id, user_id, title, description, quadrant, priority, status,
  due_date, duration, parent_task_id, completed_at, created_at, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

type TaskRepository struct {
	db *sqlx.DB
}

type taskRow struct {
	ID                    string         `db:"id"`
	UserID                string         `db:"user_id"`
	Title                 string         `db:"title"`
	Description           sql.NullString `db:"description"`
	Quadrant              string         `db:"quadrant"`
	Priority              string         `db:"priority"`
	Status                string         `db:"status"`
	DueDate               sql.NullTime   `db:"due_date"`
	Duration              sql.NullInt64  `db:"duration"`
	ParentTaskID          sql.NullString `db:"parent_task_id"`
	CompletedAt           sql.NullTime   `db:"completed_at"`
	CreatedAt             time.Time      `db:"created_at"`
	UpdatedAt             time.Time      `db:"updated_at"`
	SubtaskCount          int            `db:"subtask_count"`
	SubtaskCompletedCount int            `db:"subtask_completed_count"`
}

var _ ports.TaskRepository = (*TaskRepository)(nil)

func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) ListTasks(ctx context.Context, userID string, filter domain.TaskFilter) ([]domain.Task, error) {
	var (
		query strings.Builder
		args  = []any{userID}
	)
	query.WriteString(selectTasksWithCountsQuery)
	query.WriteString("WHERE t.user_id = ? AND t.parent_task_id IS NULL\n")

	if filter.Search != "" {
		pattern := "%" + escapeLike(strings.ToLower(filter.Search)) + "%"
		query.WriteString("  AND (LOWER(t.title) LIKE ? ESCAPE '!' OR LOWER(COALESCE(t.description, '')) LIKE ? ESCAPE '!')\n")
		args = append(args, pattern, pattern)
	}
	if filter.Quadrant != "" {
		query.WriteString("  AND t.quadrant = ?\n")
		args = append(args, string(filter.Quadrant))
	}
	if filter.Priority != "" {
		query.WriteString("  AND t.priority = ?\n")
		args = append(args, string(filter.Priority))
	}
	if filter.Status != "" {
		query.WriteString("  AND t.status = ?\n")
		args = append(args, string(filter.Status))
	}
	query.WriteString("GROUP BY t.id\nORDER BY t.created_at DESC, t.id DESC")

	var rows []taskRow
	if err := sqlx.SelectContext(ctx, executor(ctx, r.db), &rows, query.String(), args...); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	return mapTaskRows(rows), nil
}

func (r *TaskRepository) GetTask(ctx context.Context, userID, taskID string) (domain.Task, error) {
	query := selectTasksWithCountsQuery + "WHERE t.user_id = ? AND t.id = ?\nGROUP BY t.id"

	var row taskRow
	err := sqlx.GetContext(ctx, executor(ctx, r.db), &row, query, userID, taskID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Task{}, domain.ErrTaskNotFound
	}
	if err != nil {
		return domain.Task{}, fmt.Errorf("get task: %w", err)
	}

	return mapTaskRowToDomainTask(row), nil
}

func (r *TaskRepository) ListSubtasks(ctx context.Context, userID, parentID string) ([]domain.Task, error) {
	var rows []taskRow
	if err := sqlx.SelectContext(ctx, executor(ctx, r.db), &rows, listSubtasksQuery, userID, parentID); err != nil {
		return nil, fmt.Errorf("list subtasks: %w", err)
	}

	return mapTaskRows(rows), nil
}

func (r *TaskRepository) CreateTask(ctx context.Context, task domain.Task) error {
	_, err := executor(ctx, r.db).ExecContext(ctx, insertTaskQuery,
		task.ID,
		task.UserID,
		task.Title,
		task.Description,
		string(task.Quadrant),
		string(task.Priority),
		string(task.Status),
		utcPtr(task.DueDate),
		task.Duration,
		task.ParentTaskID,
		utcPtr(task.CompletedAt),
		task.CreatedAt.UTC(),
		task.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

func (r *TaskRepository) UpdateTask(ctx context.Context, userID, taskID string, changes domain.TaskChanges) error {
	var set assignments
	setPatch(&set, "title", changes.Title, identity[string])
	setPatch(&set, "description", changes.Description, identity[string])
	setPatch(&set, "quadrant", changes.Quadrant, func(q domain.Quadrant) any { return string(q) })
	setPatch(&set, "priority", changes.Priority, func(p domain.Priority) any { return string(p) })
	setPatch(&set, "status", changes.Status, func(s domain.TaskStatus) any { return string(s) })
	setPatch(&set, "due_date", changes.DueDate, toUTC)
	setPatch(&set, "duration", changes.Duration, identity[int])
	setPatch(&set, "completed_at", changes.CompletedAt, toUTC)
	set.add("updated_at", changes.UpdatedAt.UTC())

	query := "UPDATE tasks SET " + set.clause() + " WHERE user_id = ? AND id = ?"
	args := append(set.args, userID, taskID)

	result, err := executor(ctx, r.db).ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	return requireAffected(result, domain.ErrTaskNotFound)
}

func (r *TaskRepository) SetSubtasksQuadrant(ctx context.Context, userID, parentID string, quadrant domain.Quadrant, updatedAt time.Time) (int64, error) {
	result, err := executor(ctx, r.db).ExecContext(ctx,
		`UPDATE tasks SET quadrant = ?, updated_at = ? WHERE user_id = ? AND parent_task_id = ?`,
		string(quadrant), updatedAt.UTC(), userID, parentID,
	)
	if err != nil {
		return 0, fmt.Errorf("update subtask quadrant: %w", err)
	}
	return result.RowsAffected()
}

func (r *TaskRepository) DeleteSubtasks(ctx context.Context, userID, parentID string) (int64, error) {
	result, err := executor(ctx, r.db).ExecContext(ctx,
		`DELETE FROM tasks WHERE user_id = ? AND parent_task_id = ?`,
		userID, parentID,
	)
	if err != nil {
		return 0, fmt.Errorf("delete subtasks: %w", err)
	}
	return result.RowsAffected()
}

func (r *TaskRepository) DeleteTask(ctx context.Context, userID, taskID string) error {
	result, err := executor(ctx, r.db).ExecContext(ctx,
		`DELETE FROM tasks WHERE user_id = ? AND id = ?`,
		userID, taskID,
	)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return requireAffected(result, domain.ErrTaskNotFound)
}

func mapTaskRows(rows []taskRow) []domain.Task {
	tasks := make([]domain.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, mapTaskRowToDomainTask(row))
	}
	return tasks
}

func mapTaskRowToDomainTask(row taskRow) domain.Task {
	task := domain.Task{
		ID:                    row.ID,
		UserID:                row.UserID,
		Title:                 row.Title,
		Quadrant:              domain.Quadrant(row.Quadrant),
		Priority:              domain.Priority(row.Priority),
		Status:                domain.TaskStatus(row.Status),
		CreatedAt:             row.CreatedAt.UTC(),
		UpdatedAt:             row.UpdatedAt.UTC(),
		SubtaskCount:          row.SubtaskCount,
		SubtaskCompletedCount: row.SubtaskCompletedCount,
	}

	if row.Description.Valid {
		value := row.Description.String
		task.Description = &value
	}

	if row.DueDate.Valid {
		value := row.DueDate.Time.UTC()
		task.DueDate = &value
	}

	if row.Duration.Valid {
		value := int(row.Duration.Int64)
		task.Duration = &value
	}

	if row.ParentTaskID.Valid && row.ParentTaskID.String != "" {
		value := row.ParentTaskID.String
		task.ParentTaskID = &value
	}

	if row.CompletedAt.Valid {
		value := row.CompletedAt.Time.UTC()
		task.CompletedAt = &value
	}

	return task
}
