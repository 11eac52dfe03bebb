package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"eisenq/internal/core/calendar"
	"eisenq/internal/core/domain"
	"eisenq/internal/core/ports"
)

const (
	defaultBulkDeleteConcurrency = 8
	dueSoonWindowDays            = 7
)

type TaskService struct {
	taskRepository  ports.TaskRepository
	txManager       ports.TxManager
	routineTasks    ports.RoutineTaskService
	now             func() time.Time
	newID           func() (string, error)
	bulkConcurrency int
}

type TaskServiceOption func(*TaskService)

// WithRoutineTasks records template usage when a task is created from one.
func WithRoutineTasks(routineTasks ports.RoutineTaskService) TaskServiceOption {
	return func(s *TaskService) { s.routineTasks = routineTasks }
}

func WithClock(now func() time.Time) TaskServiceOption {
	return func(s *TaskService) { s.now = now }
}

func WithIDGenerator(newID func() (string, error)) TaskServiceOption {
	return func(s *TaskService) { s.newID = newID }
}

func WithBulkDeleteConcurrency(limit int) TaskServiceOption {
	return func(s *TaskService) {
		if limit > 0 {
			s.bulkConcurrency = limit
		}
	}
}

func NewTaskService(taskRepository ports.TaskRepository, txManager ports.TxManager, opts ...TaskServiceOption) *TaskService {
	s := &TaskService{
		taskRepository:  taskRepository,
		txManager:       txManager,
		now:             func() time.Time { return time.Now().UTC() },
		newID:           newUUID,
		bulkConcurrency: defaultBulkDeleteConcurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *TaskService) ListTasks(ctx context.Context, userID string, filter domain.TaskFilter) ([]domain.Task, error) {
	filter = filter.Normalize()
	filter.Search = strings.TrimSpace(filter.Search)
	return s.taskRepository.ListTasks(ctx, userID, filter)
}

func (s *TaskService) GetTask(ctx context.Context, userID, taskID string) (domain.Task, error) {
	if err := validateID(taskID); err != nil {
		return domain.Task{}, err
	}
	return s.taskRepository.GetTask(ctx, userID, taskID)
}

func (s *TaskService) ListSubtasks(ctx context.Context, userID, parentID string) ([]domain.Task, error) {
	if err := validateID(parentID); err != nil {
		return nil, err
	}

	parent, err := s.taskRepository.GetTask(ctx, userID, parentID)
	if err != nil {
		return nil, err
	}
	if parent.IsSubtask() {
		return nil, domain.ErrTaskNotFound
	}

	return s.taskRepository.ListSubtasks(ctx, userID, parentID)
}

func (s *TaskService) CreateTask(ctx context.Context, userID string, input domain.CreateTaskInput) (domain.Task, error) {
	input.Title = strings.TrimSpace(input.Title)
	if err := input.Validate(); err != nil {
		return domain.Task{}, err
	}

	status := input.Status
	if status == "" {
		status = domain.TaskStatusPending
	}

	id, err := s.newID()
	if err != nil {
		return domain.Task{}, fmt.Errorf("generate task id: %w", err)
	}

	now := s.now()
	task := domain.Task{
		ID:          id,
		UserID:      userID,
		Title:       input.Title,
		Description: input.Description,
		Quadrant:    input.Quadrant,
		Priority:    input.Priority,
		Status:      status,
		DueDate:     input.DueDate,
		Duration:    input.Duration,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if status == domain.TaskStatusCompleted {
		task.CompletedAt = &now
	}

	err = s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		if input.ParentTaskID != nil {
			parent, err := s.resolveParent(ctx, userID, strings.TrimSpace(*input.ParentTaskID))
			if err != nil {
				return err
			}
			// Subtasks always live in their parent's quadrant.
			task.Quadrant = parent.Quadrant
			task.ParentTaskID = &parent.ID
		}
		return s.taskRepository.CreateTask(ctx, task)
	})
	if err != nil {
		return domain.Task{}, err
	}

	if input.RoutineTaskID != nil && s.routineTasks != nil {
		if err := s.routineTasks.MarkUsed(ctx, userID, *input.RoutineTaskID); err != nil {
			zap.L().Warn("failed to record routine task usage",
				zap.String("routine_task_id", *input.RoutineTaskID),
				zap.String("task_id", task.ID),
				zap.Error(err),
			)
		}
	}

	return task, nil
}

func (s *TaskService) resolveParent(ctx context.Context, userID, parentID string) (domain.Task, error) {
	if validateID(parentID) != nil {
		return domain.Task{}, domain.ErrInvalidParent
	}

	parent, err := s.taskRepository.GetTask(ctx, userID, parentID)
	if errors.Is(err, domain.ErrTaskNotFound) {
		return domain.Task{}, domain.ErrInvalidParent
	}
	if err != nil {
		return domain.Task{}, err
	}
	if parent.IsSubtask() {
		return domain.Task{}, domain.ErrInvalidParent
	}
	return parent, nil
}

func (s *TaskService) UpdateTask(ctx context.Context, userID, taskID string, input domain.UpdateTaskInput) (domain.Task, error) {
	if err := validateID(taskID); err != nil {
		return domain.Task{}, err
	}
	if input.IsEmpty() {
		return domain.Task{}, domain.NewValidationError("body", domain.RuleRequired)
	}
	if title, ok := input.Title.Value(); ok {
		input.Title = domain.SetTo(strings.TrimSpace(title))
	}
	if err := input.Validate(); err != nil {
		return domain.Task{}, err
	}

	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		current, err := s.taskRepository.GetTask(ctx, userID, taskID)
		if err != nil {
			return err
		}

		quadrant, quadrantSet := input.Quadrant.Value()
		if quadrantSet && current.IsSubtask() && quadrant != current.Quadrant {
			return domain.ErrSubtaskQuadrant
		}

		now := s.now()
		changes := domain.TaskChanges{UpdateTaskInput: input, UpdatedAt: now}
		if status, ok := input.Status.Value(); ok && status != current.Status {
			switch {
			case status == domain.TaskStatusCompleted:
				changes.CompletedAt = domain.SetTo(now)
			case current.Status == domain.TaskStatusCompleted:
				changes.CompletedAt = domain.Cleared[time.Time]()
			}
		}

		if err := s.taskRepository.UpdateTask(ctx, userID, taskID, changes); err != nil {
			return err
		}

		if quadrantSet && !current.IsSubtask() {
			moved, err := s.taskRepository.SetSubtasksQuadrant(ctx, userID, taskID, quadrant, now)
			if err != nil {
				return fmt.Errorf("cascade quadrant to subtasks: %w", err)
			}
			zap.L().Debug("cascaded quadrant to subtasks",
				zap.String("task_id", taskID),
				zap.String("quadrant", string(quadrant)),
				zap.Int64("subtasks", moved),
			)
		}
		return nil
	})
	if err != nil {
		return domain.Task{}, err
	}

	return s.taskRepository.GetTask(ctx, userID, taskID)
}

func (s *TaskService) DeleteTask(ctx context.Context, userID, taskID string) error {
	if err := validateID(taskID); err != nil {
		return err
	}

	return s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		current, err := s.taskRepository.GetTask(ctx, userID, taskID)
		if err != nil {
			return err
		}

		if !current.IsSubtask() {
			removed, err := s.taskRepository.DeleteSubtasks(ctx, userID, taskID)
			if err != nil {
				return fmt.Errorf("cascade delete to subtasks: %w", err)
			}
			zap.L().Debug("deleted subtasks", zap.String("task_id", taskID), zap.Int64("subtasks", removed))
		}

		return s.taskRepository.DeleteTask(ctx, userID, taskID)
	})
}

// BulkDeleteTasks deletes each id independently. Failures are reported per
// id and never roll back the deletes that succeeded.
func (s *TaskService) BulkDeleteTasks(ctx context.Context, userID string, taskIDs []string) (domain.BulkDeleteResult, error) {
	ids := uniqueIDs(taskIDs)
	if len(ids) == 0 {
		return domain.BulkDeleteResult{}, domain.NewValidationError("ids", domain.RuleRequired)
	}

	var (
		deleted atomic.Int64
		mu      sync.Mutex
		failed  []string
		group   errgroup.Group
	)
	group.SetLimit(s.bulkConcurrency)

	for _, id := range ids {
		group.Go(func() error {
			if err := s.DeleteTask(ctx, userID, id); err != nil {
				zap.L().Warn("bulk delete: task not deleted", zap.String("task_id", id), zap.Error(err))
				mu.Lock()
				failed = append(failed, id)
				mu.Unlock()
				return nil
			}
			deleted.Add(1)
			return nil
		})
	}
	_ = group.Wait()

	sort.Strings(failed)
	return domain.BulkDeleteResult{
		Requested: len(ids),
		Deleted:   int(deleted.Load()),
		Failed:    failed,
	}, nil
}

// Stats summarises the owner's parent-eligible tasks. The due-soon window
// starts at the beginning of now's day in now's location.
func (s *TaskService) Stats(ctx context.Context, userID string, now time.Time) (domain.TaskStats, error) {
	tasks, err := s.taskRepository.ListTasks(ctx, userID, domain.TaskFilter{})
	if err != nil {
		return domain.TaskStats{}, err
	}

	today := calendar.StartOfDay(now)
	stats := domain.TaskStats{Total: len(tasks)}
	for _, task := range tasks {
		completed := task.Status == domain.TaskStatusCompleted
		if completed {
			stats.Completed++
		}
		if !completed && (task.Priority == domain.PriorityHigh || task.Quadrant == domain.QuadrantUrgentImportant) {
			stats.HighPriority++
		}
		if task.DueDate != nil && calendar.DueWithin(*task.DueDate, today, dueSoonWindowDays) {
			stats.DueThisWeek++
		}
	}
	return stats, nil
}

func validateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrInvalidID
	}
	return nil
}

func newUUID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

var _ ports.TaskService = (*TaskService)(nil)
