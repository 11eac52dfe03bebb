package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"eisenq/internal/core/domain"
	"eisenq/internal/core/ports"
)

// RoutineTaskService manages task templates. Templates have no hierarchy
// and no cascades.
type RoutineTaskService struct {
	routineTaskRepository ports.RoutineTaskRepository
	now                   func() time.Time
	newID                 func() (string, error)
}

func NewRoutineTaskService(routineTaskRepository ports.RoutineTaskRepository) *RoutineTaskService {
	return &RoutineTaskService{
		routineTaskRepository: routineTaskRepository,
		now:                   func() time.Time { return time.Now().UTC() },
		newID:                 newUUID,
	}
}

func (s *RoutineTaskService) ListRoutineTasks(ctx context.Context, userID string) ([]domain.RoutineTask, error) {
	return s.routineTaskRepository.ListRoutineTasks(ctx, userID)
}

func (s *RoutineTaskService) CreateRoutineTask(ctx context.Context, userID string, input domain.CreateRoutineTaskInput) (domain.RoutineTask, error) {
	input.Title = strings.TrimSpace(input.Title)
	if err := input.Validate(); err != nil {
		return domain.RoutineTask{}, err
	}

	id, err := s.newID()
	if err != nil {
		return domain.RoutineTask{}, fmt.Errorf("generate routine task id: %w", err)
	}

	now := s.now()
	routineTask := domain.RoutineTask{
		ID:          id,
		UserID:      userID,
		Title:       input.Title,
		Description: input.Description,
		Quadrant:    input.Quadrant,
		Priority:    input.Priority,
		Duration:    input.Duration,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.routineTaskRepository.CreateRoutineTask(ctx, routineTask); err != nil {
		return domain.RoutineTask{}, err
	}
	return routineTask, nil
}

func (s *RoutineTaskService) UpdateRoutineTask(ctx context.Context, userID, routineTaskID string, input domain.UpdateRoutineTaskInput) (domain.RoutineTask, error) {
	if err := validateID(routineTaskID); err != nil {
		return domain.RoutineTask{}, err
	}
	if input.IsEmpty() {
		return domain.RoutineTask{}, domain.NewValidationError("body", domain.RuleRequired)
	}
	if title, ok := input.Title.Value(); ok {
		input.Title = domain.SetTo(strings.TrimSpace(title))
	}
	if err := input.Validate(); err != nil {
		return domain.RoutineTask{}, err
	}

	changes := domain.RoutineTaskChanges{UpdateRoutineTaskInput: input, UpdatedAt: s.now()}
	if err := s.routineTaskRepository.UpdateRoutineTask(ctx, userID, routineTaskID, changes); err != nil {
		return domain.RoutineTask{}, err
	}
	return s.routineTaskRepository.GetRoutineTask(ctx, userID, routineTaskID)
}

func (s *RoutineTaskService) DeleteRoutineTask(ctx context.Context, userID, routineTaskID string) error {
	if err := validateID(routineTaskID); err != nil {
		return err
	}
	return s.routineTaskRepository.DeleteRoutineTask(ctx, userID, routineTaskID)
}

// MarkUsed records that the template was applied to a new task.
func (s *RoutineTaskService) MarkUsed(ctx context.Context, userID, routineTaskID string) error {
	if err := validateID(routineTaskID); err != nil {
		return err
	}
	return s.routineTaskRepository.IncrementUsage(ctx, userID, routineTaskID, s.now())
}

var _ ports.RoutineTaskService = (*RoutineTaskService)(nil)
