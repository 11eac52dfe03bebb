package service_test

import (
	"context"
	"time"

	"eisenq/internal/core/domain"

	"github.com/stretchr/testify/mock"
)

type taskRepositoryMock struct {
	mock.Mock
}

func (m *taskRepositoryMock) ListTasks(ctx context.Context, userID string, filter domain.TaskFilter) ([]domain.Task, error) {
	args := m.Called(ctx, userID, filter)

	var tasks []domain.Task
	if value := args.Get(0); value != nil {
		tasks = value.([]domain.Task)
	}
	return tasks, args.Error(1)
}

func (m *taskRepositoryMock) GetTask(ctx context.Context, userID, taskID string) (domain.Task, error) {
	args := m.Called(ctx, userID, taskID)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskRepositoryMock) ListSubtasks(ctx context.Context, userID, parentID string) ([]domain.Task, error) {
	args := m.Called(ctx, userID, parentID)

	var tasks []domain.Task
	if value := args.Get(0); value != nil {
		tasks = value.([]domain.Task)
	}
	return tasks, args.Error(1)
}

func (m *taskRepositoryMock) CreateTask(ctx context.Context, task domain.Task) error {
	return m.Called(ctx, task).Error(0)
}

func (m *taskRepositoryMock) UpdateTask(ctx context.Context, userID, taskID string, changes domain.TaskChanges) error {
	return m.Called(ctx, userID, taskID, changes).Error(0)
}

func (m *taskRepositoryMock) SetSubtasksQuadrant(ctx context.Context, userID, parentID string, quadrant domain.Quadrant, updatedAt time.Time) (int64, error) {
	args := m.Called(ctx, userID, parentID, quadrant, updatedAt)
	return args.Get(0).(int64), args.Error(1)
}

func (m *taskRepositoryMock) DeleteSubtasks(ctx context.Context, userID, parentID string) (int64, error) {
	args := m.Called(ctx, userID, parentID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *taskRepositoryMock) DeleteTask(ctx context.Context, userID, taskID string) error {
	return m.Called(ctx, userID, taskID).Error(0)
}

type routineTaskRepositoryMock struct {
	mock.Mock
}

func (m *routineTaskRepositoryMock) ListRoutineTasks(ctx context.Context, userID string) ([]domain.RoutineTask, error) {
	args := m.Called(ctx, userID)

	var routineTasks []domain.RoutineTask
	if value := args.Get(0); value != nil {
		routineTasks = value.([]domain.RoutineTask)
	}
	return routineTasks, args.Error(1)
}

func (m *routineTaskRepositoryMock) GetRoutineTask(ctx context.Context, userID, routineTaskID string) (domain.RoutineTask, error) {
	args := m.Called(ctx, userID, routineTaskID)
	return args.Get(0).(domain.RoutineTask), args.Error(1)
}

func (m *routineTaskRepositoryMock) CreateRoutineTask(ctx context.Context, routineTask domain.RoutineTask) error {
	return m.Called(ctx, routineTask).Error(0)
}

func (m *routineTaskRepositoryMock) UpdateRoutineTask(ctx context.Context, userID, routineTaskID string, changes domain.RoutineTaskChanges) error {
	return m.Called(ctx, userID, routineTaskID, changes).Error(0)
}

func (m *routineTaskRepositoryMock) DeleteRoutineTask(ctx context.Context, userID, routineTaskID string) error {
	return m.Called(ctx, userID, routineTaskID).Error(0)
}

func (m *routineTaskRepositoryMock) IncrementUsage(ctx context.Context, userID, routineTaskID string, usedAt time.Time) error {
	return m.Called(ctx, userID, routineTaskID, usedAt).Error(0)
}

type routineTaskServiceMock struct {
	mock.Mock
}

func (m *routineTaskServiceMock) ListRoutineTasks(ctx context.Context, userID string) ([]domain.RoutineTask, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.RoutineTask), args.Error(1)
}

func (m *routineTaskServiceMock) CreateRoutineTask(ctx context.Context, userID string, input domain.CreateRoutineTaskInput) (domain.RoutineTask, error) {
	args := m.Called(ctx, userID, input)
	return args.Get(0).(domain.RoutineTask), args.Error(1)
}

func (m *routineTaskServiceMock) UpdateRoutineTask(ctx context.Context, userID, routineTaskID string, input domain.UpdateRoutineTaskInput) (domain.RoutineTask, error) {
	args := m.Called(ctx, userID, routineTaskID, input)
	return args.Get(0).(domain.RoutineTask), args.Error(1)
}

func (m *routineTaskServiceMock) DeleteRoutineTask(ctx context.Context, userID, routineTaskID string) error {
	return m.Called(ctx, userID, routineTaskID).Error(0)
}

func (m *routineTaskServiceMock) MarkUsed(ctx context.Context, userID, routineTaskID string) error {
	return m.Called(ctx, userID, routineTaskID).Error(0)
}

// inlineTx runs the unit of work directly.
type inlineTx struct{}

func (inlineTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
