package tests

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"time"

	httpadapter "eisenq/internal/adapter/http"
	"eisenq/internal/adapter/http/handlers"
	"eisenq/internal/adapter/http/middleware"
	"eisenq/internal/core/domain"
	"eisenq/pkg/translator"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
)

const (
	testToken = "token-alice"
	testUser  = "user_alice"
)

type taskServiceMock struct {
	mock.Mock
}

func (m *taskServiceMock) ListTasks(ctx context.Context, userID string, filter domain.TaskFilter) ([]domain.Task, error) {
	args := m.Called(ctx, userID, filter)

	var tasks []domain.Task
	if value := args.Get(0); value != nil {
		tasks = value.([]domain.Task)
	}
	return tasks, args.Error(1)
}

func (m *taskServiceMock) GetTask(ctx context.Context, userID, taskID string) (domain.Task, error) {
	args := m.Called(ctx, userID, taskID)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) ListSubtasks(ctx context.Context, userID, parentID string) ([]domain.Task, error) {
	args := m.Called(ctx, userID, parentID)

	var tasks []domain.Task
	if value := args.Get(0); value != nil {
		tasks = value.([]domain.Task)
	}
	return tasks, args.Error(1)
}

func (m *taskServiceMock) CreateTask(ctx context.Context, userID string, input domain.CreateTaskInput) (domain.Task, error) {
	args := m.Called(ctx, userID, input)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) UpdateTask(ctx context.Context, userID, taskID string, input domain.UpdateTaskInput) (domain.Task, error) {
	args := m.Called(ctx, userID, taskID, input)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) DeleteTask(ctx context.Context, userID, taskID string) error {
	return m.Called(ctx, userID, taskID).Error(0)
}

func (m *taskServiceMock) BulkDeleteTasks(ctx context.Context, userID string, taskIDs []string) (domain.BulkDeleteResult, error) {
	args := m.Called(ctx, userID, taskIDs)
	return args.Get(0).(domain.BulkDeleteResult), args.Error(1)
}

func (m *taskServiceMock) Stats(ctx context.Context, userID string, now time.Time) (domain.TaskStats, error) {
	args := m.Called(ctx, userID, now)
	return args.Get(0).(domain.TaskStats), args.Error(1)
}

type routineTaskServiceMock struct {
	mock.Mock
}

func (m *routineTaskServiceMock) ListRoutineTasks(ctx context.Context, userID string) ([]domain.RoutineTask, error) {
	args := m.Called(ctx, userID)

	var routineTasks []domain.RoutineTask
	if value := args.Get(0); value != nil {
		routineTasks = value.([]domain.RoutineTask)
	}
	return routineTasks, args.Error(1)
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

type calendarServiceMock struct {
	mock.Mock
}

func (m *calendarServiceMock) View(ctx context.Context, userID string, query domain.CalendarQuery) (domain.CalendarView, error) {
	args := m.Called(ctx, userID, query)
	return args.Get(0).(domain.CalendarView), args.Error(1)
}

type pingerMock struct {
	err error
}

func (p pingerMock) PingContext(context.Context) error { return p.err }

type staticAuthenticator struct{}

func (staticAuthenticator) Authenticate(_ context.Context, token string) (string, error) {
	if token == testToken {
		return testUser, nil
	}
	return "", domain.ErrUnauthenticated
}

type testServices struct {
	tasks    *taskServiceMock
	routines *routineTaskServiceMock
	calendar *calendarServiceMock
	store    pingerMock
	now      func() time.Time
}

func newTestServices() *testServices {
	return &testServices{
		tasks:    new(taskServiceMock),
		routines: new(routineTaskServiceMock),
		calendar: new(calendarServiceMock),
	}
}

// newRouter mounts the real route table over the mocked services.
func newRouter(s *testServices) *gin.Engine {
	router := gin.New()
	httpadapter.RegisterRoutes(router, httpadapter.Handlers{
		Health:      handlers.NewHealthHandler(s.store, "sqlite"),
		Tasks:       handlers.NewTaskHandler(s.tasks, handlers.WithClock(s.now)),
		RoutineTask: handlers.NewRoutineTaskHandler(s.routines),
		Calendar:    handlers.NewCalendarHandler(s.calendar, handlers.WithClock(s.now)),
	}, staticAuthenticator{}, time.UTC)
	return router
}

func doRequest(router *gin.Engine, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Authorization", "Bearer "+testToken)
	req.Header.Set("Accept-Language", translator.LanguageEn)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func withTimezone(name string) map[string]string {
	return map[string]string{middleware.TimezoneHeader: name}
}

func ptr[T any](value T) *T {
	return &value
}
