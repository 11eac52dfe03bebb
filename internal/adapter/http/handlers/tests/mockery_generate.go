package tests

// Regenerates expecter-style mocks of the service ports.
//
// Usage:
//   go generate ./internal/adapter/http/handlers/tests
//
//go:generate mockery --name TaskService --dir ../../../../core/ports --output ./mocks --outpkg mocks --filename task_service_mock.go --with-expecter
//go:generate mockery --name RoutineTaskService --dir ../../../../core/ports --output ./mocks --outpkg mocks --filename routine_task_service_mock.go --with-expecter
//go:generate mockery --name CalendarService --dir ../../../../core/ports --output ./mocks --outpkg mocks --filename calendar_service_mock.go --with-expecter
