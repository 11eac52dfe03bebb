package http

import (
	"time"

	"eisenq/internal/adapter/http/handlers"
	"eisenq/internal/adapter/http/middleware"
	"eisenq/internal/adapter/http/validation"
	"eisenq/internal/core/ports"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Health      *handlers.HealthHandler
	Tasks       *handlers.TaskHandler
	RoutineTask *handlers.RoutineTaskHandler
	Calendar    *handlers.CalendarHandler
}

// RegisterRoutes mounts the API under /api. Everything but health requires
// a bearer token.
func RegisterRoutes(r *gin.Engine, h Handlers, authenticator ports.Authenticator, defaultLocation *time.Location) {
	validation.UseJSONFieldNames()

	api := r.Group("/api")
	api.Use(middleware.LanguageMiddleware())
	{
		api.GET("/health", h.Health.CheckHealth)
		api.GET("/health/report", h.Health.CheckHealthReport)
	}

	secured := api.Group("")
	secured.Use(middleware.AuthMiddleware(authenticator), middleware.TimezoneMiddleware(defaultLocation))
	{
		secured.GET("/tasks", h.Tasks.ListTasks)
		secured.POST("/tasks", h.Tasks.CreateTask)
		secured.PUT("/tasks", h.Tasks.UpdateTask)
		secured.DELETE("/tasks", h.Tasks.DeleteTask)
		secured.POST("/tasks/bulk-delete", h.Tasks.BulkDeleteTasks)
		secured.GET("/tasks/stats", h.Tasks.Stats)
		secured.PATCH("/tasks/:id", h.Tasks.UpdateTask)
		secured.DELETE("/tasks/:id", h.Tasks.DeleteTask)
		secured.GET("/tasks/:id/subtasks", h.Tasks.ListSubtasks)
		secured.GET("/tasks/:id/export", h.Tasks.ExportTask)

		secured.GET("/calendar", h.Calendar.View)

		secured.GET("/routine-tasks", h.RoutineTask.ListRoutineTasks)
		secured.POST("/routine-tasks", h.RoutineTask.CreateRoutineTask)
		secured.PUT("/routine-tasks", h.RoutineTask.UpdateRoutineTask)
		secured.DELETE("/routine-tasks", h.RoutineTask.DeleteRoutineTask)
		secured.PATCH("/routine-tasks", h.RoutineTask.MarkUsed)
		secured.PATCH("/routine-tasks/:id", h.RoutineTask.UpdateRoutineTask)
		secured.DELETE("/routine-tasks/:id", h.RoutineTask.DeleteRoutineTask)
		secured.POST("/routine-tasks/:id/use", h.RoutineTask.MarkUsed)
	}
}
