package handlers

import (
	"net/http"
	"time"

	"eisenq/internal/adapter/calexport"
	"eisenq/internal/adapter/http/dto"
	"eisenq/internal/adapter/http/mapper"
	"eisenq/internal/adapter/http/middleware"
	"eisenq/internal/adapter/http/validation"
	"eisenq/internal/core/domain"
	"eisenq/internal/core/ports"
	"eisenq/pkg/apierrors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type TaskHandler struct {
	taskService ports.TaskService
	now         func() time.Time
}

func NewTaskHandler(taskService ports.TaskService, opts ...Option) *TaskHandler {
	return &TaskHandler{taskService: taskService, now: applyOptions(opts).now}
}

func (h *TaskHandler) ListTasks(c *gin.Context) {
	filter := domain.TaskFilter{
		Search:   c.Query("search"),
		Quadrant: domain.Quadrant(c.Query("quadrant")),
		Priority: domain.Priority(c.Query("priority")),
		Status:   domain.TaskStatus(c.Query("status")),
	}

	tasks, err := h.taskService.ListTasks(c.Request.Context(), middleware.GetUserID(c), filter)
	if err != nil {
		writeError(c, err, failure{
			invalidKey: apierrors.MsgInvalidTaskPayload,
			failKey:    apierrors.MsgFailListTask,
			logMessage: "failed to list tasks",
		})
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItems(tasks))
}

func (h *TaskHandler) ListSubtasks(c *gin.Context) {
	taskID := c.Param("id")

	subtasks, err := h.taskService.ListSubtasks(c.Request.Context(), middleware.GetUserID(c), taskID)
	if err != nil {
		writeError(c, err, failure{
			invalidKey: apierrors.MsgInvalidTaskID,
			failKey:    apierrors.MsgFailListSubtasks,
			logMessage: "failed to list subtasks",
		}, zap.String("task_id", taskID))
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItems(subtasks))
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	createFailure := failure{
		invalidKey: apierrors.MsgInvalidTaskPayload,
		failKey:    apierrors.MsgFailCreateTask,
		logMessage: "failed to create task",
	}

	var req dto.CreateTaskRequest
	if _, err := validation.BindJSON(c, &req); err != nil {
		writeError(c, err, createFailure)
		return
	}

	input, err := validation.BuildCreateTaskInput(req, middleware.GetLocation(c))
	if err != nil {
		writeError(c, err, createFailure)
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), middleware.GetUserID(c), input)
	if err != nil {
		writeError(c, err, createFailure)
		return
	}

	c.JSON(http.StatusCreated, mapper.ToTaskItem(task))
}

// UpdateTask takes the id from the path, or from the body's _id on the
// collection route.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	updateFailure := failure{
		invalidKey: apierrors.MsgInvalidTaskPayload,
		failKey:    apierrors.MsgFailUpdateTask,
		logMessage: "failed to update task",
	}

	var req dto.UpdateTaskRequest
	raw, err := validation.BindJSON(c, &req)
	if err != nil {
		writeError(c, err, updateFailure)
		return
	}

	taskID := c.Param("id")
	if taskID == "" {
		taskID = req.ID
	}

	input, err := validation.BuildUpdateTaskInput(req, raw, middleware.GetLocation(c))
	if err != nil {
		writeError(c, err, updateFailure)
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), middleware.GetUserID(c), taskID, input)
	if err != nil {
		writeError(c, err, updateFailure, zap.String("task_id", taskID))
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task))
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	taskID := c.Param("id")
	if taskID == "" {
		taskID = c.Query("id")
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), middleware.GetUserID(c), taskID); err != nil {
		writeError(c, err, failure{
			invalidKey: apierrors.MsgInvalidTaskID,
			failKey:    apierrors.MsgFailDeleteTask,
			logMessage: "failed to delete task",
		}, zap.String("task_id", taskID))
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Task deleted"})
}

func (h *TaskHandler) BulkDeleteTasks(c *gin.Context) {
	bulkFailure := failure{
		invalidKey: apierrors.MsgInvalidTaskPayload,
		failKey:    apierrors.MsgFailBulkDelete,
		logMessage: "failed to bulk delete tasks",
	}

	var req dto.BulkDeleteRequest
	if _, err := validation.BindJSON(c, &req); err != nil {
		writeError(c, err, bulkFailure)
		return
	}

	result, err := h.taskService.BulkDeleteTasks(c.Request.Context(), middleware.GetUserID(c), req.IDs)
	if err != nil {
		writeError(c, err, bulkFailure, zap.Int("requested", len(req.IDs)))
		return
	}

	c.JSON(http.StatusOK, mapper.ToBulkDeleteResponse(result))
}

// Stats counts against the current day in the viewer's timezone.
func (h *TaskHandler) Stats(c *gin.Context) {
	now := h.now().In(middleware.GetLocation(c))

	stats, err := h.taskService.Stats(c.Request.Context(), middleware.GetUserID(c), now)
	if err != nil {
		writeError(c, err, failure{
			invalidKey: apierrors.MsgInvalidTaskPayload,
			failKey:    apierrors.MsgFailTaskStats,
			logMessage: "failed to compute task stats",
		})
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskStatsResponse(stats))
}

// ExportTask returns a provider compose link, or the ICS file when the
// provider is ics or omitted.
func (h *TaskHandler) ExportTask(c *gin.Context) {
	taskID := c.Param("id")
	exportFailure := failure{
		invalidKey: apierrors.MsgInvalidExport,
		failKey:    apierrors.MsgFailExport,
		logMessage: "failed to export task",
	}

	provider, err := calexport.ParseProvider(c.Query("provider"))
	if err != nil {
		writeError(c, err, exportFailure)
		return
	}

	task, err := h.taskService.GetTask(c.Request.Context(), middleware.GetUserID(c), taskID)
	if err != nil {
		writeError(c, err, exportFailure, zap.String("task_id", taskID))
		return
	}

	event, err := calexport.EventFromTask(task)
	if err != nil {
		writeError(c, err, exportFailure, zap.String("task_id", taskID))
		return
	}

	if provider == calexport.ProviderICS {
		c.Header("Content-Disposition", `attachment; filename="`+calexport.FileName(event)+`"`)
		c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(calexport.ICS(event, h.now())))
		return
	}

	link, err := calexport.URL(provider, event)
	if err != nil {
		writeError(c, err, exportFailure, zap.String("task_id", taskID), zap.String("provider", string(provider)))
		return
	}

	c.JSON(http.StatusOK, dto.ExportLinkResponse{Provider: string(provider), URL: link})
}
