package handlers

import (
	"net/http"

	"eisenq/internal/adapter/http/dto"
	"eisenq/internal/adapter/http/mapper"
	"eisenq/internal/adapter/http/middleware"
	"eisenq/internal/adapter/http/validation"
	"eisenq/internal/core/ports"
	"eisenq/pkg/apierrors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RoutineTaskHandler struct {
	routineTaskService ports.RoutineTaskService
}

func NewRoutineTaskHandler(routineTaskService ports.RoutineTaskService) *RoutineTaskHandler {
	return &RoutineTaskHandler{routineTaskService: routineTaskService}
}

func (h *RoutineTaskHandler) ListRoutineTasks(c *gin.Context) {
	routineTasks, err := h.routineTaskService.ListRoutineTasks(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		writeError(c, err, failure{
			invalidKey: apierrors.MsgInvalidRoutineTaskPayload,
			failKey:    apierrors.MsgFailListRoutineTasks,
			logMessage: "failed to list routine tasks",
		})
		return
	}

	c.JSON(http.StatusOK, mapper.ToRoutineTaskItems(routineTasks))
}

func (h *RoutineTaskHandler) CreateRoutineTask(c *gin.Context) {
	createFailure := failure{
		invalidKey: apierrors.MsgInvalidRoutineTaskPayload,
		failKey:    apierrors.MsgFailCreateRoutineTask,
		logMessage: "failed to create routine task",
	}

	var req dto.CreateRoutineTaskRequest
	if _, err := validation.BindJSON(c, &req); err != nil {
		writeError(c, err, createFailure)
		return
	}

	routineTask, err := h.routineTaskService.CreateRoutineTask(
		c.Request.Context(),
		middleware.GetUserID(c),
		validation.BuildCreateRoutineTaskInput(req),
	)
	if err != nil {
		writeError(c, err, createFailure)
		return
	}

	c.JSON(http.StatusCreated, mapper.ToRoutineTaskItem(routineTask))
}

func (h *RoutineTaskHandler) UpdateRoutineTask(c *gin.Context) {
	updateFailure := failure{
		invalidKey: apierrors.MsgInvalidRoutineTaskPayload,
		failKey:    apierrors.MsgFailUpdateRoutineTask,
		logMessage: "failed to update routine task",
	}

	var req dto.UpdateRoutineTaskRequest
	raw, err := validation.BindJSON(c, &req)
	if err != nil {
		writeError(c, err, updateFailure)
		return
	}

	routineTaskID := c.Param("id")
	if routineTaskID == "" {
		routineTaskID = req.ID
	}

	routineTask, err := h.routineTaskService.UpdateRoutineTask(
		c.Request.Context(),
		middleware.GetUserID(c),
		routineTaskID,
		validation.BuildUpdateRoutineTaskInput(req, raw),
	)
	if err != nil {
		writeError(c, err, updateFailure, zap.String("routine_task_id", routineTaskID))
		return
	}

	c.JSON(http.StatusOK, mapper.ToRoutineTaskItem(routineTask))
}

func (h *RoutineTaskHandler) DeleteRoutineTask(c *gin.Context) {
	routineTaskID := routineTaskIDOf(c)

	if err := h.routineTaskService.DeleteRoutineTask(c.Request.Context(), middleware.GetUserID(c), routineTaskID); err != nil {
		writeError(c, err, failure{
			invalidKey: apierrors.MsgInvalidRoutineTaskPayload,
			failKey:    apierrors.MsgFailDeleteRoutineTask,
			logMessage: "failed to delete routine task",
		}, zap.String("routine_task_id", routineTaskID))
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Routine task deleted"})
}

// MarkUsed records that the template was applied to a new task.
func (h *RoutineTaskHandler) MarkUsed(c *gin.Context) {
	routineTaskID := routineTaskIDOf(c)

	if err := h.routineTaskService.MarkUsed(c.Request.Context(), middleware.GetUserID(c), routineTaskID); err != nil {
		writeError(c, err, failure{
			invalidKey: apierrors.MsgInvalidRoutineTaskPayload,
			failKey:    apierrors.MsgFailUseRoutineTask,
			logMessage: "failed to record routine task usage",
		}, zap.String("routine_task_id", routineTaskID))
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Usage recorded"})
}

func routineTaskIDOf(c *gin.Context) string {
	if id := c.Param("id"); id != "" {
		return id
	}
	return c.Query("id")
}
