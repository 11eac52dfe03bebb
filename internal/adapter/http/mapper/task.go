package mapper

import (
	"time"

	"eisenq/internal/adapter/http/dto"
	"eisenq/internal/core/domain"
)

const dayLayout = "2006-01-02"

func ToTaskItems(tasks []domain.Task) []dto.TaskItem {
	items := make([]dto.TaskItem, 0, len(tasks))
	for _, task := range tasks {
		items = append(items, ToTaskItem(task))
	}
	return items
}

func ToTaskItem(task domain.Task) dto.TaskItem {
	item := dto.TaskItem{
		ID:                    task.ID,
		UserID:                task.UserID,
		Title:                 task.Title,
		Quadrant:              string(task.Quadrant),
		Priority:              string(task.Priority),
		Status:                string(task.Status),
		CreatedAt:             formatTime(task.CreatedAt),
		UpdatedAt:             formatTime(task.UpdatedAt),
		SubtaskCount:          task.SubtaskCount,
		SubtaskCompletedCount: task.SubtaskCompletedCount,
	}

	if task.Description != nil {
		value := *task.Description
		item.Description = &value
	}

	if task.DueDate != nil {
		value := formatTime(*task.DueDate)
		item.DueDate = &value
	}

	if task.Duration != nil {
		value := *task.Duration
		item.Duration = &value
	}

	if task.IsSubtask() {
		value := *task.ParentTaskID
		item.ParentTaskID = &value
	}

	if task.CompletedAt != nil {
		value := formatTime(*task.CompletedAt)
		item.CompletedAt = &value
	}

	return item
}

func ToRoutineTaskItems(routineTasks []domain.RoutineTask) []dto.RoutineTaskItem {
	items := make([]dto.RoutineTaskItem, 0, len(routineTasks))
	for _, routineTask := range routineTasks {
		items = append(items, ToRoutineTaskItem(routineTask))
	}
	return items
}

func ToRoutineTaskItem(routineTask domain.RoutineTask) dto.RoutineTaskItem {
	item := dto.RoutineTaskItem{
		ID:         routineTask.ID,
		UserID:     routineTask.UserID,
		Title:      routineTask.Title,
		Quadrant:   string(routineTask.Quadrant),
		Priority:   string(routineTask.Priority),
		UsageCount: routineTask.UsageCount,
		CreatedAt:  formatTime(routineTask.CreatedAt),
		UpdatedAt:  formatTime(routineTask.UpdatedAt),
	}

	if routineTask.Description != nil {
		value := *routineTask.Description
		item.Description = &value
	}

	if routineTask.Duration != nil {
		value := *routineTask.Duration
		item.Duration = &value
	}

	if routineTask.LastUsedAt != nil {
		value := formatTime(*routineTask.LastUsedAt)
		item.LastUsedAt = &value
	}

	return item
}

func ToBulkDeleteResponse(result domain.BulkDeleteResult) dto.BulkDeleteResponse {
	failed := result.Failed
	if failed == nil {
		failed = []string{}
	}
	return dto.BulkDeleteResponse{
		Requested: result.Requested,
		Deleted:   result.Deleted,
		Failed:    failed,
	}
}

func ToTaskStatsResponse(stats domain.TaskStats) dto.TaskStatsResponse {
	return dto.TaskStatsResponse{
		Total:        stats.Total,
		Completed:    stats.Completed,
		HighPriority: stats.HighPriority,
		DueThisWeek:  stats.DueThisWeek,
	}
}

// ToCalendarResponse renders day cells as local dates of the view's
// location.
func ToCalendarResponse(view domain.CalendarView) dto.CalendarResponse {
	days := make([]dto.CalendarDayItem, 0, len(view.Days))
	for _, day := range view.Days {
		days = append(days, dto.CalendarDayItem{
			Date:  day.Date.Format(dayLayout),
			Tasks: ToTaskItems(day.Tasks),
		})
	}
	return dto.CalendarResponse{
		View:     view.Mode,
		Date:     view.Reference.Format(dayLayout),
		Timezone: view.Reference.Location().String(),
		Days:     days,
	}
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
