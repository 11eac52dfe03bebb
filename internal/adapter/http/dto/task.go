package dto

// TaskItem is the wire form of a task. Timestamps are RFC3339 in UTC.
type TaskItem struct {
	ID                    string  `json:"_id"`
	UserID                string  `json:"userId"`
	Title                 string  `json:"title"`
	Description           *string `json:"description,omitempty"`
	Quadrant              string  `json:"quadrant"`
	Priority              string  `json:"priority"`
	Status                string  `json:"status"`
	DueDate               *string `json:"dueDate,omitempty"`
	Duration              *int    `json:"duration,omitempty"`
	ParentTaskID          *string `json:"parentTaskId"`
	CompletedAt           *string `json:"completedAt,omitempty"`
	CreatedAt             string  `json:"createdAt"`
	UpdatedAt             string  `json:"updatedAt"`
	SubtaskCount          int     `json:"subtaskCount"`
	SubtaskCompletedCount int     `json:"subtaskCompletedCount"`
}

// CreateTaskRequest accepts either an absolute dueDate (RFC3339) or a local
// dueDay plus optional dueTime combined in the viewer's timezone.
type CreateTaskRequest struct {
	Title         string  `json:"title" binding:"required"`
	Description   *string `json:"description"`
	Quadrant      string  `json:"quadrant" binding:"required"`
	Priority      string  `json:"priority" binding:"required"`
	Status        string  `json:"status"`
	DueDate       *string `json:"dueDate" binding:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	DueDay        *string `json:"dueDay"`
	DueTime       *string `json:"dueTime"`
	Duration      *int    `json:"duration"`
	ParentTaskID  *string `json:"parentTaskId" binding:"omitempty,uuid"`
	RoutineTaskID *string `json:"routineTaskId" binding:"omitempty,uuid"`
}

// UpdateTaskRequest is decoded alongside the raw body so that an absent
// field and an explicit null stay distinguishable.
type UpdateTaskRequest struct {
	ID          string  `json:"_id"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Quadrant    *string `json:"quadrant"`
	Priority    *string `json:"priority"`
	Status      *string `json:"status"`
	DueDate     *string `json:"dueDate" binding:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	DueDay      *string `json:"dueDay"`
	DueTime     *string `json:"dueTime"`
	Duration    *int    `json:"duration"`
}

type BulkDeleteRequest struct {
	IDs []string `json:"ids" binding:"required"`
}

type BulkDeleteResponse struct {
	Requested int      `json:"requested"`
	Deleted   int      `json:"deleted"`
	Failed    []string `json:"failed"`
}

type TaskStatsResponse struct {
	Total        int `json:"total"`
	Completed    int `json:"completed"`
	HighPriority int `json:"highPriority"`
	DueThisWeek  int `json:"dueThisWeek"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
