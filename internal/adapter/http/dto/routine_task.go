package dto

type RoutineTaskItem struct {
	ID          string  `json:"_id"`
	UserID      string  `json:"userId"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Quadrant    string  `json:"quadrant"`
	Priority    string  `json:"priority"`
	Duration    *int    `json:"duration,omitempty"`
	UsageCount  int     `json:"usageCount"`
	LastUsedAt  *string `json:"lastUsedAt,omitempty"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

type CreateRoutineTaskRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description *string `json:"description"`
	Quadrant    string  `json:"quadrant" binding:"required"`
	Priority    string  `json:"priority" binding:"required"`
	Duration    *int    `json:"duration"`
}

type UpdateRoutineTaskRequest struct {
	ID          string  `json:"_id"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Quadrant    *string `json:"quadrant"`
	Priority    *string `json:"priority"`
	Duration    *int    `json:"duration"`
}
