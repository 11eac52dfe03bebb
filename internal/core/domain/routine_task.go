package domain

import "time"

// RoutineTask is a reusable template copied into a new task.
type RoutineTask struct {
	ID          string
	UserID      string
	Title       string
	Description *string
	Quadrant    Quadrant
	Priority    Priority
	Duration    *int
	UsageCount  int
	LastUsedAt  *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type CreateRoutineTaskInput struct {
	Title       string
	Description *string
	Quadrant    Quadrant
	Priority    Priority
	Duration    *int
}

type UpdateRoutineTaskInput struct {
	Title       Patch[string]
	Description Patch[string]
	Quadrant    Patch[Quadrant]
	Priority    Patch[Priority]
	Duration    Patch[int]
}

func (in UpdateRoutineTaskInput) IsEmpty() bool {
	return in.Title.IsUnchanged() &&
		in.Description.IsUnchanged() &&
		in.Quadrant.IsUnchanged() &&
		in.Priority.IsUnchanged() &&
		in.Duration.IsUnchanged()
}

type RoutineTaskChanges struct {
	UpdateRoutineTaskInput
	UpdatedAt time.Time
}
