package domain

import "time"

type Quadrant string

const (
	QuadrantUrgentImportant       Quadrant = "urgent-important"
	QuadrantImportantNotUrgent    Quadrant = "important-not-urgent"
	QuadrantUrgentNotImportant    Quadrant = "urgent-not-important"
	QuadrantNotUrgentNotImportant Quadrant = "not-urgent-not-important"
)

var Quadrants = []Quadrant{
	QuadrantUrgentImportant,
	QuadrantImportantNotUrgent,
	QuadrantUrgentNotImportant,
	QuadrantNotUrgentNotImportant,
}

func (q Quadrant) IsValid() bool {
	for _, known := range Quadrants {
		if q == known {
			return true
		}
	}
	return false
}

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

const (
	TitleMaxLength       = 500
	DescriptionMaxLength = 5000
	DurationMinMinutes   = 1
	DurationMaxMinutes   = 1440
)

// Task is a unit of work owned by exactly one user. A task with a
// ParentTaskID is a subtask; hierarchy depth is one level.
type Task struct {
	ID           string
	UserID       string
	Title        string
	Description  *string
	Quadrant     Quadrant
	Priority     Priority
	Status       TaskStatus
	DueDate      *time.Time
	Duration     *int
	ParentTaskID *string
	CompletedAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Derived at read time from the live subtask set, never persisted.
	SubtaskCount          int
	SubtaskCompletedCount int
}

// IsSubtask reports whether the task references a parent.
func (t Task) IsSubtask() bool {
	return t.ParentTaskID != nil && *t.ParentTaskID != ""
}

type CreateTaskInput struct {
	Title         string
	Description   *string
	Quadrant      Quadrant
	Priority      Priority
	Status        TaskStatus
	DueDate       *time.Time
	Duration      *int
	ParentTaskID  *string
	RoutineTaskID *string
}

// UpdateTaskInput is a sparse update. Fields left unchanged are not written.
type UpdateTaskInput struct {
	Title       Patch[string]
	Description Patch[string]
	Quadrant    Patch[Quadrant]
	Priority    Patch[Priority]
	Status      Patch[TaskStatus]
	DueDate     Patch[time.Time]
	Duration    Patch[int]
}

// IsEmpty reports whether no field would change.
func (in UpdateTaskInput) IsEmpty() bool {
	return in.Title.IsUnchanged() &&
		in.Description.IsUnchanged() &&
		in.Quadrant.IsUnchanged() &&
		in.Priority.IsUnchanged() &&
		in.Status.IsUnchanged() &&
		in.DueDate.IsUnchanged() &&
		in.Duration.IsUnchanged()
}

// TaskChanges is what a repository writes for one task. It carries the
// patch plus the fields maintained by the service.
type TaskChanges struct {
	UpdateTaskInput
	CompletedAt Patch[time.Time]
	UpdatedAt   time.Time
}

// TaskFilter narrows a task listing. Zero values mean "no filter".
type TaskFilter struct {
	Search   string
	Quadrant Quadrant
	Priority Priority
	Status   TaskStatus
}

// Normalize drops enum values outside their sets so they are ignored
// rather than rejected.
func (f TaskFilter) Normalize() TaskFilter {
	if !f.Quadrant.IsValid() {
		f.Quadrant = ""
	}
	if !f.Priority.IsValid() {
		f.Priority = ""
	}
	if !f.Status.IsValid() {
		f.Status = ""
	}
	return f
}

type BulkDeleteResult struct {
	Requested int
	Deleted   int
	Failed    []string
}

type TaskStats struct {
	Total        int
	Completed    int
	HighPriority int
	DueThisWeek  int
}
