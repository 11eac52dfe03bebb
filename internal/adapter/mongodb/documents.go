package mongodb

import (
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"eisenq/internal/core/domain"
)

type taskDocument struct {
	ID           string     `bson:"_id"`
	UserID       string     `bson:"userId"`
	Title        string     `bson:"title"`
	Description  *string    `bson:"description,omitempty"`
	Quadrant     string     `bson:"quadrant"`
	Priority     string     `bson:"priority"`
	Status       string     `bson:"status"`
	DueDate      *time.Time `bson:"dueDate,omitempty"`
	Duration     *int       `bson:"duration,omitempty"`
	ParentTaskID *string    `bson:"parentTaskId,omitempty"`
	CompletedAt  *time.Time `bson:"completedAt,omitempty"`
	CreatedAt    time.Time  `bson:"createdAt"`
	UpdatedAt    time.Time  `bson:"updatedAt"`
}

// taskAggregate is a task as returned by the counting pipeline.
type taskAggregate struct {
	Task                  taskDocument `bson:",inline"`
	SubtaskCount          int          `bson:"subtaskCount"`
	SubtaskCompletedCount int          `bson:"subtaskCompletedCount"`
}

type routineTaskDocument struct {
	ID          string     `bson:"_id"`
	UserID      string     `bson:"userId"`
	Title       string     `bson:"title"`
	Description *string    `bson:"description,omitempty"`
	Quadrant    string     `bson:"quadrant"`
	Priority    string     `bson:"priority"`
	Duration    *int       `bson:"duration,omitempty"`
	UsageCount  int        `bson:"usageCount"`
	LastUsedAt  *time.Time `bson:"lastUsedAt,omitempty"`
	CreatedAt   time.Time  `bson:"createdAt"`
	UpdatedAt   time.Time  `bson:"updatedAt"`
}

func newTaskDocument(task domain.Task) taskDocument {
	return taskDocument{
		ID:           task.ID,
		UserID:       task.UserID,
		Title:        task.Title,
		Description:  task.Description,
		Quadrant:     string(task.Quadrant),
		Priority:     string(task.Priority),
		Status:       string(task.Status),
		DueDate:      utcPtr(task.DueDate),
		Duration:     task.Duration,
		ParentTaskID: task.ParentTaskID,
		CompletedAt:  utcPtr(task.CompletedAt),
		CreatedAt:    task.CreatedAt.UTC(),
		UpdatedAt:    task.UpdatedAt.UTC(),
	}
}

func (d taskDocument) toDomain() domain.Task {
	task := domain.Task{
		ID:          d.ID,
		UserID:      d.UserID,
		Title:       d.Title,
		Description: d.Description,
		Quadrant:    domain.Quadrant(d.Quadrant),
		Priority:    domain.Priority(d.Priority),
		Status:      domain.TaskStatus(d.Status),
		DueDate:     utcPtr(d.DueDate),
		Duration:    d.Duration,
		CompletedAt: utcPtr(d.CompletedAt),
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}
	if d.ParentTaskID != nil && *d.ParentTaskID != "" {
		task.ParentTaskID = d.ParentTaskID
	}
	return task
}

func (a taskAggregate) toDomain() domain.Task {
	task := a.Task.toDomain()
	task.SubtaskCount = a.SubtaskCount
	task.SubtaskCompletedCount = a.SubtaskCompletedCount
	return task
}

func newRoutineTaskDocument(routineTask domain.RoutineTask) routineTaskDocument {
	return routineTaskDocument{
		ID:          routineTask.ID,
		UserID:      routineTask.UserID,
		Title:       routineTask.Title,
		Description: routineTask.Description,
		Quadrant:    string(routineTask.Quadrant),
		Priority:    string(routineTask.Priority),
		Duration:    routineTask.Duration,
		UsageCount:  routineTask.UsageCount,
		LastUsedAt:  utcPtr(routineTask.LastUsedAt),
		CreatedAt:   routineTask.CreatedAt.UTC(),
		UpdatedAt:   routineTask.UpdatedAt.UTC(),
	}
}

func (d routineTaskDocument) toDomain() domain.RoutineTask {
	return domain.RoutineTask{
		ID:          d.ID,
		UserID:      d.UserID,
		Title:       d.Title,
		Description: d.Description,
		Quadrant:    domain.Quadrant(d.Quadrant),
		Priority:    domain.Priority(d.Priority),
		Duration:    d.Duration,
		UsageCount:  d.UsageCount,
		LastUsedAt:  utcPtr(d.LastUsedAt),
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}
}

// rootTaskFilter matches the owner's parent-eligible tasks. A null
// comparison also matches documents with no parentTaskId field.
func rootTaskFilter(userID string, filter domain.TaskFilter) bson.M {
	match := bson.M{"userId": userID, "parentTaskId": nil}

	if filter.Search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(filter.Search), Options: "i"}
		match["$or"] = bson.A{
			bson.M{"title": pattern},
			bson.M{"description": pattern},
		}
	}
	if filter.Quadrant != "" {
		match["quadrant"] = string(filter.Quadrant)
	}
	if filter.Priority != "" {
		match["priority"] = string(filter.Priority)
	}
	if filter.Status != "" {
		match["status"] = string(filter.Status)
	}
	return match
}

// countingPipeline joins each matched task to its live subtasks of the same
// owner and replaces them with the two counts.
func countingPipeline(match bson.M) []bson.M {
	return []bson.M{
		{"$match": match},
		{"$lookup": bson.M{
			"from": tasksCollection,
			"let":  bson.M{"parentId": "$_id", "owner": "$userId"},
			"pipeline": bson.A{
				bson.M{"$match": bson.M{"$expr": bson.M{"$and": bson.A{
					bson.M{"$eq": bson.A{"$parentTaskId", "$$parentId"}},
					bson.M{"$eq": bson.A{"$userId", "$$owner"}},
				}}}},
				bson.M{"$project": bson.M{"status": 1}},
			},
			"as": "subtasks",
		}},
		{"$addFields": bson.M{
			"subtaskCount": bson.M{"$size": "$subtasks"},
			"subtaskCompletedCount": bson.M{"$size": bson.M{"$filter": bson.M{
				"input": "$subtasks",
				"as":    "subtask",
				"cond":  bson.M{"$eq": bson.A{"$$subtask.status", string(domain.TaskStatusCompleted)}},
			}}},
		}},
		{"$project": bson.M{"subtasks": 0}},
		{"$sort": bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}},
	}
}

// updateDocument turns sparse changes into $set and $unset operators.
// updatedAt is always written.
func updateDocument(fields []patchField, updatedAt time.Time) bson.M {
	set := bson.M{"updatedAt": updatedAt.UTC()}
	unset := bson.M{}
	for _, field := range fields {
		switch {
		case field.cleared:
			unset[field.name] = ""
		case field.set:
			set[field.name] = field.value
		}
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	return update
}

type patchField struct {
	name    string
	set     bool
	cleared bool
	value   any
}

func fieldOf[T any](name string, patch domain.Patch[T], convert func(T) any) patchField {
	value, ok := patch.Value()
	field := patchField{name: name, set: ok, cleared: patch.IsCleared()}
	if ok {
		field.value = convert(value)
	}
	return field
}

func identity[T any](value T) any { return value }

func toUTC(t time.Time) any { return t.UTC() }

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	value := t.UTC()
	return &value
}
