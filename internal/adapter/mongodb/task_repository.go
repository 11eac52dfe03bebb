package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"eisenq/internal/core/domain"
	"eisenq/internal/core/ports"
)

type TaskRepository struct {
	collection *mongo.Collection
}

var _ ports.TaskRepository = (*TaskRepository)(nil)

func NewTaskRepository(store *Store) *TaskRepository {
	return &TaskRepository{collection: store.database.Collection(tasksCollection)}
}

func (r *TaskRepository) ListTasks(ctx context.Context, userID string, filter domain.TaskFilter) ([]domain.Task, error) {
	cursor, err := r.collection.Aggregate(ctx, countingPipeline(rootTaskFilter(userID, filter)))
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	var aggregates []taskAggregate
	if err := cursor.All(ctx, &aggregates); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}

	tasks := make([]domain.Task, 0, len(aggregates))
	for _, aggregate := range aggregates {
		tasks = append(tasks, aggregate.toDomain())
	}
	return tasks, nil
}

func (r *TaskRepository) GetTask(ctx context.Context, userID, taskID string) (domain.Task, error) {
	cursor, err := r.collection.Aggregate(ctx, countingPipeline(bson.M{"_id": taskID, "userId": userID}))
	if err != nil {
		return domain.Task{}, fmt.Errorf("get task: %w", err)
	}
	defer cursor.Close(ctx)

	if !cursor.Next(ctx) {
		if err := cursor.Err(); err != nil {
			return domain.Task{}, fmt.Errorf("get task: %w", err)
		}
		return domain.Task{}, domain.ErrTaskNotFound
	}

	var aggregate taskAggregate
	if err := cursor.Decode(&aggregate); err != nil {
		return domain.Task{}, fmt.Errorf("decode task: %w", err)
	}
	return aggregate.toDomain(), nil
}

func (r *TaskRepository) ListSubtasks(ctx context.Context, userID, parentID string) ([]domain.Task, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID, "parentTaskId": parentID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list subtasks: %w", err)
	}

	var documents []taskDocument
	if err := cursor.All(ctx, &documents); err != nil {
		return nil, fmt.Errorf("decode subtasks: %w", err)
	}

	tasks := make([]domain.Task, 0, len(documents))
	for _, document := range documents {
		tasks = append(tasks, document.toDomain())
	}
	return tasks, nil
}

func (r *TaskRepository) CreateTask(ctx context.Context, task domain.Task) error {
	if _, err := r.collection.InsertOne(ctx, newTaskDocument(task)); err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

func (r *TaskRepository) UpdateTask(ctx context.Context, userID, taskID string, changes domain.TaskChanges) error {
	update := updateDocument(taskPatchFields(changes), changes.UpdatedAt)

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": taskID, "userId": userID}, update)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepository) SetSubtasksQuadrant(ctx context.Context, userID, parentID string, quadrant domain.Quadrant, updatedAt time.Time) (int64, error) {
	result, err := r.collection.UpdateMany(ctx,
		bson.M{"userId": userID, "parentTaskId": parentID},
		bson.M{"$set": bson.M{"quadrant": string(quadrant), "updatedAt": updatedAt.UTC()}},
	)
	if err != nil {
		return 0, fmt.Errorf("update subtask quadrant: %w", err)
	}
	return result.MatchedCount, nil
}

func (r *TaskRepository) DeleteSubtasks(ctx context.Context, userID, parentID string) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"userId": userID, "parentTaskId": parentID})
	if err != nil {
		return 0, fmt.Errorf("delete subtasks: %w", err)
	}
	return result.DeletedCount, nil
}

func (r *TaskRepository) DeleteTask(ctx context.Context, userID, taskID string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": taskID, "userId": userID})
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func taskPatchFields(changes domain.TaskChanges) []patchField {
	return []patchField{
		fieldOf("title", changes.Title, identity[string]),
		fieldOf("description", changes.Description, identity[string]),
		fieldOf("quadrant", changes.Quadrant, func(q domain.Quadrant) any { return string(q) }),
		fieldOf("priority", changes.Priority, func(p domain.Priority) any { return string(p) }),
		fieldOf("status", changes.Status, func(s domain.TaskStatus) any { return string(s) }),
		fieldOf("dueDate", changes.DueDate, toUTC),
		fieldOf("duration", changes.Duration, identity[int]),
		fieldOf("completedAt", changes.CompletedAt, toUTC),
	}
}
