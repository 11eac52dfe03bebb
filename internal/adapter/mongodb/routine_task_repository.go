package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"eisenq/internal/core/domain"
	"eisenq/internal/core/ports"
)

type RoutineTaskRepository struct {
	collection *mongo.Collection
}

var _ ports.RoutineTaskRepository = (*RoutineTaskRepository)(nil)

func NewRoutineTaskRepository(store *Store) *RoutineTaskRepository {
	return &RoutineTaskRepository{collection: store.database.Collection(routineTasksCollection)}
}

func (r *RoutineTaskRepository) ListRoutineTasks(ctx context.Context, userID string) ([]domain.RoutineTask, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "usageCount", Value: -1},
		{Key: "lastUsedAt", Value: -1},
		{Key: "createdAt", Value: -1},
		{Key: "_id", Value: -1},
	})
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list routine tasks: %w", err)
	}

	var documents []routineTaskDocument
	if err := cursor.All(ctx, &documents); err != nil {
		return nil, fmt.Errorf("decode routine tasks: %w", err)
	}

	routineTasks := make([]domain.RoutineTask, 0, len(documents))
	for _, document := range documents {
		routineTasks = append(routineTasks, document.toDomain())
	}
	return routineTasks, nil
}

func (r *RoutineTaskRepository) GetRoutineTask(ctx context.Context, userID, routineTaskID string) (domain.RoutineTask, error) {
	var document routineTaskDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": routineTaskID, "userId": userID}).Decode(&document)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.RoutineTask{}, domain.ErrRoutineTaskNotFound
	}
	if err != nil {
		return domain.RoutineTask{}, fmt.Errorf("get routine task: %w", err)
	}
	return document.toDomain(), nil
}

func (r *RoutineTaskRepository) CreateRoutineTask(ctx context.Context, routineTask domain.RoutineTask) error {
	if _, err := r.collection.InsertOne(ctx, newRoutineTaskDocument(routineTask)); err != nil {
		return fmt.Errorf("insert routine task: %w", err)
	}
	return nil
}

func (r *RoutineTaskRepository) UpdateRoutineTask(ctx context.Context, userID, routineTaskID string, changes domain.RoutineTaskChanges) error {
	update := updateDocument([]patchField{
		fieldOf("title", changes.Title, identity[string]),
		fieldOf("description", changes.Description, identity[string]),
		fieldOf("quadrant", changes.Quadrant, func(q domain.Quadrant) any { return string(q) }),
		fieldOf("priority", changes.Priority, func(p domain.Priority) any { return string(p) }),
		fieldOf("duration", changes.Duration, identity[int]),
	}, changes.UpdatedAt)

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": routineTaskID, "userId": userID}, update)
	if err != nil {
		return fmt.Errorf("update routine task: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrRoutineTaskNotFound
	}
	return nil
}

func (r *RoutineTaskRepository) DeleteRoutineTask(ctx context.Context, userID, routineTaskID string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": routineTaskID, "userId": userID})
	if err != nil {
		return fmt.Errorf("delete routine task: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrRoutineTaskNotFound
	}
	return nil
}

func (r *RoutineTaskRepository) IncrementUsage(ctx context.Context, userID, routineTaskID string, usedAt time.Time) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": routineTaskID, "userId": userID},
		bson.M{
			"$inc": bson.M{"usageCount": 1},
			"$set": bson.M{"lastUsedAt": usedAt.UTC(), "updatedAt": usedAt.UTC()},
		},
	)
	if err != nil {
		return fmt.Errorf("increment routine task usage: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrRoutineTaskNotFound
	}
	return nil
}
