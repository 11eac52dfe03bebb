// Package mongodb stores tasks and routine task templates in MongoDB.
package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"eisenq/internal/config"
)

// Driver is the DB_DRIVER value selecting this store.
const Driver = "mongo"

const (
	tasksCollection        = "tasks"
	routineTasksCollection = "routineTasks"
)

// Store owns the client for the process lifetime. Repositories share its
// database handle.
type Store struct {
	client   *mongo.Client
	database *mongo.Database
}

func Connect(ctx context.Context, cfg config.MongoConfig) (*Store, error) {
	connectCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return &Store{client: client, database: client.Database(cfg.Database)}, nil
}

func (s *Store) Database() *mongo.Database {
	return s.database
}

func (s *Store) PingContext(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// EnsureIndexes creates the indexes the list and cascade queries rely on.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		tasksCollection: {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "parentTaskId", Value: 1}}},
		},
		routineTasksCollection: {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "usageCount", Value: -1}}},
		},
	}

	for collection, models := range indexes {
		names, err := s.database.Collection(collection).Indexes().CreateMany(ctx, models)
		if err != nil {
			return fmt.Errorf("create %s indexes: %w", collection, err)
		}
		zap.L().Info("ensured mongo indexes", zap.String("collection", collection), zap.Strings("indexes", names))
	}
	return nil
}
