package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	dbadapter "eisenq/internal/adapter/db"
	"eisenq/internal/adapter/mongodb"
	"eisenq/internal/config"
	"eisenq/internal/core/ports"
)

// store bundles the repositories of the backend selected by DB_DRIVER.
type store struct {
	driver       string
	tasks        ports.TaskRepository
	routineTasks ports.RoutineTaskRepository
	tx           ports.TxManager
	pinger       ports.Pinger
	migrate      func(ctx context.Context) error
	close        func(ctx context.Context) error
}

func openStore(ctx context.Context, cfg *config.Config) (*store, error) {
	switch cfg.DbDriver {
	case mongodb.Driver:
		return openMongoStore(ctx, cfg)
	case dbadapter.DriverMySQL, dbadapter.DriverSQLite, "":
		return openSQLStore(cfg)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DbDriver)
	}
}

func openSQLStore(cfg *config.Config) (*store, error) {
	db, err := dbadapter.ConnectDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", cfg.DbDriver, err)
	}

	return &store{
		driver:       db.DriverName(),
		tasks:        dbadapter.NewTaskRepository(db),
		routineTasks: dbadapter.NewRoutineTaskRepository(db),
		tx:           dbadapter.NewTxManager(db),
		pinger:       db,
		migrate: func(ctx context.Context) error {
			return dbadapter.Migrate(ctx, db)
		},
		close: func(context.Context) error {
			return db.Close()
		},
	}, nil
}

func openMongoStore(ctx context.Context, cfg *config.Config) (*store, error) {
	mongoStore, err := mongodb.Connect(ctx, cfg.Mongo)
	if err != nil {
		return nil, err
	}
	if cfg.Mongo.Transactions {
		zap.L().Info("mongo transactions enabled", zap.String("database", cfg.Mongo.Database))
	}

	return &store{
		driver:       mongodb.Driver,
		tasks:        mongodb.NewTaskRepository(mongoStore),
		routineTasks: mongodb.NewRoutineTaskRepository(mongoStore),
		tx:           mongodb.NewTxManager(mongoStore, cfg.Mongo.Transactions),
		pinger:       mongoStore,
		migrate:      mongoStore.EnsureIndexes,
		close:        mongoStore.Close,
	}, nil
}
