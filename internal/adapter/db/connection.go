package db

import (
	"database/sql/driver"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"modernc.org/sqlite"

	"eisenq/internal/config"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// ConnectDB opens the relational store selected by cfg.DbDriver.
func ConnectDB(cfg *config.Config) (*sqlx.DB, error) {
	switch cfg.DbDriver {
	case DriverSQLite:
		return ConnectSQLite(cfg.SQLitePath)
	case DriverMySQL, "":
		return connectMySQL(cfg)
	default:
		return nil, fmt.Errorf("unsupported sql driver %q", cfg.DbDriver)
	}
}

func connectMySQL(cfg *config.Config) (*sqlx.DB, error) {
	params := cfg.DbParams
	if params == "" {
		params = config.DefaultMySQLParams
	}

	dsn := fmt.Sprintf(
		"%s:%s@tcp(%s:%s)/%s?%s",
		cfg.DbUser,
		cfg.DbPassword,
		cfg.DbHost,
		cfg.DbPort,
		cfg.DbName,
		params,
	)

	db, err := sqlx.Connect(DriverMySQL, dsn)
	if err != nil {
		return nil, err
	}

	return db, nil
}

// ConnectSQLite opens (creating if needed) the database file at path with
// foreign keys on. Writers are serialised on a single connection.
func ConnectSQLite(path string) (*sqlx.DB, error) {
	if err := registerSQLiteFunctions(); err != nil {
		return nil, err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite directory: %w", err)
		}
	}

	dsn := path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_time_format=sqlite"
	db, err := sqlx.Connect(DriverSQLite, dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	return db, nil
}

var (
	sqliteFunctionsOnce sync.Once
	sqliteFunctionsErr  error
)

// registerSQLiteFunctions replaces the built-in lower(), which only folds
// ASCII, with a Unicode-aware one so search matches "École" as "école".
func registerSQLiteFunctions() error {
	sqliteFunctionsOnce.Do(func() {
		err := sqlite.RegisterDeterministicScalarFunction("lower", 1, unicodeLower)
		if err != nil {
			sqliteFunctionsErr = fmt.Errorf("register sqlite lower: %w", err)
		}
	})
	return sqliteFunctionsErr
}

func unicodeLower(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch value := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return strings.ToLower(value), nil
	case []byte:
		return strings.ToLower(string(value)), nil
	default:
		return strings.ToLower(fmt.Sprint(value)), nil
	}
}
