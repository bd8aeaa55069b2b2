package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sweem/sweem-api/internal/core/ports"
	"github.com/sweem/sweem-api/internal/infrastructure/db/migrations"
	"github.com/sweem/sweem-api/internal/infrastructure/db/mongo"
	"github.com/sweem/sweem-api/internal/infrastructure/db/postgres"
	"github.com/sweem/sweem-api/internal/infrastructure/db/sqlite"
	"github.com/sweem/sweem-api/internal/pkg/config"
)

// sqlStore is implemented by stores whose schema comes from SQL migrations.
// The store owns the handle DB returns and closes it in Close.
type sqlStore interface {
	ports.Store
	DB() *sql.DB
}

// indexedStore is implemented by stores that create their indexes at runtime.
type indexedStore interface {
	ports.Store
	EnsureIndexes(ctx context.Context) error
}

// openStore connects the backend selected by STORE_DRIVER.
func openStore(ctx context.Context, cfg *config.Config) (ports.Store, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		pool, err := postgres.Connect(ctx, postgres.Config{
			DSN:      cfg.Postgres.DSN,
			MaxConns: cfg.Postgres.MaxConns,
		})
		if err != nil {
			return nil, err
		}
		return postgres.NewStore(pool), nil
	case config.DriverMongo:
		client, db, err := mongo.Connect(ctx, mongo.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			return nil, err
		}
		return mongo.NewStore(client, db), nil
	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, sqlite.Config{Path: cfg.SQLite.Path})
		if err != nil {
			return nil, err
		}
		return sqlite.NewStore(db), nil
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
	}
}

// migrateUp brings the schema of store up to date and reports how many
// migrations were applied. Mongo has no migrations; its indexes are ensured
// instead.
func migrateUp(ctx context.Context, store ports.Store) (int, error) {
	switch s := store.(type) {
	case sqlStore:
		runner, err := migrations.NewRunner(s.DB(), s.Name())
		if err != nil {
			return 0, err
		}
		return runner.Up(ctx)
	case indexedStore:
		return 0, s.EnsureIndexes(ctx)
	default:
		return 0, nil
	}
}

func migrationRunner(store ports.Store) (*migrations.Runner, error) {
	s, ok := store.(sqlStore)
	if !ok {
		return nil, fmt.Errorf("%s store has no SQL migrations", store.Name())
	}
	return migrations.NewRunner(s.DB(), s.Name())
}
