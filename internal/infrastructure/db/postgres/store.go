package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/sweem/sweem-api/internal/core/ports"
)

// querier is the subset of pgx.Tx the repositories use.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store implements ports.Store on a pgx pool. Every unit of work is one
// READ COMMITTED transaction on a dedicated pooled connection.
type Store struct {
	pool *pgxpool.Pool
	// db is a database/sql view of pool for goose; it holds no connections
	// until used.
	db *sql.DB
}

var _ ports.Store = (*Store)(nil)

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool, db: stdlib.OpenDBFromPool(pool)}
}

func (s *Store) Name() string { return "postgres" }

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, uow ports.UnitOfWork) error) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("postgres begin: %w", err)
	}
	defer func() {
		// No-op after a successful commit.
		_ = tx.Rollback(context.WithoutCancel(ctx))
	}()

	if err := fn(ctx, unitOfWork{q: tx}); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("postgres commit: %w", err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close releases the database/sql handle before closing the pool.
func (s *Store) Close(context.Context) error {
	err := s.db.Close()
	s.pool.Close()
	return err
}

// DB exposes the pool through database/sql for tooling such as migrations.
// The handle belongs to the Store and is closed by Close.
func (s *Store) DB() *sql.DB {
	return s.db
}

type unitOfWork struct {
	q querier
}

func (u unitOfWork) Clients() ports.ClientRepository   { return &clientRepo{q: u.q} }
func (u unitOfWork) Projects() ports.ProjectRepository { return &projectRepo{q: u.q} }
func (u unitOfWork) Users() ports.UserRepository       { return &userRepo{q: u.q} }

// PostgreSQL error codes the repositories translate.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

func pgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}
