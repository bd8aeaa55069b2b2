package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sweem/sweem-api/internal/core/ports"
)

// querier is satisfied by *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store implements ports.Store on a database/sql SQLite handle.
type Store struct {
	db *sql.DB
}

var _ ports.Store = (*Store)(nil)

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Name() string { return "sqlite" }

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, uow ports.UnitOfWork) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite begin: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(ctx, unitOfWork{q: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite commit: %w", err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close(context.Context) error {
	return s.db.Close()
}

// DB returns the underlying handle, used by the migration runner.
func (s *Store) DB() *sql.DB {
	return s.db
}

type unitOfWork struct {
	q querier
}

func (u unitOfWork) Clients() ports.ClientRepository   { return &clientRepo{q: u.q} }
func (u unitOfWork) Projects() ports.ProjectRepository { return &projectRepo{q: u.q} }
func (u unitOfWork) Users() ports.UserRepository       { return &userRepo{q: u.q} }

// rowsAffected maps a zero-row mutation to notFound.
func rowsAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}
