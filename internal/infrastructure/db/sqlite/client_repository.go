package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/sweem/sweem-api/internal/core/domain"
)

type clientRepo struct {
	q querier
}

const clientColumns = `id, name, address, projects_total, projects_completed`

func (r *clientRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.q.QueryRowContext(ctx, `SELECT count(*) FROM clients`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count clients: %w", err)
	}
	return n, nil
}

func (r *clientRepo) List(ctx context.Context, offset, limit int) ([]*domain.Client, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+clientColumns+` FROM clients ORDER BY id LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	var out []*domain.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *clientRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	c, err := scanClient(r.q.QueryRowContext(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find client: %w", err)
	}
	return c, nil
}

func (r *clientRepo) Insert(ctx context.Context, c *domain.Client) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO clients (`+clientColumns+`) VALUES (?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Address, int64(c.ProjectsTotal), int64(c.ProjectsCompleted))
	if err != nil {
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

func (r *clientRepo) Update(ctx context.Context, c *domain.Client) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE clients SET name = ?, address = ?, projects_total = ?, projects_completed = ? WHERE id = ?`,
		c.Name, c.Address, int64(c.ProjectsTotal), int64(c.ProjectsCompleted), c.ID)
	if err != nil {
		return fmt.Errorf("update client: %w", err)
	}
	return rowsAffected(res, domain.ErrNotFound)
}

func (r *clientRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM clients WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	return rowsAffected(res, domain.ErrNotFound)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanClient(row scanner) (*domain.Client, error) {
	var (
		c                domain.Client
		total, completed int64
	)
	if err := row.Scan(&c.ID, &c.Name, &c.Address, &total, &completed); err != nil {
		return nil, err
	}
	c.ProjectsTotal = uint32(total)
	c.ProjectsCompleted = uint32(completed)
	return &c, nil
}
