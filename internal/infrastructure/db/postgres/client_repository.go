package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/sweem/sweem-api/internal/core/domain"
)

type clientRepo struct {
	q querier
}

const clientColumns = `id, name, address, projects_total, projects_completed`

func (r *clientRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM clients`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count clients: %w", err)
	}
	return n, nil
}

func (r *clientRepo) List(ctx context.Context, offset, limit int) ([]*domain.Client, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+clientColumns+` FROM clients ORDER BY id LIMIT $1 OFFSET $2`, limit, offset)
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
	row := r.q.QueryRow(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = $1`, id)
	c, err := scanClient(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find client: %w", err)
	}
	return c, nil
}

func (r *clientRepo) Insert(ctx context.Context, c *domain.Client) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO clients (`+clientColumns+`) VALUES ($1, $2, $3, $4, $5)`,
		c.ID, c.Name, c.Address, int64(c.ProjectsTotal), int64(c.ProjectsCompleted))
	if err != nil {
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

func (r *clientRepo) Update(ctx context.Context, c *domain.Client) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE clients SET name = $2, address = $3, projects_total = $4, projects_completed = $5 WHERE id = $1`,
		c.ID, c.Name, c.Address, int64(c.ProjectsTotal), int64(c.ProjectsCompleted))
	if err != nil {
		return fmt.Errorf("update client: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete relies on ON DELETE CASCADE for any project the caller did not
// remove first.
func (r *clientRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanClient(row pgx.Row) (*domain.Client, error) {
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
