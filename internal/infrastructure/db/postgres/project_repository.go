package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/sweem/sweem-api/internal/core/domain"
)

type projectRepo struct {
	q querier
}

const projectColumns = `id, client_id, name, start_date, planned_end_date, actual_end_date, manager_id`

func (r *projectRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM projects`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count projects: %w", err)
	}
	return n, nil
}

func (r *projectRepo) List(ctx context.Context, offset, limit int) ([]*domain.Project, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+projectColumns+` FROM projects ORDER BY id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var out []*domain.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *projectRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	p, err := scanProject(r.q.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find project: %w", err)
	}
	return p, nil
}

func (r *projectRepo) Insert(ctx context.Context, p *domain.Project) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO projects (`+projectColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID, p.ClientID, p.Name, p.StartDate.Time(), p.PlannedEndDate.Time(), nullableDate(p.ActualEndDate), p.ManagerID)
	if err != nil {
		return fmt.Errorf("insert project: %w", translateProjectRef(err))
	}
	return nil
}

// Update never touches client_id.
func (r *projectRepo) Update(ctx context.Context, p *domain.Project) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE projects
		    SET name = $2, start_date = $3, planned_end_date = $4, actual_end_date = $5, manager_id = $6
		  WHERE id = $1`,
		p.ID, p.Name, p.StartDate.Time(), p.PlannedEndDate.Time(), nullableDate(p.ActualEndDate), p.ManagerID)
	if err != nil {
		return fmt.Errorf("update project: %w", translateProjectRef(err))
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *projectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *projectRepo) DeleteByClient(ctx context.Context, clientID uuid.UUID) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM projects WHERE client_id = $1`, clientID)
	if err != nil {
		return 0, fmt.Errorf("delete client projects: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *projectRepo) CountByManager(ctx context.Context, managerID uuid.UUID) (int64, error) {
	var n int64
	err := r.q.QueryRow(ctx, `SELECT count(*) FROM projects WHERE manager_id = $1`, managerID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count managed projects: %w", err)
	}
	return n, nil
}

func scanProject(row pgx.Row) (*domain.Project, error) {
	var (
		p                 domain.Project
		start, plannedEnd time.Time
		actualEnd         *time.Time
	)
	if err := row.Scan(&p.ID, &p.ClientID, &p.Name, &start, &plannedEnd, &actualEnd, &p.ManagerID); err != nil {
		return nil, err
	}
	p.StartDate = domain.DateOf(start)
	p.PlannedEndDate = domain.DateOf(plannedEnd)
	if actualEnd != nil {
		d := domain.DateOf(*actualEnd)
		p.ActualEndDate = &d
	}
	return &p, nil
}

func nullableDate(d *domain.Date) any {
	if d == nil {
		return nil
	}
	return d.Time()
}

// translateProjectRef turns a foreign key violation raised by a concurrent
// delete of the referenced row into the validation error the service would
// have produced.
func translateProjectRef(err error) error {
	pgErr, ok := pgError(err)
	if !ok || pgErr.Code != codeForeignKeyViolation {
		return err
	}
	switch pgErr.ConstraintName {
	case "projects_client_id_fkey":
		return domain.Invalid("clientId", "does not exist")
	case "projects_manager_id_fkey":
		return domain.Invalid("managerId", "does not exist")
	}
	return err
}
