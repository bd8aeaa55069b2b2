package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/sweem/sweem-api/internal/core/domain"
)

type projectRepo struct {
	q querier
}

const projectColumns = `id, client_id, name, start_date, planned_end_date, actual_end_date, manager_id`

func (r *projectRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.q.QueryRowContext(ctx, `SELECT count(*) FROM projects`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count projects: %w", err)
	}
	return n, nil
}

func (r *projectRepo) List(ctx context.Context, offset, limit int) ([]*domain.Project, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+projectColumns+` FROM projects ORDER BY id LIMIT ? OFFSET ?`, limit, offset)
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
	p, err := scanProject(r.q.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find project: %w", err)
	}
	return p, nil
}

func (r *projectRepo) Insert(ctx context.Context, p *domain.Project) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO projects (`+projectColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.ClientID, p.Name, p.StartDate.String(), p.PlannedEndDate.String(), nullableDate(p.ActualEndDate), p.ManagerID)
	if err != nil {
		return fmt.Errorf("insert project: %w", translateProjectRef(err))
	}
	return nil
}

// Update never touches client_id.
func (r *projectRepo) Update(ctx context.Context, p *domain.Project) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE projects
		    SET name = ?, start_date = ?, planned_end_date = ?, actual_end_date = ?, manager_id = ?
		  WHERE id = ?`,
		p.Name, p.StartDate.String(), p.PlannedEndDate.String(), nullableDate(p.ActualEndDate), p.ManagerID, p.ID)
	if err != nil {
		return fmt.Errorf("update project: %w", translateProjectRef(err))
	}
	return rowsAffected(res, domain.ErrNotFound)
}

func (r *projectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return rowsAffected(res, domain.ErrNotFound)
}

func (r *projectRepo) DeleteByClient(ctx context.Context, clientID uuid.UUID) (int64, error) {
	res, err := r.q.ExecContext(ctx, `DELETE FROM projects WHERE client_id = ?`, clientID)
	if err != nil {
		return 0, fmt.Errorf("delete client projects: %w", err)
	}
	return res.RowsAffected()
}

func (r *projectRepo) CountByManager(ctx context.Context, managerID uuid.UUID) (int64, error) {
	var n int64
	err := r.q.QueryRowContext(ctx, `SELECT count(*) FROM projects WHERE manager_id = ?`, managerID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count managed projects: %w", err)
	}
	return n, nil
}

func scanProject(row scanner) (*domain.Project, error) {
	var (
		p                 domain.Project
		start, plannedEnd string
		actualEnd         sql.NullString
	)
	if err := row.Scan(&p.ID, &p.ClientID, &p.Name, &start, &plannedEnd, &actualEnd, &p.ManagerID); err != nil {
		return nil, err
	}

	var err error
	if p.StartDate, err = domain.ParseDate(start); err != nil {
		return nil, err
	}
	if p.PlannedEndDate, err = domain.ParseDate(plannedEnd); err != nil {
		return nil, err
	}
	if actualEnd.Valid {
		end, err := domain.ParseDate(actualEnd.String)
		if err != nil {
			return nil, err
		}
		p.ActualEndDate = &end
	}
	return &p, nil
}

func nullableDate(d *domain.Date) sql.NullString {
	if d == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: d.String(), Valid: true}
}

// translateProjectRef reports a foreign key violation as a validation error.
// SQLite does not name the violated constraint.
func translateProjectRef(err error) error {
	if isForeignKeyViolation(err) {
		return domain.Invalid("project", "references a missing client or manager")
	}
	return err
}
