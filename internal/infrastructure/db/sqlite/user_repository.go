package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/sweem/sweem-api/internal/core/domain"
)

type userRepo struct {
	q querier
}

const userColumns = `id, name, login, password_hash, role`

func (r *userRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.q.QueryRowContext(ctx, `SELECT count(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

func (r *userRepo) List(ctx context.Context, offset, limit int) ([]*domain.User, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY id LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var out []*domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *userRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	u, err := scanUser(r.q.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return u, nil
}

func (r *userRepo) ExistsByLogin(ctx context.Context, login string, exclude uuid.UUID) (bool, error) {
	var exists bool
	err := r.q.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE login = ? AND id <> ?)`, login, exclude).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check login: %w", err)
	}
	return exists, nil
}

func (r *userRepo) Insert(ctx context.Context, u *domain.User) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?)`,
		u.ID, u.Name, u.Login, u.PasswordHash, int64(u.Role))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrLoginTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *userRepo) Update(ctx context.Context, u *domain.User) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE users SET name = ?, login = ?, password_hash = ?, role = ? WHERE id = ?`,
		u.Name, u.Login, u.PasswordHash, int64(u.Role), u.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrLoginTaken
		}
		return fmt.Errorf("update user: %w", err)
	}
	return rowsAffected(res, domain.ErrNotFound)
}

// Delete maps the ON DELETE RESTRICT violation to ErrUserManagesProjects.
func (r *userRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrUserManagesProjects
		}
		return fmt.Errorf("delete user: %w", err)
	}
	return rowsAffected(res, domain.ErrNotFound)
}

func scanUser(row scanner) (*domain.User, error) {
	var (
		u    domain.User
		role int64
	)
	if err := row.Scan(&u.ID, &u.Name, &u.Login, &u.PasswordHash, &role); err != nil {
		return nil, err
	}
	u.Role = domain.Role(role)
	return &u, nil
}
