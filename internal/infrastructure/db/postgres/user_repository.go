package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/sweem/sweem-api/internal/core/domain"
)

type userRepo struct {
	q querier
}

const userColumns = `id, name, login, password_hash, role`

func (r *userRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

func (r *userRepo) List(ctx context.Context, offset, limit int) ([]*domain.User, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY id LIMIT $1 OFFSET $2`, limit, offset)
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
	u, err := scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return u, nil
}

func (r *userRepo) ExistsByLogin(ctx context.Context, login string, exclude uuid.UUID) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE login = $1 AND id <> $2)`, login, exclude).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check login: %w", err)
	}
	return exists, nil
}

func (r *userRepo) Insert(ctx context.Context, u *domain.User) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES ($1, $2, $3, $4, $5)`,
		u.ID, u.Name, u.Login, u.PasswordHash, int16(u.Role))
	if err != nil {
		return fmt.Errorf("insert user: %w", translateLogin(err))
	}
	return nil
}

func (r *userRepo) Update(ctx context.Context, u *domain.User) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE users SET name = $2, login = $3, password_hash = $4, role = $5 WHERE id = $1`,
		u.ID, u.Name, u.Login, u.PasswordHash, int16(u.Role))
	if err != nil {
		return fmt.Errorf("update user: %w", translateLogin(err))
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete maps the ON DELETE RESTRICT violation to ErrUserManagesProjects.
func (r *userRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		if pgErr, ok := pgError(err); ok && pgErr.Code == codeForeignKeyViolation {
			return domain.ErrUserManagesProjects
		}
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		u    domain.User
		role int16
	)
	if err := row.Scan(&u.ID, &u.Name, &u.Login, &u.PasswordHash, &role); err != nil {
		return nil, err
	}
	u.Role = domain.Role(role)
	return &u, nil
}

func translateLogin(err error) error {
	if pgErr, ok := pgError(err); ok && pgErr.Code == codeUniqueViolation && pgErr.ConstraintName == "users_login_key" {
		return domain.ErrLoginTaken
	}
	return err
}
