package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const userColumns = `id, email, name, picture_url, created_at, updated_at`

// PGRepo stores users in Postgres through database/sql and the pgx driver.
type PGRepo struct {
	DB *sql.DB
}

// Upsert keeps a name the user already edited; OAuth only fills it when empty.
func (r *PGRepo) Upsert(ctx context.Context, user User) error {
	res, err := r.DB.ExecContext(ctx, `
INSERT INTO users (id, email, name, picture_url, created_at, updated_at)
VALUES ($1, $2, $3, $4, now(), now())
ON CONFLICT (id) DO UPDATE SET
  email       = EXCLUDED.email,
  name        = COALESCE(NULLIF(users.name, ''), EXCLUDED.name),
  picture_url = EXCLUDED.picture_url,
  updated_at  = now()`,
		user.ID, user.Email, user.Name, user.PictureURL)
	if err != nil {
		return fmt.Errorf("upsert user %s: %w", user.ID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("upsert user %s: no rows written", user.ID)
	}
	return nil
}

func (r *PGRepo) GetByID(ctx context.Context, userID string) (User, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, userID)
	return scanUser(row)
}

func (r *PGRepo) UpdateName(ctx context.Context, userID, name string) (User, error) {
	row := r.DB.QueryRowContext(ctx,
		`UPDATE users SET name = $2, updated_at = now() WHERE id = $1 RETURNING `+userColumns,
		userID, name)
	return scanUser(row)
}

// CountByUser counts live resumes directly, for deployments where the
// resumes service is not wired into users.
func (r *PGRepo) CountByUser(ctx context.Context, userID string) (int64, error) {
	var n int64
	err := r.DB.QueryRowContext(ctx,
		`SELECT count(*) FROM resumes WHERE user_id = $1 AND deleted_at IS NULL`, userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count resumes for %s: %w", userID, err)
	}
	return n, nil
}

func scanUser(row *sql.Row) (User, error) {
	var u User
	switch err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PictureURL, &u.CreatedAt, &u.UpdatedAt); {
	case errors.Is(err, sql.ErrNoRows):
		return User{}, ErrNotFound
	case err != nil:
		return User{}, err
	}
	return u, nil
}
