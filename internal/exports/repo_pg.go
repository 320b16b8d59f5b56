package exports

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const exportColumns = `id, user_id, resume_id, status, file_name, storage_key, size_bytes, page_count, error, created_at, completed_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExport(row rowScanner) (Export, error) {
	var e Export
	var status string
	var completedAt sql.NullTime
	if err := row.Scan(
		&e.ID,
		&e.UserID,
		&e.ResumeID,
		&status,
		&e.FileName,
		&e.StorageKey,
		&e.SizeBytes,
		&e.PageCount,
		&e.Error,
		&e.CreatedAt,
		&completedAt,
	); err != nil {
		return Export{}, err
	}
	e.Status = Status(status)
	if completedAt.Valid {
		t := completedAt.Time
		e.CompletedAt = &t
	}
	return e, nil
}

func (r *PGRepo) Create(ctx context.Context, export Export) error {
	const query = `
INSERT INTO exports (id, user_id, resume_id, status, created_at)
VALUES ($1, $2, $3, $4, $5)`
	_, err := r.DB.ExecContext(ctx, query,
		export.ID,
		export.UserID,
		export.ResumeID,
		string(export.Status),
		export.CreatedAt,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, exportID string) (Export, error) {
	query := `SELECT ` + exportColumns + ` FROM exports WHERE id = $1 LIMIT 1`
	e, err := scanExport(r.DB.QueryRowContext(ctx, query, exportID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Export{}, ErrNotFound
		}
		return Export{}, err
	}
	return e, nil
}

// ListByUser lists exports ordered newest-first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Export, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	query := `SELECT ` + exportColumns + `
FROM exports
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Export{}
	for rows.Next() {
		e, err := scanExport(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *PGRepo) exec(ctx context.Context, query string, args ...any) error {
	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) SetStatus(ctx context.Context, exportID string, status Status) error {
	return r.exec(ctx, `UPDATE exports SET status = $2 WHERE id = $1`, exportID, string(status))
}

func (r *PGRepo) Complete(ctx context.Context, exportID string, artifact Artifact, completedAt time.Time) error {
	const query = `
UPDATE exports
SET status = $2, file_name = $3, storage_key = $4, size_bytes = $5, page_count = $6, error = '', completed_at = $7
WHERE id = $1`
	return r.exec(ctx, query,
		exportID,
		string(StatusCompleted),
		artifact.FileName,
		artifact.StorageKey,
		artifact.SizeBytes,
		artifact.PageCount,
		completedAt,
	)
}

func (r *PGRepo) Fail(ctx context.Context, exportID string, message string, completedAt time.Time) error {
	const query = `UPDATE exports SET status = $2, error = $3, completed_at = $4 WHERE id = $1`
	return r.exec(ctx, query, exportID, string(StatusFailed), message, completedAt)
}

var _ Repo = (*PGRepo)(nil)
