package files

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new resume row and returns its id.
func (r *PGRepo) Create(ctx context.Context, row Resume) (int64, error) {
	const query = `
INSERT INTO resumes (profile_id, url, filename, created_at, updated_at)
VALUES ($1, $2, $3, now(), now())
RETURNING id`
	var id int64
	if err := r.DB.QueryRowContext(ctx, query, row.ProfileID, row.URL, row.Filename).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// ListByProfile returns all live resumes, newest first.
func (r *PGRepo) ListByProfile(ctx context.Context, profileID int64) ([]Resume, error) {
	const query = `
SELECT id, profile_id, url, filename, created_at, updated_at
FROM resumes
WHERE profile_id = $1 AND deleted_at IS NULL
ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Resume
	for rows.Next() {
		var row Resume
		var filename sql.NullString
		if err := rows.Scan(&row.ID, &row.ProfileID, &row.URL, &filename, &row.CreatedAt, &row.UpdatedAt); err != nil {
			return nil, err
		}
		if filename.Valid {
			row.Filename = filename.String
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// GetByID fetches a live resume owned by the profile.
func (r *PGRepo) GetByID(ctx context.Context, profileID, id int64) (Resume, error) {
	const query = `
SELECT id, profile_id, url, filename, created_at, updated_at
FROM resumes
WHERE profile_id = $1 AND id = $2 AND deleted_at IS NULL
LIMIT 1`
	var row Resume
	var filename sql.NullString
	err := r.DB.QueryRowContext(ctx, query, profileID, id).Scan(
		&row.ID, &row.ProfileID, &row.URL, &filename, &row.CreatedAt, &row.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, err
	}
	if filename.Valid {
		row.Filename = filename.String
	}
	return row, nil
}

// UpdateFilename changes the display name only; the url is untouched.
func (r *PGRepo) UpdateFilename(ctx context.Context, id int64, filename string) error {
	const query = `
UPDATE resumes SET filename = $1, updated_at = now()
WHERE id = $2 AND deleted_at IS NULL`
	res, err := r.DB.ExecContext(ctx, query, filename, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// SoftDelete marks the resume deleted.
func (r *PGRepo) SoftDelete(ctx context.Context, id int64) error {
	const query = `
UPDATE resumes SET deleted_at = now(), updated_at = now()
WHERE id = $1 AND deleted_at IS NULL`
	res, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateAndSoftDelete performs the metadata half of a move atomically.
func (r *PGRepo) CreateAndSoftDelete(ctx context.Context, newRow Resume, oldID int64) (int64, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	const insert = `
INSERT INTO resumes (profile_id, url, filename, created_at, updated_at)
VALUES ($1, $2, $3, now(), now())
RETURNING id`
	var id int64
	if err := tx.QueryRowContext(ctx, insert, newRow.ProfileID, newRow.URL, newRow.Filename).Scan(&id); err != nil {
		return 0, err
	}

	const remove = `
UPDATE resumes SET deleted_at = now(), updated_at = now()
WHERE id = $1 AND deleted_at IS NULL`
	res, err := tx.ExecContext(ctx, remove, oldID)
	if err != nil {
		return 0, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return 0, fmt.Errorf("source row %d: %w", oldID, ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

var _ Repo = (*PGRepo)(nil)
