package folders

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const folderColumns = `id, profile_id, folder_name, folder_key, created_at, updated_at`

// Create inserts a new folder and returns its id.
func (r *PGRepo) Create(ctx context.Context, f Folder) (int64, error) {
	const query = `
INSERT INTO folders (profile_id, folder_name, folder_key, created_at, updated_at)
VALUES ($1, $2, $3, now(), now())
RETURNING id`
	var id int64
	if err := r.DB.QueryRowContext(ctx, query, f.ProfileID, f.Name, f.Key).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// ListByProfile returns all live folders ordered by key.
func (r *PGRepo) ListByProfile(ctx context.Context, profileID int64) ([]Folder, error) {
	const query = `
SELECT ` + folderColumns + `
FROM folders
WHERE profile_id = $1 AND deleted_at IS NULL
ORDER BY folder_key, created_at`
	rows, err := r.DB.QueryContext(ctx, query, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Folder
	for rows.Next() {
		f, err := scanFolder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// GetByKey fetches the live folder at the given key.
func (r *PGRepo) GetByKey(ctx context.Context, profileID int64, key string) (Folder, error) {
	const query = `
SELECT ` + folderColumns + `
FROM folders
WHERE profile_id = $1 AND folder_key = $2 AND deleted_at IS NULL
LIMIT 1`
	row := r.DB.QueryRowContext(ctx, query, profileID, key)
	f, err := scanFolder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Folder{}, ErrNotFound
		}
		return Folder{}, err
	}
	return f, nil
}

// FindByName returns live folders matching a display name anywhere in the tree.
func (r *PGRepo) FindByName(ctx context.Context, profileID int64, name string) ([]Folder, error) {
	const query = `
SELECT ` + folderColumns + `
FROM folders
WHERE profile_id = $1 AND folder_name = $2 AND deleted_at IS NULL
ORDER BY folder_key, created_at`
	rows, err := r.DB.QueryContext(ctx, query, profileID, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Folder
	for rows.Next() {
		f, err := scanFolder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// UpdateName changes the display label only; the key is immutable.
func (r *PGRepo) UpdateName(ctx context.Context, folderID int64, newName string) error {
	const query = `
UPDATE folders SET folder_name = $1, updated_at = now()
WHERE id = $2 AND deleted_at IS NULL`
	res, err := r.DB.ExecContext(ctx, query, newName, folderID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// SoftDelete marks the folder deleted.
func (r *PGRepo) SoftDelete(ctx context.Context, folderID int64) error {
	const query = `
UPDATE folders SET deleted_at = now(), updated_at = now()
WHERE id = $1 AND deleted_at IS NULL`
	res, err := r.DB.ExecContext(ctx, query, folderID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFolder(row rowScanner) (Folder, error) {
	var f Folder
	if err := row.Scan(&f.ID, &f.ProfileID, &f.Name, &f.Key, &f.CreatedAt, &f.UpdatedAt); err != nil {
		return Folder{}, err
	}
	return f, nil
}

var _ Repo = (*PGRepo)(nil)
