package demotokens

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

const tokenColumns = `id, token, ip_address, generation_count, expiry, created_at, updated_at`

// DeleteExpired hard-deletes every record past its expiry.
func (r *PGRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	const query = `DELETE FROM token_managements WHERE expiry < $1`
	res, err := r.DB.ExecContext(ctx, query, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// FindActive fetches the live record matching both token and IP.
func (r *PGRepo) FindActive(ctx context.Context, token, ip string, now time.Time) (TokenRecord, error) {
	const query = `
SELECT ` + tokenColumns + `
FROM token_managements
WHERE token = $1 AND ip_address = $2 AND expiry > $3`
	row := r.DB.QueryRowContext(ctx, query, token, ip, now)
	return scanToken(row)
}

// FindActiveByIP fetches the newest live record for an IP.
func (r *PGRepo) FindActiveByIP(ctx context.Context, ip string, now time.Time) (TokenRecord, error) {
	const query = `
SELECT ` + tokenColumns + `
FROM token_managements
WHERE ip_address = $1 AND expiry > $2
ORDER BY created_at DESC
LIMIT 1`
	row := r.DB.QueryRowContext(ctx, query, ip, now)
	return scanToken(row)
}

// Insert creates a new token record and returns its id.
func (r *PGRepo) Insert(ctx context.Context, rec TokenRecord) (int64, error) {
	const query = `
INSERT INTO token_managements (token, ip_address, generation_count, expiry, created_at, updated_at)
VALUES ($1, $2, $3, $4, now(), now())
RETURNING id`
	var id int64
	if err := r.DB.QueryRowContext(ctx, query, rec.Token, rec.IPAddress, rec.GenerationCount, rec.Expiry).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// SetCount stores a new generation count.
func (r *PGRepo) SetCount(ctx context.Context, id int64, count int, now time.Time) error {
	const query = `
UPDATE token_managements SET generation_count = $1, updated_at = $2
WHERE id = $3`
	res, err := r.DB.ExecContext(ctx, query, count, now, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanToken(row *sql.Row) (TokenRecord, error) {
	var rec TokenRecord
	err := row.Scan(&rec.ID, &rec.Token, &rec.IPAddress, &rec.GenerationCount, &rec.Expiry, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return TokenRecord{}, ErrNotFound
		}
		return TokenRecord{}, err
	}
	return rec, nil
}

var _ Repo = (*PGRepo)(nil)
