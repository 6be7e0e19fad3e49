package demotokens

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when no live token record matches.
var ErrNotFound = errors.New("token not found or expired")

// Repo defines persistence operations for token records.
type Repo interface {
	// DeleteExpired removes every record whose expiry is before now and
	// reports how many were deleted.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
	// FindActive returns the record matching both token and IP with an
	// expiry still in the future.
	FindActive(ctx context.Context, token, ip string, now time.Time) (TokenRecord, error)
	// FindActiveByIP returns the most recently created live record for ip.
	FindActiveByIP(ctx context.Context, ip string, now time.Time) (TokenRecord, error)
	Insert(ctx context.Context, rec TokenRecord) (int64, error)
	SetCount(ctx context.Context, id int64, count int, now time.Time) error
}
