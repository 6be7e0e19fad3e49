package users

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no user matches the lookup.
var ErrNotFound = errors.New("user not found")

// Repo defines read-only persistence operations for users.
type Repo interface {
	GetByID(ctx context.Context, id int64) (User, error)
}
