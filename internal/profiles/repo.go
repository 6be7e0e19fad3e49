package profiles

import (
	"context"
	"encoding/json"
	"errors"
)

var (
	// ErrNotFound is returned when a user or profile does not exist.
	ErrNotFound = errors.New("profile not found")
)

// Repo defines persistence operations for aggregated profile data.
type Repo interface {
	// ProfileIDByUserID resolves a user's profile identifier.
	ProfileIDByUserID(ctx context.Context, userID int64) (int64, error)
	// Details aggregates the full nested profile document for a user.
	Details(ctx context.Context, userID int64) (Details, error)
	// SaveTemplate persists a resume template on the profile.
	SaveTemplate(ctx context.Context, profileID int64, template json.RawMessage) error
	// ClearTemplate restores the default template by nulling the stored one.
	ClearTemplate(ctx context.Context, profileID int64) error
}
