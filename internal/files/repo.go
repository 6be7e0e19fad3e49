package files

import "context"

// Repo defines persistence operations for resume rows. All reads exclude
// soft-deleted rows.
type Repo interface {
	Create(ctx context.Context, r Resume) (int64, error)
	ListByProfile(ctx context.Context, profileID int64) ([]Resume, error)
	GetByID(ctx context.Context, profileID, id int64) (Resume, error)
	UpdateFilename(ctx context.Context, id int64, filename string) error
	SoftDelete(ctx context.Context, id int64) error
	// CreateAndSoftDelete inserts the new row and soft-deletes the old one in
	// a single transaction, shrinking the inconsistency window of a move.
	CreateAndSoftDelete(ctx context.Context, newRow Resume, oldID int64) (int64, error)
}
