package folders

import "context"

// Repo defines persistence operations for folders. All reads exclude
// soft-deleted rows.
type Repo interface {
	Create(ctx context.Context, f Folder) (int64, error)
	ListByProfile(ctx context.Context, profileID int64) ([]Folder, error)
	GetByKey(ctx context.Context, profileID int64, key string) (Folder, error)
	// FindByName returns every live folder with the given display name,
	// regardless of position in the hierarchy.
	FindByName(ctx context.Context, profileID int64, name string) ([]Folder, error)
	UpdateName(ctx context.Context, folderID int64, newName string) error
	SoftDelete(ctx context.Context, folderID int64) error
}
