package folders

import "time"

// Folder is a virtual folder owned by a profile.
//
// Key encodes the full ancestor chain ("parent/child") and never changes
// after creation; Name is only the leaf display label and may be renamed.
// Files placed under a key stay addressable across renames.
type Folder struct {
	ID        int64
	ProfileID int64
	Name      string
	Key       string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// Depth returns the nesting level encoded in the key (root folders are 0).
func (f Folder) Depth() int {
	depth := 0
	for _, r := range f.Key {
		if r == '/' {
			depth++
		}
	}
	return depth
}
