package files

import "time"

// Resume is an uploaded resume file owned by a profile.
//
// Folder membership is not a foreign key: it is derived by parsing the
// object-store URL. Moving or copying a file writes a new object at a new
// URL and a new row; the old row is soft-deleted.
type Resume struct {
	ID        int64
	ProfileID int64
	URL       string
	Filename  string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// FileEntry is the display shape of a resume inside the filesystem view.
type FileEntry struct {
	ID        int64  `json:"id"`
	Filename  string `json:"filename"`
	URL       string `json:"url"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// Node is one folder in the filesystem view, keyed by display name at each
// level. FolderKey carries the stable key so clients can address the folder
// across renames.
type Node struct {
	FolderKey string           `json:"folder_key"`
	Files     []FileEntry      `json:"files"`
	Folders   map[string]*Node `json:"folders"`
}

// View is the full filesystem response: root-level files plus the folder tree.
type View struct {
	Resumes []FileEntry      `json:"resumes"`
	Folders map[string]*Node `json:"folders"`
}
