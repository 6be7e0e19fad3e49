package folders

import "errors"

var (
	// ErrNotFound is returned when a folder (or a path segment) cannot be matched.
	ErrNotFound = errors.New("folder not found")
	// ErrInvalidName is returned for folder names outside [A-Za-z0-9_-].
	ErrInvalidName = errors.New("folder name can only contain letters, numbers, hyphens, and underscores")
	// ErrConflict is returned when a folder already exists at the target key.
	ErrConflict = errors.New("folder already exists at this location")
)
