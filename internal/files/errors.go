package files

import "errors"

var (
	// ErrNotFound is returned when a file is absent or soft-deleted.
	ErrNotFound = errors.New("file not found")
	// ErrFolderNotFound is returned when the target folder path cannot be resolved.
	ErrFolderNotFound = errors.New("folder does not exist")
	// ErrEmptyFile rejects zero-byte uploads.
	ErrEmptyFile = errors.New("file is empty")
	// ErrTooLarge rejects uploads over the size ceiling.
	ErrTooLarge = errors.New("file size too large, maximum is 10MB")
	// ErrBadType rejects disallowed extensions.
	ErrBadType = errors.New("invalid file type, allowed types: .pdf, .doc, .docx")
	// ErrInvalidName rejects empty or traversal-prone file names.
	ErrInvalidName = errors.New("invalid file name")
	// ErrPartialMove signals a move whose copy succeeded but whose metadata
	// update failed: object-store and relational state have diverged.
	ErrPartialMove = errors.New("move partially applied: new copy exists but original was not released")
)
