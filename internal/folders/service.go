package folders

import (
	"context"
	"errors"
	"regexp"

	"resume-builder/internal/profiles"
	"resume-builder/internal/shared/storage/object"
	"resume-builder/internal/shared/telemetry"
	"resume-builder/internal/users"
)

var folderNamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Service contains business logic for folder management.
type Service struct {
	Users    users.Repo
	Profiles profiles.Repo
	Repo     Repo
	Store    object.Store
}

// Create makes a new folder under the given parent path (display names).
// The stable key is derived from the resolved parent key plus the leaf name.
func (s *Service) Create(ctx context.Context, userID int64, name, parentPath string) (Folder, error) {
	if !folderNamePattern.MatchString(name) {
		return Folder{}, ErrInvalidName
	}

	user, profileID, err := s.identity(ctx, userID)
	if err != nil {
		return Folder{}, err
	}

	parentKey, err := ResolveKey(ctx, s.Repo, profileID, parentPath)
	if err != nil {
		return Folder{}, err
	}

	key := name
	if parentKey != "" {
		key = parentKey + "/" + name
	}

	if _, err := s.Repo.GetByKey(ctx, profileID, key); err == nil {
		return Folder{}, ErrConflict
	} else if !errors.Is(err, ErrNotFound) {
		return Folder{}, err
	}

	// Best-effort conflict pre-check against the object store; a failure
	// here falls through to the write, which fails loudly on a real conflict.
	prefix := user.Username + "/resumes/" + key + "/"
	if exists, err := s.Store.ExistsWithPrefix(ctx, prefix); err != nil {
		telemetry.Warn("folder.exists_check_failed", map[string]any{
			"prefix": prefix,
			"error":  err.Error(),
		})
	} else if exists {
		return Folder{}, ErrConflict
	}

	// Placeholder object materializes the folder in the object store.
	if err := s.Store.Put(ctx, prefix+".keep", nil, "text/plain"); err != nil {
		return Folder{}, err
	}

	folder := Folder{ProfileID: profileID, Name: name, Key: key}
	id, err := s.Repo.Create(ctx, folder)
	if err != nil {
		return Folder{}, err
	}
	folder.ID = id
	return folder, nil
}

// Rename changes a folder's display name. The key, and therefore the
// placement of files already under it, is untouched.
func (s *Service) Rename(ctx context.Context, userID int64, folderKey, newName string) (Folder, error) {
	if !folderNamePattern.MatchString(newName) {
		return Folder{}, ErrInvalidName
	}

	_, profileID, err := s.identity(ctx, userID)
	if err != nil {
		return Folder{}, err
	}

	folder, err := s.Repo.GetByKey(ctx, profileID, folderKey)
	if err != nil {
		return Folder{}, err
	}
	if err := s.Repo.UpdateName(ctx, folder.ID, newName); err != nil {
		return Folder{}, err
	}
	folder.Name = newName
	return folder, nil
}

// Delete soft-deletes a folder. Files filed under its key are not touched;
// the filesystem view re-homes them at the root.
func (s *Service) Delete(ctx context.Context, userID int64, folderKey string) error {
	_, profileID, err := s.identity(ctx, userID)
	if err != nil {
		return err
	}

	folder, err := s.Repo.GetByKey(ctx, profileID, folderKey)
	if err != nil {
		return err
	}
	return s.Repo.SoftDelete(ctx, folder.ID)
}

func (s *Service) identity(ctx context.Context, userID int64) (users.User, int64, error) {
	user, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return users.User{}, 0, ErrUserNotFound
		}
		return users.User{}, 0, err
	}
	profileID, err := s.Profiles.ProfileIDByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, profiles.ErrNotFound) {
			return users.User{}, 0, ErrProfileNotFound
		}
		return users.User{}, 0, err
	}
	return user, profileID, nil
}

var (
	// ErrUserNotFound is returned when the owning user does not exist.
	ErrUserNotFound = errors.New("user does not exist")
	// ErrProfileNotFound is returned when the user has no profile.
	ErrProfileNotFound = errors.New("profile not found for user")
)
