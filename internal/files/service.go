package files

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"

	"resume-builder/internal/folders"
	"resume-builder/internal/profiles"
	"resume-builder/internal/shared/storage/object"
	"resume-builder/internal/users"
)

// MaxUploadSize is the ceiling for a single uploaded resume.
const MaxUploadSize = 10 << 20

var contentTypes = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// Service contains business logic for resume file management.
type Service struct {
	Users    users.Repo
	Profiles profiles.Repo
	Folders  folders.Repo
	Repo     Repo
	Store    object.Store

	// Now is injectable for deterministic object names in tests.
	Now func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Upload validates and stores a resume file under the folder addressed by
// the display-name path, then records its metadata row.
func (s *Service) Upload(ctx context.Context, userID int64, filename string, data []byte, folderPath string) (Resume, error) {
	if err := validateUpload(filename, data); err != nil {
		return Resume{}, err
	}

	user, profileID, err := s.identity(ctx, userID)
	if err != nil {
		return Resume{}, err
	}

	folderKey, err := folders.ResolveKey(ctx, s.Folders, profileID, folderPath)
	if err != nil {
		if errors.Is(err, folders.ErrNotFound) {
			return Resume{}, ErrFolderNotFound
		}
		return Resume{}, err
	}

	objectPath := s.objectPath(user.Username, folderKey, filename)
	ext := strings.ToLower(path.Ext(filename))
	if err := s.Store.Put(ctx, objectPath, data, contentTypes[ext]); err != nil {
		return Resume{}, err
	}

	row := Resume{
		ProfileID: profileID,
		URL:       s.Store.PublicURL(objectPath),
		Filename:  filename,
	}
	id, err := s.Repo.Create(ctx, row)
	if err != nil {
		return Resume{}, err
	}
	row.ID = id
	return row, nil
}

// List builds the virtual filesystem view for a user: root-level files plus
// the nested folder tree.
func (s *Service) List(ctx context.Context, userID int64) (View, error) {
	_, profileID, err := s.identity(ctx, userID)
	if err != nil {
		return View{}, err
	}

	folderRows, err := s.Folders.ListByProfile(ctx, profileID)
	if err != nil {
		return View{}, err
	}
	resumeRows, err := s.Repo.ListByProfile(ctx, profileID)
	if err != nil {
		return View{}, err
	}
	return BuildView(folderRows, resumeRows), nil
}

// Rename changes a file's display name. The object URL, and therefore the
// file's folder placement, is untouched.
func (s *Service) Rename(ctx context.Context, userID, fileID int64, newName string) (Resume, error) {
	if !validFilename(newName) {
		return Resume{}, ErrInvalidName
	}

	_, profileID, err := s.identity(ctx, userID)
	if err != nil {
		return Resume{}, err
	}

	row, err := s.Repo.GetByID(ctx, profileID, fileID)
	if err != nil {
		return Resume{}, err
	}
	if err := s.Repo.UpdateFilename(ctx, row.ID, newName); err != nil {
		return Resume{}, err
	}
	row.Filename = newName
	return row, nil
}

// Move relocates a file to the folder addressed by destPath. The object is
// copied to a fresh path, then the metadata swap (insert new row, soft-delete
// old) runs in one transaction. If the copy lands but the swap fails, the
// stores have diverged and ErrPartialMove is returned.
func (s *Service) Move(ctx context.Context, userID, fileID int64, destPath string) (Resume, error) {
	user, profileID, err := s.identity(ctx, userID)
	if err != nil {
		return Resume{}, err
	}

	row, err := s.Repo.GetByID(ctx, profileID, fileID)
	if err != nil {
		return Resume{}, err
	}

	destKey, err := folders.ResolveKey(ctx, s.Folders, profileID, destPath)
	if err != nil {
		if errors.Is(err, folders.ErrNotFound) {
			return Resume{}, ErrFolderNotFound
		}
		return Resume{}, err
	}

	srcPath, err := objectPathFromURL(row.URL)
	if err != nil {
		return Resume{}, err
	}
	dstPath := s.objectPath(user.Username, destKey, row.Filename)

	if err := s.Store.Copy(ctx, srcPath, dstPath); err != nil {
		return Resume{}, err
	}

	moved := Resume{
		ProfileID: profileID,
		URL:       s.Store.PublicURL(dstPath),
		Filename:  row.Filename,
	}
	id, err := s.Repo.CreateAndSoftDelete(ctx, moved, row.ID)
	if err != nil {
		return Resume{}, fmt.Errorf("%w: %v", ErrPartialMove, err)
	}
	moved.ID = id
	return moved, nil
}

// Copy duplicates a file into the folder addressed by destPath. The original
// row and object are untouched.
func (s *Service) Copy(ctx context.Context, userID, fileID int64, destPath string) (Resume, error) {
	user, profileID, err := s.identity(ctx, userID)
	if err != nil {
		return Resume{}, err
	}

	row, err := s.Repo.GetByID(ctx, profileID, fileID)
	if err != nil {
		return Resume{}, err
	}

	destKey, err := folders.ResolveKey(ctx, s.Folders, profileID, destPath)
	if err != nil {
		if errors.Is(err, folders.ErrNotFound) {
			return Resume{}, ErrFolderNotFound
		}
		return Resume{}, err
	}

	srcPath, err := objectPathFromURL(row.URL)
	if err != nil {
		return Resume{}, err
	}
	dstPath := s.objectPath(user.Username, destKey, row.Filename)

	if err := s.Store.Copy(ctx, srcPath, dstPath); err != nil {
		return Resume{}, err
	}

	copied := Resume{
		ProfileID: profileID,
		URL:       s.Store.PublicURL(dstPath),
		Filename:  row.Filename,
	}
	id, err := s.Repo.Create(ctx, copied)
	if err != nil {
		return Resume{}, err
	}
	copied.ID = id
	return copied, nil
}

// Delete soft-deletes a file's metadata row. The stored object is retained.
func (s *Service) Delete(ctx context.Context, userID, fileID int64) error {
	_, profileID, err := s.identity(ctx, userID)
	if err != nil {
		return err
	}

	row, err := s.Repo.GetByID(ctx, profileID, fileID)
	if err != nil {
		return err
	}
	return s.Repo.SoftDelete(ctx, row.ID)
}

// Download fetches a file's bytes from the object store.
func (s *Service) Download(ctx context.Context, userID, fileID int64) (Resume, []byte, error) {
	_, profileID, err := s.identity(ctx, userID)
	if err != nil {
		return Resume{}, nil, err
	}

	row, err := s.Repo.GetByID(ctx, profileID, fileID)
	if err != nil {
		return Resume{}, nil, err
	}

	objectPath, err := objectPathFromURL(row.URL)
	if err != nil {
		return Resume{}, nil, err
	}
	data, err := s.Store.Get(ctx, objectPath)
	if err != nil {
		return Resume{}, nil, err
	}
	return row, data, nil
}

// ContentType returns the MIME type matching a filename's extension, or
// application/octet-stream for anything unrecognized.
func ContentType(filename string) string {
	if ct, ok := contentTypes[strings.ToLower(path.Ext(filename))]; ok {
		return ct
	}
	return "application/octet-stream"
}

func (s *Service) objectPath(username, folderKey, filename string) string {
	name := s.now().UTC().Format("20060102150405") + "_" + sanitizeFilename(filename)
	if folderKey == "" {
		return username + "/resumes/" + name
	}
	return username + "/resumes/" + folderKey + "/" + name
}

// objectPathFromURL recovers the object path from a stored public URL by
// dropping the bucket segment, the first segment of the URL path.
func objectPathFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse object url: %w", err)
	}
	segments := strings.SplitN(strings.Trim(u.Path, "/"), "/", 2)
	if len(segments) < 2 || segments[1] == "" {
		return "", fmt.Errorf("object url %q has no object path", raw)
	}
	return segments[1], nil
}

func sanitizeFilename(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-' || r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}

func validFilename(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, "/\\")
}

func validateUpload(filename string, data []byte) error {
	if !validFilename(filename) {
		return ErrInvalidName
	}
	if _, ok := contentTypes[strings.ToLower(path.Ext(filename))]; !ok {
		return ErrBadType
	}
	if len(data) == 0 {
		return ErrEmptyFile
	}
	if len(data) > MaxUploadSize {
		return ErrTooLarge
	}
	return nil
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
