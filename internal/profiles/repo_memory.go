package profiles

import (
	"context"
	"encoding/json"
	"sync"
)

// MemoryRepo is an in-memory Repo used when no database is configured.
type MemoryRepo struct {
	mu        sync.RWMutex
	byUser    map[int64]Details
	templates map[int64]json.RawMessage
}

// NewMemoryRepo creates an empty in-memory repo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		byUser:    make(map[int64]Details),
		templates: make(map[int64]json.RawMessage),
	}
}

// Seed installs a fully aggregated document for a user.
func (r *MemoryRepo) Seed(userID int64, d Details) {
	r.mu.Lock()
	r.byUser[userID] = d
	r.mu.Unlock()
}

func (r *MemoryRepo) ProfileIDByUserID(ctx context.Context, userID int64) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.byUser[userID]
	if !ok {
		return 0, ErrNotFound
	}
	return d.UserProfile.ProfileID, nil
}

func (r *MemoryRepo) Details(ctx context.Context, userID int64) (Details, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.byUser[userID]
	if !ok {
		return Details{}, ErrNotFound
	}
	return d, nil
}

func (r *MemoryRepo) SaveTemplate(ctx context.Context, profileID int64, template json.RawMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.profileExists(profileID) {
		return ErrNotFound
	}
	cp := make(json.RawMessage, len(template))
	copy(cp, template)
	r.templates[profileID] = cp
	return nil
}

func (r *MemoryRepo) ClearTemplate(ctx context.Context, profileID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.profileExists(profileID) {
		return ErrNotFound
	}
	delete(r.templates, profileID)
	return nil
}

// Template returns the stored template for tests.
func (r *MemoryRepo) Template(profileID int64) (json.RawMessage, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.templates[profileID]
	return t, ok
}

func (r *MemoryRepo) profileExists(profileID int64) bool {
	for _, d := range r.byUser {
		if d.UserProfile.ProfileID == profileID {
			return true
		}
	}
	return false
}

var _ Repo = (*MemoryRepo)(nil)
