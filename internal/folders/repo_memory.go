package folders

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory Repo used when no database is configured.
type MemoryRepo struct {
	mu      sync.RWMutex
	nextID  int64
	folders map[int64]Folder
}

// NewMemoryRepo creates an empty in-memory repo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{nextID: 1, folders: make(map[int64]Folder)}
}

func (r *MemoryRepo) Create(ctx context.Context, f Folder) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f.ID = r.nextID
	r.nextID++
	now := time.Now().UTC()
	f.CreatedAt = now
	f.UpdatedAt = now
	f.DeletedAt = nil
	r.folders[f.ID] = f
	return f.ID, nil
}

func (r *MemoryRepo) ListByProfile(ctx context.Context, profileID int64) ([]Folder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Folder
	for _, f := range r.folders {
		if f.ProfileID == profileID && f.DeletedAt == nil {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Key != out[j].Key {
			return out[i].Key < out[j].Key
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryRepo) GetByKey(ctx context.Context, profileID int64, key string) (Folder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, f := range r.folders {
		if f.ProfileID == profileID && f.Key == key && f.DeletedAt == nil {
			return f, nil
		}
	}
	return Folder{}, ErrNotFound
}

func (r *MemoryRepo) FindByName(ctx context.Context, profileID int64, name string) ([]Folder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Folder
	for _, f := range r.folders {
		if f.ProfileID == profileID && f.Name == name && f.DeletedAt == nil {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (r *MemoryRepo) UpdateName(ctx context.Context, folderID int64, newName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.folders[folderID]
	if !ok || f.DeletedAt != nil {
		return ErrNotFound
	}
	f.Name = newName
	f.UpdatedAt = time.Now().UTC()
	r.folders[folderID] = f
	return nil
}

func (r *MemoryRepo) SoftDelete(ctx context.Context, folderID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.folders[folderID]
	if !ok || f.DeletedAt != nil {
		return ErrNotFound
	}
	now := time.Now().UTC()
	f.DeletedAt = &now
	f.UpdatedAt = now
	r.folders[folderID] = f
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
