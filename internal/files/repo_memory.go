package files

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory Repo used when no database is configured.
type MemoryRepo struct {
	mu      sync.RWMutex
	nextID  int64
	resumes map[int64]Resume
}

// NewMemoryRepo creates an empty in-memory repo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{nextID: 1, resumes: make(map[int64]Resume)}
}

func (r *MemoryRepo) Create(ctx context.Context, row Resume) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.createLocked(row), nil
}

func (r *MemoryRepo) createLocked(row Resume) int64 {
	row.ID = r.nextID
	r.nextID++
	now := time.Now().UTC()
	row.CreatedAt = now
	row.UpdatedAt = now
	row.DeletedAt = nil
	r.resumes[row.ID] = row
	return row.ID
}

func (r *MemoryRepo) ListByProfile(ctx context.Context, profileID int64) ([]Resume, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Resume
	for _, row := range r.resumes {
		if row.ProfileID == profileID && row.DeletedAt == nil {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, profileID, id int64) (Resume, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	row, ok := r.resumes[id]
	if !ok || row.DeletedAt != nil || row.ProfileID != profileID {
		return Resume{}, ErrNotFound
	}
	return row, nil
}

func (r *MemoryRepo) UpdateFilename(ctx context.Context, id int64, filename string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.resumes[id]
	if !ok || row.DeletedAt != nil {
		return ErrNotFound
	}
	row.Filename = filename
	row.UpdatedAt = time.Now().UTC()
	r.resumes[id] = row
	return nil
}

func (r *MemoryRepo) SoftDelete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.softDeleteLocked(id)
}

func (r *MemoryRepo) softDeleteLocked(id int64) error {
	row, ok := r.resumes[id]
	if !ok || row.DeletedAt != nil {
		return ErrNotFound
	}
	now := time.Now().UTC()
	row.DeletedAt = &now
	row.UpdatedAt = now
	r.resumes[id] = row
	return nil
}

func (r *MemoryRepo) CreateAndSoftDelete(ctx context.Context, newRow Resume, oldID int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if row, ok := r.resumes[oldID]; !ok || row.DeletedAt != nil {
		return 0, fmt.Errorf("source row %d: %w", oldID, ErrNotFound)
	}
	id := r.createLocked(newRow)
	if err := r.softDeleteLocked(oldID); err != nil {
		delete(r.resumes, id)
		return 0, err
	}
	return id, nil
}

var _ Repo = (*MemoryRepo)(nil)
