package demotokens

import (
	"context"
	"sync"
	"time"
)

// MemoryRepo is an in-memory Repo used when no database is configured.
type MemoryRepo struct {
	mu      sync.Mutex
	nextID  int64
	records map[int64]TokenRecord
}

// NewMemoryRepo creates an empty in-memory repo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{nextID: 1, records: make(map[int64]TokenRecord)}
}

func (r *MemoryRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var deleted int64
	for id, rec := range r.records {
		if rec.Expiry.Before(now) {
			delete(r.records, id)
			deleted++
		}
	}
	return deleted, nil
}

func (r *MemoryRepo) FindActive(ctx context.Context, token, ip string, now time.Time) (TokenRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.records {
		if rec.Token == token && rec.IPAddress == ip && rec.Expiry.After(now) {
			return rec, nil
		}
	}
	return TokenRecord{}, ErrNotFound
}

func (r *MemoryRepo) FindActiveByIP(ctx context.Context, ip string, now time.Time) (TokenRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var best TokenRecord
	found := false
	for _, rec := range r.records {
		if rec.IPAddress != ip || !rec.Expiry.After(now) {
			continue
		}
		if !found || rec.CreatedAt.After(best.CreatedAt) {
			best = rec
			found = true
		}
	}
	if !found {
		return TokenRecord{}, ErrNotFound
	}
	return best, nil
}

func (r *MemoryRepo) Insert(ctx context.Context, rec TokenRecord) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec.ID = r.nextID
	r.nextID++
	now := time.Now().UTC()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now
	r.records[rec.ID] = rec
	return rec.ID, nil
}

func (r *MemoryRepo) SetCount(ctx context.Context, id int64, count int, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[id]
	if !ok {
		return ErrNotFound
	}
	rec.GenerationCount = count
	rec.UpdatedAt = now
	r.records[id] = rec
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
