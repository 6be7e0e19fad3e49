package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"resume-builder/internal/shared/storage/object"
)

// Store is an in-memory object.Store used in dev mode and tests.
type Store struct {
	mu        sync.RWMutex
	objects   map[string][]byte
	bucket    string
	publicURL string
}

// New creates an empty in-memory store.
func New(bucket, publicURL string) *Store {
	if bucket == "" {
		bucket = "resumes"
	}
	if publicURL == "" {
		publicURL = "http://localhost:9000"
	}
	return &Store{
		objects:   make(map[string][]byte),
		bucket:    bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
	}
}

func (s *Store) Put(ctx context.Context, objectPath string, data []byte, contentType string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	s.mu.Lock()
	s.objects[objectPath] = cp
	s.mu.Unlock()
	return nil
}

func (s *Store) Get(ctx context.Context, objectPath string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	data, ok := s.objects[objectPath]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("object not found: %s", objectPath)
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return cp, nil
}

func (s *Store) Copy(ctx context.Context, srcPath, dstPath string) error {
	data, err := s.Get(ctx, srcPath)
	if err != nil {
		return err
	}
	return s.Put(ctx, dstPath, data, "")
}

func (s *Store) ExistsWithPrefix(ctx context.Context, prefix string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for key := range s.objects {
		if strings.HasPrefix(key, prefix) {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) PublicURL(objectPath string) string {
	return s.publicURL + "/" + s.bucket + "/" + objectPath
}

// Len reports the number of stored objects.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}

var _ object.Store = (*Store)(nil)
