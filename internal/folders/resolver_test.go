package folders

import (
	"context"
	"errors"
	"testing"
)

func seedFolder(t *testing.T, repo *MemoryRepo, profileID int64, name, key string) Folder {
	t.Helper()
	f := Folder{ProfileID: profileID, Name: name, Key: key}
	id, err := repo.Create(context.Background(), f)
	if err != nil {
		t.Fatalf("seed folder %q: %v", key, err)
	}
	f.ID = id
	return f
}

func TestResolveKeyEmptyPathIsRoot(t *testing.T) {
	repo := NewMemoryRepo()
	for _, path := range []string{"", "/", "//"} {
		key, err := ResolveKey(context.Background(), repo, 1, path)
		if err != nil {
			t.Fatalf("ResolveKey(%q): %v", path, err)
		}
		if key != "" {
			t.Fatalf("ResolveKey(%q) = %q, want root", path, key)
		}
	}
}

func TestResolveKeyNestedPath(t *testing.T) {
	repo := NewMemoryRepo()
	seedFolder(t, repo, 1, "DevOps", "DevOps")
	seedFolder(t, repo, 1, "Pipelines", "DevOps/Pipelines")
	seedFolder(t, repo, 1, "CI", "DevOps/Pipelines/CI")

	key, err := ResolveKey(context.Background(), repo, 1, "DevOps/Pipelines/CI")
	if err != nil {
		t.Fatalf("ResolveKey: %v", err)
	}
	if key != "DevOps/Pipelines/CI" {
		t.Fatalf("key = %q, want DevOps/Pipelines/CI", key)
	}
}

func TestResolveKeySurvivesRename(t *testing.T) {
	repo := NewMemoryRepo()
	seedFolder(t, repo, 1, "DevOps", "DevOps")
	child := seedFolder(t, repo, 1, "Pipelines", "DevOps/Pipelines")

	key, err := ResolveKey(context.Background(), repo, 1, "DevOps/Pipelines")
	if err != nil {
		t.Fatalf("ResolveKey before rename: %v", err)
	}
	if key != "DevOps/Pipelines" {
		t.Fatalf("key = %q, want DevOps/Pipelines", key)
	}

	if err := repo.UpdateName(context.Background(), child.ID, "Pipelines-renamed"); err != nil {
		t.Fatalf("UpdateName: %v", err)
	}

	// The new display path resolves to the same immutable key.
	key, err = ResolveKey(context.Background(), repo, 1, "DevOps/Pipelines-renamed")
	if err != nil {
		t.Fatalf("ResolveKey after rename: %v", err)
	}
	if key != "DevOps/Pipelines" {
		t.Fatalf("key after rename = %q, want DevOps/Pipelines", key)
	}

	// The old display path no longer matches anything.
	if _, err := ResolveKey(context.Background(), repo, 1, "DevOps/Pipelines"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("old path: got %v, want ErrNotFound", err)
	}
}

func TestResolveKeyRejectsWrongParent(t *testing.T) {
	repo := NewMemoryRepo()
	seedFolder(t, repo, 1, "A", "A")
	seedFolder(t, repo, 1, "B", "B")
	// "Docs" exists only under B.
	seedFolder(t, repo, 1, "Docs", "B/Docs")

	if _, err := ResolveKey(context.Background(), repo, 1, "A/Docs"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}

	key, err := ResolveKey(context.Background(), repo, 1, "B/Docs")
	if err != nil {
		t.Fatalf("ResolveKey: %v", err)
	}
	if key != "B/Docs" {
		t.Fatalf("key = %q, want B/Docs", key)
	}
}

func TestResolveKeyFirstSegmentMustBeRootLevel(t *testing.T) {
	repo := NewMemoryRepo()
	// Only a nested folder named "Reports" exists; a path starting with
	// "Reports" must not match it.
	seedFolder(t, repo, 1, "Archive", "Archive")
	seedFolder(t, repo, 1, "Reports", "Archive/Reports")

	if _, err := ResolveKey(context.Background(), repo, 1, "Reports"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestResolveKeyScopedToProfile(t *testing.T) {
	repo := NewMemoryRepo()
	seedFolder(t, repo, 1, "Shared", "Shared")

	if _, err := ResolveKey(context.Background(), repo, 2, "Shared"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestResolveKeyIgnoresDeletedFolders(t *testing.T) {
	repo := NewMemoryRepo()
	f := seedFolder(t, repo, 1, "Trash", "Trash")
	if err := repo.SoftDelete(context.Background(), f.ID); err != nil {
		t.Fatalf("SoftDelete: %v", err)
	}

	if _, err := ResolveKey(context.Background(), repo, 1, "Trash"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}
