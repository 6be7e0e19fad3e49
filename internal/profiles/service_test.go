package profiles

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"resume-builder/internal/users"
)

func strp(s string) *string { return &s }

func newTestProfileService() (*Service, *MemoryRepo) {
	userRepo := users.NewMemoryRepo()
	userRepo.Seed(users.User{ID: 7, Username: "alice", Email: "alice@example.com"})

	repo := NewMemoryRepo()
	repo.Seed(7, Details{
		UserProfile: UserProfile{
			UserID:    7,
			Username:  "alice",
			ProfileID: 70,
			Bio:       strp("Backend engineer."),
		},
		Experiences: []Experience{
			{ID: 1, CompanyName: "Acme", Role: strp("Engineer")},
		},
	})

	return &Service{Users: userRepo, Repo: repo}, repo
}

func TestDetailsReturnsAggregatedDocument(t *testing.T) {
	svc, _ := newTestProfileService()

	d, err := svc.Details(context.Background(), 7)
	if err != nil {
		t.Fatalf("Details: %v", err)
	}
	if d.UserProfile.Username != "alice" {
		t.Fatalf("username = %q, want alice", d.UserProfile.Username)
	}
	if len(d.Experiences) != 1 || d.Experiences[0].CompanyName != "Acme" {
		t.Fatalf("experiences = %+v", d.Experiences)
	}
}

func TestDetailsUnknownUser(t *testing.T) {
	svc, _ := newTestProfileService()
	if _, err := svc.Details(context.Background(), 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestSaveTemplateStoresJSON(t *testing.T) {
	svc, repo := newTestProfileService()

	tpl := json.RawMessage(`{"layout":"two-column"}`)
	if err := svc.SaveTemplate(context.Background(), 7, tpl); err != nil {
		t.Fatalf("SaveTemplate: %v", err)
	}

	stored, ok := repo.Template(70)
	if !ok {
		t.Fatalf("template not stored")
	}
	if string(stored) != string(tpl) {
		t.Fatalf("stored = %s, want %s", stored, tpl)
	}
}

func TestSaveTemplateRejectsMalformedJSON(t *testing.T) {
	svc, _ := newTestProfileService()

	for _, raw := range []string{"", "{not json"} {
		err := svc.SaveTemplate(context.Background(), 7, json.RawMessage(raw))
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("SaveTemplate(%q) = %v, want ErrInvalidInput", raw, err)
		}
	}
}

func TestRestoreDefaultTemplate(t *testing.T) {
	svc, repo := newTestProfileService()

	if err := svc.SaveTemplate(context.Background(), 7, json.RawMessage(`{"a":1}`)); err != nil {
		t.Fatalf("SaveTemplate: %v", err)
	}
	if err := svc.RestoreDefaultTemplate(context.Background(), 7); err != nil {
		t.Fatalf("RestoreDefaultTemplate: %v", err)
	}
	if _, ok := repo.Template(70); ok {
		t.Fatalf("template still stored after restore")
	}
}
