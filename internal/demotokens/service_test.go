package demotokens

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestTokenService() (*Service, *time.Time) {
	// Token signatures are validated against the real clock, so the
	// injectable clock starts at the present and is advanced by tests.
	now := time.Now().UTC()
	current := &now
	return &Service{
		Repo:   NewMemoryRepo(),
		Secret: "secret",
		Now:    func() time.Time { return *current },
	}, current
}

func TestCheckAndConsumeCountsUpToLimit(t *testing.T) {
	svc, _ := newTestTokenService()

	rec, created, err := svc.CreateOrGet(context.Background(), "203.0.113.9")
	if err != nil {
		t.Fatalf("CreateOrGet: %v", err)
	}
	if !created {
		t.Fatalf("expected new record")
	}

	for i := 1; i <= Limit; i++ {
		allowed, count, err := svc.CheckAndConsume(context.Background(), rec.Token)
		if err != nil {
			t.Fatalf("CheckAndConsume %d: %v", i, err)
		}
		if !allowed || count != i {
			t.Fatalf("call %d: allowed=%v count=%d", i, allowed, count)
		}
	}

	allowed, count, err := svc.CheckAndConsume(context.Background(), rec.Token)
	if err != nil {
		t.Fatalf("CheckAndConsume over limit: %v", err)
	}
	if allowed {
		t.Fatalf("call %d allowed, want rejected", Limit+1)
	}
	if count != Limit {
		t.Fatalf("count = %d, want %d", count, Limit)
	}
}

func TestCheckAndConsumeRejectsUnknownToken(t *testing.T) {
	svc, _ := newTestTokenService()

	// A validly signed token with no backing record is still rejected.
	token, err := Sign("secret", "203.0.113.9", time.Now(), time.Hour)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	allowed, count, err := svc.CheckAndConsume(context.Background(), token)
	if err != nil {
		t.Fatalf("CheckAndConsume: %v", err)
	}
	if allowed || count != 0 {
		t.Fatalf("allowed=%v count=%d, want rejected with 0", allowed, count)
	}
}

func TestCheckAndConsumeRejectsBadToken(t *testing.T) {
	svc, _ := newTestTokenService()
	allowed, count, err := svc.CheckAndConsume(context.Background(), "garbage")
	if err != nil {
		t.Fatalf("CheckAndConsume: %v", err)
	}
	if allowed || count != 0 {
		t.Fatalf("allowed=%v count=%d, want rejected with 0", allowed, count)
	}
}

func TestCreateOrGetReturnsExistingRecord(t *testing.T) {
	svc, _ := newTestTokenService()

	first, created, err := svc.CreateOrGet(context.Background(), "203.0.113.9")
	if err != nil || !created {
		t.Fatalf("first CreateOrGet: created=%v err=%v", created, err)
	}
	second, created, err := svc.CreateOrGet(context.Background(), "203.0.113.9")
	if err != nil {
		t.Fatalf("second CreateOrGet: %v", err)
	}
	if created {
		t.Fatalf("second call must reuse the record")
	}
	if second.Token != first.Token {
		t.Fatalf("token changed between calls")
	}
}

func TestRecordExpiresAfterTTL(t *testing.T) {
	svc, now := newTestTokenService()

	rec, _, err := svc.CreateOrGet(context.Background(), "203.0.113.9")
	if err != nil {
		t.Fatalf("CreateOrGet: %v", err)
	}

	*now = now.Add(TTL + time.Minute)

	if _, err := svc.GetByIP(context.Background(), "203.0.113.9"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetByIP after expiry: got %v, want ErrNotFound", err)
	}

	// The sweep hard-deleted the record.
	if _, err := svc.Repo.FindActive(context.Background(), rec.Token, "203.0.113.9", now.Add(-2*TTL)); !errors.Is(err, ErrNotFound) {
		t.Fatalf("record not swept: %v", err)
	}
}

func TestExpiredRecordGetsFreshToken(t *testing.T) {
	svc, now := newTestTokenService()

	first, _, err := svc.CreateOrGet(context.Background(), "203.0.113.9")
	if err != nil {
		t.Fatalf("CreateOrGet: %v", err)
	}

	*now = now.Add(TTL + time.Minute)

	second, created, err := svc.CreateOrGet(context.Background(), "203.0.113.9")
	if err != nil {
		t.Fatalf("CreateOrGet after expiry: %v", err)
	}
	if !created {
		t.Fatalf("expected fresh record after expiry")
	}
	if second.Token == first.Token {
		t.Fatalf("expired token was reissued")
	}
	if second.GenerationCount != 0 {
		t.Fatalf("fresh record count = %d, want 0", second.GenerationCount)
	}
}

func TestCheckLimitReportsCeiling(t *testing.T) {
	svc, _ := newTestTokenService()

	rec, _, err := svc.CreateOrGet(context.Background(), "203.0.113.9")
	if err != nil {
		t.Fatalf("CreateOrGet: %v", err)
	}

	_, reached, err := svc.CheckLimit(context.Background(), rec.Token)
	if err != nil {
		t.Fatalf("CheckLimit: %v", err)
	}
	if reached {
		t.Fatalf("fresh token reports limit reached")
	}

	for i := 0; i < Limit; i++ {
		if _, err := svc.Increment(context.Background(), rec.Token); err != nil {
			t.Fatalf("Increment %d: %v", i, err)
		}
	}

	got, reached, err := svc.CheckLimit(context.Background(), rec.Token)
	if err != nil {
		t.Fatalf("CheckLimit at ceiling: %v", err)
	}
	if !reached || got.GenerationCount != Limit {
		t.Fatalf("reached=%v count=%d, want true/%d", reached, got.GenerationCount, Limit)
	}
}

func TestCleanupReportsDeletedCount(t *testing.T) {
	svc, now := newTestTokenService()

	for _, ip := range []string{"203.0.113.1", "203.0.113.2"} {
		if _, _, err := svc.CreateOrGet(context.Background(), ip); err != nil {
			t.Fatalf("CreateOrGet(%s): %v", ip, err)
		}
	}

	deleted, err := svc.Cleanup(context.Background())
	if err != nil {
		t.Fatalf("Cleanup: %v", err)
	}
	if deleted != 0 {
		t.Fatalf("deleted = %d, want 0 while live", deleted)
	}

	*now = now.Add(TTL + time.Minute)

	deleted, err = svc.Cleanup(context.Background())
	if err != nil {
		t.Fatalf("Cleanup after expiry: %v", err)
	}
	if deleted != 2 {
		t.Fatalf("deleted = %d, want 2", deleted)
	}
}
