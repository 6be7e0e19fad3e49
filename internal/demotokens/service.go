package demotokens

import (
	"context"
	"errors"
	"time"

	"resume-builder/internal/shared/telemetry"
)

// Service contains business logic for demo token rate limiting. Expired
// records are lazily swept before each lookup, in addition to the explicit
// Cleanup used by the maintenance command.
type Service struct {
	Repo   Repo
	Secret string

	// Now is injectable for deterministic expiry handling in tests.
	Now func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// CheckAndConsume verifies the token, checks the counter against the
// ceiling, and on success counts this invocation. A failed verification or
// missing record rejects with count 0; a counter at the ceiling rejects and
// surfaces the current count. Only storage failures are returned as errors.
func (s *Service) CheckAndConsume(ctx context.Context, token string) (bool, int, error) {
	claims, err := Verify(s.Secret, token)
	if err != nil {
		return false, 0, nil
	}

	now := s.now()
	s.sweep(ctx, now)

	rec, err := s.Repo.FindActive(ctx, token, claims.IP, now)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, 0, nil
		}
		return false, 0, err
	}
	if rec.GenerationCount >= Limit {
		return false, rec.GenerationCount, nil
	}

	newCount := rec.GenerationCount + 1
	if err := s.Repo.SetCount(ctx, rec.ID, newCount, now); err != nil {
		return false, 0, err
	}
	return true, newCount, nil
}

// CreateOrGet returns the live record for an IP, issuing a fresh signed
// token when none exists. The second return reports whether a new record
// was created.
func (s *Service) CreateOrGet(ctx context.Context, ip string) (TokenRecord, bool, error) {
	now := s.now()
	s.sweep(ctx, now)

	rec, err := s.Repo.FindActiveByIP(ctx, ip, now)
	if err == nil {
		return rec, false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return TokenRecord{}, false, err
	}

	token, err := Sign(s.Secret, ip, now, TTL)
	if err != nil {
		return TokenRecord{}, false, err
	}
	rec = TokenRecord{
		Token:           token,
		IPAddress:       ip,
		GenerationCount: 0,
		Expiry:          now.Add(TTL),
		CreatedAt:       now,
	}
	id, err := s.Repo.Insert(ctx, rec)
	if err != nil {
		return TokenRecord{}, false, err
	}
	rec.ID = id
	return rec, true, nil
}

// GetByIP returns the live record for an IP, or ErrNotFound.
func (s *Service) GetByIP(ctx context.Context, ip string) (TokenRecord, error) {
	now := s.now()
	s.sweep(ctx, now)
	return s.Repo.FindActiveByIP(ctx, ip, now)
}

// Increment bumps the counter for a verified token without a ceiling check.
func (s *Service) Increment(ctx context.Context, token string) (TokenRecord, error) {
	claims, err := Verify(s.Secret, token)
	if err != nil {
		return TokenRecord{}, err
	}

	now := s.now()
	rec, err := s.Repo.FindActive(ctx, token, claims.IP, now)
	if err != nil {
		return TokenRecord{}, err
	}
	rec.GenerationCount++
	if err := s.Repo.SetCount(ctx, rec.ID, rec.GenerationCount, now); err != nil {
		return TokenRecord{}, err
	}
	return rec, nil
}

// CheckLimit reports the current count and whether the ceiling is reached.
func (s *Service) CheckLimit(ctx context.Context, token string) (TokenRecord, bool, error) {
	claims, err := Verify(s.Secret, token)
	if err != nil {
		return TokenRecord{}, false, err
	}

	rec, err := s.Repo.FindActive(ctx, token, claims.IP, s.now())
	if err != nil {
		return TokenRecord{}, false, err
	}
	return rec, rec.GenerationCount >= Limit, nil
}

// Cleanup deletes every expired record and reports how many went away.
func (s *Service) Cleanup(ctx context.Context) (int64, error) {
	return s.Repo.DeleteExpired(ctx, s.now())
}

func (s *Service) sweep(ctx context.Context, now time.Time) {
	if _, err := s.Repo.DeleteExpired(ctx, now); err != nil {
		telemetry.Warn("demotokens.sweep_failed", map[string]any{"error": err.Error()})
	}
}
