package profiles

import (
	"context"
	"encoding/json"
	"errors"

	"resume-builder/internal/users"
)

// ErrInvalidInput is returned for malformed template payloads.
var ErrInvalidInput = errors.New("invalid input")

// Service contains business logic for profile aggregation and templates.
type Service struct {
	Users users.Repo
	Repo  Repo
}

// Details returns the aggregated profile document for a user.
func (s *Service) Details(ctx context.Context, userID int64) (Details, error) {
	if _, err := s.Users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return Details{}, ErrNotFound
		}
		return Details{}, err
	}
	return s.Repo.Details(ctx, userID)
}

// SaveTemplate stores a resume template on the user's profile.
func (s *Service) SaveTemplate(ctx context.Context, userID int64, template json.RawMessage) error {
	if len(template) == 0 || !json.Valid(template) {
		return ErrInvalidInput
	}
	profileID, err := s.profileID(ctx, userID)
	if err != nil {
		return err
	}
	return s.Repo.SaveTemplate(ctx, profileID, template)
}

// RestoreDefaultTemplate removes the stored template so the default applies.
func (s *Service) RestoreDefaultTemplate(ctx context.Context, userID int64) error {
	profileID, err := s.profileID(ctx, userID)
	if err != nil {
		return err
	}
	return s.Repo.ClearTemplate(ctx, profileID)
}

func (s *Service) profileID(ctx context.Context, userID int64) (int64, error) {
	if _, err := s.Users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	return s.Repo.ProfileIDByUserID(ctx, userID)
}
