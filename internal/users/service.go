package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// MaxNameLength bounds the display name accepted by UpdateName.
const MaxNameLength = 120

type Service struct {
	Repo    Repo
	Resumes ResumeCounter
}

func NewService(repo Repo, resumes ResumeCounter) *Service {
	return &Service{Repo: repo, Resumes: resumes}
}

// UpsertFromAuth persists the identity returned by the OAuth provider.
// A missing name falls back to the local part of the email.
func (s *Service) UpsertFromAuth(ctx context.Context, user User) error {
	if s == nil || s.Repo == nil {
		return errors.New("users service not configured")
	}
	user.ID = strings.TrimSpace(user.ID)
	user.Email = strings.TrimSpace(user.Email)
	if user.ID == "" || user.Email == "" {
		return fmt.Errorf("%w: user id and email are required", ErrInvalidInput)
	}
	if strings.TrimSpace(user.Name) == "" {
		user.Name = emailLocalPart(user.Email)
	}
	return s.Repo.Upsert(ctx, user)
}

func (s *Service) GetByID(ctx context.Context, userID string) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	if strings.TrimSpace(userID) == "" {
		return User{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	return s.Repo.GetByID(ctx, userID)
}

func (s *Service) UpdateName(ctx context.Context, userID, name string) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return User{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len([]rune(name)) > MaxNameLength {
		return User{}, fmt.Errorf("%w: name exceeds %d characters", ErrInvalidInput, MaxNameLength)
	}
	return s.Repo.UpdateName(ctx, userID, name)
}

// Profile returns the user together with the number of resumes they own.
func (s *Service) Profile(ctx context.Context, userID string) (Profile, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return Profile{}, err
	}
	profile := Profile{User: user}
	if s.Resumes != nil {
		n, err := s.Resumes.CountByUser(ctx, userID)
		if err != nil {
			return Profile{}, fmt.Errorf("count resumes: %w", err)
		}
		profile.ResumeCount = n
	}
	return profile, nil
}

func emailLocalPart(email string) string {
	if i := strings.Index(email, "@"); i > 0 {
		return email[:i]
	}
	return email
}
