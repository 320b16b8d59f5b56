package resumes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"resume-builder/resume/model"
)

// MaxTitleLength bounds resume titles.
const MaxTitleLength = 200

type Service struct {
	Repo  Repo
	NewID func() string
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo, NewID: uuid.NewString}
}

func normalizeTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return DefaultTitle, nil
	}
	if len([]rune(title)) > MaxTitleLength {
		return "", fmt.Errorf("%w: title exceeds %d characters", ErrInvalidInput, MaxTitleLength)
	}
	return title, nil
}

func (s *Service) Create(ctx context.Context, userID, title string, doc model.ResumeDocument) (Resume, error) {
	if s == nil || s.Repo == nil {
		return Resume{}, errors.New("resumes service not configured")
	}
	if strings.TrimSpace(userID) == "" {
		return Resume{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	title, err := normalizeTitle(title)
	if err != nil {
		return Resume{}, err
	}
	resume := Resume{
		ID:       s.NewID(),
		UserID:   userID,
		Title:    title,
		Document: doc.Normalized(),
	}
	if err := s.Repo.Create(ctx, resume); err != nil {
		return Resume{}, err
	}
	return s.Repo.Get(ctx, resume.ID)
}

func (s *Service) List(ctx context.Context, userID string) ([]Resume, error) {
	return s.Repo.ListByUser(ctx, userID)
}

// Get returns the resume when userID owns it. Resumes owned by someone else
// are reported as ErrNotFound.
func (s *Service) Get(ctx context.Context, userID, id string) (Resume, error) {
	resume, err := s.Repo.Get(ctx, id)
	if err != nil {
		return Resume{}, err
	}
	if resume.UserID != userID {
		return Resume{}, ErrNotFound
	}
	return resume, nil
}

func (s *Service) Update(ctx context.Context, userID, id, title string, doc model.ResumeDocument) (Resume, error) {
	existing, err := s.Get(ctx, userID, id)
	if err != nil {
		return Resume{}, err
	}
	title, err = normalizeTitle(title)
	if err != nil {
		return Resume{}, err
	}
	existing.Title = title
	existing.Document = doc.Normalized()
	return s.Repo.Update(ctx, existing)
}

func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	return s.Repo.Delete(ctx, id)
}

func (s *Service) CountByUser(ctx context.Context, userID string) (int64, error) {
	return s.Repo.CountByUser(ctx, userID)
}
