package suggestions

import (
	"context"
	"strings"

	"resume-builder/internal/shared/telemetry"
	"resume-builder/resume/model"
)

const maxDescriptionLength = 4000

// Service validates suggestion requests and falls back to the offline
// provider when the configured one fails.
type Service struct {
	Provider Provider
	Fallback Provider
}

// NewService uses provider when non-nil and MockProvider otherwise.
func NewService(provider Provider) *Service {
	if provider == nil {
		provider = MockProvider{}
	}
	return &Service{Provider: provider, Fallback: MockProvider{}}
}

func (s *Service) GenerateSummary(ctx context.Context, role string, positions, skills []string) ([]Suggestion, error) {
	role = strings.TrimSpace(role)
	if role == "" {
		role = "Professional"
	}
	out, err := s.Provider.GenerateSummary(ctx, role, positions, skills)
	if err != nil && s.fallback(err) {
		return s.Fallback.GenerateSummary(ctx, role, positions, skills)
	}
	return out, err
}

func (s *Service) OptimizeDescription(ctx context.Context, description, position string) ([]Suggestion, error) {
	description = strings.TrimSpace(description)
	if description == "" || len(description) > maxDescriptionLength {
		return nil, ErrInvalidInput
	}
	out, err := s.Provider.OptimizeDescription(ctx, description, strings.TrimSpace(position))
	if err != nil && s.fallback(err) {
		return s.Fallback.OptimizeDescription(ctx, description, strings.TrimSpace(position))
	}
	return out, err
}

// ATSScore is computed locally regardless of the provider.
func (s *Service) ATSScore(doc model.ResumeDocument) ATSResult {
	return ScoreATS(doc)
}

func (s *Service) fallback(err error) bool {
	if s.Fallback == nil || s.Fallback == s.Provider {
		return false
	}
	telemetry.Warn("suggestions.provider_failed", map[string]any{
		"provider": s.Provider.Name(),
		"error":    err.Error(),
	})
	return true
}
