package suggestions

import (
	"context"
	"errors"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	// ErrEmptyCompletion is returned when a model answers with no usable text.
	ErrEmptyCompletion = errors.New("empty completion")
)

// Suggestion kinds.
const (
	TypeSummary     = "summary"
	TypeDescription = "description"
)

// Suggestion is one ranked rewrite proposal.
type Suggestion struct {
	Type       string  `json:"type"`
	Content    string  `json:"content"`
	Confidence float64 `json:"confidence"`
}

// ATSResult is the applicant tracking system readiness report.
type ATSResult struct {
	Score       int      `json:"score"`
	Suggestions []string `json:"suggestions"`
	Feedback    string   `json:"feedback"`
}

// Provider produces text suggestions.
type Provider interface {
	Name() string
	GenerateSummary(ctx context.Context, role string, positions, skills []string) ([]Suggestion, error)
	OptimizeDescription(ctx context.Context, description, position string) ([]Suggestion, error)
}
