package suggestions

import (
	"context"
	"fmt"
	"strings"
)

// MockProvider returns canned suggestions built from the input. Equal input
// yields equal output.
type MockProvider struct{}

func (MockProvider) Name() string { return "mock" }

func (MockProvider) GenerateSummary(ctx context.Context, role string, positions, skills []string) ([]Suggestion, error) {
	role = strings.TrimSpace(role)
	if role == "" {
		role = "Professional"
	}
	experience := "diverse roles"
	if p := nonEmpty(positions); len(p) > 0 {
		experience = joinList(p, 2)
	}
	expertise := "a broad set of tools"
	if s := nonEmpty(skills); len(s) > 0 {
		expertise = joinList(s, 3)
	}

	return []Suggestion{
		{
			Type:       TypeSummary,
			Content:    fmt.Sprintf("Results-driven %s with hands-on experience as %s. Skilled in %s, with a track record of delivering reliable work and collaborating across teams.", role, experience, expertise),
			Confidence: 0.9,
		},
		{
			Type:       TypeSummary,
			Content:    fmt.Sprintf("%s bringing expertise in %s. Experienced as %s and focused on measurable impact.", role, expertise, experience),
			Confidence: 0.8,
		},
		{
			Type:       TypeSummary,
			Content:    fmt.Sprintf("Motivated %s who combines %s with strong communication skills.", role, expertise),
			Confidence: 0.7,
		},
	}, nil
}

func (MockProvider) OptimizeDescription(ctx context.Context, description, position string) ([]Suggestion, error) {
	description = strings.TrimSpace(description)
	position = strings.TrimSpace(position)
	if position == "" {
		position = "the role"
	}
	body := strings.TrimSuffix(description, ".")

	return []Suggestion{
		{
			Type:       TypeDescription,
			Content:    fmt.Sprintf("Led key initiatives as %s: %s, improving delivery quality and team velocity.", position, lowerFirst(body)),
			Confidence: 0.85,
		},
		{
			Type:       TypeDescription,
			Content:    fmt.Sprintf("%s. Collaborated with stakeholders to ship measurable outcomes.", upperFirst(body)),
			Confidence: 0.75,
		},
	}, nil
}

func nonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// joinList joins up to max values as "a, b and c".
func joinList(values []string, max int) string {
	if len(values) > max {
		values = values[:max]
	}
	switch len(values) {
	case 0:
		return ""
	case 1:
		return values[0]
	}
	return strings.Join(values[:len(values)-1], ", ") + " and " + values[len(values)-1]
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

var _ Provider = MockProvider{}
