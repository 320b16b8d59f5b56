package suggestions

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"google.golang.org/genai"
)

const (
	geminiTemperature     = 0.7
	geminiMaxOutputTokens = 1024
	maxGeneratedOptions   = 3
)

// TextGenerator turns a prompt into model output.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// GeminiClient calls the Gemini API through the genai SDK.
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient creates a Gemini API client for model.
func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiClient{client: client, model: model}, nil
}

func (g *GeminiClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	temperature := float32(geminiTemperature)
	config := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: geminiMaxOutputTokens,
	}
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	if resp == nil {
		return "", ErrEmptyCompletion
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", ErrEmptyCompletion
	}
	return text, nil
}

// GeminiProvider asks a language model for rewrite options, one per line.
type GeminiProvider struct {
	Generator TextGenerator
}

func (p *GeminiProvider) Name() string { return "gemini" }

func (p *GeminiProvider) GenerateSummary(ctx context.Context, role string, positions, skills []string) ([]Suggestion, error) {
	prompt := fmt.Sprintf(`Write %d alternative professional summaries for a resume.
Role: %s
Positions held: %s
Skills: %s
Each summary is two or three sentences in the first person without pronouns.
Return one summary per line with no numbering or extra text.`,
		maxGeneratedOptions, role, strings.Join(nonEmpty(positions), ", "), strings.Join(nonEmpty(skills), ", "))
	return p.generate(ctx, TypeSummary, prompt)
}

func (p *GeminiProvider) OptimizeDescription(ctx context.Context, description, position string) ([]Suggestion, error) {
	prompt := fmt.Sprintf(`Rewrite this resume job description for the position %q so it is concise and achievement oriented.
Description: %s
Return %d alternatives, one per line, with no numbering or extra text.`,
		position, description, maxGeneratedOptions)
	return p.generate(ctx, TypeDescription, prompt)
}

func (p *GeminiProvider) generate(ctx context.Context, kind, prompt string) ([]Suggestion, error) {
	text, err := p.Generator.GenerateText(ctx, prompt)
	if err != nil {
		return nil, err
	}
	options := parseOptions(text)
	if len(options) == 0 {
		return nil, ErrEmptyCompletion
	}
	out := make([]Suggestion, 0, len(options))
	for i, content := range options {
		out = append(out, Suggestion{Type: kind, Content: content, Confidence: rankConfidence(i)})
	}
	return out, nil
}

var listMarker = regexp.MustCompile(`^(?:[-*•]|\d+[.)])\s+`)

// parseOptions splits model output into at most maxGeneratedOptions lines,
// dropping list markers the model adds despite the prompt.
func parseOptions(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = listMarker.ReplaceAllString(strings.TrimSpace(line), "")
		line = strings.TrimSpace(strings.Trim(line, `"`))
		if line == "" {
			continue
		}
		out = append(out, line)
		if len(out) == maxGeneratedOptions {
			break
		}
	}
	return out
}

// rankConfidence gives the first option 0.9 and each later one 0.1 less.
func rankConfidence(rank int) float64 {
	c := 0.9 - 0.1*float64(rank)
	if c < 0.1 {
		c = 0.1
	}
	return c
}

var _ Provider = (*GeminiProvider)(nil)
