package advisor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/api/generativelanguage/v1beta"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// Generator produces a JSON reply for prompt under the given system instruction.
type Generator interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
}

type geminiGenerator struct {
	svc   *generativelanguage.Service
	model string
}

// NewGemini builds a Generator backed by the Gemini generateContent API.
func NewGemini(ctx context.Context, apiKey, model string, opts ...option.ClientOption) (Generator, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("gemini api key required")
	}
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("gemini model required")
	}
	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	svc, err := generativelanguage.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &geminiGenerator{svc: svc, model: strings.TrimPrefix(model, "models/")}, nil
}

func (g *geminiGenerator) Generate(ctx context.Context, system, prompt string) (string, error) {
	req := &generativelanguage.GenerateContentRequest{
		Contents: []*generativelanguage.Content{{
			Role:  "user",
			Parts: []*generativelanguage.Part{{Text: prompt}},
		}},
		SystemInstruction: &generativelanguage.Content{
			Parts: []*generativelanguage.Part{{Text: system}},
		},
		GenerationConfig: &generativelanguage.GenerationConfig{
			ResponseMimeType: "application/json",
		},
	}

	resp, err := g.svc.Models.GenerateContent("models/"+g.model, req).Context(ctx).Do()
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("gemini returned %d: %s", apiErr.Code, apiErr.Message)
		}
		return "", fmt.Errorf("gemini generate: %w", err)
	}

	for _, c := range resp.Candidates {
		if c == nil || c.Content == nil {
			continue
		}
		var b strings.Builder
		for _, p := range c.Content.Parts {
			if p != nil {
				b.WriteString(p.Text)
			}
		}
		if text := strings.TrimSpace(b.String()); text != "" {
			return text, nil
		}
	}
	return "", errors.New("gemini returned no candidates")
}
