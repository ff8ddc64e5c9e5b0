package advisory

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	generativelanguage "google.golang.org/api/generativelanguage/v1beta"
	"google.golang.org/api/option"

	"cobranca/internal/core"
	applog "cobranca/internal/log"
)

// Gemini asks the Generative Language API for a collection strategy.
type Gemini struct {
	svc   *generativelanguage.Service
	model string
}

// NewGemini builds the API-key authenticated client. The model name must
// be fully qualified, e.g. "models/gemini-1.5-flash".
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	svc, err := generativelanguage.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create generative language service: %w", err)
	}
	return &Gemini{svc: svc, model: model}, nil
}

// NewFromConfig returns a working Gemini advisor when an API key is set,
// and the Unavailable advisor otherwise.
func NewFromConfig(ctx context.Context, apiKey, model string) (Advisor, error) {
	if apiKey == "" {
		return Unavailable{}, nil
	}
	return NewGemini(ctx, apiKey, model)
}

func (g *Gemini) DebtStrategy(ctx context.Context, customer core.Customer, history []core.Transaction) string {
	req := &generativelanguage.GenerateContentRequest{
		Contents: []*generativelanguage.Content{
			{
				Role:  "user",
				Parts: []*generativelanguage.Part{{Text: buildPrompt(customer, history)}},
			},
		},
	}

	resp, err := g.svc.Models.GenerateContent(g.model, req).Context(ctx).Do()
	if err != nil {
		slog.ErrorContext(ctx, "Advisory request failed",
			applog.FieldCustomerID, customer.ID, "model", g.model, applog.FieldError, err)
		return FallbackUnavailable
	}

	text := firstCandidateText(resp)
	if text == "" {
		slog.WarnContext(ctx, "Advisory response had no text", applog.FieldCustomerID, customer.ID)
		return FallbackUnavailable
	}
	return text
}

func firstCandidateText(resp *generativelanguage.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		var b strings.Builder
		for _, part := range cand.Content.Parts {
			if part != nil {
				b.WriteString(part.Text)
			}
		}
		if s := strings.TrimSpace(b.String()); s != "" {
			return s
		}
	}
	return ""
}
