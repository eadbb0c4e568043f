package classifier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"fintrack/internal/core"
)

const (
	defaultModel   = "gemini-2.5-flash-preview-05-20"
	defaultTimeout = 10 * time.Second
)

// contentGenerator is the slice of *genai.GenerativeModel Suggest needs.
type contentGenerator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// Gemini asks a Gemini model for the category and validates the answer
// against the closed set.
type Gemini struct {
	client  *genai.Client
	gen     contentGenerator
	timeout time.Duration
	logger  *slog.Logger
}

// NewGemini builds a classifier backed by the Gemini API. A non-positive
// timeout falls back to the 10s default.
func NewGemini(ctx context.Context, apiKey string, timeout time.Duration, logger *slog.Logger) (*Gemini, error) {
	if apiKey == "" {
		return nil, errors.New("missing Gemini API key")
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}

	return &Gemini{
		client:  client,
		gen:     client.GenerativeModel(defaultModel),
		timeout: timeout,
		logger:  logger,
	}, nil
}

// Close releases the underlying API client.
func (g *Gemini) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}

// Suggest implements Suggester. The call is bounded by the configured
// timeout; any failure degrades to Other instead of propagating.
func (g *Gemini) Suggest(ctx context.Context, description string) Suggestion {
	cctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.gen.GenerateContent(cctx, genai.Text(prompt(description)))
	if err != nil {
		g.logger.WarnContext(ctx, "Classification degraded",
			"error", err,
			"fallback", core.CategoryOther)
		return Suggestion{Category: core.CategoryOther, Degraded: true}
	}

	answer, ok := firstText(resp)
	if !ok {
		g.logger.WarnContext(ctx, "Classification returned no text",
			"fallback", core.CategoryOther)
		return Suggestion{Category: core.CategoryOther, Degraded: true}
	}

	category, matched := Normalize(answer)
	if !matched {
		g.logger.WarnContext(ctx, "Classification answer outside the category set",
			"answer", answer,
			"fallback", core.CategoryOther)
		return Suggestion{Category: core.CategoryOther, Degraded: true}
	}
	return Suggestion{Category: category}
}

func prompt(description string) string {
	names := make([]string, 0, len(core.Categories()))
	for _, c := range core.Categories() {
		names = append(names, c.String())
	}
	return fmt.Sprintf(
		"Categorize the following transaction description into one of these categories: %s. "+
			"Only respond with the category name.\n\nTransaction: %s",
		strings.Join(names, ", "), description)
}

func firstText(resp *genai.GenerateContentResponse) (string, bool) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", false
	}
	content := resp.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 {
		return "", false
	}
	text, ok := content.Parts[0].(genai.Text)
	if !ok {
		return "", false
	}
	return string(text), true
}
