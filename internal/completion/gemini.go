package completion

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/genai"
)

// GeminiClient completes prompts with the Gemini API.
type GeminiClient struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewGeminiClient creates a Gemini-backed completer. Without an API key the
// client is still returned and answers every prompt with the
// missing-credential text.
func NewGeminiClient(ctx context.Context, cfg Config) (*GeminiClient, error) {
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	g := &GeminiClient{model: model, timeout: timeout}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return g, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	g.client = client
	return g, nil
}

// Complete generates content for the prompt.
func (g *GeminiClient) Complete(ctx context.Context, prompt string) string {
	if g.client == nil {
		failed(reasonCredential)
		return MissingCredentialText
	}

	start := time.Now()
	defer observe(ProviderGemini, start)

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		if isTimeout(err) || ctx.Err() != nil {
			failed(reasonTimeout)
			return TimeoutText
		}
		failed(reasonTransport)
		slog.Error("gemini generate failed", "model", g.model, "error", err)
		return FailureText(err.Error())
	}
	return geminiText(resp)
}

// geminiText joins the text parts of the first candidate. A response without
// candidates is returned re-encoded.
func geminiText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		encoded, err := json.Marshal(resp)
		if err != nil {
			return ""
		}
		return string(encoded)
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			b.WriteString(part.Text)
		}
	}
	return b.String()
}
