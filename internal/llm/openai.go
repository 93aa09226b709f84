package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/daydemir/herbie/internal/config"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// OpenAI implements Backend for OpenAI and OpenAI-compatible endpoints
type OpenAI struct {
	model       llms.Model
	modelName   string
	temperature float64
}

// NewOpenAI creates an OpenAI backend. A custom base URL may point at any
// OpenAI-compatible server; those may run without a key.
func NewOpenAI(cfg config.LLMConfig) (*OpenAI, error) {
	token := cfg.APIKey.Value()
	if token == "" {
		if cfg.BaseURL == "" {
			return nil, ErrMissingAPIKey
		}
		// langchaingo requires a token even when the server ignores it
		token = "placeholder"
	}

	opts := []openai.Option{
		openai.WithToken(token),
		openai.WithModel(cfg.Model),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}

	model, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("creating OpenAI client: %w", err)
	}

	return &OpenAI{model: model, modelName: cfg.Model, temperature: cfg.Temperature}, nil
}

func (o *OpenAI) Name() string {
	return "openai"
}

// Model returns the configured model name
func (o *OpenAI) Model() string {
	return o.modelName
}

// Infer runs a single-prompt completion
func (o *OpenAI) Infer(ctx context.Context, prompt string) (string, error) {
	out, err := llms.GenerateFromSinglePrompt(ctx, o.model, prompt, llms.WithTemperature(o.temperature))
	if err != nil {
		return "", fmt.Errorf("openai completion failed: %w", err)
	}
	return strings.TrimSpace(out), nil
}
