package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/daydemir/herbie/internal/config"
)

// ErrMissingAPIKey is returned when the configured backend needs a key and none is set
var ErrMissingAPIKey = errors.New("no LLM API key configured (set OPENAI_API_KEY or llm.api_key)")

// Backend represents an LLM inference backend
type Backend interface {
	// Name returns the backend name (e.g., "openai")
	Name() string

	// Infer sends a single prompt and returns the model's text reply
	Infer(ctx context.Context, prompt string) (string, error)
}

// NewBackend builds the backend named in cfg.Backend
func NewBackend(cfg config.LLMConfig) (Backend, error) {
	switch strings.ToLower(cfg.Backend) {
	case "", "openai":
		return NewOpenAI(cfg)
	default:
		return nil, fmt.Errorf("unsupported LLM backend %q (supported: openai)", cfg.Backend)
	}
}
