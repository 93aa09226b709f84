package llm

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/daydemir/herbie/internal/prompts"
)

// maxTurns bounds the history replayed into each chat prompt
const maxTurns = 10

// Turn is one message in a conversation
type Turn struct {
	Role string
	Text string
}

// Conversation keeps a short chat history for free-form replies
type Conversation struct {
	backend   Backend
	promptDir string

	mu      sync.Mutex
	history []Turn
}

// NewConversation creates an empty conversation
func NewConversation(backend Backend, promptDir string) *Conversation {
	return &Conversation{backend: backend, promptDir: promptDir}
}

// Reply answers message and records both sides of the exchange
func (c *Conversation) Reply(ctx context.Context, message string) (string, error) {
	if c.backend == nil {
		return "", fmt.Errorf("chat unavailable: %w", ErrMissingAPIKey)
	}

	content, err := prompts.GetWithOverride(c.promptDir, prompts.Chat)
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	history := append([]Turn(nil), c.history...)
	c.mu.Unlock()

	prompt, err := prompts.Render(content, map[string]any{
		"Frameworks": frameworkList(),
		"History":    history,
		"Message":    message,
	})
	if err != nil {
		return "", err
	}

	reply, err := c.backend.Infer(ctx, prompt)
	if err != nil {
		return "", err
	}
	reply = strings.TrimSpace(reply)

	c.Record("user", message)
	c.Record("assistant", reply)
	return reply, nil
}

// Record appends a turn, dropping the oldest beyond maxTurns
func (c *Conversation) Record(role, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.history = append(c.history, Turn{Role: role, Text: text})
	if len(c.history) > maxTurns {
		c.history = c.history[len(c.history)-maxTurns:]
	}
}

// History returns a copy of the recorded turns
func (c *Conversation) History() []Turn {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Turn(nil), c.history...)
}
