package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode"

	"github.com/daydemir/herbie/internal/prompts"
	"github.com/daydemir/herbie/internal/types"
)

// ErrEmptyMessage is returned by ParseRequest for blank input
var ErrEmptyMessage = errors.New("empty message")

// DefaultProjectName is used when a message names no project
const DefaultProjectName = "my-project"

// IntentKind says what the user wants
type IntentKind string

const (
	IntentCreate IntentKind = "create_project"
	IntentChat   IntentKind = "chat"
)

// Intent is a parsed user message
type Intent struct {
	Kind        IntentKind        `json:"intent"`
	ProjectName string            `json:"project_name"`
	Framework   types.FrameworkID `json:"-"`
	Private     bool              `json:"is_private"`
	Description string            `json:"description"`

	// Manual is set when the keyword parser produced the intent
	Manual bool `json:"-"`
	// FallbackReason explains why the model's answer was not used
	FallbackReason string `json:"-"`
}

// IsCreate reports whether the intent asks for a new project
func (i Intent) IsCreate() bool {
	return i.Kind == IntentCreate
}

// rawIntent mirrors the JSON the model is asked for
type rawIntent struct {
	Intent      string `json:"intent"`
	ProjectName string `json:"project_name"`
	Framework   string `json:"framework"`
	IsPrivate   bool   `json:"is_private"`
	Description string `json:"description"`
}

// Parser turns free text into an Intent
type Parser struct {
	backend   Backend
	promptDir string
}

// NewParser creates a parser. promptDir may hold prompts/parse_request.md to
// override the embedded prompt.
func NewParser(backend Backend, promptDir string) *Parser {
	return &Parser{backend: backend, promptDir: promptDir}
}

// ParseRequest asks the backend to classify text. When the backend fails or
// its reply holds no usable JSON, the keyword parser answers instead and the
// reason is kept on the intent.
func ParseRequest(ctx context.Context, backend Backend, text string) (Intent, error) {
	return NewParser(backend, "").Parse(ctx, text)
}

// Parse is ParseRequest with the parser's prompt override
func (p *Parser) Parse(ctx context.Context, text string) (Intent, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Intent{}, ErrEmptyMessage
	}

	prompt, err := p.prompt(text)
	if err != nil {
		return Intent{}, err
	}

	if p.backend == nil {
		return fallback(text, "no LLM backend configured"), nil
	}

	reply, err := p.backend.Infer(ctx, prompt)
	if err != nil {
		if ctx.Err() != nil {
			return Intent{}, ctx.Err()
		}
		return fallback(text, err.Error()), nil
	}

	intent, err := decodeIntent(reply)
	if err != nil {
		return fallback(text, err.Error()), nil
	}
	if intent.Description == "" {
		intent.Description = text
	}
	return intent, nil
}

func (p *Parser) prompt(text string) (string, error) {
	content, err := prompts.GetWithOverride(p.promptDir, prompts.ParseRequest)
	if err != nil {
		return "", err
	}
	return prompts.Render(content, map[string]any{
		"Message":    strings.ReplaceAll(text, `"`, `'`),
		"Frameworks": frameworkList(),
	})
}

func fallback(text, reason string) Intent {
	intent := ManualParse(text)
	intent.FallbackReason = reason
	return intent
}

// decodeIntent pulls the outermost {...} out of a model reply
func decodeIntent(reply string) (Intent, error) {
	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start == -1 || end <= start {
		return Intent{}, errors.New("model reply contained no JSON object")
	}

	var raw rawIntent
	if err := json.Unmarshal([]byte(reply[start:end+1]), &raw); err != nil {
		return Intent{}, fmt.Errorf("model reply was not valid JSON: %w", err)
	}

	intent := Intent{
		Kind:        IntentChat,
		ProjectName: strings.TrimSpace(raw.ProjectName),
		Private:     raw.IsPrivate,
		Description: strings.TrimSpace(raw.Description),
	}
	if id, ok := types.ParseFrameworkID(raw.Framework); ok {
		intent.Framework = id
	}
	if IntentKind(strings.ToLower(strings.TrimSpace(raw.Intent))) == IntentCreate {
		intent.Kind = IntentCreate
		if intent.ProjectName == "" {
			intent.ProjectName = DefaultProjectName
		}
	}
	return intent, nil
}

var (
	// words that precede a project name
	nameMarkers = map[string]bool{
		"named": true, "called": true, "llamado": true, "nombre": true, "repositorio": true,
	}
	// whole-word phrases that mark a create request
	createPhrases = [][]string{
		{"create"}, {"new"}, {"make"}, {"scaffold"}, {"set", "up"}, {"setup"},
		{"start", "a"}, {"bootstrap"}, {"crear"}, {"crea"},
	}
)

// ManualParse is the keyword parser used when the model is unavailable.
// Privacy comes from "private"/"privado", the name from the word after a
// marker such as "named" or "called", and the framework from any word that
// resolves to a known id.
func ManualParse(text string) Intent {
	lower := strings.ToLower(text)
	intent := Intent{
		Kind:        IntentChat,
		ProjectName: DefaultProjectName,
		Private:     strings.Contains(lower, "private") || strings.Contains(lower, "privado"),
		Description: strings.TrimSpace(text),
		Manual:      true,
	}

	words := strings.Fields(text)
	for i, word := range words {
		if nameMarkers[strings.ToLower(word)] && i+1 < len(words) {
			if name := strings.Trim(words[i+1], `"'.,!?`); name != "" {
				intent.ProjectName = name
				break
			}
		}
	}

	for i, word := range words {
		if id, ok := types.ParseFrameworkID(strings.Trim(word, `"'.,!?()`)); ok {
			intent.Framework = id
			break
		}
		if i+1 < len(words) {
			if id, ok := types.ParseFrameworkID(word + " " + words[i+1]); ok {
				intent.Framework = id
				break
			}
		}
	}

	tokens := strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, phrase := range createPhrases {
		if containsPhrase(tokens, phrase) {
			intent.Kind = IntentCreate
			break
		}
	}
	return intent
}

// containsPhrase reports whether phrase appears in tokens as consecutive words
func containsPhrase(tokens, phrase []string) bool {
	for i := 0; i+len(phrase) <= len(tokens); i++ {
		if slices.Equal(tokens[i:i+len(phrase)], phrase) {
			return true
		}
	}
	return false
}

func frameworkList() string {
	ids := types.AllFrameworkIDs()
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = id.String()
	}
	return strings.Join(names, ", ")
}
