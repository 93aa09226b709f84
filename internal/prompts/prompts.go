package prompts

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

//go:embed templates/*.md
var embeddedPrompts embed.FS

// Prompt names
const (
	ParseRequest = "parse_request"
	Chat         = "chat"
)

// Get returns the embedded prompt content
func Get(name string) (string, error) {
	if !strings.HasSuffix(name, ".md") {
		name = name + ".md"
	}

	content, err := embeddedPrompts.ReadFile("templates/" + name)
	if err != nil {
		return "", fmt.Errorf("prompt %s not found: %w", name, err)
	}
	return string(content), nil
}

// GetWithOverride returns <dir>/prompts/<name>.md when it exists, otherwise the
// embedded prompt. An empty dir skips the override lookup.
func GetWithOverride(dir, name string) (string, error) {
	if !strings.HasSuffix(name, ".md") {
		name = name + ".md"
	}

	if dir != "" {
		if content, err := os.ReadFile(filepath.Join(dir, "prompts", name)); err == nil {
			return string(content), nil
		}
	}

	return Get(name)
}

// Render executes a prompt as a text/template with data
func Render(content string, data any) (string, error) {
	tmpl, err := template.New("prompt").Option("missingkey=error").Parse(content)
	if err != nil {
		return "", fmt.Errorf("failed to parse prompt: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render prompt: %w", err)
	}
	return buf.String(), nil
}
