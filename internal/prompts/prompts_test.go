package prompts

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGetEmbedded(t *testing.T) {
	for _, name := range []string{ParseRequest, Chat, Chat + ".md"} {
		content, err := Get(name)
		if err != nil {
			t.Fatalf("Expected %s to be embedded, got %v", name, err)
		}
		if content == "" {
			t.Errorf("Expected %s to have content", name)
		}
	}
}

func TestGetMissing(t *testing.T) {
	if _, err := Get("nope"); err == nil {
		t.Error("Expected error for missing prompt")
	}
}

func TestGetWithOverride(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "prompts"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "prompts", "chat.md"), []byte("custom"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := GetWithOverride(dir, Chat)
	if err != nil {
		t.Fatal(err)
	}
	if got != "custom" {
		t.Errorf("Expected override content, got %q", got)
	}

	got, err = GetWithOverride(dir, ParseRequest)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "project_name") {
		t.Errorf("Expected embedded fallback, got %q", got)
	}
}

func TestRender(t *testing.T) {
	content, err := Get(ParseRequest)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Render(content, map[string]any{"Message": "make a vue app", "Frameworks": "react, vue"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !strings.Contains(got, `"make a vue app"`) || !strings.Contains(got, "react, vue") {
		t.Errorf("Expected message and frameworks in prompt, got %q", got)
	}

	if _, err := Render("{{.Missing}}", map[string]any{}); err == nil {
		t.Error("Expected error for missing key")
	}
}
