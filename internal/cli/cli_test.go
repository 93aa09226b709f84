package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/daydemir/herbie/internal/config"
)

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content += "log:\n  file: " + filepath.Join(dir, "herbie.log") + "\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestPolicyFromConfig(t *testing.T) {
	p := policyFromConfig(config.ExecutionConfig{
		PushAttempts:      5,
		DisableFallback:   true,
		Simulate:          true,
		DependencyTimeout: 7,
		ScaffoldTimeout:   60,
		SetupTimeout:      30,
		VCSTimeout:        20,
	})

	if !p.Simulate || p.Fallback || p.PushAttempts != 5 {
		t.Errorf("Unexpected policy flags: %+v", p)
	}
	if p.Timeouts.DependencyCheck != 7*time.Second || p.Timeouts.Scaffold != time.Minute {
		t.Errorf("Unexpected timeouts: %+v", p.Timeouts)
	}
	if !p.Publish {
		t.Error("Expected publish enabled by default")
	}
}

func TestFrameworksCommand(t *testing.T) {
	path := writeConfig(t, "")
	out, err := executeCommand(t, "--config", path, "frameworks")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	for _, want := range []string{"react", "Next.js", "flutter", "8000"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in output, got:\n%s", want, out)
		}
	}
}

func TestConfigCommand(t *testing.T) {
	path := writeConfig(t, "llm:\n  model: gpt-4o-mini\n")

	if _, err := executeCommand(t, "--config", path, "config", "llm.model", "gpt-4o"); err != nil {
		t.Fatalf("Expected set to succeed, got %v", err)
	}
	if _, err := executeCommand(t, "--config", path, "config", "github.token", "ghp_secretvalue"); err != nil {
		t.Fatal(err)
	}

	out, err := executeCommand(t, "--config", path, "config", "llm.model")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != "gpt-4o" {
		t.Errorf("Expected gpt-4o, got %q", out)
	}

	out, err = executeCommand(t, "--config", path, "config")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out, "ghp_secretvalue") {
		t.Errorf("Expected token to be masked, got:\n%s", out)
	}
	if !strings.Contains(out, "llm.model = gpt-4o") {
		t.Errorf("Expected llm.model in listing, got:\n%s", out)
	}

	if _, err := executeCommand(t, "--config", path, "config", "nope.key"); err == nil {
		t.Error("Expected error for missing key")
	}
}

func TestInitCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	out, err := executeCommand(t, "--config", path, "init")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !strings.Contains(out, "Wrote "+path) {
		t.Errorf("Unexpected output %q", out)
	}
	if _, err := os.Stat(filepath.Join(dir, "prompts", "chat.md")); err != nil {
		t.Errorf("Expected prompts to be written: %v", err)
	}

	if _, err := executeCommand(t, "--config", path, "init"); err == nil {
		t.Error("Expected error when config exists")
	}
}

func TestCreateRejectsUnknownFramework(t *testing.T) {
	path := writeConfig(t, "")
	_, err := executeCommand(t, "--config", path, "create", "shop", "--framework", "svelte")
	if err == nil || !strings.Contains(err.Error(), "unknown framework") {
		t.Errorf("Expected unknown framework error, got %v", err)
	}
}

func TestCheckRejectsUnknownFramework(t *testing.T) {
	path := writeConfig(t, "")
	if _, err := executeCommand(t, "--config", path, "check", "svelte"); err == nil {
		t.Error("Expected error for unknown framework")
	}
}

func TestFrameworksCommandAppliesOverrides(t *testing.T) {
	path := writeConfig(t, "")
	overrides := "frameworks:\n  react:\n    dev_server_port: 4321\n"
	if err := os.WriteFile(filepath.Join(filepath.Dir(path), "frameworks.yaml"), []byte(overrides), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := executeCommand(t, "--config", path, "frameworks")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !strings.Contains(out, "4321") {
		t.Errorf("Expected overridden port in output, got:\n%s", out)
	}

	if err := os.WriteFile(filepath.Join(filepath.Dir(path), "frameworks.yaml"), []byte("frameworks:\n  svelte: {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := executeCommand(t, "--config", path, "frameworks"); err == nil {
		t.Error("Expected error for unknown framework override")
	}
}
