package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/daydemir/herbie/internal/prompts"
)

// ErrConfigExists is returned by Init when the config file is already present
var ErrConfigExists = errors.New("herbie config already exists (use --force to overwrite)")

// Init writes a commented config.yaml and editable prompt templates into dir
// (Dir() when empty). It returns the config file path.
func Init(dir string, force bool) (string, error) {
	if dir == "" {
		dir = Dir()
	}
	path := filepath.Join(dir, "config.yaml")

	if _, err := os.Stat(path); err == nil && !force {
		return path, ErrConfigExists
	}

	promptsDir := filepath.Join(dir, "prompts")
	if err := os.MkdirAll(promptsDir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", promptsDir, err)
	}

	if err := writeFile(path, defaultConfig, 0o600); err != nil {
		return "", err
	}

	for _, name := range []string{prompts.ParseRequest, prompts.Chat} {
		content, err := prompts.Get(name)
		if err != nil {
			return "", fmt.Errorf("failed to get embedded prompt %s: %w", name, err)
		}
		if err := writeFile(filepath.Join(promptsDir, name+".md"), content, 0o644); err != nil {
			return "", err
		}
	}
	return path, nil
}

func writeFile(path, content string, perm os.FileMode) error {
	if err := os.WriteFile(path, []byte(content), perm); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

const defaultConfig = `# Herbie configuration
llm:
  backend: openai          # openai (or any OpenAI-compatible server via base_url)
  model: gpt-4o-mini
  base_url: ""             # e.g. http://localhost:11434/v1
  api_key: ""              # or set OPENAI_API_KEY
  temperature: 0.2

github:
  token: ""                # or set GITHUB_TOKEN; needs the repo scope
  owner: ""                # commit author name, defaults to the token's login

execution:
  base_dir: .              # where projects are created
  push_attempts: 3
  disable_fallback: false  # true skips the API upload when git push fails
  simulate: false          # print commands instead of running them
  dependency_timeout: 10   # seconds
  scaffold_timeout: 600
  setup_timeout: 300
  vcs_timeout: 120

log:
  level: info
  format: json             # json | console
  file: herbie.log         # relative to this directory, or "stderr"
`
