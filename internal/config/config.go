package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the herbie configuration
type Config struct {
	LLM       LLMConfig       `mapstructure:"llm"`
	GitHub    GitHubConfig    `mapstructure:"github"`
	Execution ExecutionConfig `mapstructure:"execution"`
	Log       LogConfig       `mapstructure:"log"`
}

// LLMConfig contains LLM backend settings
type LLMConfig struct {
	Backend     string  `mapstructure:"backend"`
	Model       string  `mapstructure:"model"`
	BaseURL     string  `mapstructure:"base_url"`
	APIKey      Secret  `mapstructure:"api_key"`
	Temperature float64 `mapstructure:"temperature"`
}

// GitHubConfig contains hosting credentials
type GitHubConfig struct {
	Token Secret `mapstructure:"token"`
	// Owner overrides the commit author name; defaults to the token's login
	Owner string `mapstructure:"owner"`
}

// ExecutionConfig contains project setup settings. Timeouts are in seconds.
type ExecutionConfig struct {
	BaseDir           string `mapstructure:"base_dir"`
	PushAttempts      int    `mapstructure:"push_attempts"`
	DisableFallback   bool   `mapstructure:"disable_fallback"`
	Simulate          bool   `mapstructure:"simulate"`
	DependencyTimeout int    `mapstructure:"dependency_timeout"`
	ScaffoldTimeout   int    `mapstructure:"scaffold_timeout"`
	SetupTimeout      int    `mapstructure:"setup_timeout"`
	VCSTimeout        int    `mapstructure:"vcs_timeout"`
}

// LogConfig contains structured logging settings
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json or console
	File   string `mapstructure:"file"`
}

// envBindings maps config keys to extra environment variables, on top of HERBIE_<KEY>
var envBindings = map[string][]string{
	"llm.backend":                nil,
	"llm.model":                  nil,
	"llm.base_url":               {"OPENAI_BASE_URL"},
	"llm.api_key":                {"OPENAI_API_KEY"},
	"github.token":               {"GITHUB_TOKEN"},
	"github.owner":               nil,
	"execution.base_dir":         nil,
	"execution.push_attempts":    nil,
	"execution.disable_fallback": nil,
	"execution.simulate":         nil,
	"log.level":                  nil,
	"log.format":                 nil,
	"log.file":                   nil,
}

// Dir returns the herbie config directory (~/.config/herbie)
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".herbie"
	}
	return filepath.Join(home, ".config", "herbie")
}

// DefaultPath returns the default config file location
func DefaultPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// Load reads the config file at path (DefaultPath when empty), then applies
// environment overrides and defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	v := viper.New()
	v.SetConfigType("yaml")

	for key, extra := range envBindings {
		prefixed := "HERBIE_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(append([]string{key, prefixed}, extra...)...); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to stat config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Apply defaults for missing values
	applyDefaults(&cfg)

	return &cfg, nil
}

// DefaultConfig returns a config with default values
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Backend:     "openai",
			Model:       "gpt-4o-mini",
			Temperature: 0.2,
		},
		Execution: ExecutionConfig{
			BaseDir:           ".",
			PushAttempts:      3,
			DependencyTimeout: 10,
			ScaffoldTimeout:   600,
			SetupTimeout:      300,
			VCSTimeout:        120,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
			File:   filepath.Join(Dir(), "herbie.log"),
		},
	}
}

func applyDefaults(cfg *Config) {
	defaults := DefaultConfig()

	if cfg.LLM.Backend == "" {
		cfg.LLM.Backend = defaults.LLM.Backend
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = defaults.LLM.Model
	}
	if cfg.LLM.Temperature == 0 {
		cfg.LLM.Temperature = defaults.LLM.Temperature
	}
	if cfg.Execution.BaseDir == "" {
		cfg.Execution.BaseDir = defaults.Execution.BaseDir
	}
	if cfg.Execution.PushAttempts <= 0 {
		cfg.Execution.PushAttempts = defaults.Execution.PushAttempts
	}
	if cfg.Execution.DependencyTimeout <= 0 {
		cfg.Execution.DependencyTimeout = defaults.Execution.DependencyTimeout
	}
	if cfg.Execution.ScaffoldTimeout <= 0 {
		cfg.Execution.ScaffoldTimeout = defaults.Execution.ScaffoldTimeout
	}
	if cfg.Execution.SetupTimeout <= 0 {
		cfg.Execution.SetupTimeout = defaults.Execution.SetupTimeout
	}
	if cfg.Execution.VCSTimeout <= 0 {
		cfg.Execution.VCSTimeout = defaults.Execution.VCSTimeout
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = defaults.Log.Level
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = defaults.Log.Format
	}
	if cfg.Log.File == "" {
		cfg.Log.File = defaults.Log.File
	}

	cfg.Execution.BaseDir = ExpandHome(cfg.Execution.BaseDir)
	cfg.Log.File = ExpandHome(cfg.Log.File)
}

// ExpandHome replaces a leading "~" with the user's home directory. Paths such
// as "~user/x" and paths without a tilde are returned unchanged.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, `~\`) {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// Seconds converts a timeout setting to a duration
func Seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}
