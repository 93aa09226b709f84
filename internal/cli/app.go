package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/daydemir/herbie/internal/config"
	"github.com/daydemir/herbie/internal/display"
	"github.com/daydemir/herbie/internal/executor"
	"github.com/daydemir/herbie/internal/hosting"
	"github.com/daydemir/herbie/internal/logging"
	"github.com/daydemir/herbie/internal/orchestrator"
	"github.com/daydemir/herbie/internal/registry"
	"github.com/daydemir/herbie/internal/types"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app holds what every command needs, built from config and global flags
type app struct {
	cfg       *config.Config
	configDir string
	logger    *zap.Logger
	closeLog  func() error
	display   *display.Display
	registry  *registry.Registry
	exec      *executor.Executor
	// live runs dependency checks even in dry-run mode
	live *executor.Executor
}

func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if simulate {
		cfg.Execution.Simulate = true
	}

	configDir := config.Dir()
	if cfgFile != "" {
		configDir = filepath.Dir(cfgFile)
	}

	logger, closeLog, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}

	reg := registry.Default()
	overrides, err := registry.LoadOverrides(filepath.Join(configDir, registry.OverridesFile))
	if err == nil {
		err = reg.Apply(overrides)
	}
	if err != nil {
		_ = closeLog()
		return nil, fmt.Errorf("framework overrides: %w", err)
	}
	if err := reg.Validate(); err != nil {
		var verrs *types.ValidationErrors
		if errors.As(err, &verrs) {
			logger.Error("framework registry is invalid", zap.String("report", verrs.Report()))
		}
		_ = closeLog()
		return nil, fmt.Errorf("framework registry is invalid: %w", err)
	}

	secrets := executor.WithSecrets(cfg.GitHub.Token.Value(), cfg.LLM.APIKey.Value())
	exec := executor.New(executor.WithLogger(logger), secrets, executor.WithDryRun(cfg.Execution.Simulate))
	live := exec
	if cfg.Execution.Simulate {
		live = executor.New(executor.WithLogger(logger), secrets)
	}

	plain := noColor || !display.IsTerminal()
	return &app{
		cfg:       cfg,
		configDir: configDir,
		logger:    logger,
		closeLog:  closeLog,
		display:   display.NewWriter(cmd.OutOrStdout(), plain, display.TerminalWidth()),
		registry:  reg,
		exec:      exec,
		live:      live,
	}, nil
}

func (a *app) close() {
	_ = a.closeLog()
}

// orchestrator wires the setup state machine. publish=false skips hosting entirely.
func (a *app) orchestrator(ctx context.Context, publish bool) (*orchestrator.Orchestrator, error) {
	policy := policyFromConfig(a.cfg.Execution)
	policy.Publish = publish

	opts := []orchestrator.Option{
		orchestrator.WithPolicy(policy),
		orchestrator.WithBaseDir(a.cfg.Execution.BaseDir),
		orchestrator.WithDependencyRunner(a.live),
		orchestrator.WithLogger(a.logger),
		orchestrator.WithReporter(a.display),
	}
	if a.cfg.GitHub.Owner != "" {
		opts = append(opts, orchestrator.WithAuthor(a.cfg.GitHub.Owner))
	}

	if publish {
		host, err := hosting.NewGitHub(ctx, a.cfg.GitHub.Token, hosting.WithLogger(a.logger))
		switch {
		case errors.Is(err, hosting.ErrNoCredential):
			a.logger.Info("no GitHub token configured, projects stay local")
		case err != nil:
			return nil, err
		default:
			opts = append(opts, orchestrator.WithHost(host, a.cfg.GitHub.Token.Value()))
		}
	}

	return orchestrator.New(a.registry, a.exec, opts...), nil
}

// policyFromConfig maps execution settings onto an orchestrator policy
func policyFromConfig(e config.ExecutionConfig) orchestrator.ExecutionPolicy {
	p := orchestrator.DefaultPolicy()
	p.Simulate = e.Simulate
	p.Fallback = !e.DisableFallback
	p.PushAttempts = e.PushAttempts
	p.Timeouts = orchestrator.Timeouts{
		DependencyCheck: config.Seconds(e.DependencyTimeout),
		Scaffold:        config.Seconds(e.ScaffoldTimeout),
		Setup:           config.Seconds(e.SetupTimeout),
		VCS:             config.Seconds(e.VCSTimeout),
	}
	return p
}
