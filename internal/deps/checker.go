// Package deps verifies that the tools a framework needs are installed.
package deps

import (
	"context"
	"runtime"
	"time"

	"github.com/daydemir/herbie/internal/executor"
	"github.com/daydemir/herbie/internal/registry"
	"github.com/daydemir/herbie/internal/types"
	"go.uber.org/zap"
)

// DefaultTimeout bounds each check command
const DefaultTimeout = 10 * time.Second

// DependencyInfo is the result of checking one dependency
type DependencyInfo struct {
	Name            string
	Status          types.DependencyStatus
	CurrentVersion  string // "" when unknown
	RequiredVersion string
	InstallCommand  string
	CheckCommand    string
	// OffPath is set when the shell could not find the binary but it exists outside PATH
	OffPath string
}

// Runner executes check commands. *executor.Executor satisfies it.
type Runner interface {
	Run(ctx context.Context, phase types.Phase, command string, timeout time.Duration, workDir string) executor.Record
}

// Checker runs dependency check commands and classifies the results
type Checker struct {
	runner  Runner
	logger  *zap.Logger
	goos    string
	timeout time.Duration
	locate  func(string) (string, bool)
}

// CheckerOption configures a Checker
type CheckerOption func(*Checker)

// WithOS overrides the OS used to pick install commands
func WithOS(goos string) CheckerOption {
	return func(c *Checker) {
		c.goos = goos
	}
}

// WithTimeout overrides the per-check timeout
func WithTimeout(d time.Duration) CheckerOption {
	return func(c *Checker) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger sets the structured logger
func WithLogger(logger *zap.Logger) CheckerOption {
	return func(c *Checker) {
		c.logger = logger
	}
}

// NewChecker creates a checker that runs commands through runner
func NewChecker(runner Runner, opts ...CheckerOption) *Checker {
	c := &Checker{
		runner:  runner,
		logger:  zap.NewNop(),
		goos:    runtime.GOOS,
		timeout: DefaultTimeout,
		locate:  Locate,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Check runs the dependency's check command and classifies the outcome.
// It never fails: problems are expressed through the returned status.
func (c *Checker) Check(ctx context.Context, dep registry.DependencyDescriptor) DependencyInfo {
	info := DependencyInfo{
		Name:            dep.Name,
		RequiredVersion: dep.RequiredVersion,
		InstallCommand:  dep.InstallCommand(c.goos),
		CheckCommand:    dep.CheckCommand,
	}

	rec := c.runner.Run(ctx, types.PhaseDependencyCheck, dep.CheckCommand, c.timeout, "")

	// Checks that could not run, a shell not-found exit included, are Unknown
	switch {
	case rec.TimedOut() || rec.Errored():
		info.Status = types.DependencyUnknown
	case rec.NotFound():
		info.Status = types.DependencyUnknown
		if path, onPath := c.locate(binaryOf(dep.CheckCommand)); path != "" && !onPath {
			info.OffPath = path
		}
	case !rec.Success:
		info.Status = types.DependencyMissing
	default:
		output := rec.Stdout
		if ExtractVersion(output) == "" {
			output = rec.Stderr
		}
		info.CurrentVersion = ExtractVersion(output)

		info.Status = types.DependencyAvailable
		if dep.RequiredVersion != "" && info.CurrentVersion != "" &&
			!CompareVersions(info.CurrentVersion, dep.RequiredVersion) {
			info.Status = types.DependencyOutdated
		}
	}

	c.logger.Debug("dependency checked",
		zap.String("dependency", info.Name),
		zap.String("status", info.Status.String()),
		zap.String("current_version", info.CurrentVersion),
		zap.String("required_version", info.RequiredVersion),
	)
	return info
}

// CheckAll checks dependencies sequentially, in order
func (c *Checker) CheckAll(ctx context.Context, deps []registry.DependencyDescriptor) []DependencyInfo {
	infos := make([]DependencyInfo, 0, len(deps))
	for _, dep := range deps {
		infos = append(infos, c.Check(ctx, dep))
	}
	return infos
}

// Unverified returns the dependencies whose check could not run
func Unverified(infos []DependencyInfo) []DependencyInfo {
	var out []DependencyInfo
	for _, info := range infos {
		if info.Status == types.DependencyUnknown {
			out = append(out, info)
		}
	}
	return out
}

// Blocking returns the dependencies that prevent scaffolding (missing or outdated)
func Blocking(infos []DependencyInfo) []DependencyInfo {
	var blocking []DependencyInfo
	for _, info := range infos {
		if info.Status.Blocks() {
			blocking = append(blocking, info)
		}
	}
	return blocking
}
