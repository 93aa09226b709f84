// Package orchestrator drives a project setup through dependency check,
// scaffold, remote publish and code upload.
package orchestrator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/daydemir/herbie/internal/deps"
	"github.com/daydemir/herbie/internal/executor"
	"github.com/daydemir/herbie/internal/hosting"
	"github.com/daydemir/herbie/internal/registry"
	"github.com/daydemir/herbie/internal/types"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Orchestrator runs project setups. One Run at a time per working tree.
type Orchestrator struct {
	registry   *registry.Registry
	runner     executor.Runner
	depsRunner executor.Runner
	host       hosting.Host
	token      string
	author     string
	policy     ExecutionPolicy
	baseDir    string
	goos       string
	logger     *zap.Logger
	reporter   Reporter
}

// Option configures an Orchestrator
type Option func(*Orchestrator)

// WithHost enables remote publish. token is embedded in the push URL.
func WithHost(host hosting.Host, token string) Option {
	return func(o *Orchestrator) {
		o.host = host
		o.token = token
	}
}

// WithAuthor sets the git commit author instead of asking the host for the login
func WithAuthor(name string) Option {
	return func(o *Orchestrator) {
		o.author = name
	}
}

// WithPolicy sets the execution policy
func WithPolicy(p ExecutionPolicy) Option {
	return func(o *Orchestrator) {
		o.policy = p
	}
}

// WithBaseDir sets the directory projects are created in
func WithBaseDir(dir string) Option {
	return func(o *Orchestrator) {
		o.baseDir = dir
	}
}

// WithDependencyRunner runs dependency checks through a different runner,
// e.g. a live executor while everything else is simulated.
func WithDependencyRunner(r executor.Runner) Option {
	return func(o *Orchestrator) {
		o.depsRunner = r
	}
}

// WithOS overrides the OS used for install hints and shell syntax
func WithOS(goos string) Option {
	return func(o *Orchestrator) {
		o.goos = goos
	}
}

// WithLogger sets the structured logger
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithReporter receives progress events
func WithReporter(r Reporter) Option {
	return func(o *Orchestrator) {
		o.reporter = r
	}
}

// New creates an orchestrator over a registry and a command runner
func New(reg *registry.Registry, runner executor.Runner, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		registry: reg,
		runner:   runner,
		policy:   DefaultPolicy(),
		baseDir:  ".",
		goos:     runtime.GOOS,
		logger:   zap.NewNop(),
		reporter: nopReporter{},
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.depsRunner == nil {
		o.depsRunner = o.runner
	}
	o.policy = o.policy.withDefaults()
	return o
}

// Policy returns the effective execution policy
func (o *Orchestrator) Policy() ExecutionPolicy {
	return o.policy
}

// Run performs one project setup. It always returns an outcome; panics are
// converted into a failed outcome carrying the panic text.
func (o *Orchestrator) Run(ctx context.Context, req Request) (out *Outcome) {
	ec := &ExecutionContext{
		RunID:       uuid.NewString(),
		ProjectName: req.ProjectName,
		Framework:   req.Framework,
		Phase:       types.PhaseDependencyCheck,
	}
	logger := o.logger.With(zap.String("run_id", ec.RunID))

	defer func() {
		if r := recover(); r != nil {
			logger.Error("setup panicked", zap.Any("panic", r), zap.String("phase", ec.Phase.String()))
			out = o.fail(ec, fmt.Sprintf("Unexpected error during %s: %v", ec.Phase.Label(), r), "")
		}
	}()

	norm, err := req.Normalize()
	if err != nil {
		return o.fail(ec, err.Error(), "")
	}
	req = norm
	ec.ProjectName = req.ProjectName
	logger = logger.With(zap.String("project", req.ProjectName), zap.String("framework", req.Framework.String()))

	desc, err := o.registry.Get(req.Framework)
	if err != nil {
		return o.fail(ec, fmt.Sprintf("%v. Supported frameworks: %s", err, joinIDs(o.registry.IDs())), "")
	}

	logger.Info("setup started", zap.Bool("simulate", o.policy.Simulate))

	// DependencyCheck
	o.enter(ec, types.PhaseDependencyCheck)
	checker := deps.NewChecker(&recordingRunner{o: o, ec: ec, runner: o.depsRunner},
		deps.WithOS(o.goos),
		deps.WithTimeout(o.policy.Timeouts.DependencyCheck),
		deps.WithLogger(logger),
	)
	ec.DependenciesChecked = checker.CheckAll(ctx, desc.Dependencies)
	if blocking := deps.Blocking(ec.DependenciesChecked); len(blocking) > 0 {
		logger.Warn("dependencies not satisfied", zap.Int("blocking", len(blocking)))
		return o.fail(ec, dependencyMessage(desc, blocking), deps.TroubleshootingGuide(blocking))
	}
	for _, info := range deps.Unverified(ec.DependenciesChecked) {
		ec.note("Could not verify %s with %q; continuing without it.", info.Name, info.CheckCommand)
		if hint := deps.OffPathHint(info); hint != "" {
			ec.note("%s", hint)
		}
	}

	// Scaffold
	o.enter(ec, types.PhaseScaffold)
	if msg, ok := o.scaffold(ctx, ec, desc); !ok {
		logger.Warn("scaffold failed", zap.String("reason", msg))
		return o.fail(ec, msg, "")
	}

	// VcsPublish and CodeUpload
	if o.host == nil || !o.policy.Publish {
		ec.note("No hosting credential configured; the project was created locally only.")
		return o.done(ec, desc)
	}

	o.enter(ec, types.PhaseVcsPublish)
	repo, ok := o.publish(ctx, ec, req)
	if !ok {
		return o.done(ec, desc)
	}

	user := o.commitAuthor(ctx, ec, repo)

	o.enter(ec, types.PhaseCodeUpload)
	o.upload(ctx, ec, repo, user, req, desc)

	return o.done(ec, desc)
}

func (o *Orchestrator) enter(ec *ExecutionContext, phase types.Phase) {
	ec.Phase = phase
	o.reporter.PhaseStarted(phase)
}

// run executes one command in the current phase and logs it to the context
func (o *Orchestrator) run(ctx context.Context, ec *ExecutionContext, command string, timeout time.Duration, dir string) executor.Record {
	rec := o.runner.Run(ctx, ec.Phase, command, timeout, dir)
	o.record(ec, rec)
	return rec
}

// track records a non-process step in the current phase
func (o *Orchestrator) track(ctx context.Context, ec *ExecutionContext, label string, fn func(context.Context) error) executor.Record {
	rec := o.runner.Track(ctx, ec.Phase, label, fn)
	o.record(ec, rec)
	return rec
}

func (o *Orchestrator) record(ec *ExecutionContext, rec executor.Record) {
	ec.ExecutionLog = append(ec.ExecutionLog, rec)
	o.reporter.CommandFinished(rec)
}

// recordingRunner lets the dependency checker log into the run's context
type recordingRunner struct {
	o      *Orchestrator
	ec     *ExecutionContext
	runner executor.Runner
}

func (r *recordingRunner) Run(ctx context.Context, phase types.Phase, command string, timeout time.Duration, dir string) executor.Record {
	rec := r.runner.Run(ctx, phase, command, timeout, dir)
	r.o.record(r.ec, rec)
	return rec
}

// scaffold creates the project directory. It returns a failure message and false on error.
func (o *Orchestrator) scaffold(ctx context.Context, ec *ExecutionContext, desc registry.FrameworkDescriptor) (string, bool) {
	name := ec.ProjectName
	projectDir := filepath.Join(o.baseDir, name)

	if isDir(projectDir) {
		ec.note("Existing directory %s was removed and recreated.", projectDir)
		rec := o.run(ctx, ec, o.removeCommand(name), o.policy.Timeouts.Setup, o.baseDir)
		if !rec.Success {
			return fmt.Sprintf("Could not remove existing directory %s: %s", projectDir, rec.Output()), false
		}
	}

	rec := o.run(ctx, ec, desc.PrimaryScaffold(name), o.policy.Timeouts.Scaffold, o.baseDir)
	if !rec.Success {
		return fmt.Sprintf("Scaffold command failed (exit code %d): %s", rec.ExitCode, rec.Output()), false
	}
	if !o.policy.Simulate && !isDir(projectDir) {
		return fmt.Sprintf("Scaffold command reported success but %s was not created", projectDir), false
	}
	ec.LocalPath = projectDir

	for _, cmd := range desc.PostScaffold(name) {
		rec := o.run(ctx, ec, cmd, o.policy.Timeouts.Setup, projectDir)
		if !rec.Success {
			ec.Degraded = true
			ec.note("Post-setup command %q failed (exit code %d); you may need to run it yourself.", cmd, rec.ExitCode)
			o.logger.Warn("post-scaffold command failed",
				zap.String("command", cmd),
				zap.Int("exit_code", rec.ExitCode),
			)
		}
	}
	return "", true
}

func (o *Orchestrator) removeCommand(name string) string {
	if o.goos == "windows" {
		return "rmdir /s /q " + quote(o.goos, name)
	}
	return "rm -rf " + quote(o.goos, name)
}

// fail freezes the context as failed and builds the outcome
func (o *Orchestrator) fail(ec *ExecutionContext, message, troubleshooting string) *Outcome {
	ec.FailedPhase = ec.Phase
	ec.Phase = types.PhaseFailed
	ec.Succeeded = false
	ec.TotalElapsed = sumElapsed(ec.ExecutionLog)

	o.logger.Info("setup finished",
		zap.String("run_id", ec.RunID),
		zap.Bool("succeeded", false),
		zap.String("failed_phase", ec.FailedPhase.String()),
		zap.Duration("elapsed", ec.TotalElapsed),
	)

	return &Outcome{
		Succeeded:       false,
		Message:         message,
		Dependencies:    ec.DependenciesChecked,
		CommandLog:      ec.ExecutionLog,
		Troubleshooting: troubleshooting,
		Context:         ec,
	}
}

// done freezes the context as succeeded and builds the outcome
func (o *Orchestrator) done(ec *ExecutionContext, desc registry.FrameworkDescriptor) *Outcome {
	ec.Phase = types.PhaseDone
	ec.Succeeded = true
	ec.TotalElapsed = sumElapsed(ec.ExecutionLog)

	o.logger.Info("setup finished",
		zap.String("run_id", ec.RunID),
		zap.Bool("succeeded", true),
		zap.Bool("degraded", ec.Degraded),
		zap.String("remote_url", ec.RemoteURL),
		zap.Duration("elapsed", ec.TotalElapsed),
	)

	msg := fmt.Sprintf("%s project %s created at %s", desc.Name, ec.ProjectName, ec.LocalPath)
	if ec.RemoteURL != "" {
		msg += fmt.Sprintf(" and published to %s", ec.RemoteURL)
	}
	if ec.Degraded {
		msg += " (with warnings)"
	}

	return &Outcome{
		Succeeded:    true,
		Message:      msg,
		NextSteps:    NextSteps(desc, ec),
		Dependencies: ec.DependenciesChecked,
		CommandLog:   ec.ExecutionLog,
		Context:      ec,
	}
}

func dependencyMessage(desc registry.FrameworkDescriptor, blocking []deps.DependencyInfo) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Cannot create a %s project, these dependencies need attention:", desc.Name))
	for _, d := range blocking {
		sb.WriteString("\n  - " + d.Name)
		switch d.Status {
		case types.DependencyOutdated:
			sb.WriteString(fmt.Sprintf(" is outdated (found %s, requires %s)", d.CurrentVersion, d.RequiredVersion))
		default:
			sb.WriteString(" is missing")
			if d.RequiredVersion != "" {
				sb.WriteString(fmt.Sprintf(" (requires %s)", d.RequiredVersion))
			}
		}
		if d.InstallCommand != "" {
			sb.WriteString(". Install: " + d.InstallCommand)
		}
	}
	return sb.String()
}

func sumElapsed(records []executor.Record) time.Duration {
	var total time.Duration
	for _, r := range records {
		total += r.Elapsed
	}
	return total
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func joinIDs(ids []types.FrameworkID) string {
	s := make([]string, len(ids))
	for i, id := range ids {
		s[i] = id.String()
	}
	return strings.Join(s, ", ")
}

// quote wraps s for the platform shell
func quote(goos, s string) string {
	if goos == "windows" {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
