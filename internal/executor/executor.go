// Package executor runs external commands through the platform shell and keeps
// a telemetry record for every attempt.
package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/daydemir/herbie/internal/types"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultTimeout applies when Run is called with a non-positive timeout
const DefaultTimeout = 300 * time.Second

const redacted = "****"

// Executor runs commands and keeps an append-only history of records
type Executor struct {
	logger  *zap.Logger
	shell   []string
	secrets []string
	dryRun  bool

	mu      sync.Mutex
	history []Record
}

// Option configures an Executor
type Option func(*Executor)

// WithLogger sets the structured logger
func WithLogger(logger *zap.Logger) Option {
	return func(e *Executor) {
		e.logger = logger
	}
}

// WithSecrets masks the given values in recorded commands and output
func WithSecrets(secrets ...string) Option {
	return func(e *Executor) {
		for _, s := range secrets {
			if s != "" {
				e.secrets = append(e.secrets, s)
			}
		}
	}
}

// WithDryRun records every command as successful without running anything
func WithDryRun(enabled bool) Option {
	return func(e *Executor) {
		e.dryRun = enabled
	}
}

// WithShell overrides the shell invocation, e.g. []string{"/bin/sh", "-c"}
func WithShell(shell ...string) Option {
	return func(e *Executor) {
		if len(shell) > 0 {
			e.shell = shell
		}
	}
}

// New creates an executor using the platform shell
func New(opts ...Option) *Executor {
	e := &Executor{
		logger: zap.NewNop(),
		shell:  defaultShell(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// defaultShell picks the shell used to interpret command strings
func defaultShell() []string {
	if runtime.GOOS == "windows" {
		return []string{"cmd", "/C"}
	}
	if _, err := exec.LookPath("bash"); err == nil {
		return []string{"bash", "-c"}
	}
	return []string{"/bin/sh", "-c"}
}

// Run executes command in workDir, bounded by timeout.
// The process working directory is never changed; workDir is applied to the child only.
func (e *Executor) Run(ctx context.Context, phase types.Phase, command string, timeout time.Duration, workDir string) Record {
	start := time.Now()
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if workDir == "" {
		if cwd, err := os.Getwd(); err == nil {
			workDir = cwd
		}
	}

	rec := Record{
		ID:               uuid.NewString(),
		Phase:            phase,
		Command:          e.redact(command),
		WorkingDirectory: workDir,
		Timestamp:        start,
	}

	if e.dryRun {
		rec.Success = true
		rec.Stdout = "[dry-run] " + rec.Command
		rec.Elapsed = time.Since(start)
		return e.finish(rec)
	}

	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	args := append(append([]string{}, e.shell[1:]...), command)
	cmd := exec.CommandContext(runCtx, e.shell[0], args...)
	cmd.Dir = workDir
	configureProcessGroup(cmd)
	// Grandchildren that inherit stdout would otherwise keep Wait blocked past the timeout.
	cmd.WaitDelay = 2 * time.Second

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	rec.Elapsed = time.Since(start)
	rec.Stdout = e.redact(stdout.String())
	rec.Stderr = e.redact(stderr.String())

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		rec.Success = true
		rec.ExitCode = 0
	case errors.Is(err, exec.ErrWaitDelay) && cmd.ProcessState != nil && cmd.ProcessState.Success():
		rec.Success = true
		rec.ExitCode = 0
		rec.Stderr = strings.TrimSpace(rec.Stderr + "\n" + DetachedOutputNote)
	case errors.Is(runCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil:
		rec.ExitCode = ExitCodeTimeout
		rec.Stderr = TimeoutMessage
	case ctx.Err() != nil:
		rec.ExitCode = ExitCodeException
		rec.Stderr = fmt.Sprintf("cancelled: %v", ctx.Err())
	case errors.As(err, &exitErr):
		rec.ExitCode = exitErr.ExitCode()
		if rec.ExitCode == -1 {
			// killed by a signal we did not send
			rec.ExitCode = ExitCodeException
			rec.Stderr = strings.TrimSpace(rec.Stderr + "\n" + exitErr.Error())
		}
	default:
		rec.ExitCode = ExitCodeException
		rec.Stderr = e.redact(err.Error())
	}

	return e.finish(rec)
}

// Track runs fn and records it like a command. Panics inside fn are converted to a failed record.
func (e *Executor) Track(ctx context.Context, phase types.Phase, label string, fn func(context.Context) error) (rec Record) {
	start := time.Now()
	rec = Record{
		ID:        uuid.NewString(),
		Phase:     phase,
		Command:   e.redact(label),
		Timestamp: start,
	}
	if cwd, err := os.Getwd(); err == nil {
		rec.WorkingDirectory = cwd
	}

	if e.dryRun {
		rec.Success = true
		rec.Stdout = "[dry-run] " + rec.Command
		rec.Elapsed = time.Since(start)
		return e.finish(rec)
	}

	defer func() {
		if r := recover(); r != nil {
			rec.Success = false
			rec.ExitCode = ExitCodeException
			rec.Stderr = e.redact(fmt.Sprintf("panic: %v", r))
			rec.Elapsed = time.Since(start)
			rec = e.finish(rec)
		}
	}()

	err := fn(ctx)
	rec.Elapsed = time.Since(start)
	if err != nil {
		rec.ExitCode = ExitCodeStepFailed
		rec.Stderr = e.redact(err.Error())
	} else {
		rec.Success = true
	}
	return e.finish(rec)
}

// finish appends the record to history and logs it
func (e *Executor) finish(rec Record) Record {
	e.mu.Lock()
	e.history = append(e.history, rec)
	e.mu.Unlock()

	fields := []zap.Field{
		zap.String("record_id", rec.ID),
		zap.String("phase", rec.Phase.String()),
		zap.String("command", rec.Command),
		zap.Int("exit_code", rec.ExitCode),
		zap.Duration("elapsed", rec.Elapsed),
		zap.String("working_dir", rec.WorkingDirectory),
	}
	if rec.Success {
		e.logger.Info("command succeeded", fields...)
	} else {
		e.logger.Warn("command failed", append(fields, zap.String("stderr", truncate(rec.Stderr, 2000)))...)
	}
	return rec
}

func (e *Executor) redact(s string) string {
	for _, secret := range e.secrets {
		s = strings.ReplaceAll(s, secret, redacted)
	}
	return s
}

// History returns a copy of every record produced so far
func (e *Executor) History() []Record {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Record, len(e.history))
	copy(out, e.history)
	return out
}

// Summary aggregates the executor's history
func (e *Executor) Summary() Summary {
	return Summarize(e.History())
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[len(s)-max:]
}
