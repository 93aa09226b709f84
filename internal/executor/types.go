package executor

import (
	"context"
	"strings"
	"time"

	"github.com/daydemir/herbie/internal/types"
)

const (
	// ExitCodeTimeout is recorded when a command exceeds its timeout
	ExitCodeTimeout = -1
	// ExitCodeException is recorded when a command could not be started or waited on
	ExitCodeException = -999
	// ExitCodeStepFailed is recorded when a tracked non-process step returns an error
	ExitCodeStepFailed = 1
	// ExitCodeNotFound is what sh and bash return when the command does not exist
	ExitCodeNotFound = 127
	// ExitCodeNotFoundWindows is cmd.exe's "is not recognized" status
	ExitCodeNotFoundWindows = 9009

	// TimeoutMessage is the stderr text of a timed out record
	TimeoutMessage = "Timeout"
	// DetachedOutputNote is appended to stderr when a command exited cleanly but a
	// background child kept its output open past the wait delay
	DetachedOutputNote = "output may be incomplete: a background process kept the output open"
)

// Record is the telemetry for one attempted command. Records are created by the
// executor and never modified afterwards.
type Record struct {
	ID               string
	Phase            types.Phase
	Command          string
	Success          bool
	ExitCode         int
	Stdout           string
	Stderr           string
	Elapsed          time.Duration
	WorkingDirectory string
	Timestamp        time.Time
}

// ElapsedSeconds returns the wall-clock duration in seconds
func (r Record) ElapsedSeconds() float64 {
	return r.Elapsed.Seconds()
}

// TimedOut returns true if the command was killed by its timeout
func (r Record) TimedOut() bool {
	return r.ExitCode == ExitCodeTimeout
}

// Errored returns true if the command never produced an exit status
func (r Record) Errored() bool {
	return r.ExitCode == ExitCodeException
}

// NotFound returns true if the shell could not find the command it was asked to run
func (r Record) NotFound() bool {
	return r.ExitCode == ExitCodeNotFound || r.ExitCode == ExitCodeNotFoundWindows
}

// Output returns stdout, or stderr when stdout is empty
func (r Record) Output() string {
	if out := strings.TrimSpace(r.Stdout); out != "" {
		return out
	}
	return strings.TrimSpace(r.Stderr)
}

// Summary aggregates an executor's history
type Summary struct {
	Count          int
	SuccessCount   int
	FailedCount    int
	SuccessRate    float64
	TotalElapsed   time.Duration
	AverageElapsed time.Duration
}

// Summarize aggregates any list of records
func Summarize(records []Record) Summary {
	s := Summary{Count: len(records)}
	for _, r := range records {
		if r.Success {
			s.SuccessCount++
		}
		s.TotalElapsed += r.Elapsed
	}
	s.FailedCount = s.Count - s.SuccessCount
	if s.Count > 0 {
		s.SuccessRate = float64(s.SuccessCount) / float64(s.Count)
		s.AverageElapsed = s.TotalElapsed / time.Duration(s.Count)
	}
	return s
}

// Runner is what the orchestrator and dependency checker need from an executor
type Runner interface {
	// Run executes a shell command in workDir with a timeout. It never returns an
	// error: every failure mode is described by the returned record.
	Run(ctx context.Context, phase types.Phase, command string, timeout time.Duration, workDir string) Record

	// Track records a non-process step, such as an API call, in the same shape as Run
	Track(ctx context.Context, phase types.Phase, label string, fn func(context.Context) error) Record
}
