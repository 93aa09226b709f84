package orchestrator

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/daydemir/herbie/internal/deps"
	"github.com/daydemir/herbie/internal/executor"
	"github.com/daydemir/herbie/internal/types"
	"github.com/gosimple/slug"
)

// ErrInvalidProjectName is returned when a project name has no usable characters
var ErrInvalidProjectName = errors.New("invalid project name")

// Request is a structured project setup request
type Request struct {
	ProjectName string
	Framework   types.FrameworkID
	Private     bool
	Description string
}

// Normalize turns the project name into a shell- and URL-safe slug
func (r Request) Normalize() (Request, error) {
	name := slug.Make(strings.TrimSpace(r.ProjectName))
	if name == "" {
		return r, fmt.Errorf("%w: %q", ErrInvalidProjectName, r.ProjectName)
	}
	r.ProjectName = name
	r.Description = strings.TrimSpace(r.Description)
	return r, nil
}

// Timeouts are the per-command limits for each kind of step
type Timeouts struct {
	DependencyCheck time.Duration
	Scaffold        time.Duration
	Setup           time.Duration
	VCS             time.Duration
}

// ExecutionPolicy selects how a setup runs
type ExecutionPolicy struct {
	// Simulate skips on-disk verification; pair it with a dry-run executor
	Simulate bool
	// Publish enables VcsPublish and CodeUpload when a host is configured
	Publish bool
	// Fallback uploads files through the hosting API when git push fails
	Fallback bool
	// PushAttempts is how many times git push is tried, without backoff
	PushAttempts int
	Timeouts     Timeouts
}

// DefaultPolicy returns real execution with publish and automatic fallback
func DefaultPolicy() ExecutionPolicy {
	return ExecutionPolicy{
		Publish:      true,
		Fallback:     true,
		PushAttempts: 3,
		Timeouts: Timeouts{
			DependencyCheck: deps.DefaultTimeout,
			Scaffold:        600 * time.Second,
			Setup:           300 * time.Second,
			VCS:             120 * time.Second,
		},
	}
}

func (p ExecutionPolicy) withDefaults() ExecutionPolicy {
	d := DefaultPolicy()
	if p.PushAttempts < 1 {
		p.PushAttempts = 1
	}
	if p.Timeouts.DependencyCheck <= 0 {
		p.Timeouts.DependencyCheck = d.Timeouts.DependencyCheck
	}
	if p.Timeouts.Scaffold <= 0 {
		p.Timeouts.Scaffold = d.Timeouts.Scaffold
	}
	if p.Timeouts.Setup <= 0 {
		p.Timeouts.Setup = d.Timeouts.Setup
	}
	if p.Timeouts.VCS <= 0 {
		p.Timeouts.VCS = d.Timeouts.VCS
	}
	return p
}

// ExecutionContext accumulates everything that happens during one setup run.
// It is owned by a single Run call and returned frozen inside the Outcome.
type ExecutionContext struct {
	RunID       string
	ProjectName string
	Framework   types.FrameworkID
	Phase       types.Phase
	// FailedPhase is the phase that was running when the run failed
	FailedPhase types.Phase

	LocalPath string // set once scaffold succeeds
	RemoteURL string // set once the remote repository exists

	DependenciesChecked []deps.DependencyInfo
	ExecutionLog        []executor.Record
	TotalElapsed        time.Duration
	Succeeded           bool
	// Degraded marks a run that succeeded locally but had a non-fatal failure
	Degraded bool
	Notes    []string
}

func (ec *ExecutionContext) note(format string, args ...interface{}) {
	ec.Notes = append(ec.Notes, fmt.Sprintf(format, args...))
}

// CommandsInPhase returns the records logged during a phase
func (ec *ExecutionContext) CommandsInPhase(phase types.Phase) []executor.Record {
	var out []executor.Record
	for _, r := range ec.ExecutionLog {
		if r.Phase == phase {
			out = append(out, r)
		}
	}
	return out
}

// Outcome is the final report of a setup run
type Outcome struct {
	Succeeded       bool
	Message         string
	NextSteps       []string
	Dependencies    []deps.DependencyInfo
	CommandLog      []executor.Record
	Troubleshooting string
	Context         *ExecutionContext
}

// Partial reports a run that succeeded with non-fatal failures
func (o *Outcome) Partial() bool {
	return o.Succeeded && o.Context != nil && o.Context.Degraded
}

// Reporter receives progress while a setup runs
type Reporter interface {
	PhaseStarted(phase types.Phase)
	CommandFinished(rec executor.Record)
}

type nopReporter struct{}

func (nopReporter) PhaseStarted(types.Phase) {}
func (nopReporter) CommandFinished(executor.Record) {}
