package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/daydemir/herbie/internal/executor"
	"github.com/daydemir/herbie/internal/hosting"
	"github.com/daydemir/herbie/internal/types"
)

type handlerFunc func(command, dir string) executor.Record

type handler struct {
	prefix string
	fn     handlerFunc
}

// fakeRunner answers commands by prefix. Unmatched commands succeed and print
// a version high enough to satisfy every requirement.
type fakeRunner struct {
	mu       sync.Mutex
	handlers []handler
	commands []string
	dirs     []string
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{}
}

func (f *fakeRunner) on(prefix string, fn handlerFunc) *fakeRunner {
	f.handlers = append(f.handlers, handler{prefix: prefix, fn: fn})
	return f
}

func (f *fakeRunner) Run(_ context.Context, phase types.Phase, command string, _ time.Duration, dir string) executor.Record {
	f.mu.Lock()
	f.commands = append(f.commands, command)
	f.dirs = append(f.dirs, dir)
	f.mu.Unlock()

	rec := executor.Record{Success: true, Stdout: "version 99.0.0\n"}
	for _, h := range f.handlers {
		if strings.HasPrefix(command, h.prefix) {
			rec = h.fn(command, dir)
			break
		}
	}
	rec.ID = fmt.Sprintf("rec-%d", len(f.commands))
	rec.Command = command
	rec.Phase = phase
	rec.WorkingDirectory = dir
	rec.Elapsed = 10 * time.Millisecond
	rec.Timestamp = time.Now()
	return rec
}

func (f *fakeRunner) Track(ctx context.Context, phase types.Phase, label string, fn func(context.Context) error) executor.Record {
	rec := executor.Record{Command: label, Phase: phase, Elapsed: 5 * time.Millisecond, Timestamp: time.Now()}
	if err := fn(ctx); err != nil {
		rec.ExitCode = executor.ExitCodeStepFailed
		rec.Stderr = err.Error()
	} else {
		rec.Success = true
	}
	return rec
}

func (f *fakeRunner) ran(prefix string) int {
	n := 0
	for _, c := range f.commands {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

func succeed(stdout string) handlerFunc {
	return func(string, string) executor.Record {
		return executor.Record{Success: true, Stdout: stdout}
	}
}

func exitWith(code int, stderr string) handlerFunc {
	return func(string, string) executor.Record {
		return executor.Record{ExitCode: code, Stderr: stderr}
	}
}

// scaffoldInto creates <dir>/<name> with the given files, like a scaffold CLI would
func scaffoldInto(name string, files map[string]string) handlerFunc {
	return func(_ string, dir string) executor.Record {
		root := filepath.Join(dir, name)
		if err := os.MkdirAll(root, 0o755); err != nil {
			return executor.Record{ExitCode: 1, Stderr: err.Error()}
		}
		for rel, content := range files {
			path := filepath.Join(root, filepath.FromSlash(rel))
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return executor.Record{ExitCode: 1, Stderr: err.Error()}
			}
			if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
				return executor.Record{ExitCode: 1, Stderr: err.Error()}
			}
		}
		return executor.Record{Success: true, Stdout: "Success! Created " + name}
	}
}

// fakeHost records API calls
type fakeHost struct {
	mu        sync.Mutex
	createErr error
	uploadErr map[string]error
	login     string
	created   []string
	uploads   map[string]string
	lookups   int
	lookupErr error
}

func newFakeHost() *fakeHost {
	return &fakeHost{login: "octocat", uploads: map[string]string{}, uploadErr: map[string]error{}}
}

func (h *fakeHost) CreateRepository(_ context.Context, name, _ string, _ bool) (*hosting.Repository, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.created = append(h.created, name)
	if h.createErr != nil {
		return nil, h.createErr
	}
	return &hosting.Repository{
		Owner:    h.login,
		Name:     name,
		URL:      "https://github.com/" + h.login + "/" + name,
		CloneURL: "https://github.com/" + h.login + "/" + name + ".git",
	}, nil
}

func (h *fakeHost) UploadFile(_ context.Context, _ *hosting.Repository, path string, content []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err, ok := h.uploadErr[path]; ok {
		return err
	}
	if err, ok := h.uploadErr["*"]; ok {
		return err
	}
	h.uploads[path] = string(content)
	return nil
}

func (h *fakeHost) Username(context.Context) (string, error) {
	h.mu.Lock()
	h.lookups++
	h.mu.Unlock()
	if h.lookupErr != nil {
		return "", h.lookupErr
	}
	if h.login == "" {
		return "", errors.New("401 Bad credentials")
	}
	return h.login, nil
}

// recordingReporter captures progress events
type recordingReporter struct {
	phases   []types.Phase
	commands []string
}

func (r *recordingReporter) PhaseStarted(p types.Phase) {
	r.phases = append(r.phases, p)
}

func (r *recordingReporter) CommandFinished(rec executor.Record) {
	r.commands = append(r.commands, rec.Command)
}
