package deps

import (
	"context"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/daydemir/herbie/internal/executor"
	"github.com/daydemir/herbie/internal/registry"
	"github.com/daydemir/herbie/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRunner returns scripted records keyed by command
type fakeRunner struct {
	records  map[string]executor.Record
	calls    []string
	timeouts []time.Duration
}

func (f *fakeRunner) Run(_ context.Context, phase types.Phase, command string, timeout time.Duration, _ string) executor.Record {
	f.calls = append(f.calls, command)
	f.timeouts = append(f.timeouts, timeout)
	rec, ok := f.records[command]
	if !ok {
		return executor.Record{Command: command, Phase: phase, ExitCode: 1, Stderr: "not installed"}
	}
	rec.Command = command
	rec.Phase = phase
	return rec
}

func ok(stdout string) executor.Record {
	return executor.Record{Success: true, Stdout: stdout}
}

func TestExtractVersion(t *testing.T) {
	tests := []struct {
		output string
		want   string
	}{
		{"v18.17.0\n", "18.17.0"},
		{"Python 3.11.4", "3.11.4"},
		{"pip 23.2.1 from /usr/lib/python3/dist-packages/pip (python 3.11)", "23.2.1"},
		{"ruby 3.2.2 (2023-03-30 revision e51014f9c0) [x86_64-linux]", "3.2.2"},
		{"Rails 7.1.2", "7.1.2"},
		{"Flutter 3.13.0 • channel stable", "3.13.0"},
		{"Angular CLI: 16.2", "16.2"},
		{"VERSION 1.2.3", "1.2.3"},
		{"no version here", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.output, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractVersion(tt.output))
		})
	}
}

func TestCompareVersions(t *testing.T) {
	tests := []struct {
		current  string
		required string
		want     bool
	}{
		{"14.2.0", ">=14.0.0", true},
		{"13.9.0", ">=14.0.0", false},
		{"14", ">=14.0.0", true},
		{"14.0.0", ">=14", true},
		{"3.10", ">=3.8.0", true},
		{"2.0.0", "=3.0.0", false},
		{"14.0.0", ">14.0.0", true}, // operators are stripped, comparison is always >=
		{"1.0.0", "", true},
		{"garbage", ">=1.0.0", true},
		{"1.0.0", "latest", true},
	}

	for _, tt := range tests {
		t.Run(tt.current+" "+tt.required, func(t *testing.T) {
			assert.Equal(t, tt.want, CompareVersions(tt.current, tt.required))
		})
	}
}

func TestCheck(t *testing.T) {
	ctx := context.Background()
	node := registry.DependencyDescriptor{
		Name:            "node",
		CheckCommand:    "node --version",
		RequiredVersion: ">=14.0.0",
		InstallCommandByOS: map[string]string{
			"linux":  "apt-get install nodejs",
			"darwin": "brew install node",
		},
	}

	tests := []struct {
		name        string
		record      executor.Record
		wantStatus  types.DependencyStatus
		wantVersion string
	}{
		{"available", ok("v18.17.0\n"), types.DependencyAvailable, "18.17.0"},
		{"outdated", ok("v12.22.0\n"), types.DependencyOutdated, "12.22.0"},
		{"short version satisfies", ok("v14\n"), types.DependencyAvailable, ""},
		{"missing on non-zero exit", executor.Record{ExitCode: 1, Stderr: "node: broken install"}, types.DependencyMissing, ""},
		{"unknown when the shell cannot find the command", executor.Record{ExitCode: executor.ExitCodeNotFound, Stderr: "bash: node: command not found"}, types.DependencyUnknown, ""},
		{"unknown when cmd cannot find the command", executor.Record{ExitCode: executor.ExitCodeNotFoundWindows, Stderr: "'node' is not recognized"}, types.DependencyUnknown, ""},
		{"unknown on timeout", executor.Record{ExitCode: executor.ExitCodeTimeout, Stderr: executor.TimeoutMessage}, types.DependencyUnknown, ""},
		{"unknown on exception", executor.Record{ExitCode: executor.ExitCodeException, Stderr: "exec: bash: not found"}, types.DependencyUnknown, ""},
		{"available without version output", ok("installed\n"), types.DependencyAvailable, ""},
		{"version from stderr", executor.Record{Success: true, Stderr: "node v20.1.0"}, types.DependencyAvailable, "20.1.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &fakeRunner{records: map[string]executor.Record{"node --version": tt.record}}
			c := NewChecker(runner, WithOS("linux"))

			info := c.Check(ctx, node)

			assert.Equal(t, tt.wantStatus, info.Status)
			assert.Equal(t, tt.wantVersion, info.CurrentVersion)
			assert.Equal(t, "node", info.Name)
			assert.Equal(t, ">=14.0.0", info.RequiredVersion)
			assert.Equal(t, "apt-get install nodejs", info.InstallCommand)
			assert.Equal(t, []string{"node --version"}, runner.calls)
			assert.Equal(t, []time.Duration{DefaultTimeout}, runner.timeouts)
		})
	}
}

func TestCheckInstallCommandByOS(t *testing.T) {
	dep := registry.DependencyDescriptor{
		Name:               "ruby",
		CheckCommand:       "ruby --version",
		InstallCommandByOS: map[string]string{"darwin": "brew install ruby"},
	}
	runner := &fakeRunner{records: map[string]executor.Record{}}

	info := NewChecker(runner, WithOS("darwin")).Check(context.Background(), dep)
	assert.Equal(t, "brew install ruby", info.InstallCommand)

	info = NewChecker(runner, WithOS("plan9")).Check(context.Background(), dep)
	assert.Equal(t, "", info.InstallCommand)
}

func TestCheckAllIsSequentialAndInOrder(t *testing.T) {
	runner := &fakeRunner{records: map[string]executor.Record{
		"python --version": ok("Python 3.11.4"),
		"pip --version":    ok("pip 19.0.0 from /x"),
	}}
	c := NewChecker(runner, WithTimeout(3*time.Second))

	descs := []registry.DependencyDescriptor{
		{Name: "python", CheckCommand: "python --version", RequiredVersion: ">=3.8.0"},
		{Name: "pip", CheckCommand: "pip --version", RequiredVersion: ">=20.0.0"},
		{Name: "django", CheckCommand: "django-admin --version", RequiredVersion: ">=4.0.0"},
	}
	infos := c.CheckAll(context.Background(), descs)

	require.Len(t, infos, 3)
	assert.Equal(t, []string{"python --version", "pip --version", "django-admin --version"}, runner.calls)
	assert.Equal(t, 3*time.Second, runner.timeouts[0])
	assert.Equal(t, types.DependencyAvailable, infos[0].Status)
	assert.Equal(t, types.DependencyOutdated, infos[1].Status)
	assert.Equal(t, types.DependencyMissing, infos[2].Status)

	blocking := Blocking(infos)
	require.Len(t, blocking, 2)
	assert.Equal(t, "pip", blocking[0].Name)
	assert.Equal(t, "django", blocking[1].Name)
}

func TestBlockingIgnoresUnknown(t *testing.T) {
	infos := []DependencyInfo{
		{Name: "a", Status: types.DependencyAvailable},
		{Name: "b", Status: types.DependencyUnknown},
	}
	assert.Empty(t, Blocking(infos))
}

func TestTroubleshootingGuide(t *testing.T) {
	guide := TroubleshootingGuide([]DependencyInfo{
		{Name: "node"}, {Name: "npm"}, {Name: "node"}, {Name: "python"},
	})
	assert.Equal(t, 1, strings.Count(guide, "Node.js:"))
	assert.Contains(t, guide, "Python:")
	assert.NotContains(t, guide, "Ruby:")

	assert.Equal(t, NoGuideMessage, TroubleshootingGuide([]DependencyInfo{{Name: "flutter"}}))
	assert.Equal(t, NoGuideMessage, TroubleshootingGuide(nil))
}

func TestCheckReportsBinaryOffPath(t *testing.T) {
	dep := registry.DependencyDescriptor{Name: "flutter", CheckCommand: "flutter --version"}
	runner := &fakeRunner{records: map[string]executor.Record{
		"flutter --version": {ExitCode: executor.ExitCodeNotFound, Stderr: "bash: flutter: command not found"},
	}}

	c := NewChecker(runner)
	c.locate = func(binary string) (string, bool) {
		assert.Equal(t, "flutter", binary)
		return "/home/dev/flutter/bin/flutter", false
	}
	info := c.Check(context.Background(), dep)
	assert.Equal(t, types.DependencyUnknown, info.Status)
	assert.Equal(t, "/home/dev/flutter/bin/flutter", info.OffPath)
	assert.Equal(t, []DependencyInfo{info}, Unverified([]DependencyInfo{info}))

	guide := TroubleshootingGuide([]DependencyInfo{info})
	assert.Contains(t, guide, "flutter is installed at /home/dev/flutter/bin/flutter")
	assert.Equal(t, "flutter is installed at /home/dev/flutter/bin/flutter, but /home/dev/flutter/bin is not on PATH.", OffPathHint(info))

	c.locate = func(string) (string, bool) { return "/usr/bin/flutter", true }
	info = c.Check(context.Background(), dep)
	assert.Empty(t, info.OffPath)
	assert.Empty(t, OffPathHint(info))
}

func TestCheckMissingSkipsOffPathLookup(t *testing.T) {
	dep := registry.DependencyDescriptor{Name: "flutter", CheckCommand: "flutter --version"}
	c := NewChecker(&fakeRunner{records: map[string]executor.Record{}})
	c.locate = func(string) (string, bool) {
		t.Error("Expected no off-PATH lookup for a command that ran")
		return "", false
	}
	info := c.Check(context.Background(), dep)
	assert.Equal(t, types.DependencyMissing, info.Status)
}

func TestCheckNonexistentBinaryWithRealShell(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a POSIX shell")
	}
	dep := registry.DependencyDescriptor{Name: "ghost", CheckCommand: "herbie-definitely-not-a-binary --version"}

	info := NewChecker(executor.New()).Check(context.Background(), dep)

	assert.Equal(t, types.DependencyUnknown, info.Status)
	assert.Empty(t, Blocking([]DependencyInfo{info}))
}

func TestLocate(t *testing.T) {
	path, onPath := Locate("")
	assert.Empty(t, path)
	assert.False(t, onPath)

	path, onPath = Locate("herbie-definitely-not-installed")
	assert.Empty(t, path)
	assert.False(t, onPath)

	assert.Equal(t, "node", binaryOf("node --version"))
	assert.Equal(t, "", binaryOf("  "))
}
