package executor

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestInDir(t *testing.T) {
	before, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	dir := t.TempDir()

	t.Run("enters and restores", func(t *testing.T) {
		var inside string
		err := InDir(dir, func() error {
			inside, _ = os.Getwd()
			return nil
		})
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		want, _ := filepath.EvalSymlinks(dir)
		got, _ := filepath.EvalSymlinks(inside)
		if got != want {
			t.Errorf("Expected cwd %s inside fn, got %s", want, got)
		}
		assertCwd(t, before)
	})

	t.Run("restores after error", func(t *testing.T) {
		sentinel := errors.New("step failed")
		err := InDir(dir, func() error { return sentinel })
		if !errors.Is(err, sentinel) {
			t.Errorf("Expected sentinel error, got %v", err)
		}
		assertCwd(t, before)
	})

	t.Run("restores after panic", func(t *testing.T) {
		func() {
			defer func() {
				if r := recover(); r == nil {
					t.Error("Expected panic to propagate")
				}
			}()
			_ = InDir(dir, func() error { panic("boom") })
		}()
		assertCwd(t, before)
	})

	t.Run("missing directory", func(t *testing.T) {
		called := false
		err := InDir(filepath.Join(dir, "missing"), func() error {
			called = true
			return nil
		})
		if err == nil {
			t.Error("Expected error for missing directory")
		}
		if called {
			t.Error("Expected fn not to run")
		}
		assertCwd(t, before)
	})
}

func assertCwd(t *testing.T, want string) {
	t.Helper()
	got, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if got != want {
		t.Errorf("Expected cwd %s, got %s", want, got)
	}
}
