package types

import "testing"

func TestParseFrameworkID(t *testing.T) {
	tests := []struct {
		input  string
		want   FrameworkID
		wantOK bool
	}{
		{"react", FrameworkReact, true},
		{"  React ", FrameworkReact, true},
		{"Next.js", FrameworkNextJS, true},
		{"vuejs", FrameworkVue, true},
		{"ruby on rails", FrameworkRails, true},
		{"flutter", FrameworkFlutter, true},
		{"svelte", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseFrameworkID(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("Expected ok=%v, got %v", tt.wantOK, ok)
			}
			if got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestDependencyStatusBlocks(t *testing.T) {
	blocking := map[DependencyStatus]bool{
		DependencyAvailable: false,
		DependencyMissing:   true,
		DependencyOutdated:  true,
		DependencyUnknown:   false,
	}
	for status, want := range blocking {
		if status.Blocks() != want {
			t.Errorf("Expected %s.Blocks() = %v", status, want)
		}
		if !status.IsValid() {
			t.Errorf("Expected %s to be valid", status)
		}
	}
	if DependencyStatus("installed").IsValid() {
		t.Error("Expected unknown status string to be invalid")
	}
}

func TestPhaseTerminal(t *testing.T) {
	for _, p := range AllPhases() {
		want := p == PhaseDone || p == PhaseFailed
		if p.IsTerminal() != want {
			t.Errorf("Expected %s.IsTerminal() = %v", p, want)
		}
		if p.Label() == "" {
			t.Errorf("Expected a label for %s", p)
		}
	}
}

func TestValidationErrors(t *testing.T) {
	t.Run("empty collection", func(t *testing.T) {
		var errs ValidationErrors
		if errs.Err() != nil {
			t.Error("Expected nil error for empty collection")
		}
		if errs.Report() != "" {
			t.Errorf("Expected empty report, got %q", errs.Report())
		}
	})

	t.Run("single error", func(t *testing.T) {
		var errs ValidationErrors
		errs.Add("react.scaffold_commands", []string{}, "at least one command is required")
		want := "validation error in field react.scaffold_commands: at least one command is required"
		if errs.Error() != want {
			t.Errorf("Expected %q, got %q", want, errs.Error())
		}
		if errs.Report() != "1. react.scaffold_commands: at least one command is required (found [])" {
			t.Errorf("Unexpected report: %q", errs.Report())
		}
	})

	t.Run("multiple errors", func(t *testing.T) {
		var errs ValidationErrors
		errs.Add("a", "x", "bad")
		errs.Add("b", nil, "missing")
		if errs.Error() != "validation failed with 2 errors: a, b" {
			t.Errorf("Unexpected error text: %q", errs.Error())
		}
		want := "1. a: bad (found \"x\")\n2. b: missing (found null)"
		if errs.Report() != want {
			t.Errorf("Expected %q, got %q", want, errs.Report())
		}
	})
}
