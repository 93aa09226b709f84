package types

import "strings"

// FrameworkID identifies a supported framework in the registry
type FrameworkID string

const (
	FrameworkReact   FrameworkID = "react"
	FrameworkVue     FrameworkID = "vue"
	FrameworkAngular FrameworkID = "angular"
	FrameworkNextJS  FrameworkID = "nextjs"
	FrameworkDjango  FrameworkID = "django"
	FrameworkFastAPI FrameworkID = "fastapi"
	FrameworkRails   FrameworkID = "rails"
	FrameworkFlutter FrameworkID = "flutter"
)

// AllFrameworkIDs returns all valid framework ids in display order
func AllFrameworkIDs() []FrameworkID {
	return []FrameworkID{
		FrameworkReact, FrameworkVue, FrameworkAngular, FrameworkNextJS,
		FrameworkDjango, FrameworkFastAPI, FrameworkRails, FrameworkFlutter,
	}
}

// IsValid checks if a framework id is valid
func (f FrameworkID) IsValid() bool {
	for _, valid := range AllFrameworkIDs() {
		if f == valid {
			return true
		}
	}
	return false
}

// String returns the string representation of the framework id
func (f FrameworkID) String() string {
	return string(f)
}

var frameworkAliases = map[string]FrameworkID{
	"reactjs":       FrameworkReact,
	"react.js":      FrameworkReact,
	"vuejs":         FrameworkVue,
	"vue.js":        FrameworkVue,
	"next":          FrameworkNextJS,
	"next.js":       FrameworkNextJS,
	"ror":           FrameworkRails,
	"ruby on rails": FrameworkRails,
}

// ParseFrameworkID resolves user or model supplied text to a framework id.
// Matching is case-insensitive and accepts a few common aliases.
func ParseFrameworkID(s string) (FrameworkID, bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	if id := FrameworkID(key); id.IsValid() {
		return id, true
	}
	if id, ok := frameworkAliases[key]; ok {
		return id, true
	}
	return "", false
}

// DependencyStatus is the result of checking one dependency against the live system
type DependencyStatus string

const (
	// DependencyAvailable means the tool is installed and satisfies the required version
	DependencyAvailable DependencyStatus = "available"
	// DependencyMissing means the check command exited non-zero
	DependencyMissing DependencyStatus = "missing"
	// DependencyOutdated means the installed version is below the required version
	DependencyOutdated DependencyStatus = "outdated"
	// DependencyUnknown means the check itself could not run
	DependencyUnknown DependencyStatus = "unknown"
)

// AllDependencyStatuses returns all valid dependency status values
func AllDependencyStatuses() []DependencyStatus {
	return []DependencyStatus{DependencyAvailable, DependencyMissing, DependencyOutdated, DependencyUnknown}
}

// IsValid checks if a dependency status is valid
func (s DependencyStatus) IsValid() bool {
	for _, valid := range AllDependencyStatuses() {
		if s == valid {
			return true
		}
	}
	return false
}

// Blocks reports whether the status prevents scaffolding
func (s DependencyStatus) Blocks() bool {
	return s == DependencyMissing || s == DependencyOutdated
}

// String returns the string representation of the dependency status
func (s DependencyStatus) String() string {
	return string(s)
}

// Phase is one stage of the project setup state machine
type Phase string

const (
	PhaseDependencyCheck Phase = "dependency_check"
	PhaseScaffold        Phase = "scaffold"
	PhaseVcsPublish      Phase = "vcs_publish"
	PhaseCodeUpload      Phase = "code_upload"
	PhaseDone            Phase = "done"
	PhaseFailed          Phase = "failed"
)

// AllPhases returns all phases in execution order, followed by the terminal failure state
func AllPhases() []Phase {
	return []Phase{PhaseDependencyCheck, PhaseScaffold, PhaseVcsPublish, PhaseCodeUpload, PhaseDone, PhaseFailed}
}

// IsValid checks if a phase value is valid
func (p Phase) IsValid() bool {
	for _, valid := range AllPhases() {
		if p == valid {
			return true
		}
	}
	return false
}

// IsTerminal returns true for Done and Failed
func (p Phase) IsTerminal() bool {
	return p == PhaseDone || p == PhaseFailed
}

// String returns the string representation of the phase
func (p Phase) String() string {
	return string(p)
}

// Label returns a short human-readable phase name
func (p Phase) Label() string {
	switch p {
	case PhaseDependencyCheck:
		return "Dependencies"
	case PhaseScaffold:
		return "Scaffold"
	case PhaseVcsPublish:
		return "Publish"
	case PhaseCodeUpload:
		return "Upload"
	case PhaseDone:
		return "Done"
	case PhaseFailed:
		return "Failed"
	}
	return string(p)
}
