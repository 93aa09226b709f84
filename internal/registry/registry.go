// Package registry holds the static catalog of frameworks herbie can scaffold.
package registry

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/daydemir/herbie/internal/types"
)

// ProjectNamePlaceholder is replaced with the project name in command templates
const ProjectNamePlaceholder = "{projectName}"

// ErrUnknownFramework is returned when a framework id is not in the registry
var ErrUnknownFramework = errors.New("unknown framework")

// Kind groups frameworks by the shape of the generated project
type Kind string

const (
	KindWeb    Kind = "web"
	KindAPI    Kind = "api"
	KindMobile Kind = "mobile"
)

// DependencyDescriptor describes a tool a framework needs on the host
type DependencyDescriptor struct {
	Name               string
	CheckCommand       string
	RequiredVersion    string            // e.g. ">=14.0.0", empty means any version
	InstallCommandByOS map[string]string // keyed by runtime.GOOS
}

// InstallCommand returns the install hint for the given OS, or "" if none is known
func (d DependencyDescriptor) InstallCommand(goos string) string {
	return d.InstallCommandByOS[goos]
}

// FrameworkDescriptor is an immutable entry in the registry
type FrameworkDescriptor struct {
	ID          types.FrameworkID
	Name        string
	Description string
	Kind        Kind

	// ScaffoldCommands holds command templates. The first is the primary command,
	// the rest are alternates kept for future selection logic.
	ScaffoldCommands []string
	Dependencies     []DependencyDescriptor

	// PostScaffoldCommands run inside the new project directory. Failures are tolerated.
	PostScaffoldCommands []string

	DevServerPort int // 0 when the framework has no dev server
	StartCommand  string
	EntryFile     string
}

// PrimaryScaffold renders the primary scaffold command for a project
func (f FrameworkDescriptor) PrimaryScaffold(projectName string) string {
	if len(f.ScaffoldCommands) == 0 {
		return ""
	}
	return RenderCommand(f.ScaffoldCommands[0], projectName)
}

// PostScaffold renders every post-scaffold command for a project
func (f FrameworkDescriptor) PostScaffold(projectName string) []string {
	cmds := make([]string, 0, len(f.PostScaffoldCommands))
	for _, c := range f.PostScaffoldCommands {
		cmds = append(cmds, RenderCommand(c, projectName))
	}
	return cmds
}

// RenderCommand substitutes the project name into a command template
func RenderCommand(template, projectName string) string {
	return strings.ReplaceAll(template, ProjectNamePlaceholder, projectName)
}

// Registry is a read-only lookup table of framework descriptors
type Registry struct {
	order       []types.FrameworkID
	descriptors map[types.FrameworkID]FrameworkDescriptor
}

// New builds a registry from descriptors, preserving their order.
// It does not validate; call Validate at startup.
func New(descriptors ...FrameworkDescriptor) *Registry {
	r := &Registry{
		descriptors: make(map[types.FrameworkID]FrameworkDescriptor, len(descriptors)),
	}
	for _, d := range descriptors {
		if _, dup := r.descriptors[d.ID]; !dup {
			r.order = append(r.order, d.ID)
		}
		r.descriptors[d.ID] = d
	}
	return r
}

// Default returns the built-in framework catalog
func Default() *Registry {
	return New(builtinFrameworks()...)
}

// Lookup returns the descriptor for a framework id
func (r *Registry) Lookup(id types.FrameworkID) (FrameworkDescriptor, bool) {
	d, ok := r.descriptors[id]
	return d, ok
}

// Get is Lookup returning ErrUnknownFramework instead of a bool
func (r *Registry) Get(id types.FrameworkID) (FrameworkDescriptor, error) {
	d, ok := r.descriptors[id]
	if !ok {
		return FrameworkDescriptor{}, fmt.Errorf("%w: %q", ErrUnknownFramework, id)
	}
	return d, nil
}

// IDs returns all framework ids in registration order
func (r *Registry) IDs() []types.FrameworkID {
	ids := make([]types.FrameworkID, len(r.order))
	copy(ids, r.order)
	return ids
}

// All returns all descriptors in registration order
func (r *Registry) All() []FrameworkDescriptor {
	all := make([]FrameworkDescriptor, 0, len(r.order))
	for _, id := range r.order {
		all = append(all, r.descriptors[id])
	}
	return all
}

var requiredVersionPattern = regexp.MustCompile(`^(>=|>|=)?\s*\d+(\.\d+)*$`)

// Validate checks every descriptor and reports all problems at once
func (r *Registry) Validate() error {
	var errs types.ValidationErrors

	for _, id := range r.order {
		d := r.descriptors[id]
		prefix := string(id)

		if !id.IsValid() {
			errs.Add(prefix+".id", string(id), "not a known framework id")
		}
		if d.Name == "" {
			errs.Add(prefix+".name", d.Name, "field is required")
		}
		if len(d.ScaffoldCommands) == 0 {
			errs.Add(prefix+".scaffold_commands", d.ScaffoldCommands, "at least one command is required")
		}
		for i, c := range d.ScaffoldCommands {
			if !strings.Contains(c, ProjectNamePlaceholder) {
				errs.Add(fmt.Sprintf("%s.scaffold_commands[%d]", prefix, i), c, "must contain "+ProjectNamePlaceholder)
			}
		}
		if d.DevServerPort < 0 || d.DevServerPort > 65535 {
			errs.Add(prefix+".dev_server_port", d.DevServerPort, "must be a valid port or 0")
		}
		for i, dep := range d.Dependencies {
			field := fmt.Sprintf("%s.dependencies[%d]", prefix, i)
			if dep.Name == "" {
				errs.Add(field+".name", dep.Name, "field is required")
			}
			if strings.TrimSpace(dep.CheckCommand) == "" {
				errs.Add(field+".check_command", dep.CheckCommand, "field is required")
			}
			if dep.RequiredVersion != "" && !requiredVersionPattern.MatchString(dep.RequiredVersion) {
				errs.Add(field+".required_version", dep.RequiredVersion, "must look like >=1.2.3")
			}
		}
	}

	return errs.Err()
}
