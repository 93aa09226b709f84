package registry

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/daydemir/herbie/internal/types"
	"gopkg.in/yaml.v3"
)

// OverridesFile is the file name looked up in the config directory
const OverridesFile = "frameworks.yaml"

// Override replaces selected fields of a built-in framework. Nil fields keep
// the built-in value; an empty post_scaffold_commands list removes them.
type Override struct {
	ScaffoldCommands     []string          `yaml:"scaffold_commands"`
	PostScaffoldCommands *[]string         `yaml:"post_scaffold_commands"`
	DevServerPort        *int              `yaml:"dev_server_port"`
	StartCommand         *string           `yaml:"start_command"`
	EntryFile            *string           `yaml:"entry_file"`
	RequiredVersions     map[string]string `yaml:"required_versions"` // dependency name -> version
}

type overridesFile struct {
	Frameworks map[string]Override `yaml:"frameworks"`
}

// LoadOverrides reads framework overrides from path. A missing file yields no
// overrides. Framework ids accept the same aliases as the CLI.
func LoadOverrides(path string) (map[types.FrameworkID]Override, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)

	var file overridesFile
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	out := make(map[types.FrameworkID]Override, len(file.Frameworks))
	for key, o := range file.Frameworks {
		id, ok := types.ParseFrameworkID(key)
		if !ok {
			return nil, fmt.Errorf("%s: %w: %q", path, ErrUnknownFramework, key)
		}
		out[id] = o
	}
	return out, nil
}

// Apply merges overrides into the registry. Run Validate afterwards.
func (r *Registry) Apply(overrides map[types.FrameworkID]Override) error {
	ids := make([]string, 0, len(overrides))
	for id := range overrides {
		ids = append(ids, string(id))
	}
	sort.Strings(ids)

	for _, key := range ids {
		id := types.FrameworkID(key)
		o := overrides[id]
		d, ok := r.descriptors[id]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownFramework, id)
		}

		if len(o.ScaffoldCommands) > 0 {
			d.ScaffoldCommands = append([]string(nil), o.ScaffoldCommands...)
		}
		if o.PostScaffoldCommands != nil {
			d.PostScaffoldCommands = append([]string(nil), (*o.PostScaffoldCommands)...)
		}
		if o.DevServerPort != nil {
			d.DevServerPort = *o.DevServerPort
		}
		if o.StartCommand != nil {
			d.StartCommand = *o.StartCommand
		}
		if o.EntryFile != nil {
			d.EntryFile = *o.EntryFile
		}

		if len(o.RequiredVersions) > 0 {
			d.Dependencies = append([]DependencyDescriptor(nil), d.Dependencies...)
			for name, version := range o.RequiredVersions {
				found := false
				for i := range d.Dependencies {
					if d.Dependencies[i].Name == name {
						d.Dependencies[i].RequiredVersion = version
						found = true
					}
				}
				if !found {
					return fmt.Errorf("%s has no dependency named %q", id, name)
				}
			}
		}

		r.descriptors[id] = d
	}
	return nil
}
