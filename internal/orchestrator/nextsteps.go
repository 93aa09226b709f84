package orchestrator

import (
	"fmt"

	"github.com/daydemir/herbie/internal/registry"
)

// NextSteps lists what the user should do after a successful setup, in order
func NextSteps(desc registry.FrameworkDescriptor, ec *ExecutionContext) []string {
	steps := []string{"cd " + ec.ProjectName}

	if desc.StartCommand != "" {
		steps = append(steps, desc.StartCommand)
	}
	if desc.DevServerPort > 0 {
		steps = append(steps, fmt.Sprintf("open http://localhost:%d", desc.DevServerPort))
	}
	if desc.Kind == registry.KindMobile {
		steps = append(steps, "connect a device or start an emulator before running")
	}
	if desc.EntryFile != "" {
		steps = append(steps, "edit "+registry.RenderCommand(desc.EntryFile, ec.ProjectName))
	}
	if ec.RemoteURL != "" {
		steps = append(steps, "view the repository at "+ec.RemoteURL)
	}
	return steps
}
