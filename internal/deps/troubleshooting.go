package deps

import (
	"fmt"
	"path/filepath"
	"strings"
)

var toolchainGuides = map[string]string{
	"node": `Node.js:
  - windows: download the installer from nodejs.org
  - linux: use nvm if the distro package conflicts
  - macOS: use Homebrew or the nodejs.org installer
  - verify with: node --version && npm --version`,
	"python": `Python:
  - windows: tick "Add to PATH" during installation
  - linux: try python3 instead of python
  - macOS: avoid the system Python, install with Homebrew
  - verify with: python --version (or python3 --version)`,
	"ruby": `Ruby:
  - windows: use RubyInstaller with DevKit
  - linux: install build-essential before Ruby
  - macOS: manage versions with rbenv or RVM
  - verify with: ruby --version && gem --version`,
}

// NoGuideMessage is returned when none of the problematic dependencies has a guide
const NoGuideMessage = "No specific troubleshooting guide available."

// TroubleshootingGuide returns toolchain hints for the given problematic dependencies
func TroubleshootingGuide(problems []DependencyInfo) string {
	var guides []string
	seen := make(map[string]bool)
	for _, p := range problems {
		if hint := OffPathHint(p); hint != "" {
			guides = append(guides, hint)
		}
		guide, ok := toolchainGuides[p.Name]
		if !ok || seen[p.Name] {
			continue
		}
		seen[p.Name] = true
		guides = append(guides, guide)
	}
	if len(guides) == 0 {
		return NoGuideMessage
	}
	return strings.Join(guides, "\n\n")
}

// OffPathHint explains where a binary the shell could not find actually lives
func OffPathHint(info DependencyInfo) string {
	if info.OffPath == "" {
		return ""
	}
	return fmt.Sprintf("%s is installed at %s, but %s is not on PATH.",
		info.Name, info.OffPath, filepath.Dir(info.OffPath))
}
