package deps

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// commonBinDirs are install locations that are often missing from PATH
func commonBinDirs(home string) []string {
	dirs := []string{"/usr/local/bin", "/opt/homebrew/bin"}
	if home != "" {
		dirs = append(dirs,
			filepath.Join(home, ".local", "bin"),
			filepath.Join(home, ".npm-global", "bin"),
			filepath.Join(home, ".pub-cache", "bin"),
			filepath.Join(home, ".rbenv", "shims"),
			filepath.Join(home, ".pyenv", "shims"),
			filepath.Join(home, "flutter", "bin"),
		)
	}
	return dirs
}

// Locate finds a binary. onPath reports whether it resolved through PATH;
// otherwise path is the first common install location holding it, or "".
func Locate(binary string) (path string, onPath bool) {
	if binary == "" {
		return "", false
	}
	if filepath.IsAbs(binary) {
		if _, err := os.Stat(binary); err == nil {
			return binary, true
		}
		return "", false
	}

	if p, err := exec.LookPath(binary); err == nil {
		return p, true
	}

	home, _ := os.UserHomeDir()
	for _, dir := range commonBinDirs(home) {
		candidate := filepath.Join(dir, binary)
		if runtime.GOOS == "windows" {
			candidate += ".exe"
		}
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, false
		}
	}
	return "", false
}

// binaryOf returns the program a check command invokes
func binaryOf(checkCommand string) string {
	fields := strings.Fields(checkCommand)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
