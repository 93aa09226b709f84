package deps

import (
	"regexp"
	"strings"

	version "github.com/hashicorp/go-version"
)

// versionPatterns are tried in order; the first match wins
var versionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)v?(\d+\.\d+\.\d+)`),
	regexp.MustCompile(`(?i)version\s+(\d+\.\d+\.\d+)`),
	regexp.MustCompile(`(?i)(\d+\.\d+\.\d+)`),
	regexp.MustCompile(`(?i)v?(\d+\.\d+)`),
	regexp.MustCompile(`(?i)(\d+\.\d+)`),
}

// ExtractVersion finds the first version-looking token in tool output.
// Returns "" when nothing matches.
func ExtractVersion(output string) string {
	for _, p := range versionPatterns {
		if m := p.FindStringSubmatch(output); m != nil {
			return m[1]
		}
	}
	return ""
}

// CompareVersions reports whether current satisfies required.
// The operator prefix (>=, > or =) is stripped and the check is always current >= required,
// with missing segments treated as zero. If either side cannot be parsed the
// dependency is given the benefit of the doubt and true is returned.
func CompareVersions(current, required string) bool {
	cleaned := strings.TrimSpace(strings.NewReplacer(">=", "", ">", "", "=", "").Replace(required))
	if cleaned == "" {
		return true
	}

	have, err := version.NewVersion(strings.TrimSpace(current))
	if err != nil {
		return true
	}
	want, err := version.NewVersion(cleaned)
	if err != nil {
		return true
	}
	return have.GreaterThanOrEqual(want)
}
