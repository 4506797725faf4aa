package analyzer

import (
	"regexp"
	"strings"
)

// Requirement is one pinned package from a manifest.
type Requirement struct {
	Package string `json:"package"`
	Version string `json:"version"`
}

// name, operator (==, >=, <=, >, <, =), numeric version
var requirementPattern = regexp.MustCompile(`^([a-zA-Z0-9\-_]+)\s*([=><]=?)\s*([0-9.]+)`)

// ParseRequirements extracts package/version pairs from requirements.txt
// content. Blank lines, comments and lines without a numeric version are
// skipped. Package names are lowercased.
func ParseRequirements(content string) []Requirement {
	var reqs []Requirement
	for _, line := range strings.Split(strings.TrimSpace(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		m := requirementPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		reqs = append(reqs, Requirement{
			Package: strings.ToLower(m[1]),
			Version: m[3],
		})
	}
	return reqs
}
