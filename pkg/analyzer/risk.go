package analyzer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

type versionParts struct {
	major, minor, patch uint64
}

// parseVersion splits a version into major, minor and patch. Strings semver
// rejects (four components, PEP 440 suffixes) fall back to reading the
// leading digits of each dot-separated field; missing fields are zero.
func parseVersion(s string) versionParts {
	if v, err := semver.NewVersion(s); err == nil {
		return versionParts{v.Major(), v.Minor(), v.Patch()}
	}

	var out [3]uint64
	for i, field := range strings.SplitN(s, ".", 4) {
		if i == 3 {
			break
		}
		end := 0
		for end < len(field) && field[end] >= '0' && field[end] <= '9' {
			end++
		}
		n, _ := strconv.ParseUint(field[:end], 10, 64)
		out[i] = n
	}
	return versionParts{out[0], out[1], out[2]}
}

// CalculateRisk grades the upgrade from current to latest by the most
// significant component that differs.
func CalculateRisk(current, latest string) RiskLevel {
	c, l := parseVersion(current), parseVersion(latest)

	switch {
	case c == l:
		return RiskUpToDate
	case l.major != c.major:
		if l.major > c.major {
			return RiskHigh
		}
	case l.minor != c.minor:
		if l.minor > c.minor {
			return RiskMedium
		}
	case l.patch > c.patch:
		return RiskLow
	}
	// current is newer than what the registry calls latest
	return RiskUnknown
}

// Explain returns the plain-English explanation shown next to a result.
func Explain(level RiskLevel, current, latest string) string {
	c, l := parseVersion(current), parseVersion(latest)

	switch level {
	case RiskHigh:
		return fmt.Sprintf("⚠️ Major version upgrade (%d.x → %d.x). "+
			"This update may contain breaking changes that could require significant code modifications. "+
			"Review the changelog carefully before upgrading.", c.major, l.major)
	case RiskMedium:
		return fmt.Sprintf("⚡ Minor version upgrade (%d.%d.x → %d.%d.x). "+
			"New features have been added. Some functions may be deprecated. "+
			"Test thoroughly but major breaking changes are unlikely.", c.major, c.minor, l.major, l.minor)
	case RiskLow:
		return fmt.Sprintf("✅ Patch version upgrade (%s → %s). "+
			"This is a bug fix release with no new features. "+
			"Safe to upgrade with minimal testing required.", current, latest)
	case RiskUpToDate:
		return "✨ You're using the latest version! No upgrade needed."
	case RiskUnknown:
		return fmt.Sprintf("⚠️ Version comparison unclear. Your version (%s) appears newer than PyPI (%s).", current, latest)
	default:
		return "Unable to determine risk level."
	}
}
