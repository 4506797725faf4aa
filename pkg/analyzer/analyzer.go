package analyzer

import (
	"context"
	"errors"
	"fmt"

	"github.com/sambabib/version-autopsy/pkg/logger"
	"golang.org/x/sync/errgroup"
)

// RiskLevel is the backend-assigned classification of an upgrade.
type RiskLevel string

const (
	RiskHigh     RiskLevel = "HIGH"
	RiskMedium   RiskLevel = "MEDIUM"
	RiskLow      RiskLevel = "LOW"
	RiskUpToDate RiskLevel = "UP-TO-DATE"
	RiskUnknown  RiskLevel = "UNKNOWN"
)

// Levels lists every risk level in display order.
var Levels = []RiskLevel{RiskHigh, RiskMedium, RiskLow, RiskUpToDate, RiskUnknown}

// Normalize maps anything outside the known set, including the empty
// string, to RiskUnknown.
func (l RiskLevel) Normalize() RiskLevel {
	switch l {
	case RiskHigh, RiskMedium, RiskLow, RiskUpToDate, RiskUnknown:
		return l
	default:
		return RiskUnknown
	}
}

// AnalysisResult is the risk assessment of a single package.
type AnalysisResult struct {
	Package        string    `json:"package"`
	CurrentVersion string    `json:"current_version"`
	LatestVersion  string    `json:"latest_version"`
	RiskLevel      RiskLevel `json:"risk_level"`
	Explanation    string    `json:"explanation"`
}

// NotFoundVersion is reported as the latest version when the registry has no
// record of the package.
const NotFoundVersion = "Not Found"

var (
	// ErrPackageNotFound is returned by a Registry that has no such package.
	ErrPackageNotFound = errors.New("package not found")
	// ErrNoPackages is returned when a manifest holds no parseable requirement.
	ErrNoPackages = errors.New("no valid packages found")
)

// Registry resolves the latest published version of a package.
type Registry interface {
	LatestVersion(ctx context.Context, name string) (string, error)
}

const defaultConcurrency = 8

// Analyzer grades packages against a Registry.
type Analyzer struct {
	Registry    Registry
	Concurrency int
	// Ignore reports packages that should be left out of manifest analysis.
	Ignore func(name string) bool
}

// NewAnalyzer creates an Analyzer backed by the given registry.
func NewAnalyzer(registry Registry) *Analyzer {
	return &Analyzer{
		Registry:    registry,
		Concurrency: defaultConcurrency,
	}
}

// AnalyzePackage looks up the latest version of name and grades the upgrade
// from version. A failed lookup yields an UNKNOWN result rather than an error.
func (a *Analyzer) AnalyzePackage(ctx context.Context, name, version string) AnalysisResult {
	latest, err := a.Registry.LatestVersion(ctx, name)
	if err != nil {
		if !errors.Is(err, ErrPackageNotFound) {
			logger.Errorf("Lookup of %s failed: %v", name, err)
		}
		return AnalysisResult{
			Package:        name,
			CurrentVersion: version,
			LatestVersion:  NotFoundVersion,
			RiskLevel:      RiskUnknown,
			Explanation:    fmt.Sprintf("Package %q not found on PyPI. Please verify the package name.", name),
		}
	}

	level := CalculateRisk(version, latest)
	logger.Debugf("%s %s -> %s: %s", name, version, latest, level)
	return AnalysisResult{
		Package:        name,
		CurrentVersion: version,
		LatestVersion:  latest,
		RiskLevel:      level,
		Explanation:    Explain(level, version, latest),
	}
}

// AnalyzeRequirements parses a manifest and analyzes every requirement.
// Results keep manifest order.
func (a *Analyzer) AnalyzeRequirements(ctx context.Context, content string) ([]AnalysisResult, error) {
	var reqs []Requirement
	for _, r := range ParseRequirements(content) {
		if a.Ignore != nil && a.Ignore(r.Package) {
			logger.Debugf("Skipping ignored package %s", r.Package)
			continue
		}
		reqs = append(reqs, r)
	}
	if len(reqs) == 0 {
		return nil, ErrNoPackages
	}

	results := make([]AnalysisResult, len(reqs))
	g, ctx := errgroup.WithContext(ctx)
	limit := a.Concurrency
	if limit <= 0 {
		limit = defaultConcurrency
	}
	g.SetLimit(limit)
	for i, r := range reqs {
		i, r := i, r
		g.Go(func() error {
			results[i] = a.AnalyzePackage(ctx, r.Package, r.Version)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("analysis failed: %w", err)
	}
	return results, nil
}
