package output

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/sambabib/version-autopsy/pkg/analyzer"
)

// SARIF format specification: https://docs.oasis-open.org/sarif/sarif/v2.1.0/sarif-v2.1.0.html

// SarifReport represents the top-level SARIF report structure
type SarifReport struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []SarifRun `json:"runs"`
}

// SarifRun represents a single run of the analysis tool
type SarifRun struct {
	Tool        SarifTool         `json:"tool"`
	Results     []SarifResult     `json:"results"`
	Invocations []SarifInvocation `json:"invocations"`
}

// SarifTool represents the tool that performed the analysis
type SarifTool struct {
	Driver SarifDriver `json:"driver"`
}

// SarifDriver represents the driver of the tool
type SarifDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version"`
	InformationURI string      `json:"informationUri"`
	Rules          []SarifRule `json:"rules"`
}

// SarifRule represents a rule that was evaluated during the analysis
type SarifRule struct {
	ID               string       `json:"id"`
	ShortDescription SarifMessage `json:"shortDescription"`
	FullDescription  SarifMessage `json:"fullDescription"`
	Help             SarifMessage `json:"help"`
}

// SarifResult represents a result of the analysis
type SarifResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   SarifMessage    `json:"message"`
	Locations []SarifLocation `json:"locations"`
}

// SarifMessage represents a message in the SARIF report
type SarifMessage struct {
	Text string `json:"text"`
}

// SarifLocation represents a location in the code
type SarifLocation struct {
	PhysicalLocation SarifPhysicalLocation `json:"physicalLocation"`
}

// SarifPhysicalLocation represents a physical location in the code
type SarifPhysicalLocation struct {
	ArtifactLocation SarifArtifactLocation `json:"artifactLocation"`
}

// SarifArtifactLocation represents the location of an artifact
type SarifArtifactLocation struct {
	URI string `json:"uri"`
}

// SarifInvocation represents an invocation of the tool
type SarifInvocation struct {
	ExecutionSuccessful bool   `json:"executionSuccessful"`
	StartTimeUtc        string `json:"startTimeUtc"`
	EndTimeUtc          string `json:"endTimeUtc"`
}

// SarifOptions describes the run being reported.
type SarifOptions struct {
	ToolVersion  string
	ManifestPath string
	StartedAt    time.Time
	// Level maps a risk level onto a SARIF result level.
	Level func(analyzer.RiskLevel) string
}

var sarifRules = []SarifRule{
	{
		ID:               "upgrade-major",
		ShortDescription: SarifMessage{Text: "Major version upgrade available"},
		FullDescription:  SarifMessage{Text: "A major version upgrade is available for this dependency, which may include breaking changes."},
		Help:             SarifMessage{Text: "Review the changelog carefully before upgrading."},
	},
	{
		ID:               "upgrade-minor",
		ShortDescription: SarifMessage{Text: "Minor version upgrade available"},
		FullDescription:  SarifMessage{Text: "A minor version upgrade is available for this dependency, which may deprecate some functions."},
		Help:             SarifMessage{Text: "Test thoroughly before upgrading."},
	},
	{
		ID:               "upgrade-patch",
		ShortDescription: SarifMessage{Text: "Patch upgrade available"},
		FullDescription:  SarifMessage{Text: "A patch upgrade is available for this dependency, which contains bug fixes only."},
		Help:             SarifMessage{Text: "Safe to upgrade with minimal testing."},
	},
	{
		ID:               "up-to-date",
		ShortDescription: SarifMessage{Text: "Dependency is up to date"},
		FullDescription:  SarifMessage{Text: "The pinned version is the latest stable release."},
		Help:             SarifMessage{Text: "No action needed."},
	},
	{
		ID:               "unknown",
		ShortDescription: SarifMessage{Text: "Upgrade risk unknown"},
		FullDescription:  SarifMessage{Text: "The package could not be found or its version could not be compared."},
		Help:             SarifMessage{Text: "Verify the package name and pinned version."},
	},
}

var sarifRuleIDs = map[analyzer.RiskLevel]string{
	analyzer.RiskHigh:     "upgrade-major",
	analyzer.RiskMedium:   "upgrade-minor",
	analyzer.RiskLow:      "upgrade-patch",
	analyzer.RiskUpToDate: "up-to-date",
	analyzer.RiskUnknown:  "unknown",
}

// WriteSarif writes analysis results as a SARIF 2.1.0 log.
func WriteSarif(w io.Writer, results []analyzer.AnalysisResult, opts SarifOptions) error {
	level := opts.Level
	if level == nil {
		level = func(analyzer.RiskLevel) string { return "note" }
	}
	started := opts.StartedAt
	if started.IsZero() {
		started = time.Now()
	}
	toolVersion := opts.ToolVersion
	if toolVersion == "" {
		toolVersion = "dev"
	}

	sarifResults := make([]SarifResult, 0, len(results))
	for _, r := range results {
		risk := r.RiskLevel.Normalize()
		sarifResults = append(sarifResults, SarifResult{
			RuleID: sarifRuleIDs[risk],
			Level:  level(risk),
			Message: SarifMessage{
				Text: fmt.Sprintf("%s: current version %s, latest version %s (%s)",
					r.Package, r.CurrentVersion, r.LatestVersion, r.Explanation),
			},
			Locations: []SarifLocation{
				{
					PhysicalLocation: SarifPhysicalLocation{
						ArtifactLocation: SarifArtifactLocation{URI: opts.ManifestPath},
					},
				},
			},
		})
	}

	sarifReport := SarifReport{
		Schema:  "https://schemastore.azurewebsites.net/schemas/json/sarif-2.1.0-rtm.5.json",
		Version: "2.1.0",
		Runs: []SarifRun{
			{
				Tool: SarifTool{
					Driver: SarifDriver{
						Name:           "Version Autopsy",
						Version:        toolVersion,
						InformationURI: "https://github.com/sambabib/version-autopsy",
						Rules:          sarifRules,
					},
				},
				Results: sarifResults,
				Invocations: []SarifInvocation{
					{
						ExecutionSuccessful: true,
						StartTimeUtc:        started.UTC().Format(time.RFC3339),
						EndTimeUtc:          time.Now().UTC().Format(time.RFC3339),
					},
				},
			},
		},
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(sarifReport)
}
