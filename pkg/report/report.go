// Package report turns analysis results into display-ready view models.
//
// Everything here is a pure function of its input: the same results always
// yield the same tally, summary and rows, in input order.
package report

import (
	"fmt"

	"github.com/sambabib/version-autopsy/pkg/analyzer"
)

// Tally counts results per risk level. It always carries all five levels.
type Tally map[analyzer.RiskLevel]int

// NewTally counts results by normalized risk level, so unrecognized levels
// land under UNKNOWN.
func NewTally(results []analyzer.AnalysisResult) Tally {
	t := make(Tally, len(analyzer.Levels))
	for _, l := range analyzer.Levels {
		t[l] = 0
	}
	for _, r := range results {
		t[r.RiskLevel.Normalize()]++
	}
	return t
}

// Total is the number of results counted.
func (t Tally) Total() int {
	n := 0
	for _, c := range t {
		n += c
	}
	return n
}

// Summary is the one-line projection of a result set.
type Summary struct {
	Total    int `json:"total"`
	High     int `json:"high"`
	Medium   int `json:"medium"`
	Low      int `json:"low"`
	UpToDate int `json:"up_to_date"`
	Unknown  int `json:"unknown"`
}

// NewSummary combines the backend's total count with a tally.
func NewSummary(total int, t Tally) Summary {
	return Summary{
		Total:    total,
		High:     t[analyzer.RiskHigh],
		Medium:   t[analyzer.RiskMedium],
		Low:      t[analyzer.RiskLow],
		UpToDate: t[analyzer.RiskUpToDate],
		Unknown:  t[analyzer.RiskUnknown],
	}
}

func (s Summary) String() string {
	return fmt.Sprintf("%d Total, %d High, %d Medium, %d Low, %d Up-to-Date, %d Unknown",
		s.Total, s.High, s.Medium, s.Low, s.UpToDate, s.Unknown)
}

// Count returns the count for a level.
func (s Summary) Count(level analyzer.RiskLevel) int {
	switch level.Normalize() {
	case analyzer.RiskHigh:
		return s.High
	case analyzer.RiskMedium:
		return s.Medium
	case analyzer.RiskLow:
		return s.Low
	case analyzer.RiskUpToDate:
		return s.UpToDate
	default:
		return s.Unknown
	}
}

// Chip is one pill of the chip-style summary.
type Chip struct {
	Label string `json:"label"`
	Icon  string `json:"icon"`
	Count int    `json:"count"`
	Class string `json:"class"`
}

var chipLabels = map[analyzer.RiskLevel]struct{ label, icon string }{
	analyzer.RiskHigh:     {"High Risk", "⚠️"},
	analyzer.RiskMedium:   {"Medium Risk", "⚡"},
	analyzer.RiskLow:      {"Low Risk", "✅"},
	analyzer.RiskUpToDate: {"Up-to-Date", "✨"},
	analyzer.RiskUnknown:  {"Unknown", "❔"},
}

// Chips returns one chip per level in display order.
func (s Summary) Chips() []Chip {
	chips := make([]Chip, 0, len(analyzer.Levels))
	for _, l := range analyzer.Levels {
		chips = append(chips, Chip{
			Label: chipLabels[l].label,
			Icon:  chipLabels[l].icon,
			Count: s.Count(l),
			Class: BadgeFor(l).Class,
		})
	}
	return chips
}

// Badge is a styled risk level.
type Badge struct {
	Label string `json:"label"`
	Class string `json:"class"`
}

var badgeClasses = map[analyzer.RiskLevel]string{
	analyzer.RiskHigh:     "risk-high",
	analyzer.RiskMedium:   "risk-medium",
	analyzer.RiskLow:      "risk-low",
	analyzer.RiskUpToDate: "risk-uptodate",
	analyzer.RiskUnknown:  "risk-unknown",
}

// BadgeFor styles a level. The label keeps what the backend sent; the class
// follows the normalized level.
func BadgeFor(level analyzer.RiskLevel) Badge {
	label := string(level)
	if label == "" {
		label = string(analyzer.RiskUnknown)
	}
	return Badge{Label: label, Class: badgeClasses[level.Normalize()]}
}

// Row is one line of the results table.
type Row struct {
	Package        string `json:"package"`
	CurrentVersion string `json:"current_version"`
	LatestVersion  string `json:"latest_version"`
	Badge          Badge  `json:"badge"`
	Explanation    string `json:"explanation"`
}

// NewRows projects results into table rows without reordering them.
func NewRows(results []analyzer.AnalysisResult) []Row {
	rows := make([]Row, 0, len(results))
	for _, r := range results {
		rows = append(rows, Row{
			Package:        r.Package,
			CurrentVersion: r.CurrentVersion,
			LatestVersion:  r.LatestVersion,
			Badge:          BadgeFor(r.RiskLevel),
			Explanation:    r.Explanation,
		})
	}
	return rows
}

// Detail is the single-package view.
type Detail struct {
	Package        string `json:"package"`
	CurrentVersion string `json:"current_version"`
	LatestVersion  string `json:"latest_version"`
	Badge          Badge  `json:"badge"`
	Explanation    string `json:"explanation"`
}

// NewDetail projects one result into the detail view.
func NewDetail(r analyzer.AnalysisResult) Detail {
	return Detail{
		Package:        r.Package,
		CurrentVersion: r.CurrentVersion,
		LatestVersion:  r.LatestVersion,
		Badge:          BadgeFor(r.RiskLevel),
		Explanation:    r.Explanation,
	}
}

// View is everything needed to display a manifest analysis.
type View struct {
	Summary Summary `json:"summary"`
	Tally   Tally   `json:"tally"`
	Rows    []Row   `json:"rows"`
}

// Build derives a fresh view from a response.
func Build(results []analyzer.AnalysisResult, total int) View {
	t := NewTally(results)
	return View{
		Summary: NewSummary(total, t),
		Tally:   t,
		Rows:    NewRows(results),
	}
}
