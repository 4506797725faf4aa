package output

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/sambabib/version-autopsy/pkg/report"
)

const explanationLimit = 80 // Max characters for the explanation column

// WriteText prints the summary line and the results table.
func WriteText(w io.Writer, view report.View) error {
	if _, err := fmt.Fprintf(w, "Analyzed %s\n\n", view.Summary); err != nil {
		return err
	}
	return WriteTable(w, view.Rows)
}

// WriteTable prints result rows as an aligned table.
func WriteTable(w io.Writer, rows []report.Row) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0) // minwidth, tabwidth, padding, padchar, flags

	fmt.Fprintln(tw, "PACKAGE\tCURRENT\tLATEST\tRISK\tEXPLANATION")
	fmt.Fprintln(tw, "-------\t-------\t------\t----\t-----------")

	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			cell(r.Package),
			cell(r.CurrentVersion),
			cell(r.LatestVersion),
			r.Badge.Label,
			truncate(cell(r.Explanation), explanationLimit),
		)
	}

	return tw.Flush()
}

// WriteDetail prints a single-package result.
func WriteDetail(w io.Writer, d report.Detail) error {
	_, err := fmt.Fprintf(w, "📦 %s\nCurrent Version: %s\nLatest Version:  %s\nRisk:            %s\n\n%s\n",
		d.Package, d.CurrentVersion, d.LatestVersion, d.Badge.Label, d.Explanation)
	return err
}

// cell keeps tabs and newlines from breaking alignment.
func cell(s string) string {
	return strings.NewReplacer("\t", " ", "\n", " ").Replace(s)
}

func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit-3]) + "..."
}
