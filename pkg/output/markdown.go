package output

import (
	"io"
	"strings"
	"text/template"

	"github.com/sambabib/version-autopsy/pkg/report"
)

const markdownTemplate = `## Dependency Risk Report

**Analyzed {{ .Summary.Total }} packages:**
{{- range .Summary.Chips }} {{ .Icon }} {{ .Count }} {{ .Label }}{{ end }}

| Package | Current | Latest | Risk | Explanation |
|---------|---------|--------|------|-------------|
{{- range .Rows }}
| **{{ md .Package }}** | {{ md .CurrentVersion }} | {{ md .LatestVersion }} | ` + "`{{ .Badge.Label }}`" + ` | {{ md .Explanation }} |
{{- end }}
`

var markdownTmpl = template.Must(template.New("report").Funcs(template.FuncMap{
	// pipes would split the cell, newlines would end the row
	"md": func(s string) string {
		return strings.NewReplacer("|", `\|`, "\n", " ").Replace(s)
	},
}).Parse(markdownTemplate))

// WriteMarkdown renders the view as a Markdown table.
func WriteMarkdown(w io.Writer, view report.View) error {
	return markdownTmpl.Execute(w, view)
}
