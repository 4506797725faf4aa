package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sambabib/version-autopsy/pkg/analyzer"
	"github.com/sambabib/version-autopsy/pkg/api"
	"github.com/sambabib/version-autopsy/pkg/client"
	"github.com/sambabib/version-autopsy/pkg/output"
	"github.com/sambabib/version-autopsy/pkg/report"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// apiClient is the part of *client.Client the commands use.
type apiClient interface {
	Analyze(ctx context.Context, requirements string) (*client.AnalyzeResult, error)
	CheckPackage(ctx context.Context, name, version string) (*analyzer.AnalysisResult, error)
	SubmitFeedback(ctx context.Context, fb api.FeedbackRequest) (string, error)
}

var (
	requirementsPath string
	format           string // output format: text, json, sarif or markdown
	outputPath       string
	animate          bool
)

// renderOptions controls how a result set is written.
type renderOptions struct {
	Format       string
	ManifestPath string
	Animate      bool
	SarifLevel   func(analyzer.RiskLevel) string
}

// analyzeCmd represents the analyze subcommand
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a requirements.txt",
	Long:  "Send a requirements.txt to the analysis server and report the upgrade risk of every pinned package. Use --file - to read from stdin.",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		content, err := readManifest(cmd.InOrStdin(), requirementsPath)
		if err != nil {
			return err
		}

		w, closeFn, err := openOutput(cmd.OutOrStdout(), outputPath)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := closeFn(); cerr != nil && err == nil {
				err = cerr
			}
		}()

		opts := renderOptions{
			Format:       resolveFormat(),
			ManifestPath: requirementsPath,
			Animate:      animate && outputPath == "" && isTerminal(w),
			SarifLevel:   cfg.SarifLevel,
		}
		return runAnalyze(cmd.Context(), newClient(), content, opts, w)
	},
}

func runAnalyze(ctx context.Context, c apiClient, content string, opts renderOptions, w io.Writer) error {
	started := time.Now()
	res, err := c.Analyze(ctx, content)
	if err != nil {
		return err
	}

	view := report.Build(res.Results, res.TotalPackages)
	switch opts.Format {
	case "text":
		if opts.Animate {
			if err := output.AnimateSummary(ctx, w, view.Summary, report.DefaultCounterDuration); err != nil {
				return err
			}
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
			return output.WriteTable(w, view.Rows)
		}
		return output.WriteText(w, view)
	case "json":
		return output.WriteJSON(w, view)
	case "sarif":
		return output.WriteSarif(w, res.Results, output.SarifOptions{
			ToolVersion:  Version,
			ManifestPath: opts.ManifestPath,
			StartedAt:    started,
			Level:        opts.SarifLevel,
		})
	case "markdown", "md":
		return output.WriteMarkdown(w, view)
	default:
		return fmt.Errorf("unsupported output format %q (want text, json, sarif or markdown)", opts.Format)
	}
}

func readManifest(stdin io.Reader, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read requirements from stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

// openOutput returns the report destination and a close func whose error
// reports a failed flush of the output file.
func openOutput(stdout io.Writer, path string) (io.Writer, func() error, error) {
	if path == "" {
		path = cfg.Output.File
	}
	if path == "" {
		return stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, func() error {
		if err := f.Close(); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		return nil
	}, nil
}

func resolveFormat() string {
	if format != "" {
		return format
	}
	return cfg.Output.Format
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVarP(&requirementsPath, "file", "f", "requirements.txt", "Path to requirements.txt, or - for stdin")
	analyzeCmd.Flags().StringVar(&format, "format", "", "Output format: text, json, sarif or markdown (default from config)")
	analyzeCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the report to a file instead of stdout")
	analyzeCmd.Flags().BoolVar(&animate, "animate", false, "Count the summary up on a terminal")
}
