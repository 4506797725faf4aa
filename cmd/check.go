package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/sambabib/version-autopsy/pkg/output"
	"github.com/sambabib/version-autopsy/pkg/report"
	"github.com/spf13/cobra"
)

var checkFormat string

var checkCmd = &cobra.Command{
	Use:   "check <package> <version>",
	Short: "Check a single package version",
	Example: `  autopsy check requests 2.25.0
  autopsy check flask 2.0 --format json`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		// missing args are left to the validator so the user gets its message
		var name, version string
		if len(args) > 0 {
			name = args[0]
		}
		if len(args) > 1 {
			version = args[1]
		}
		return runCheck(cmd.Context(), newClient(), name, version, checkFormat, cmd.OutOrStdout())
	},
}

func runCheck(ctx context.Context, c apiClient, name, version, format string, w io.Writer) error {
	res, err := c.CheckPackage(ctx, name, version)
	if err != nil {
		return err
	}

	detail := report.NewDetail(*res)
	switch format {
	case "", "text":
		return output.WriteDetail(w, detail)
	case "json":
		return output.WriteJSON(w, detail)
	default:
		return fmt.Errorf("unsupported output format %q (want text or json)", format)
	}
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringVar(&checkFormat, "format", "text", "Output format: text or json")
}
