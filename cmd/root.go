package cmd

import (
	"fmt"
	"os"

	"github.com/sambabib/version-autopsy/pkg/client"
	"github.com/sambabib/version-autopsy/pkg/config"
	"github.com/sambabib/version-autopsy/pkg/logger"
	"github.com/spf13/cobra"
)

// Version is set during build using ldflags
var Version = "dev"

var (
	configFile string
	serverURL  string
	verbose    bool

	cfg *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     "autopsy",
	Short:   "Grades the upgrade risk of pinned Python dependencies",
	Long:    `Version Autopsy compares the versions pinned in a requirements.txt against the latest releases on PyPI and explains how risky each upgrade is.`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger.SetVerbose(verbose)

		loaded, err := config.LoadConfig(configFile)
		if err != nil {
			return err
		}
		cfg = loaded
		if serverURL != "" {
			cfg.Client.ServerURL = serverURL
		}
		logger.Debugf("Using server %s", cfg.Client.ServerURL)
		return nil
	},
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newClient() *client.Client {
	return client.New(cfg.Client.ServerURL, client.WithTimeout(cfg.Client.Timeout))
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to config file (default: "+config.FileName+" in the current or a parent directory)")
	rootCmd.PersistentFlags().StringVarP(&serverURL, "server", "s", "", "Analysis server URL (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.SetVersionTemplate("autopsy {{.Version}}\n")
}
