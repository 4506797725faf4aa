package cmd

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/sambabib/version-autopsy/pkg/analyzer"
	"github.com/sambabib/version-autopsy/pkg/config"
	"github.com/sambabib/version-autopsy/pkg/server"
	"github.com/spf13/cobra"
)

var listenAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the analysis server",
	RunE: func(cmd *cobra.Command, args []string) error {
		if listenAddr != "" {
			cfg.Server.Addr = listenAddr
		}
		if !verbose {
			gin.SetMode(gin.ReleaseMode)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return newServer(cfg).Run(ctx)
	},
}

func newServer(cfg *config.Config) *server.Server {
	registry := analyzer.NewPipRegistry()
	registry.RegistryURL = cfg.Registry.PyPI
	registry.HTTPClient = &http.Client{Timeout: cfg.Registry.Timeout}

	a := analyzer.NewAnalyzer(registry)
	a.Concurrency = cfg.Registry.Concurrency
	a.Ignore = cfg.IsPackageIgnored

	return server.New(server.NewHandler(a, server.LogSink{}), server.Options{
		Addr:            cfg.Server.Addr,
		RateLimit:       cfg.Server.RateLimit,
		RateBurst:       cfg.Server.RateBurst,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&listenAddr, "addr", "", "Listen address (default from config, :5000)")
}
