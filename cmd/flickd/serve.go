package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	flickd "github.com/nayakiniki/Flickd"
	"github.com/nayakiniki/Flickd/internal/config"
	"github.com/nayakiniki/Flickd/internal/logger"
	"github.com/nayakiniki/Flickd/internal/server"
)

func newServeCmd() *cobra.Command {
	var (
		configPath string
		port       int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the tagging HTTP service",
		Long: `Start the HTTP service exposing /api/analyze, /api/health and /api/stats.

Examples:
  # Serve on the default port 8000
  flickd serve

  # Use a configuration file and a different port
  flickd serve --config ./flickd.json --port 9000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
				if err := cfg.Validate(); err != nil {
					return err
				}
			}
			return runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to a JSON configuration file")
	cmd.Flags().IntVarP(&port, "port", "p", 8000, "Port to listen on (overrides config and PORT)")

	return cmd
}

func runServe(ctx context.Context, cfg *config.Config) error {
	log, closer, err := logger.New(cfg.Logging)
	if err != nil {
		return err
	}
	defer closer.Close()

	taggerOpts := cfg.TaggerOptions()
	taggerOpts.Logger = log
	engine := flickd.NewWithConfig(cfg.AnalyzerOptions(), taggerOpts)

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cyan := color.New(color.FgCyan, color.Bold)
	cyan.Printf("Flickd Smart Tagging Engine %s listening on %s\n", flickd.Version, cfg.Addr())

	return server.New(cfg, engine, log).Run(ctx)
}
