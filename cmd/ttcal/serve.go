package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	appLog "github.com/datakortet/ttcal/internal/log"
	"github.com/datakortet/ttcal/internal/web"
)

func newServeCmd(a *app) *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON and iCalendar API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// --listen overrides the config file.
			if listen != "" {
				a.cfg.Listen = listen
			}
			appLog.Info("effective config",
				"listen", a.cfg.Listen,
				"log_level", a.cfg.LogLevel,
				"cache_dir", a.cfg.CacheDir,
				"marks", len(a.cfg.Marks),
				"ics_count", len(a.cfg.ICS),
			)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			if err := web.StartServer(ctx, a.cfg); err != nil {
				appLog.Error("HTTP server error", err)
				return err
			}
			appLog.Info("ttcal shutting down")
			return nil
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "HTTP listen address (overrides config)")
	return cmd
}
