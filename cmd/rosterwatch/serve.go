package main

import (
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cmahoney/rosterwatch/internal/server"
)

func serveCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Poll on an interval and serve status over HTTP",
		Long: `Runs the polling pass on a fixed interval and exposes a small HTTP
surface: /healthz, /api/status, and /api/preview?date=YYYY-MM-DD.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := slog.Default()

			pipe, cleanup, err := buildPipeline(logger)
			if err != nil {
				return err
			}
			defer cleanup()

			notifier, err := buildNotifier(dryRun, logger)
			if err != nil {
				return err
			}

			interval, err := time.ParseDuration(viper.GetString("poll.interval"))
			if err != nil {
				return err
			}

			location, err := time.LoadLocation(viper.GetString("poll.timezone"))
			if err != nil {
				return err
			}

			srv := server.New(pipe, notifier, server.Config{
				Addr:     viper.GetString("server.addr"),
				Interval: interval,
				Location: location,
				Logger:   logger,
			})

			logger.Info("Starting rosterwatch",
				"addr", viper.GetString("server.addr"),
				"interval", interval.String())

			return srv.Run(cmd.Context())
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "log notifications instead of posting to Discord")

	return cmd
}
