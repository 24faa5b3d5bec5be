package main

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/cmahoney/rosterwatch/internal/notify"
)

func runCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Poll once and deliver anything new",
		Long: `Performs a single polling pass over the lookback window and posts any
transactions not already recorded as sent. Intended to be invoked from a
scheduler (cron, systemd timer).`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := slog.Default().With("run_id", uuid.NewString())

			pipe, cleanup, err := buildPipeline(logger)
			if err != nil {
				return err
			}
			defer cleanup()

			notifier, err := buildNotifier(dryRun, logger)
			if err != nil {
				return err
			}

			result, err := pipe.Run(cmd.Context())
			if err != nil {
				return err
			}

			if len(result.Notifications) == 0 {
				logger.Info("Nothing to deliver",
					"fetched", result.Fetched,
					"skipped", result.Skipped)
				return nil
			}

			failed := notify.Fanout(cmd.Context(), notifier, result.Notifications, logger)

			logger.Info("Run complete",
				"fetched", result.Fetched,
				"skipped", result.Skipped,
				"notified", len(result.Notifications),
				"delivery_failures", failed)

			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "log notifications instead of posting to Discord")

	return cmd
}
