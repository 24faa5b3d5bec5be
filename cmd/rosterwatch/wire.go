package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/viper"

	"github.com/cmahoney/rosterwatch/internal/mlb"
	"github.com/cmahoney/rosterwatch/internal/notify"
	"github.com/cmahoney/rosterwatch/internal/pipeline"
	"github.com/cmahoney/rosterwatch/internal/sent"
)

// buildPipeline wires the configured store and the Stats API client into
// a pipeline. The returned cleanup func releases the store, if needed.
func buildPipeline(logger *slog.Logger) (*pipeline.Pipeline, func(), error) {
	location, err := time.LoadLocation(viper.GetString("poll.timezone"))
	if err != nil {
		return nil, nil, fmt.Errorf("invalid timezone %q: %w", viper.GetString("poll.timezone"), err)
	}

	store, cleanup, err := buildStore(logger)
	if err != nil {
		return nil, nil, err
	}

	pipe := pipeline.New(mlb.NewClient(), store, pipeline.Config{
		SportID:      viper.GetInt64("team.sport_id"),
		TeamID:       viper.GetInt64("team.id"),
		LookbackDays: viper.GetInt("poll.lookback_days"),
		Location:     location,
		Logger:       logger,
	})

	return pipe, cleanup, nil
}

func buildStore(logger *slog.Logger) (sent.Store, func(), error) {
	capacity := viper.GetInt("store.capacity")

	switch backend := viper.GetString("store.backend"); backend {
	case "file":
		store := sent.NewFileStore(viper.GetString("store.path"), capacity, logger)
		return store, func() {}, nil
	case "postgres":
		store, err := sent.NewPostgresStore(
			viper.GetString("store.postgres.user"),
			viper.GetString("store.postgres.password"),
			viper.GetString("store.postgres.host"),
			viper.GetString("store.postgres.port"),
			viper.GetString("store.postgres.dbname"),
			capacity,
		)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open postgres store: %w", err)
		}
		return store, func() {
			if err := store.Close(); err != nil {
				logger.Warn("Failed to close postgres store", "error", err)
			}
		}, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", backend)
	}
}

// buildNotifier returns the delivery sink: Discord by default, the
// logger when dryRun is set.
func buildNotifier(dryRun bool, logger *slog.Logger) (notify.Notifier, error) {
	if dryRun {
		return &notify.LogNotifier{Logger: logger}, nil
	}

	webhookURL := viper.GetString("discord.webhook_url")
	if webhookURL == "" {
		return nil, fmt.Errorf("discord.webhook_url is not set (ROSTERWATCH_DISCORD_WEBHOOK_URL)")
	}
	return notify.NewDiscordNotifier(webhookURL), nil
}
