// Package main is the entry point for the rosterwatch CLI
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cmahoney/rosterwatch/internal/common/logger"
)

var (
	cfgFile string
	version = "dev"
	rootCmd = &cobra.Command{
		Use:   "rosterwatch",
		Short: "Watch a team's roster transactions and post them to Discord",
		Long: `rosterwatch polls the MLB Stats API for one team's roster transactions
over a rolling window of recent days, classifies each into a movement
(who went where, and whether that's good news), and posts anything it
hasn't already reported to a Discord webhook.`,
		PersistentPreRunE: initConfig,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/rosterwatch/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "json", "log format (json, text)")

	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("logging.format", rootCmd.PersistentFlags().Lookup("log-format"))

	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(versionCmd())
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		slog.Info("Received interrupt signal, shutting down")
		cancel()
	}()

	err := rootCmd.ExecuteContext(ctx)
	cancel()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initConfig(_ *cobra.Command, _ []string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}

		viper.AddConfigPath(fmt.Sprintf("%s/.config/rosterwatch", home))
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("ROSTERWATCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config: %w", err)
		}
		// No config file is fine, env and defaults cover everything.
	}

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(viper.GetString("logging.level"))),
		logger.WithFormat(viper.GetString("logging.format")),
	)
	slog.SetDefault(log)

	return nil
}

func setDefaults() {
	viper.SetDefault("team.id", 141) // Blue Jays
	viper.SetDefault("team.sport_id", 1)
	viper.SetDefault("poll.lookback_days", 3)
	viper.SetDefault("poll.timezone", "America/Toronto")
	viper.SetDefault("poll.interval", "15m")
	viper.SetDefault("store.backend", "file")
	viper.SetDefault("store.path", "sent_transactions.json")
	viper.SetDefault("store.capacity", 25)
	viper.SetDefault("store.postgres.port", "5432")
	viper.SetDefault("server.addr", ":8080")
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("rosterwatch %s\n", version)
		},
	}
}
