package main

import (
	"aquabot_telemetry/internal/config"
	"aquabot_telemetry/internal/logger"

	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	logLevel  string
	logFormat string

	cfg *config.Config
	log *logger.Logger
)

var rootCmd = &cobra.Command{
	Use:   "aquabot",
	Short: "Water-quality telemetry service for the AquaBot patrol boat",
	Long: `aquabot ingests sensor readings posted by the boat, stores them append-only
in SQLite and serves the most recent ones to the dashboard.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("log-level") {
			loaded.Log.Level = logLevel
		}
		if cmd.Flags().Changed("log-format") {
			loaded.Log.Format = logFormat
		}
		cfg = loaded
		log = logger.Get(cfg.Log.Level, cfg.Log.Format)
		return nil
	},
}

func init() {
	rootCmd.SilenceUsage = true
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is configs/config.yml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", logger.InfoLevel, "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", logger.ConsoleFormat, "log format (console, json)")
}
