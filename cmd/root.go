package cmd

import (
	"github.com/misterclayt0n/cooperpro/internal/config"
	"github.com/misterclayt0n/cooperpro/internal/logging"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	logLevel string
	logFile  string
)

var rootCmd = &cobra.Command{
	Use:   "cooperpro",
	Short: "Cooper test and aerobic training calculator for personal trainers",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		params := logging.SetupParams{
			LogFileName:   cfg.Log.File,
			LogToStdout:   cfg.Log.ToStdout,
			LogLevel:      cfg.Log.Level,
			LogFormatJSON: cfg.Log.JSON,
		}
		// Flags win over the config file.
		if cmd.Flags().Changed("log-level") {
			params.LogLevel = logLevel
		}
		if cmd.Flags().Changed("log-file") {
			params.LogFileName = logFile
		}
		logging.Setup(params)

		log.WithField("command", cmd.Name()).Debug("running")
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to this file instead of stderr")
	rootCmd.SilenceUsage = true
}
