package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"drivesync/config"
	"drivesync/internal/logger"
)

var (
	cfgFile string
	debug   bool

	cfg *config.Config
	log *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "drivesync",
	Short: "Sync files from Google Drive to S3-compatible storage in batches",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		var err error
		cfg, err = config.LoadFromFile(cfgFile)
		if err != nil {
			return err
		}

		log, err = logger.New(cfg.Logging, debug)
		return err
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultFile, "Configuration file path")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug mode")
}
