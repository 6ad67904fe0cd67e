package cmd

import (
	"fmt"
	"os"

	"slotpatch/core/config"
	"slotpatch/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// configDir is the directory the .env file is read from.
var configDir string

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "slotpatch",
	Short: "Translate fixed-size strings inside a binary",
	Long: `slotpatch extracts the length-prefixed strings stored at known offsets of a binary,
keeps them in an editable translation table and writes a patched copy of the binary with
every translation padded into its original slot.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Debug level gives ISO8601 timestamps in console output
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configDir, "config-dir", ".", "Directory containing the .env file")
}

// setup loads the configuration and builds a logger tagged with a fresh run id.
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return cfg, logger.WithRunID(l, logger.NewRunID()), nil
}
