// Package cmd provides the layerkit command line.
package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/adalundhe/layerkit/core/config"
	"github.com/adalundhe/layerkit/core/storage"
)

var (
	configPath string
	logLevel   string

	cfg    = config.DefaultConfig()
	logger = slog.Default()
)

var rootCmd = &cobra.Command{
	Use:   "layerkit",
	Short: "layerkit - world transforms and capture graphs from level exports",
	Long: `layerkit reads FModel JSON exports of a level and derives the world-space
transforms of its components and the traversal order of its capture-point graph.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Explicit config file layered over the defaults")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
}

// setup loads configuration and installs the logger before every command.
func setup(cmd *cobra.Command, _ []string) error {
	m := config.NewManager(storage.ResolveDirs(), ".")
	if err := m.Load(); err != nil {
		return err
	}
	if configPath != "" {
		if err := m.LoadFile(configPath); err != nil {
			return err
		}
	}

	loaded := *m.Get()
	if logLevel != "" {
		loaded.Log.Level = logLevel
		if err := loaded.Validate(); err != nil {
			return err
		}
	}

	cfg = &loaded
	logger = cfg.Logger(os.Stderr)
	slog.SetDefault(logger)
	return nil
}

func Execute() error {
	return rootCmd.Execute()
}
