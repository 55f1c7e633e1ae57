package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"teachfolio/internal/config"
	"teachfolio/internal/content"
	"teachfolio/internal/logging"
)

var (
	// Global flags
	verbose    bool
	configPath string

	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "folio - student teaching portfolio viewer",
	Long: `folio presents a student teaching portfolio: activities with image
carousels and expandable descriptions, a per-semester timetable and the
lesson plans taught that semester.

Run without arguments to open the interactive viewer.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config %s: %w", configPath, err)
		}

		// The viewer owns the terminal and only logs to a file.
		if cmd == rootCmd || cmd == viewCmd {
			logger, err = logging.NewForViewer(cfg.Logging, verbose)
		} else {
			logger, err = logging.New(cfg.Logging, verbose)
		}
		if err != nil {
			return err
		}
		logging.For(logger, logging.CategoryBoot).Debug("config loaded",
			zap.String("path", configPath),
			zap.String("content", cfg.Content.Path),
		)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runView,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "folio.yaml", "Config file")

	viewCmd.Flags().String("semester", "", "Semester to show first (default: content default)")
	viewCmd.Flags().Bool("watch", false, "Reload when the content file changes")
	rootCmd.Flags().AddFlagSet(viewCmd.Flags())

	exportCmd.Flags().StringP("out", "o", "", "Output directory (default: export.out_dir)")

	scheduleCmd.Flags().String("semester", "", "Semester to print (default: content default)")

	previewCmd.Flags().String("addr", "", "Listen address (default: preview.addr)")
	previewCmd.Flags().String("base", "", "URL path the site is served under (default: assets.base_url)")

	initConfigCmd.Flags().Bool("force", false, "Overwrite an existing config file")

	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(scheduleCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(initConfigCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadContent reads the configured content file, or the embedded sample
// when no path is set.
func loadContent() (*content.Portfolio, error) {
	if cfg == nil || cfg.Content.Path == "" {
		return content.Default()
	}
	return content.Load(cfg.Content.Path)
}

// currentConfig returns the loaded config, falling back to defaults when
// a command runs without the root pre-run (tests).
func currentConfig() *config.Config {
	if cfg == nil {
		return config.DefaultConfig()
	}
	return cfg
}

func currentLogger() *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

// commandContext returns the command's context, or Background for commands
// invoked directly.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
