// Package logging builds the zap loggers used across folio.
// Each subsystem logs through a named child logger for its category.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"teachfolio/internal/config"
)

// Category represents a log category/system
type Category string

const (
	CategoryBoot    Category = "boot"    // Startup, config
	CategoryContent Category = "content" // Content loading and validation
	CategoryExport  Category = "export"  // Static HTML export
	CategoryWatch   Category = "watch"   // Content file watcher
	CategoryPreview Category = "preview" // Preview HTTP server
	CategoryUI      Category = "ui"      // Terminal viewer
)

// New builds a logger from config. verbose forces debug level.
// Output goes to the configured file, or stderr when none is set.
func New(cfg config.LoggingConfig, verbose bool) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	if verbose {
		level = zapcore.DebugLevel
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zc.Sampling = nil
	if cfg.Format == "console" {
		zc.Encoding = "console"
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	out := "stderr"
	if cfg.File != "" {
		out = cfg.File
	}
	zc.OutputPaths = []string{out}
	zc.ErrorOutputPaths = []string{out}

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// NewForViewer builds the logger for the full-screen viewer. The viewer
// owns the terminal, so without a log file nothing is logged.
func NewForViewer(cfg config.LoggingConfig, verbose bool) (*zap.Logger, error) {
	if cfg.File == "" {
		return zap.NewNop(), nil
	}
	return New(cfg, verbose)
}

// For returns the child logger for a category. A nil base yields a no-op logger.
func For(base *zap.Logger, c Category) *zap.Logger {
	if base == nil {
		return zap.NewNop()
	}
	return base.Named(string(c))
}
