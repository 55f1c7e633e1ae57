package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all folio configuration.
type Config struct {
	// Content source
	Content ContentConfig `yaml:"content"`

	// Asset base path all relative URLs are anchored to
	Assets AssetsConfig `yaml:"assets"`

	// Terminal viewer
	UI UIConfig `yaml:"ui"`

	// Static HTML export
	Export ExportConfig `yaml:"export"`

	// Local preview server for exported pages
	Preview PreviewConfig `yaml:"preview"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// ContentConfig selects the portfolio data file.
type ContentConfig struct {
	Path     string `yaml:"path"`     // empty = embedded sample content
	Watch    bool   `yaml:"watch"`    // reload the viewer when the file changes
	Debounce string `yaml:"debounce"` // coalesce rapid saves
}

// AssetsConfig configures URL resolution.
type AssetsConfig struct {
	BaseURL string `yaml:"base_url"`
}

// ExportConfig configures the static HTML export.
type ExportConfig struct {
	OutDir    string `yaml:"out_dir"`
	SiteTitle string `yaml:"site_title"` // overrides profile.site_title in <title>
}

// PreviewConfig configures the preview server.
type PreviewConfig struct {
	Addr            string `yaml:"addr"`
	ShutdownTimeout string `yaml:"shutdown_timeout"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Content: ContentConfig{
			Debounce: "250ms",
		},
		Assets: AssetsConfig{
			BaseURL: "/",
		},
		UI: *DefaultUIConfig(),
		Export: ExportConfig{
			OutDir: "dist",
		},
		Preview: PreviewConfig{
			Addr:            "127.0.0.1:8080",
			ShutdownTimeout: "10s",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Override with environment variables
	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if path := os.Getenv("FOLIO_CONTENT"); path != "" {
		c.Content.Path = path
	}
	if base := os.Getenv("FOLIO_BASE_URL"); base != "" {
		c.Assets.BaseURL = base
	}
	if dir := os.Getenv("FOLIO_OUT_DIR"); dir != "" {
		c.Export.OutDir = dir
	}
	if addr := os.Getenv("FOLIO_PREVIEW_ADDR"); addr != "" {
		c.Preview.Addr = addr
	}
	if level := os.Getenv("FOLIO_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if os.Getenv("FOLIO_DARK_MODE") == "1" {
		c.UI.Theme = ThemeDark
	}
}

// GetWatchDebounce returns the content watch debounce as a duration.
func (c *Config) GetWatchDebounce() time.Duration {
	d, err := time.ParseDuration(c.Content.Debounce)
	if err != nil || d <= 0 {
		return 250 * time.Millisecond
	}
	return d
}

// GetShutdownTimeout returns the preview server shutdown timeout.
func (c *Config) GetShutdownTimeout() time.Duration {
	d, err := time.ParseDuration(c.Preview.ShutdownTimeout)
	if err != nil || d <= 0 {
		return 10 * time.Second
	}
	return d
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.Logging.Validate(); err != nil {
		return err
	}
	if err := c.UI.Validate(); err != nil {
		return err
	}
	if c.Export.OutDir == "" {
		return fmt.Errorf("export.out_dir must not be empty")
	}
	return nil
}
