// Package config loads sweep configuration from file, environment and
// defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dealscope/sweep/internal/logging"
	"github.com/dealscope/sweep/internal/report"
	"github.com/dealscope/sweep/internal/report/styles"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides (SWEEP_LOGGING_LEVEL...).
const EnvPrefix = "SWEEP"

// Config is the full sweep configuration.
type Config struct {
	Defaults      DefaultsConfig `mapstructure:"defaults"`
	RequireSorted bool           `mapstructure:"require_sorted"`
	Database      DatabaseConfig `mapstructure:"database"`
	Logging       LoggingConfig  `mapstructure:"logging"`
	Output        OutputConfig   `mapstructure:"output"`

	// Source is the config file that was read, if any.
	Source string `mapstructure:"-"`
}

// DefaultsConfig names the columns used when flags are omitted.
type DefaultsConfig struct {
	IndexField  string `mapstructure:"index_field"`
	ActionField string `mapstructure:"action_field"`
	Sheet       string `mapstructure:"sheet"`
}

// DatabaseConfig locates the analysis history database.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// OutputConfig controls report rendering.
type OutputConfig struct {
	Format    string `mapstructure:"format"`
	Theme     string `mapstructure:"theme"`
	BandWidth int    `mapstructure:"band_width"`
}

// ConfigDir returns the user-level sweep config directory.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "sweep")
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return filepath.Join(home, ".config", "sweep")
	}
	return ".sweep"
}

// DataDir returns the user-level sweep data directory.
func DataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "sweep")
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return filepath.Join(home, ".local", "share", "sweep")
	}
	return ".sweep"
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Defaults: DefaultsConfig{
			IndexField:  "risk_tolerance",
			ActionField: "best_action",
		},
		Database: DatabaseConfig{Path: filepath.Join(DataDir(), "sweep.db")},
		Logging:  LoggingConfig{Level: "info", Format: logging.FormatAuto},
		Output:   OutputConfig{Format: string(report.FormatTable), Theme: "default", BandWidth: 48},
	}
}

// Load reads configuration. An explicit path must exist; otherwise
// ./.sweep.yaml and then ConfigDir()/config.yaml are tried, and a missing
// file falls back to defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigType("yaml")
		if _, err := os.Stat(".sweep.yaml"); err == nil {
			v.SetConfigFile(".sweep.yaml")
		} else {
			v.SetConfigName("config")
			v.AddConfigPath(ConfigDir())
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Source = v.ConfigFileUsed()
	cfg.Database.Path = expandHome(cfg.Database.Path)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Defaults.IndexField) == "" {
		return fmt.Errorf("config: defaults.index_field is required")
	}
	if strings.TrimSpace(c.Defaults.ActionField) == "" {
		return fmt.Errorf("config: defaults.action_field is required")
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("config: logging.level: %w", err)
	}
	if !logging.ValidFormat(c.Logging.Format) {
		return fmt.Errorf("config: logging.format: unknown format %q", c.Logging.Format)
	}
	if _, err := report.ParseFormat(c.Output.Format); err != nil {
		return fmt.Errorf("config: output.format: %w", err)
	}
	if _, ok := styles.Themes[c.Output.Theme]; !ok {
		return fmt.Errorf("config: output.theme: unknown theme %q (have %s)", c.Output.Theme, strings.Join(styles.Names(), ", "))
	}
	if c.Output.BandWidth <= 0 {
		return fmt.Errorf("config: output.band_width must be greater than 0")
	}
	return nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("defaults.index_field", d.Defaults.IndexField)
	v.SetDefault("defaults.action_field", d.Defaults.ActionField)
	v.SetDefault("defaults.sheet", d.Defaults.Sheet)
	v.SetDefault("require_sorted", d.RequireSorted)
	v.SetDefault("database.path", d.Database.Path)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("output.format", d.Output.Format)
	v.SetDefault("output.theme", d.Output.Theme)
	v.SetDefault("output.band_width", d.Output.BandWidth)
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
