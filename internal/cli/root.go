// Package cli implements the sweep command-line interface.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/dealscope/sweep/internal/config"
	"github.com/dealscope/sweep/internal/logging"
	"github.com/spf13/cobra"
)

var (
	configFile  string
	jsonOutput  bool
	jsonlOutput bool
	yamlOutput  bool
	logLevel    string
	logFormat   string
	noColor     bool

	appConfig *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Best-action runs over sensitivity sweeps",
	Long: `sweep reads sensitivity-analysis tables (xlsx, csv, tsv, jsonl, json, yaml)
and reports where the best action changes as a parameter is swept.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "config file (default ./.sweep.yaml or $XDG_CONFIG_HOME/sweep/config.yaml)")
	flags.BoolVar(&jsonOutput, "json", false, "output JSON")
	flags.BoolVar(&jsonlOutput, "jsonl", false, "output JSON lines")
	flags.BoolVar(&yamlOutput, "yaml", false, "output YAML")
	flags.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.StringVar(&logFormat, "log-format", "", "log format (auto, console, json)")
	flags.BoolVar(&noColor, "no-color", false, "disable coloured output")
	rootCmd.MarkFlagsMutuallyExclusive("json", "jsonl", "yaml")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// Main runs the CLI and returns the process exit code.
func Main() int {
	if err := Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// GetConfig returns the loaded configuration.
func GetConfig() *config.Config {
	if appConfig == nil {
		return config.Default()
	}
	return appConfig
}

func initConfig() error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	if strings.TrimSpace(logLevel) != "" {
		cfg.Logging.Level = logLevel
	}
	if strings.TrimSpace(logFormat) != "" {
		cfg.Logging.Format = logFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format}); err != nil {
		return err
	}

	appConfig = cfg
	if cfg.Source != "" {
		logger := logging.Component("cli")
		logger.Debug().Str("config", cfg.Source).Msg("config loaded")
	}
	return nil
}
