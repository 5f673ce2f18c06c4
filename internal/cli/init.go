package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dealscope/sweep/internal/config"
	"github.com/spf13/cobra"
)

var initForce bool

// configDirFunc is swapped in tests.
var configDirFunc = config.ConfigDir

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing config file")
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	Long:  "Write a commented config file to $XDG_CONFIG_HOME/sweep/config.yaml.",
	Args:  cobra.NoArgs,
	// Skip config loading so a broken config can be replaced.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		result := createConfigFile()
		switch result.status {
		case "failed":
			return fmt.Errorf("%s", result.message)
		default:
			fmt.Fprintln(cmd.OutOrStdout(), result.message)
			return nil
		}
	},
}

type initResult struct {
	status  string
	message string
}

func createConfigFile() initResult {
	dir := configDirFunc()
	path := filepath.Join(dir, "config.yaml")

	if _, err := os.Stat(path); err == nil && !initForce {
		return initResult{status: "skipped", message: fmt.Sprintf("Config already exists at %s (use --force to overwrite)", path)}
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return initResult{status: "failed", message: fmt.Sprintf("create config dir: %v", err)}
	}
	if err := os.WriteFile(path, []byte(config.Template), 0o644); err != nil {
		return initResult{status: "failed", message: fmt.Sprintf("write config: %v", err)}
	}
	return initResult{status: "done", message: fmt.Sprintf("Wrote %s", path)}
}
