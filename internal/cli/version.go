package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// Build metadata, set with -ldflags.
var (
	Version = "dev"
	Commit  = "none"
)

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the sweep version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if IsJSONOutput() {
			return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]string{"version": Version, "commit": Commit})
		}
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "sweep %s (%s)\n", Version, Commit)
		return err
	},
}
