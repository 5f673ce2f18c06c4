package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dealscope/sweep/internal/analysis"
	"github.com/dealscope/sweep/internal/db"
	"github.com/spf13/cobra"
)

var (
	segmentIndexFields   []string
	segmentActionField   string
	segmentSheet         string
	segmentFilters       []string
	segmentRequireSorted bool
	segmentSave          bool
)

func init() {
	rootCmd.AddCommand(segmentCmd)

	segmentCmd.Flags().StringSliceVarP(&segmentIndexFields, "index", "i", nil, "parameter column to segment by (repeatable; default from config)")
	segmentCmd.Flags().StringVarP(&segmentActionField, "action", "a", "", "best action column (default from config)")
	segmentCmd.Flags().StringVar(&segmentSheet, "sheet", "", "xlsx worksheet (default first sheet)")
	segmentCmd.Flags().StringArrayVarP(&segmentFilters, "where", "w", nil, "keep rows where column=value (repeatable)")
	segmentCmd.Flags().BoolVar(&segmentRequireSorted, "require-sorted", false, "fail when the index column decreases")
	segmentCmd.Flags().BoolVar(&segmentSave, "save", false, "save results to history")
}

var segmentCmd = &cobra.Command{
	Use:   "segment <file>",
	Short: "Find best-action runs in a sensitivity table",
	Long: `Load a sensitivity table and report each run of identical best actions
along the swept parameter: where it starts, where the next one begins,
and how many rows it covers.`,
	Example: `  sweep segment risk_tolerance.xlsx
  sweep segment probability.xlsx --index mag1 --where coin=BTC
  sweep segment sweep.csv -i risk_tolerance -i mag1 --save --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		opts := segmentOptions(args[0])

		var repo analysis.Repository
		if opts.Save {
			database, err := db.Open(GetConfig().Database.Path)
			if err != nil {
				return err
			}
			defer database.Close()
			repo = db.NewAnalysisRepository(database)
		}

		// A save error still returns the analyses stored before it; print them.
		result, runErr := analysis.NewService(repo).Run(ctx, opts)
		if result == nil {
			return runErr
		}

		if len(result.Analyses) > 0 {
			if err := WriteAnalyses(cmd.OutOrStdout(), result.Analyses); err != nil {
				return err
			}
		}
		if opts.Save && !IsMachineOutput() {
			for _, a := range result.Analyses {
				fmt.Fprintf(os.Stderr, "Saved %s (%s)\n", a.ID, a.IndexField)
			}
		}
		if runErr != nil {
			return runErr
		}

		if err := result.Err(); err != nil {
			return fmt.Errorf("%d of %d index fields failed:\n%w", len(result.Failures), len(result.Failures)+len(result.Analyses), err)
		}
		return nil
	},
}

func segmentOptions(path string) analysis.Options {
	cfg := GetConfig()

	fields := segmentIndexFields
	if len(fields) == 0 {
		fields = []string{cfg.Defaults.IndexField}
	}
	action := segmentActionField
	if action == "" {
		action = cfg.Defaults.ActionField
	}
	sheet := segmentSheet
	if sheet == "" {
		sheet = cfg.Defaults.Sheet
	}

	return analysis.Options{
		Path:          path,
		Sheet:         sheet,
		IndexFields:   fields,
		ActionField:   action,
		Filters:       segmentFilters,
		RequireSorted: segmentRequireSorted || cfg.RequireSorted,
		Save:          segmentSave,
	}
}
