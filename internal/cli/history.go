package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/dealscope/sweep/internal/db"
	"github.com/dealscope/sweep/internal/models"
	"github.com/dealscope/sweep/internal/report"
	"github.com/spf13/cobra"
)

var (
	historyListSource string
	historyListLimit  int
)

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyRemoveCmd)

	historyListCmd.Flags().StringVar(&historyListSource, "source", "", "only analyses of this table file")
	historyListCmd.Flags().IntVar(&historyListLimit, "limit", 20, "maximum analyses to list")
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage saved analyses",
	Long:  "List, show, and remove analyses saved with `sweep segment --save`.",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved analyses",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		database, err := openDatabase()
		if err != nil {
			return err
		}
		defer database.Close()

		analyses, err := db.NewAnalysisRepository(database).List(ctx, db.ListQuery{
			Source: historyListSource,
			Limit:  historyListLimit,
		})
		if err != nil {
			return err
		}

		if IsMachineOutput() {
			return report.Write(cmd.OutOrStdout(), outputFormat(), analyses)
		}
		if len(analyses) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No saved analyses.")
			return nil
		}
		return report.WriteRows(cmd.OutOrStdout(), []string{"ID", "CREATED", "SOURCE", "INDEX", "ROWS", "RUNS"}, historyRows(analyses))
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a saved analysis",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		database, err := openDatabase()
		if err != nil {
			return err
		}
		defer database.Close()

		a, err := db.NewAnalysisRepository(database).Get(ctx, args[0])
		if err != nil {
			if errors.Is(err, db.ErrAnalysisNotFound) {
				return fmt.Errorf("analysis %q not found", args[0])
			}
			return err
		}
		return WriteAnalyses(cmd.OutOrStdout(), []*models.Analysis{a})
	},
}

var historyRemoveCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"remove"},
	Short:   "Remove a saved analysis",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		database, err := openDatabase()
		if err != nil {
			return err
		}
		defer database.Close()

		if err := db.NewAnalysisRepository(database).Delete(ctx, args[0]); err != nil {
			if errors.Is(err, db.ErrAnalysisNotFound) {
				return fmt.Errorf("analysis %q not found", args[0])
			}
			return err
		}
		fmt.Fprintf(os.Stderr, "Removed %s\n", args[0])
		return nil
	},
}

func openDatabase() (*db.DB, error) {
	return db.Open(GetConfig().Database.Path)
}

func historyRows(analyses []*models.Analysis) [][]string {
	rows := make([][]string, 0, len(analyses))
	for _, a := range analyses {
		source := a.Source
		if a.Sheet != "" {
			source += " [" + a.Sheet + "]"
		}
		rows = append(rows, []string{
			a.ID,
			a.CreatedAt.Local().Format("2006-01-02 15:04"),
			source,
			a.IndexField,
			strconv.Itoa(a.RecordCount),
			strconv.Itoa(len(a.Runs)),
		})
	}
	return rows
}
