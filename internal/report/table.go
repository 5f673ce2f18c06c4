package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dealscope/sweep/internal/decision"
	"github.com/dealscope/sweep/internal/models"
)

const tablePadding = 2

// WriteTable prints one heading and run table per analysis.
func WriteTable(w io.Writer, analyses []*models.Analysis) error {
	for i, a := range analyses {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, Heading(a))
		if err := WriteRuns(w, a); err != nil {
			return err
		}
	}
	return nil
}

// WriteRuns prints the START/END/ACTION/ROWS table for one analysis.
func WriteRuns(w io.Writer, a *models.Analysis) error {
	rows := make([][]string, 0, len(a.Runs))
	for _, run := range a.Runs {
		rows = append(rows, []string{
			FormatIndex(run.Start),
			FormatIndex(run.End),
			decision.Label(run.Action),
			strconv.Itoa(run.Count),
		})
	}
	return WriteRows(w, []string{"START", "END", "ACTION", "ROWS"}, rows)
}

// Heading summarises where an analysis came from.
func Heading(a *models.Analysis) string {
	var b strings.Builder
	b.WriteString(a.Source)
	if a.Sheet != "" {
		fmt.Fprintf(&b, " [%s]", a.Sheet)
	}
	fmt.Fprintf(&b, ": %s by %s, %d rows, %d runs", a.ActionField, a.IndexField, a.RecordCount, len(a.Runs))
	if len(a.Filters) > 0 {
		fmt.Fprintf(&b, " (where %s)", strings.Join(a.Filters, ", "))
	}
	return b.String()
}

// WriteRows prints aligned columns.
func WriteRows(out io.Writer, headers []string, rows [][]string) error {
	writer := tabwriter.NewWriter(out, 0, 0, tablePadding, ' ', tabwriter.StripEscape)
	if len(headers) > 0 {
		fmt.Fprintln(writer, strings.Join(headers, "\t"))
	}
	for _, row := range rows {
		fmt.Fprintln(writer, strings.Join(row, "\t"))
	}
	return writer.Flush()
}
