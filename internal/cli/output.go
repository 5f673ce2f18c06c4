package cli

import (
	"io"
	"os"

	"github.com/dealscope/sweep/internal/models"
	"github.com/dealscope/sweep/internal/report"
	"github.com/dealscope/sweep/internal/report/styles"
	"golang.org/x/term"
)

// IsJSONOutput reports whether --json was given.
func IsJSONOutput() bool { return jsonOutput }

// IsMachineOutput reports whether a structured format was selected by flag
// or by output.format.
func IsMachineOutput() bool {
	return outputFormat() != report.FormatTable
}

// outputFormat applies --json, --jsonl and --yaml over output.format.
func outputFormat() report.Format {
	switch {
	case jsonOutput:
		return report.FormatJSON
	case jsonlOutput:
		return report.FormatJSONL
	case yamlOutput:
		return report.FormatYAML
	}
	format, err := report.ParseFormat(GetConfig().Output.Format)
	if err != nil {
		return report.FormatTable
	}
	return format
}

// WriteAnalyses prints analyses in the selected format. Human output on a
// colour terminal also gets a band per analysis.
func WriteAnalyses(out io.Writer, analyses []*models.Analysis) error {
	format := outputFormat()
	if format != report.FormatTable || !colorEnabled(out) {
		return report.Write(out, format, analyses)
	}

	cfg := GetConfig()
	styleSet := styles.BuildStyles(styles.Lookup(cfg.Output.Theme))
	width := bandWidth(out, cfg.Output.BandWidth)
	for i, a := range analyses {
		if i > 0 {
			if _, err := io.WriteString(out, "\n"); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(out, styleSet.Title.Render(report.Heading(a))+"\n"); err != nil {
			return err
		}
		if err := report.WriteRuns(out, a); err != nil {
			return err
		}
		if _, err := io.WriteString(out, report.Band(a.Runs, width, styleSet)+"\n"); err != nil {
			return err
		}
	}
	return nil
}

func colorEnabled(out io.Writer) bool {
	if noColor {
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := out.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func bandWidth(out io.Writer, configured int) int {
	width := configured
	if f, ok := out.(*os.File); ok {
		if cols, _, err := term.GetSize(int(f.Fd())); err == nil && cols > 0 && cols < width {
			width = cols
		}
	}
	return width
}
