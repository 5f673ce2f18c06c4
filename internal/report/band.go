package report

import (
	"sort"
	"strings"

	"github.com/dealscope/sweep/internal/decision"
	"github.com/dealscope/sweep/internal/models"
	"github.com/dealscope/sweep/internal/report/styles"
)

// Band renders runs as a strip of coloured blocks, each as wide as its share
// of the records, followed by a legend line. Every run gets at least one
// cell, so the strip is wider than width when there are more runs than cells.
func Band(runs []models.Run, width int, styleSet styles.Styles) string {
	if len(runs) == 0 {
		return ""
	}

	colors := actionColors(runs)
	cells := allocate(runs, width)

	var strip strings.Builder
	for i, run := range runs {
		strip.WriteString(styleSet.ActionBlock(colors[run.Action]).Render(strings.Repeat(" ", cells[i])))
	}

	seen := make(map[string]bool, len(colors))
	legend := make([]string, 0, len(colors))
	for _, run := range runs {
		if seen[run.Action] {
			continue
		}
		seen[run.Action] = true
		idx := colors[run.Action]
		legend = append(legend, styleSet.ActionBlock(idx).Render("  ")+" "+styleSet.ActionText(idx).Render(decision.Label(run.Action)))
	}

	return strip.String() + "\n" + strings.Join(legend, "  ")
}

func actionColors(runs []models.Run) map[string]int {
	colors := make(map[string]int)
	for _, run := range runs {
		if _, ok := colors[run.Action]; !ok {
			colors[run.Action] = len(colors)
		}
	}
	return colors
}

// allocate splits width cells across runs by record count using largest
// remainders, with a floor of one cell per run.
func allocate(runs []models.Run, width int) []int {
	cells := make([]int, len(runs))
	total := 0
	for _, run := range runs {
		total += run.Count
	}
	if width < len(runs) {
		width = len(runs)
	}
	if total == 0 {
		total = len(runs)
	}

	type share struct {
		idx       int
		remainder float64
	}
	shares := make([]share, len(runs))
	used := 0
	spare := width - len(runs)
	for i, run := range runs {
		count := max(run.Count, 0)
		exact := float64(spare) * float64(count) / float64(total)
		whole := int(exact)
		cells[i] = 1 + whole
		used += cells[i]
		shares[i] = share{idx: i, remainder: exact - float64(whole)}
	}

	sort.SliceStable(shares, func(a, b int) bool {
		return shares[a].remainder > shares[b].remainder
	})
	for i := 0; used < width; i++ {
		cells[shares[i%len(shares)].idx]++
		used++
	}
	return cells
}
