// Package report renders segmented analyses for humans and machines.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dealscope/sweep/internal/models"
	"gopkg.in/yaml.v3"
)

// Format selects the report encoding.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatJSONL Format = "jsonl"
	FormatYAML  Format = "yaml"
)

// ParseFormat validates a format name. Empty means table.
func ParseFormat(value string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(value))); f {
	case "":
		return FormatTable, nil
	case FormatTable, FormatJSON, FormatJSONL, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q", value)
	}
}

// Write encodes analyses in the requested format.
func Write(w io.Writer, format Format, analyses []*models.Analysis) error {
	switch format {
	case FormatTable, "":
		return WriteTable(w, analyses)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(analyses)
	case FormatJSONL:
		enc := json.NewEncoder(w)
		for _, a := range analyses {
			if err := enc.Encode(a); err != nil {
				return err
			}
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(analyses); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// FormatIndex renders a parameter level without trailing zeros.
func FormatIndex(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
