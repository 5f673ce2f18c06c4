// Package models defines the persisted sweep data types.
package models

import (
	"strings"
	"time"

	"github.com/dealscope/sweep/internal/segment"
)

// Run is one best-action run over a swept parameter.
type Run = segment.Interval[float64, string]

// Analysis is the result of segmenting one table by one index column.
type Analysis struct {
	// ID is the unique identifier for the analysis.
	ID string `json:"id" yaml:"id"`

	// Source is the table file that was read.
	Source string `json:"source" yaml:"source"`

	// Sheet is the worksheet read from an xlsx source.
	Sheet string `json:"sheet,omitempty" yaml:"sheet,omitempty"`

	// IndexField is the swept parameter column.
	IndexField string `json:"index_field" yaml:"index_field"`

	// ActionField is the best action column.
	ActionField string `json:"action_field" yaml:"action_field"`

	// Filters are the column=value filters applied before segmenting.
	Filters []string `json:"filters,omitempty" yaml:"filters,omitempty"`

	// RecordCount is the number of rows segmented.
	RecordCount int `json:"record_count" yaml:"record_count"`

	// Runs are the best-action runs in index order.
	Runs []Run `json:"runs" yaml:"runs"`

	// CreatedAt is when the analysis was produced.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// Validate checks if the analysis is complete enough to persist.
func (a *Analysis) Validate() error {
	validation := &ValidationErrors{}
	if strings.TrimSpace(a.Source) == "" {
		validation.AddMessage("source", "source is required")
	}
	if strings.TrimSpace(a.IndexField) == "" {
		validation.AddMessage("index_field", "index_field is required")
	}
	if strings.TrimSpace(a.ActionField) == "" {
		validation.AddMessage("action_field", "action_field is required")
	}
	if len(a.Runs) == 0 {
		validation.AddMessage("runs", "at least one run is required")
	}
	return validation.Err()
}
