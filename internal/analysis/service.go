// Package analysis turns sensitivity tables into best-action run reports.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dealscope/sweep/internal/logging"
	"github.com/dealscope/sweep/internal/models"
	"github.com/dealscope/sweep/internal/segment"
	"github.com/dealscope/sweep/internal/table"
	"github.com/rs/zerolog"
)

// Service errors.
var (
	ErrNoIndexFields = errors.New("at least one index field is required")
	ErrNoRows        = errors.New("no rows left after filtering")
)

// Repository is the minimal interface needed to save analyses.
type Repository interface {
	Create(ctx context.Context, analysis *models.Analysis) error
}

// Service loads tables and segments them.
type Service struct {
	repo   Repository
	now    func() time.Time
	logger zerolog.Logger
}

// NewService creates a Service. repo may be nil when results are not saved.
func NewService(repo Repository) *Service {
	return &Service{
		repo:   repo,
		now:    func() time.Time { return time.Now().UTC() },
		logger: logging.Component("analysis"),
	}
}

// Options describes one segmentation request.
type Options struct {
	// Path is the table file to read.
	Path string

	// Sheet selects an xlsx worksheet.
	Sheet string

	// IndexFields are the swept parameter columns; one analysis is produced
	// per field.
	IndexFields []string

	// ActionField is the best action column.
	ActionField string

	// Filters are column=value expressions applied before segmenting.
	Filters []string

	// RequireSorted rejects an index column that decreases.
	RequireSorted bool

	// Save persists each successful analysis.
	Save bool
}

// Result holds the analyses that succeeded and the per-field failures.
type Result struct {
	Analyses []*models.Analysis
	Failures []FieldFailure
}

// FieldFailure records why one index field could not be segmented.
type FieldFailure struct {
	IndexField string
	Err        error
}

func (f FieldFailure) Error() string {
	return fmt.Sprintf("%s: %v", f.IndexField, f.Err)
}

func (f FieldFailure) Unwrap() error {
	return f.Err
}

// Err joins all field failures, or returns nil.
func (r *Result) Err() error {
	if len(r.Failures) == 0 {
		return nil
	}
	errs := make([]error, len(r.Failures))
	for i, f := range r.Failures {
		errs[i] = f
	}
	return errors.Join(errs...)
}

// Run loads the table once and segments it by each index field. Errors that
// affect the whole table are returned directly; a failure on one index field
// only drops that field's analysis.
func (s *Service) Run(ctx context.Context, opts Options) (*Result, error) {
	fields := cleanFields(opts.IndexFields)
	if len(fields) == 0 {
		return nil, ErrNoIndexFields
	}
	actionField := strings.TrimSpace(opts.ActionField)

	filters, err := table.ParseFilters(opts.Filters)
	if err != nil {
		return nil, err
	}

	tbl, err := table.Load(opts.Path, table.LoadOptions{Sheet: opts.Sheet})
	if err != nil {
		return nil, err
	}
	s.logger.Debug().
		Str("source", tbl.Source).
		Str("sheet", tbl.Sheet).
		Int("rows", tbl.Len()).
		Msg("table loaded")

	tbl, err = tbl.Where(filters...)
	if err != nil {
		return nil, err
	}
	if tbl.Len() == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoRows, opts.Path)
	}

	filterNames := make([]string, len(filters))
	for i, f := range filters {
		filterNames[i] = f.String()
	}

	result := &Result{}
	for _, field := range fields {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		a, err := s.segment(tbl, field, actionField, opts.RequireSorted)
		if err != nil {
			s.logger.Warn().Err(err).Str("index_field", field).Msg("segmentation failed")
			result.Failures = append(result.Failures, FieldFailure{IndexField: field, Err: err})
			continue
		}
		a.Filters = filterNames

		if opts.Save {
			if s.repo == nil {
				return result, fmt.Errorf("analysis repository is required to save")
			}
			if err := s.repo.Create(ctx, a); err != nil {
				return result, fmt.Errorf("save analysis for %s: %w", field, err)
			}
		}

		s.logger.Info().
			Str("index_field", field).
			Int("rows", a.RecordCount).
			Int("runs", len(a.Runs)).
			Msg("segmented")
		result.Analyses = append(result.Analyses, a)
	}

	return result, nil
}

func (s *Service) segment(tbl *table.Table, indexField, actionField string, requireSorted bool) (*models.Analysis, error) {
	if !tbl.HasColumn(indexField) {
		return nil, fmt.Errorf("%w: %w %q", segment.ErrInvalidInput, table.ErrUnknownColumn, indexField)
	}
	if !tbl.HasColumn(actionField) {
		return nil, fmt.Errorf("%w: %w %q", segment.ErrInvalidInput, table.ErrUnknownColumn, actionField)
	}

	if requireSorted {
		levels, err := tbl.Float(indexField)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", segment.ErrInvalidInput, err)
		}
		if err := segment.CheckSorted(levels); err != nil {
			return nil, err
		}
	}

	runs, err := segment.IntervalsByField(tbl.Rows, indexField, actionField)
	if err != nil {
		return nil, err
	}

	return &models.Analysis{
		Source:      tbl.Source,
		Sheet:       tbl.Sheet,
		IndexField:  indexField,
		ActionField: actionField,
		RecordCount: tbl.Len(),
		Runs:        runs,
		CreatedAt:   s.now(),
	}, nil
}

func cleanFields(fields []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, field := range fields {
		for _, part := range strings.Split(field, ",") {
			part = strings.TrimSpace(part)
			if part == "" || seen[part] {
				continue
			}
			seen[part] = true
			out = append(out, part)
		}
	}
	return out
}
