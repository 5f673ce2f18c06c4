package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dealscope/sweep/internal/models"
	"github.com/google/uuid"
)

// Analysis repository errors.
var (
	ErrAnalysisNotFound = errors.New("analysis not found")
	ErrInvalidAnalysis  = errors.New("invalid analysis")
)

// AnalysisRepository handles analysis persistence.
type AnalysisRepository struct {
	db *DB
}

// NewAnalysisRepository creates a new AnalysisRepository.
func NewAnalysisRepository(db *DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

// ListQuery filters List results.
type ListQuery struct {
	Source string // Exact source path
	Limit  int    // Max results, newest first
}

// timeLayout is fixed width so created_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const analysisColumns = `id, source, sheet, index_field, action_field, filters_json, record_count, runs_json, created_at`

// Create stores a new analysis, assigning ID and CreatedAt when unset.
func (r *AnalysisRepository) Create(ctx context.Context, analysis *models.Analysis) error {
	if err := analysis.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidAnalysis, err)
	}

	if analysis.ID == "" {
		analysis.ID = uuid.New().String()
	}
	if analysis.CreatedAt.IsZero() {
		analysis.CreatedAt = time.Now().UTC()
	} else {
		analysis.CreatedAt = analysis.CreatedAt.UTC()
	}

	runsJSON, err := json.Marshal(analysis.Runs)
	if err != nil {
		return fmt.Errorf("failed to marshal runs: %w", err)
	}

	var filtersJSON *string
	if len(analysis.Filters) > 0 {
		data, err := json.Marshal(analysis.Filters)
		if err != nil {
			return fmt.Errorf("failed to marshal filters: %w", err)
		}
		s := string(data)
		filtersJSON = &s
	}

	var sheet *string
	if analysis.Sheet != "" {
		sheet = &analysis.Sheet
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO analyses (`+analysisColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		analysis.ID,
		analysis.Source,
		sheet,
		analysis.IndexField,
		analysis.ActionField,
		filtersJSON,
		analysis.RecordCount,
		string(runsJSON),
		analysis.CreatedAt.Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to insert analysis: %w", err)
	}

	r.db.logger.Debug().
		Str("analysis_id", analysis.ID).
		Str("source", analysis.Source).
		Int("runs", len(analysis.Runs)).
		Msg("analysis saved")
	return nil
}

// Get retrieves an analysis by ID.
func (r *AnalysisRepository) Get(ctx context.Context, id string) (*models.Analysis, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+analysisColumns+` FROM analyses WHERE id = ?`, id)
	analysis, err := scanAnalysis(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAnalysisNotFound
	}
	return analysis, err
}

// List returns analyses newest first.
func (r *AnalysisRepository) List(ctx context.Context, q ListQuery) ([]*models.Analysis, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = 50
	}

	query := `SELECT ` + analysisColumns + ` FROM analyses WHERE 1=1`
	args := []any{}
	if q.Source != "" {
		query += ` AND source = ?`
		args = append(args, q.Source)
	}
	query += ` ORDER BY created_at DESC, id LIMIT ?`
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query analyses: %w", err)
	}
	defer rows.Close()

	var analyses []*models.Analysis
	for rows.Next() {
		analysis, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		analyses = append(analyses, analysis)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating analyses: %w", err)
	}
	return analyses, nil
}

// Delete removes an analysis by ID.
func (r *AnalysisRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM analyses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete analysis: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return ErrAnalysisNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAnalysis(row scanner) (*models.Analysis, error) {
	var (
		analysis    models.Analysis
		sheet       sql.NullString
		filtersJSON sql.NullString
		runsJSON    string
		createdAt   string
	)

	err := row.Scan(
		&analysis.ID,
		&analysis.Source,
		&sheet,
		&analysis.IndexField,
		&analysis.ActionField,
		&filtersJSON,
		&analysis.RecordCount,
		&runsJSON,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan analysis: %w", err)
	}

	analysis.Sheet = sheet.String
	if filtersJSON.Valid {
		if err := json.Unmarshal([]byte(filtersJSON.String), &analysis.Filters); err != nil {
			return nil, fmt.Errorf("failed to parse filters for analysis %s: %w", analysis.ID, err)
		}
	}
	if err := json.Unmarshal([]byte(runsJSON), &analysis.Runs); err != nil {
		return nil, fmt.Errorf("failed to parse runs for analysis %s: %w", analysis.ID, err)
	}
	t, err := time.Parse(timeLayout, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at for analysis %s: %w", analysis.ID, err)
	}
	analysis.CreatedAt = t

	return &analysis, nil
}
