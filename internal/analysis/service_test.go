package analysis

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dealscope/sweep/internal/models"
	"github.com/dealscope/sweep/internal/segment"
	"github.com/dealscope/sweep/internal/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryRepo struct {
	saved []*models.Analysis
	err   error
}

func (r *memoryRepo) Create(ctx context.Context, a *models.Analysis) error {
	if r.err != nil {
		return r.err
	}
	a.ID = "saved-" + a.IndexField
	r.saved = append(r.saved, a)
	return nil
}

const sweepCSV = `risk_tolerance,mag1,deal_value,best_action
1000,0.5,10.2,"('CASH', 'CASH')"
2000,0.5,12.8,"('CASH', 'CASH')"
3000,0.5,15.1,"('BTC', 'CASH')"
4000,0.75,19.3,"('BTC', 'CASH')"
5000,0.75,22.0,"('BTC', 'ETH')"
`

func writeSweep(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sweep.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write sweep: %v", err)
	}
	return path
}

func TestRunSegmentsEachIndexField(t *testing.T) {
	svc := NewService(nil)
	result, err := svc.Run(context.Background(), Options{
		Path:        writeSweep(t, sweepCSV),
		IndexFields: []string{"risk_tolerance,mag1"},
		ActionField: "best_action",
	})
	require.NoError(t, err)
	require.NoError(t, result.Err())
	require.Len(t, result.Analyses, 2)

	risk := result.Analyses[0]
	assert.Equal(t, "risk_tolerance", risk.IndexField)
	assert.Equal(t, 5, risk.RecordCount)
	assert.Equal(t, []models.Run{
		{Start: 1000, End: 3000, Action: "('CASH', 'CASH')", Count: 2},
		{Start: 3000, End: 5000, Action: "('BTC', 'CASH')", Count: 2},
		{Start: 5000, End: 5000, Action: "('BTC', 'ETH')", Count: 1},
	}, risk.Runs)
	assert.False(t, risk.CreatedAt.IsZero())

	mag := result.Analyses[1]
	assert.Equal(t, "mag1", mag.IndexField)
	assert.Len(t, mag.Runs, 3)
}

func TestRunAppliesFilters(t *testing.T) {
	svc := NewService(nil)
	result, err := svc.Run(context.Background(), Options{
		Path:        writeSweep(t, sweepCSV),
		IndexFields: []string{"risk_tolerance"},
		ActionField: "best_action",
		Filters:     []string{"mag1=0.50"},
	})
	require.NoError(t, err)
	require.Len(t, result.Analyses, 1)
	assert.Equal(t, 3, result.Analyses[0].RecordCount)
	assert.Equal(t, []string{"mag1=0.50"}, result.Analyses[0].Filters)
	assert.Len(t, result.Analyses[0].Runs, 2)
}

func TestRunIsolatesFieldFailures(t *testing.T) {
	svc := NewService(nil)
	result, err := svc.Run(context.Background(), Options{
		Path:        writeSweep(t, sweepCSV),
		IndexFields: []string{"missing", "risk_tolerance"},
		ActionField: "best_action",
	})
	require.NoError(t, err)
	require.Len(t, result.Analyses, 1)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, "missing", result.Failures[0].IndexField)
	assert.True(t, errors.Is(result.Err(), segment.ErrInvalidInput))
	assert.True(t, errors.Is(result.Err(), table.ErrUnknownColumn))
}

func TestRunRejectsNonFiniteLevels(t *testing.T) {
	repo := &memoryRepo{}
	svc := NewService(repo)
	result, err := svc.Run(context.Background(), Options{
		Path:        writeSweep(t, "risk_tolerance,mag1,best_action\n1000,0.5,CASH\ninf,0.75,BTC\n"),
		IndexFields: []string{"risk_tolerance", "mag1"},
		ActionField: "best_action",
		Save:        true,
	})
	require.NoError(t, err)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, "risk_tolerance", result.Failures[0].IndexField)
	require.ErrorIs(t, result.Err(), segment.ErrInvalidInput)

	require.Len(t, result.Analyses, 1)
	require.Len(t, repo.saved, 1)
	assert.Equal(t, "mag1", repo.saved[0].IndexField)
}

func TestRunRequireSorted(t *testing.T) {
	unsorted := `risk_tolerance,best_action
2000,A
1000,A
3000,B
`
	svc := NewService(nil)
	opts := Options{
		Path:        writeSweep(t, unsorted),
		IndexFields: []string{"risk_tolerance"},
		ActionField: "best_action",
	}

	result, err := svc.Run(context.Background(), opts)
	require.NoError(t, err)
	require.Len(t, result.Analyses, 1, "order is not enforced by default")

	opts.RequireSorted = true
	result, err = svc.Run(context.Background(), opts)
	require.NoError(t, err)
	require.Empty(t, result.Analyses)
	assert.ErrorIs(t, result.Err(), segment.ErrUnsorted)
}

func TestRunSaves(t *testing.T) {
	repo := &memoryRepo{}
	svc := NewService(repo)
	result, err := svc.Run(context.Background(), Options{
		Path:        writeSweep(t, sweepCSV),
		IndexFields: []string{"risk_tolerance"},
		ActionField: "best_action",
		Save:        true,
	})
	require.NoError(t, err)
	require.Len(t, repo.saved, 1)
	assert.Equal(t, "saved-risk_tolerance", result.Analyses[0].ID)

	failing := NewService(&memoryRepo{err: errors.New("disk full")})
	_, err = failing.Run(context.Background(), Options{
		Path:        writeSweep(t, sweepCSV),
		IndexFields: []string{"risk_tolerance"},
		ActionField: "best_action",
		Save:        true,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestRunTableErrors(t *testing.T) {
	svc := NewService(nil)

	_, err := svc.Run(context.Background(), Options{Path: "x.csv", ActionField: "a"})
	require.ErrorIs(t, err, ErrNoIndexFields)

	_, err = svc.Run(context.Background(), Options{
		Path:        writeSweep(t, sweepCSV),
		IndexFields: []string{"risk_tolerance"},
		ActionField: "best_action",
		Filters:     []string{"mag1=9"},
	})
	require.ErrorIs(t, err, ErrNoRows)

	_, err = svc.Run(context.Background(), Options{
		Path:        filepath.Join(t.TempDir(), "absent.csv"),
		IndexFields: []string{"risk_tolerance"},
		ActionField: "best_action",
	})
	require.Error(t, err)
}

func TestRunHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewService(nil).Run(ctx, Options{
		Path:        writeSweep(t, sweepCSV),
		IndexFields: []string{"risk_tolerance"},
		ActionField: "best_action",
	})
	require.ErrorIs(t, err, context.Canceled)
}
