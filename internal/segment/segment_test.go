package segment

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type level struct {
	at     float64
	action string
}

func levelIndex(l level) float64 { return l.at }
func levelAction(l level) string { return l.action }

func levels(actions ...string) []level {
	out := make([]level, len(actions))
	for i, a := range actions {
		out[i] = level{at: float64(i), action: a}
	}
	return out
}

type row map[string]string

func (r row) Field(name string) (string, bool) {
	v, ok := r[name]
	return v, ok
}

func TestRunsScenarios(t *testing.T) {
	tests := []struct {
		name    string
		records []level
		want    []Segment[float64, string]
	}{
		{
			name:    "single run",
			records: levels("A", "A", "A"),
			want:    []Segment[float64, string]{{0, "A"}},
		},
		{
			name:    "three runs",
			records: levels("A", "B", "B", "C"),
			want:    []Segment[float64, string]{{0, "A"}, {1, "B"}, {3, "C"}},
		},
		{
			name:    "one record",
			records: []level{{at: 5, action: "A"}},
			want:    []Segment[float64, string]{{5, "A"}},
		},
		{
			name:    "alternating",
			records: levels("A", "B", "A", "B"),
			want:    []Segment[float64, string]{{0, "A"}, {1, "B"}, {2, "A"}, {3, "B"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Runs(tt.records, levelIndex, levelAction)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRunsEmptyInput(t *testing.T) {
	got, err := Runs([]level{}, levelIndex, levelAction)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.Nil(t, got)
}

func TestRunsNilAccessor(t *testing.T) {
	_, err := Runs[level, float64, string](levels("A"), nil, levelAction)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestRunsProperties(t *testing.T) {
	inputs := [][]string{
		{"A"},
		{"A", "A", "B", "B", "B", "A"},
		{"x", "y", "z", "z", "y", "x", "x"},
		{"CASH", "CASH", "CASH", "BTC"},
	}

	for _, actions := range inputs {
		records := levels(actions...)
		got, err := Runs(records, levelIndex, levelAction)
		require.NoError(t, err)

		require.NotEmpty(t, got)
		assert.Equal(t, records[0].at, got[0].Index, "first segment starts at first record")

		for i := 1; i < len(got); i++ {
			assert.NotEqual(t, got[i-1].Action, got[i].Action, "adjacent segments share action")
			assert.Less(t, got[i-1].Index, got[i].Index)
		}

		runs := 1
		for i := 1; i < len(actions); i++ {
			if actions[i] != actions[i-1] {
				runs++
			}
		}
		assert.Len(t, got, runs)

		again, err := Runs(records, levelIndex, levelAction)
		require.NoError(t, err)
		assert.Equal(t, got, again)
	}
}

func TestRunsDoesNotSort(t *testing.T) {
	records := []level{{3, "A"}, {1, "B"}, {2, "B"}, {0, "A"}}
	got, err := Runs(records, levelIndex, levelAction)
	require.NoError(t, err)
	assert.Equal(t, []Segment[float64, string]{{3, "A"}, {1, "B"}, {0, "A"}}, got)
}

func TestRunsStructuredActionUsesExactEquality(t *testing.T) {
	type decision struct{ first, second string }
	type step struct {
		at int
		d  decision
	}
	records := []step{
		{0, decision{"BTC", "CASH"}},
		{1, decision{"BTC", "CASH"}},
		{2, decision{"BTC", "ETH"}},
	}

	got, err := Runs(records, func(s step) int { return s.at }, func(s step) decision { return s.d })
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 2, got[1].Index)
	assert.Equal(t, decision{"BTC", "ETH"}, got[1].Action)
}

func TestIntervals(t *testing.T) {
	records := []level{{0, "A"}, {500, "A"}, {1000, "B"}, {1500, "B"}, {2000, "B"}, {2500, "C"}}

	got, err := Intervals(records, levelIndex, levelAction)
	require.NoError(t, err)
	assert.Equal(t, []Interval[float64, string]{
		{Start: 0, End: 1000, Action: "A", Count: 2},
		{Start: 1000, End: 2500, Action: "B", Count: 3},
		{Start: 2500, End: 2500, Action: "C", Count: 1},
	}, got)
}

func TestIntervalsEmpty(t *testing.T) {
	_, err := Intervals([]level{}, levelIndex, levelAction)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestByField(t *testing.T) {
	rows := []row{
		{"risk_tolerance": "1000", "best_action": "('BTC', 'CASH')"},
		{"risk_tolerance": "2000", "best_action": "('BTC', 'CASH')"},
		{"risk_tolerance": "3000", "best_action": "('ETH', 'CASH')"},
	}

	got, err := ByField(rows, "risk_tolerance", "best_action")
	require.NoError(t, err)
	assert.Equal(t, []Segment[float64, string]{
		{1000, "('BTC', 'CASH')"},
		{3000, "('ETH', 'CASH')"},
	}, got)
}

func TestByFieldValidation(t *testing.T) {
	tests := []struct {
		name   string
		rows   []row
		index  string
		action string
	}{
		{"empty", []row{}, "x", "a"},
		{"blank index name", []row{{"x": "1", "a": "A"}}, "", "a"},
		{"missing index", []row{{"x": "1", "a": "A"}, {"a": "B"}}, "x", "a"},
		{"missing action", []row{{"x": "1"}}, "x", "a"},
		{"non numeric index", []row{{"x": "high", "a": "A"}}, "x", "a"},
		{"infinite index", []row{{"x": "1000", "a": "A"}, {"x": "inf", "a": "B"}}, "x", "a"},
		{"nan index", []row{{"x": "NaN", "a": "A"}}, "x", "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ByField(tt.rows, tt.index, tt.action)
			require.ErrorIs(t, err, ErrInvalidInput)
			assert.Nil(t, got)
		})
	}
}

func TestByFieldNamesNonFiniteRecord(t *testing.T) {
	rows := []row{{"x": "1000", "a": "A"}, {"x": "+Inf", "a": "B"}}
	_, err := IntervalsByField(rows, "x", "a")
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), `record 2 field "x" is not finite`)
}

func TestIntervalsByField(t *testing.T) {
	rows := []row{
		{"mag1": "0.1", "best": "CASH"},
		{"mag1": "0.2", "best": "BTC"},
		{"mag1": "0.3", "best": "BTC"},
	}

	got, err := IntervalsByField(rows, "mag1", "best")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, Interval[float64, string]{Start: 0.1, End: 0.2, Action: "CASH", Count: 1}, got[0])
	assert.Equal(t, Interval[float64, string]{Start: 0.2, End: 0.3, Action: "BTC", Count: 2}, got[1])
}

func TestCheckSorted(t *testing.T) {
	require.NoError(t, CheckSorted([]float64{0, 1, 1, 2}))
	require.NoError(t, CheckSorted([]int{}))

	err := CheckSorted([]float64{0, 2, 1})
	require.ErrorIs(t, err, ErrUnsorted)
	assert.Contains(t, err.Error(), "position 2")
}
