package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFilters(t *testing.T) {
	tests := []struct {
		name    string
		input   []string
		wantLen int
		wantErr bool
	}{
		{"single", []string{"mag1=0.5"}, 1, false},
		{"multiple", []string{"mag1=0.5", "coin=BTC"}, 2, false},
		{"comma separated", []string{"mag1=0.5,coin=BTC"}, 2, false},
		{"empty value", []string{"coin="}, 1, false},
		{"tuple value", []string{"best_action=('BTC', 'CASH')"}, 1, false},
		{"comma label", []string{"best_action=BTC,CASH"}, 1, false},
		{"missing equals", []string{"mag1"}, 0, true},
		{"empty column", []string{"=0.5"}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFilters(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, got, tt.wantLen)
		})
	}
}

func TestParseFiltersKeepsTupleValues(t *testing.T) {
	got, err := ParseFilters([]string{"best_action=('BTC', 'CASH')", "mag1=0.5,coin=BTC"})
	require.NoError(t, err)
	assert.Equal(t, []Filter{
		{Column: "best_action", Value: "('BTC', 'CASH')"},
		{Column: "mag1", Value: "0.5"},
		{Column: "coin", Value: "BTC"},
	}, got)

	tbl := &Table{
		Source:  "inline",
		Columns: []string{"risk", "best_action"},
		Rows: []Row{
			{Line: 2, Values: map[string]string{"risk": "1000", "best_action": "('CASH', 'CASH')"}},
			{Line: 3, Values: map[string]string{"risk": "2000", "best_action": "('BTC', 'CASH')"}},
		},
	}
	out, err := tbl.Where(got[0])
	require.NoError(t, err)
	require.Equal(t, 1, out.Len())
	assert.Equal(t, 3, out.Rows[0].Line)
}

func TestWhere(t *testing.T) {
	tbl := &Table{
		Source:  "inline",
		Columns: []string{"mag1", "risk", "best"},
		Rows: []Row{
			{Line: 2, Values: map[string]string{"mag1": "0.5", "risk": "1000", "best": "A"}},
			{Line: 3, Values: map[string]string{"mag1": "0.50", "risk": "2000", "best": "B"}},
			{Line: 4, Values: map[string]string{"mag1": "0.75", "risk": "1000", "best": "A"}},
			{Line: 5, Values: map[string]string{"risk": "3000", "best": "C"}},
		},
	}

	out, err := tbl.Where(Filter{Column: "mag1", Value: "0.5"})
	require.NoError(t, err)
	require.Equal(t, 2, out.Len())
	assert.Equal(t, 2, out.Rows[0].Line)
	assert.Equal(t, 3, out.Rows[1].Line)
	assert.Equal(t, 4, tbl.Len(), "source table unchanged")

	out, err = tbl.Where(Filter{Column: "mag1", Value: "0.5"}, Filter{Column: "risk", Value: "1000"})
	require.NoError(t, err)
	require.Equal(t, 1, out.Len())

	out, err = tbl.Where()
	require.NoError(t, err)
	assert.Equal(t, 4, out.Len())

	_, err = tbl.Where(Filter{Column: "nope", Value: "1"})
	require.ErrorIs(t, err, ErrUnknownColumn)
}
