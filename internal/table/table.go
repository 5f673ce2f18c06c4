// Package table loads sensitivity-analysis tables from spreadsheet and
// structured text files into ordered rows.
package table

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Table errors.
var (
	ErrUnsupportedFormat = errors.New("unsupported table format")
	ErrNoHeader          = errors.New("table has no header")
	ErrDuplicateColumn   = errors.New("duplicate column")
	ErrUnknownColumn     = errors.New("unknown column")
	ErrSheetNotFound     = errors.New("sheet not found")
)

// Table is an ordered set of rows sharing one header.
type Table struct {
	Source  string
	Sheet   string
	Columns []string
	Rows    []Row
}

// Row is a single table row. Line is the 1-based position in the source
// file (the spreadsheet row for xlsx, the line for text formats). Cells
// missing from a short row or an object are absent from Values.
type Row struct {
	Line   int
	Values map[string]string
}

// Field returns the cell for column name.
func (r Row) Field(name string) (string, bool) {
	v, ok := r.Values[name]
	return v, ok
}

// HasColumn reports whether the header contains name.
func (t *Table) HasColumn(name string) bool {
	return slices.Contains(t.Columns, name)
}

// Float returns the numeric values of a column in row order. Every cell must
// hold a finite number.
func (t *Table) Float(column string) ([]float64, error) {
	if !t.HasColumn(column) {
		return nil, fmt.Errorf("%w %q", ErrUnknownColumn, column)
	}
	values := make([]float64, 0, len(t.Rows))
	for _, row := range t.Rows {
		raw, ok := row.Values[column]
		if !ok {
			return nil, fmt.Errorf("%s line %d: column %q is missing", t.Source, row.Line, column)
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: column %q is not numeric: %q", t.Source, row.Line, column, raw)
		}
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return nil, fmt.Errorf("%s line %d: column %q is not finite: %q", t.Source, row.Line, column, raw)
		}
		values = append(values, v)
	}
	return values, nil
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

func normalizeHeader(header []string) ([]string, error) {
	if len(header) == 0 {
		return nil, ErrNoHeader
	}

	columns := make([]string, len(header))
	seen := make(map[string]struct{}, len(header))
	named := 0
	for i, raw := range header {
		name := strings.TrimSpace(raw)
		if name == "" {
			name = "unnamed_" + strconv.Itoa(i)
		} else {
			named++
		}
		if _, exists := seen[name]; exists {
			return nil, fmt.Errorf("%w %q", ErrDuplicateColumn, name)
		}
		seen[name] = struct{}{}
		columns[i] = name
	}
	if named == 0 {
		return nil, ErrNoHeader
	}
	return columns, nil
}

// fromRecords builds rows from a header and positional records. lines holds
// the source line of each record.
func fromRecords(source string, header []string, records [][]string, lines []int) (*Table, error) {
	columns, err := normalizeHeader(header)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}

	t := &Table{Source: source, Columns: columns, Rows: make([]Row, 0, len(records))}
	for i, record := range records {
		line := lines[i]
		if blank(record) {
			continue
		}
		if len(record) > len(columns) && !blank(record[len(columns):]) {
			return nil, fmt.Errorf("%s line %d: %d cells for %d columns", source, line, len(record), len(columns))
		}

		values := make(map[string]string, len(columns))
		for j, col := range columns {
			if j >= len(record) {
				break
			}
			values[col] = strings.TrimSpace(record[j])
		}
		t.Rows = append(t.Rows, Row{Line: line, Values: values})
	}
	return t, nil
}

func blank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
