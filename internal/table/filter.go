package table

import (
	"fmt"
	"strconv"
	"strings"
)

// Filter keeps rows whose Column equals Value. When both sides parse as
// numbers they are compared numerically.
type Filter struct {
	Column string
	Value  string
}

func (f Filter) String() string {
	return f.Column + "=" + f.Value
}

// ParseFilter parses a "column=value" expression.
func ParseFilter(expr string) (Filter, error) {
	column, value, ok := strings.Cut(expr, "=")
	if !ok {
		return Filter{}, fmt.Errorf("invalid filter %q: expected column=value", expr)
	}
	column = strings.TrimSpace(column)
	if column == "" {
		return Filter{}, fmt.Errorf("invalid filter %q: column is required", expr)
	}
	return Filter{Column: column, Value: strings.TrimSpace(value)}, nil
}

// ParseFilters parses a list of expressions. An item is split on commas only
// when every part is itself a column=value pair, so values such as
// "('BTC', 'CASH')" stay whole.
func ParseFilters(exprs []string) ([]Filter, error) {
	var filters []Filter
	for _, expr := range exprs {
		if strings.TrimSpace(expr) == "" {
			continue
		}
		for _, part := range splitFilters(expr) {
			f, err := ParseFilter(part)
			if err != nil {
				return nil, err
			}
			filters = append(filters, f)
		}
	}
	return filters, nil
}

func splitFilters(expr string) []string {
	var parts []string
	for _, part := range strings.Split(expr, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		if !strings.Contains(part, "=") {
			return []string{expr}
		}
		parts = append(parts, part)
	}
	if len(parts) == 0 {
		return []string{expr}
	}
	return parts
}

func (f Filter) match(row Row) bool {
	cell, ok := row.Values[f.Column]
	if !ok {
		return false
	}
	if cell == f.Value {
		return true
	}
	a, errA := strconv.ParseFloat(cell, 64)
	b, errB := strconv.ParseFloat(f.Value, 64)
	return errA == nil && errB == nil && a == b
}

// Where returns a new table holding the rows that match every filter, in
// their original order.
func (t *Table) Where(filters ...Filter) (*Table, error) {
	for _, f := range filters {
		if !t.HasColumn(f.Column) {
			return nil, fmt.Errorf("%w %q in filter %s", ErrUnknownColumn, f.Column, f)
		}
	}

	out := &Table{Source: t.Source, Sheet: t.Sheet, Columns: t.Columns, Rows: make([]Row, 0, len(t.Rows))}
	for _, row := range t.Rows {
		keep := true
		for _, f := range filters {
			if !f.match(row) {
				keep = false
				break
			}
		}
		if keep {
			out.Rows = append(out.Rows, row)
		}
	}
	return out, nil
}
