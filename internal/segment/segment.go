// Package segment detects contiguous runs of a categorical action in an
// ordered sequence of records and reports where each run begins.
package segment

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Segmentation errors.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrUnsorted     = errors.New("records not sorted by index")
)

// Segment marks the index at which Action becomes the current value. It holds
// until the next segment's index or the end of the sequence.
type Segment[I any, A comparable] struct {
	Index  I `json:"index" yaml:"index"`
	Action A `json:"action" yaml:"action"`
}

// Interval is the half-open region [Start, End) covered by one run. The last
// interval of a sequence ends at the final record's index and is closed.
type Interval[I any, A comparable] struct {
	Start  I   `json:"start" yaml:"start"`
	End    I   `json:"end" yaml:"end"`
	Action A   `json:"action" yaml:"action"`
	Count  int `json:"count" yaml:"count"`
}

// Record is a row whose fields can be looked up by column name.
type Record interface {
	Field(name string) (string, bool)
}

// Runs walks records once and returns the start of every run of identical
// actions. The first record always starts a run; record i starts one when its
// action differs from record i-1. Records are never reordered.
func Runs[R any, I any, A comparable](records []R, index func(R) I, action func(R) A) ([]Segment[I, A], error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no records", ErrInvalidInput)
	}
	if index == nil || action == nil {
		return nil, fmt.Errorf("%w: index and action accessors are required", ErrInvalidInput)
	}

	segments := make([]Segment[I, A], 0, 1)
	var prev A
	for i, record := range records {
		current := action(record)
		if i == 0 || current != prev {
			segments = append(segments, Segment[I, A]{Index: index(record), Action: current})
		}
		prev = current
	}
	return segments, nil
}

// Intervals segments records like Runs and additionally reports the extent
// and length of each run.
func Intervals[R any, I any, A comparable](records []R, index func(R) I, action func(R) A) ([]Interval[I, A], error) {
	segments, err := Runs(records, index, action)
	if err != nil {
		return nil, err
	}

	intervals := make([]Interval[I, A], len(segments))
	run := 0
	for i, record := range records {
		if i > 0 && run+1 < len(segments) && action(record) != action(records[i-1]) {
			intervals[run].End = index(record)
			run++
		}
		intervals[run].Count++
	}
	for i, seg := range segments {
		intervals[i].Start = seg.Index
		intervals[i].Action = seg.Action
	}
	intervals[len(intervals)-1].End = index(records[len(records)-1])
	return intervals, nil
}

// ByField segments tabular records using named columns. Index cells must be
// finite numeric parameter levels; action cells are compared verbatim.
func ByField[R Record](records []R, indexField, actionField string) ([]Segment[float64, string], error) {
	rows, err := extract(records, indexField, actionField)
	if err != nil {
		return nil, err
	}
	return Runs(rows, pointIndex, pointAction)
}

// IntervalsByField is the column-name form of Intervals.
func IntervalsByField[R Record](records []R, indexField, actionField string) ([]Interval[float64, string], error) {
	rows, err := extract(records, indexField, actionField)
	if err != nil {
		return nil, err
	}
	return Intervals(rows, pointIndex, pointAction)
}

// CheckSorted reports ErrUnsorted when indices decrease anywhere.
func CheckSorted[I cmp.Ordered](indices []I) error {
	for i := 1; i < len(indices); i++ {
		if indices[i] < indices[i-1] {
			return fmt.Errorf("%w: position %d (%v) follows %v", ErrUnsorted, i, indices[i], indices[i-1])
		}
	}
	return nil
}

type point struct {
	index  float64
	action string
}

func pointIndex(p point) float64  { return p.index }
func pointAction(p point) string { return p.action }

func extract[R Record](records []R, indexField, actionField string) ([]point, error) {
	indexField = strings.TrimSpace(indexField)
	actionField = strings.TrimSpace(actionField)
	if indexField == "" || actionField == "" {
		return nil, fmt.Errorf("%w: index and action field names are required", ErrInvalidInput)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no records", ErrInvalidInput)
	}

	points := make([]point, 0, len(records))
	for i, record := range records {
		raw, ok := record.Field(indexField)
		if !ok {
			return nil, fmt.Errorf("%w: record %d has no field %q", ErrInvalidInput, i+1, indexField)
		}
		action, ok := record.Field(actionField)
		if !ok {
			return nil, fmt.Errorf("%w: record %d has no field %q", ErrInvalidInput, i+1, actionField)
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: record %d field %q is not numeric: %q", ErrInvalidInput, i+1, indexField, raw)
		}
		if math.IsInf(value, 0) || math.IsNaN(value) {
			return nil, fmt.Errorf("%w: record %d field %q is not finite: %q", ErrInvalidInput, i+1, indexField, raw)
		}
		points = append(points, point{index: value, action: action})
	}
	return points, nil
}
