package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/xuri/excelize/v2"
)

// LoadOptions controls how a table file is read.
type LoadOptions struct {
	// Sheet selects a worksheet in xlsx files. Empty means the first sheet.
	Sheet string
}

// Load reads a table from disk, choosing the parser by file extension.
func Load(path string, opts LoadOptions) (*Table, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("table path is required")
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".xlsx", ".xlsm":
		return loadXLSX(path, opts.Sheet)
	case ".csv", ".tsv":
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open table %s: %w", path, err)
		}
		defer file.Close()
		comma := ','
		if ext == ".tsv" {
			comma = '\t'
		}
		return ParseDelimited(path, file, comma)
	case ".jsonl", ".ndjson":
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open table %s: %w", path, err)
		}
		defer file.Close()
		return ParseJSONL(path, file)
	case ".json", ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read table %s: %w", path, err)
		}
		return ParseDocument(path, data)
	default:
		return nil, fmt.Errorf("%w %q (%s)", ErrUnsupportedFormat, ext, path)
	}
}

// ParseDelimited reads CSV-style input whose first record is the header.
func ParseDelimited(source string, r io.Reader, comma rune) (*Table, error) {
	reader := csv.NewReader(r)
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = comma == ','

	var (
		records [][]string
		lines   []int
	)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse table %s: %w", source, err)
		}
		line, _ := reader.FieldPos(0)
		records = append(records, record)
		lines = append(lines, line)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: %w", source, ErrNoHeader)
	}
	return fromRecords(source, records[0], records[1:], lines[1:])
}

func loadXLSX(path, sheet string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrSheetNotFound)
	}
	if sheet == "" {
		sheet = sheets[0]
	} else if !slices.Contains(sheets, sheet) {
		return nil, fmt.Errorf("%s: %w: %q (have %s)", path, ErrSheetNotFound, sheet, strings.Join(sheets, ", "))
	}

	// Raw values, so number formats such as percentages do not leak into cells.
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q in %s: %w", sheet, path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s sheet %q: %w", path, sheet, ErrNoHeader)
	}

	lines := make([]int, len(rows)-1)
	for i := range lines {
		lines[i] = i + 2
	}
	t, err := fromRecords(path, rows[0], rows[1:], lines)
	if err != nil {
		return nil, err
	}
	t.Sheet = sheet
	return t, nil
}
