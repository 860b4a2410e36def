package helpers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ============================================================================
// CSV HELPER — Reads one numeric column for batch formatting
// ============================================================================
// Consumer reads the CSV from wherever it lives (file, S3, Sheets).
// This helper pulls the values of a single measure column so they can be
// run through a number formatter.
// ============================================================================

// ErrColumnNotFound is returned when no header matches the requested column.
var ErrColumnNotFound = errors.New("column not found")

// ParseNumericColumn returns the values of column, matched against headers
// in snake case ("Story Points" matches "story_points" and "Story Points").
// Blank cells are skipped; any other non-numeric cell is an error.
func ParseNumericColumn(data []byte, column string) ([]float64, error) {
	reader := csv.NewReader(strings.NewReader(string(data)))
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV headers: %w", err)
	}

	want := toSnakeCase(strings.TrimSpace(column))
	index := -1
	for i, h := range headers {
		if toSnakeCase(strings.TrimSpace(h)) == want {
			index = i
			break
		}
	}
	if index < 0 {
		return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, column)
	}

	var values []float64
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row %d: %w", line, err)
		}
		if index >= len(row) {
			continue
		}

		val := strings.TrimSpace(row[index])
		if val == "" {
			continue
		}
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: %q in column %q is not numeric", line, val, headers[index])
		}
		values = append(values, f)
	}

	return values, nil
}

// toSnakeCase converts "Column Name" → "column_name".
func toSnakeCase(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	return s
}
