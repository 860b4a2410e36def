package query

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sort"
)

// ============================================================================
// FIELD EXTRACTION — Controls → columns / metrics / orderby
// ============================================================================
// Viz plugins name their controls freely ("metric", "x", "series"). Aliases
// map each control onto one of the query fields; unmapped controls are
// ignored. groupby folds into columns.
// ============================================================================

// ErrInvalidOrderBy is returned for order-by entries that are not [column, ascending].
var ErrInvalidOrderBy = errors.New("invalid orderby")

// FieldAliases maps a form-data key to the query field it feeds:
// "metrics", "columns", "groupby" or "orderby".
type FieldAliases map[string]string

// TimestampColumn is the column name of the temporal x-axis.
const TimestampColumn = "__timestamp"

var defaultFieldAliases = FieldAliases{
	"metric":           "metrics",
	"metric_2":         "metrics",
	"secondary_metric": "metrics",
	"x":                "metrics",
	"y":                "metrics",
	"size":             "metrics",
	"all_columns":      "columns",
	"series":           "groupby",
	"order_by_cols":    "orderby",
}

type queryFields struct {
	Columns []string
	Metrics []string
	Orderby []OrderByClause
}

type formEntry struct {
	key   string
	value any
}

// formEntries lists the field-bearing parts of fd in a stable order:
// groupby, columns, metrics, then controls sorted by key.
func formEntries(fd FormData) []formEntry {
	entries := make([]formEntry, 0, 3+len(fd.Controls))
	if len(fd.Groupby) > 0 {
		entries = append(entries, formEntry{"groupby", fd.Groupby})
	}
	if len(fd.Columns) > 0 {
		entries = append(entries, formEntry{"columns", fd.Columns})
	}
	if len(fd.Metrics) > 0 {
		entries = append(entries, formEntry{"metrics", fd.Metrics})
	}

	keys := make([]string, 0, len(fd.Controls))
	for k := range fd.Controls {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if fd.Controls[k] != nil {
			entries = append(entries, formEntry{k, fd.Controls[k]})
		}
	}
	return entries
}

func extractQueryFields(fd FormData, aliases FieldAliases) (queryFields, error) {
	var columns, metrics []string
	var orderby []OrderByClause

	for _, entry := range formEntries(fd) {
		target := aliases[entry.key]
		if target == "" {
			target = defaultFieldAliases[entry.key]
		}
		if target == "" {
			target = entry.key
		}

		if fd.QueryMode == QueryModeAggregate && target == "columns" {
			continue
		}
		if fd.QueryMode == QueryModeRaw && (target == "groupby" || target == "metrics") {
			continue
		}

		switch target {
		case "groupby", "columns":
			columns = append(columns, stringValues(entry.value)...)
		case "metrics":
			metrics = append(metrics, stringValues(entry.value)...)
		case "orderby":
			clauses, err := orderByValues(entry.value)
			if err != nil {
				return queryFields{}, fmt.Errorf("%s: %w", entry.key, err)
			}
			orderby = append(orderby, clauses...)
		}
	}

	if fd.IncludeTime && !slices.Contains(columns, TimestampColumn) {
		columns = append([]string{TimestampColumn}, columns...)
	}

	fields := queryFields{
		Columns: dedupe(columns),
		Orderby: orderby,
	}
	if fd.QueryMode != QueryModeRaw {
		fields.Metrics = dedupe(metrics)
	}
	return fields, nil
}

// stringValues flattens a control value into column or metric names.
// Non-string items are skipped.
func stringValues(v any) []string {
	switch t := v.(type) {
	case string:
		if t == "" {
			return nil
		}
		return []string{t}
	case []string:
		return t
	case []any:
		var out []string
		for _, item := range t {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// orderByValues accepts a single clause or a list of clauses, each either a
// [column, ascending] pair or its JSON string encoding.
func orderByValues(v any) ([]OrderByClause, error) {
	switch t := v.(type) {
	case []OrderByClause:
		return t, nil
	case string:
		c, err := orderByFromString(t)
		if err != nil {
			return nil, err
		}
		return []OrderByClause{c}, nil
	case []any:
		if c, ok := orderByPair(t); ok {
			return []OrderByClause{c}, nil
		}
		out := make([]OrderByClause, 0, len(t))
		for _, item := range t {
			switch it := item.(type) {
			case string:
				c, err := orderByFromString(it)
				if err != nil {
					return nil, err
				}
				out = append(out, c)
			case []any:
				c, ok := orderByPair(it)
				if !ok {
					return nil, fmt.Errorf("%w: %v", ErrInvalidOrderBy, it)
				}
				out = append(out, c)
			default:
				return nil, fmt.Errorf("%w: %v", ErrInvalidOrderBy, it)
			}
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrInvalidOrderBy, v)
}

func orderByFromString(s string) (OrderByClause, error) {
	var c OrderByClause
	if err := json.Unmarshal([]byte(s), &c); err != nil {
		return OrderByClause{}, fmt.Errorf("%w %q: %v", ErrInvalidOrderBy, s, err)
	}
	return c, nil
}

func orderByPair(pair []any) (OrderByClause, bool) {
	if len(pair) != 2 {
		return OrderByClause{}, false
	}
	col, ok := pair[0].(string)
	if !ok {
		return OrderByClause{}, false
	}
	asc, ok := pair[1].(bool)
	if !ok {
		return OrderByClause{}, false
	}
	return OrderByClause{Column: col, Ascending: asc}, true
}

func dedupe(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
