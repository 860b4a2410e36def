package query

import (
	"maps"
	"strings"
)

// ============================================================================
// BASE QUERY OBJECT — FormData → QueryObject
// ============================================================================
// Pipeline:
//   1. Extract columns / metrics / orderby through field aliases
//   2. Merge dashboard-injected extra form data (filters, time overrides)
//   3. Split adhoc filters into structured filters and free-form SQL
//   4. Apply limit/order defaults
// ============================================================================

var unaryOperators = map[string]bool{
	"IS NULL":     true,
	"IS NOT NULL": true,
	"IS TRUE":     true,
	"IS FALSE":    true,
}

// BuildQueryObject builds the base query from form data.
func BuildQueryObject(fd FormData, aliases FieldAliases) (QueryObject, error) {
	fields, err := extractQueryFields(fd, aliases)
	if err != nil {
		return QueryObject{}, err
	}

	extra := ExtraFormData{}
	if fd.ExtraFormData != nil {
		extra = *fd.ExtraFormData
	}

	granularity := fd.Granularity
	if granularity == "" {
		granularity = fd.GranularitySQLA
	}
	timeRange := fd.TimeRange
	timeGrain := fd.TimeGrainSQLA

	// ── extra form data overrides ─────────────────────────────────────────
	if extra.TimeRange != "" {
		timeRange = extra.TimeRange
	}
	if extra.GranularitySQLA != "" {
		granularity = extra.GranularitySQLA
	}
	if extra.TimeGrainSQLA != "" {
		timeGrain = extra.TimeGrainSQLA
	}

	adhoc := append(append([]AdhocFilter{}, fd.AdhocFilters...), extra.AdhocFilters...)
	filters, extras := processFilters(adhoc, fd.Where, fd.Having)
	filters = append(filters, extra.Filters...)
	extras.TimeGrainSQLA = timeGrain

	qo := QueryObject{
		TimeRange:         timeRange,
		Since:             fd.Since,
		Until:             fd.Until,
		Granularity:       granularity,
		Columns:           fields.Columns,
		Metrics:           fields.Metrics,
		Orderby:           fields.Orderby,
		Filters:           filters,
		Extras:            extras,
		RowLimit:          copyInt(fd.RowLimit),
		RowOffset:         copyInt(fd.RowOffset),
		OrderDesc:         true,
		SeriesColumns:     append([]string(nil), fd.SeriesColumns...),
		SeriesLimitMetric: fd.SeriesLimitMetric,
		URLParams:         maps.Clone(fd.URLParams),
		CustomParams:      maps.Clone(fd.CustomParams),
		CustomFormData:    maps.Clone(extra.CustomFormData),
	}

	if fd.OrderDesc != nil {
		qo.OrderDesc = *fd.OrderDesc
	}
	switch {
	case fd.SeriesLimit != nil:
		qo.SeriesLimit = *fd.SeriesLimit
	case fd.Limit != nil:
		qo.SeriesLimit = *fd.Limit
	}
	if qo.SeriesLimitMetric == "" {
		qo.SeriesLimitMetric = fd.TimeseriesLimitMetric
	}

	return qo, nil
}

// processFilters turns SIMPLE WHERE filters into filter clauses and gathers
// SQL filters, together with the plain where/having strings, into extras.
// SIMPLE HAVING filters have no structured form and are dropped.
func processFilters(adhoc []AdhocFilter, where, having string) ([]FilterClause, QueryExtras) {
	filters := []FilterClause{}
	var freeformWhere, freeformHaving []string
	if where != "" {
		freeformWhere = append(freeformWhere, where)
	}
	if having != "" {
		freeformHaving = append(freeformHaving, having)
	}

	for _, f := range adhoc {
		if f.ExpressionType == ExpressionSimple {
			if f.Clause == ClauseWhere {
				filters = append(filters, convertFilter(f))
			}
			continue
		}
		if f.SQLExpression == "" {
			continue
		}
		if f.Clause == ClauseWhere {
			freeformWhere = append(freeformWhere, f.SQLExpression)
		} else {
			freeformHaving = append(freeformHaving, f.SQLExpression)
		}
	}

	return filters, QueryExtras{
		Where:  joinPredicates(freeformWhere),
		Having: joinPredicates(freeformHaving),
	}
}

func convertFilter(f AdhocFilter) FilterClause {
	clause := FilterClause{Col: f.Subject, Op: f.Operator}
	if !unaryOperators[strings.ToUpper(f.Operator)] {
		clause.Val = f.Comparator
	}
	return clause
}

func joinPredicates(exprs []string) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = "(" + e + ")"
	}
	return strings.Join(parts, " AND ")
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	n := *v
	return &n
}
