package query

import (
	"encoding/json"
	"reflect"
	"strings"
)

// ============================================================================
// QUERY TYPES — Form data in, query context out
// ============================================================================
// FormData is what a chart's control panel produces. The builder turns it
// into a QueryContext: one or more QueryObjects plus the datasource and
// result options the transport layer serializes.
// ============================================================================

// JSONObject is an opaque JSON object passed through untouched.
type JSONObject = map[string]any

// ResultFormat selects the serialization of query results.
type ResultFormat string

const (
	ResultFormatJSON ResultFormat = "json"
	ResultFormatCSV  ResultFormat = "csv"
	ResultFormatXLSX ResultFormat = "xlsx"
)

// ResultType selects what the backend returns for a query.
type ResultType string

const (
	ResultTypeFull          ResultType = "full"
	ResultTypeSamples       ResultType = "samples"
	ResultTypeQuery         ResultType = "query"
	ResultTypeResults       ResultType = "results"
	ResultTypeColumns       ResultType = "columns"
	ResultTypeTimegrains    ResultType = "timegrains"
	ResultTypePostProcessed ResultType = "post_processed"
	ResultTypeDrillDetail   ResultType = "drill_detail"
)

// QueryMode switches between aggregated and raw-record charts.
type QueryMode string

const (
	QueryModeAggregate QueryMode = "aggregate"
	QueryModeRaw       QueryMode = "raw"
)

// ============================================================================
// FORM DATA
// ============================================================================

// FormData is the chart form state.
//
// Keys without a dedicated field are collected in Controls when decoding
// JSON; field aliases map them onto metrics, columns or orderby.
type FormData struct {
	Datasource   string       `json:"datasource"`
	VizType      string       `json:"viz_type,omitempty"`
	Force        bool         `json:"force,omitempty"`
	ResultFormat ResultFormat `json:"result_format,omitempty"`
	ResultType   ResultType   `json:"result_type,omitempty"`

	TimeRange       string `json:"time_range,omitempty"`
	Since           string `json:"since,omitempty"`
	Until           string `json:"until,omitempty"`
	Granularity     string `json:"granularity,omitempty"`
	GranularitySQLA string `json:"granularity_sqla,omitempty"`
	TimeGrainSQLA   string `json:"time_grain_sqla,omitempty"`

	Groupby      []string      `json:"groupby,omitempty"`
	Columns      []string      `json:"columns,omitempty"`
	Metrics      []string      `json:"metrics,omitempty"`
	AdhocFilters []AdhocFilter `json:"adhoc_filters,omitempty"`
	Where        string        `json:"where,omitempty"`
	Having       string        `json:"having,omitempty"`

	RowLimit              *int     `json:"row_limit,omitempty"`
	RowOffset             *int     `json:"row_offset,omitempty"`
	OrderDesc             *bool    `json:"order_desc,omitempty"`
	Limit                 *int     `json:"limit,omitempty"`
	SeriesColumns         []string `json:"series_columns,omitempty"`
	SeriesLimit           *int     `json:"series_limit,omitempty"`
	SeriesLimitMetric     string   `json:"series_limit_metric,omitempty"`
	TimeseriesLimitMetric string   `json:"timeseries_limit_metric,omitempty"`

	URLParams    map[string]string `json:"url_params,omitempty"`
	CustomParams JSONObject        `json:"custom_params,omitempty"`

	QueryMode     QueryMode      `json:"query_mode,omitempty"`
	IncludeTime   bool           `json:"include_time,omitempty"`
	ExtraFormData *ExtraFormData `json:"extra_form_data,omitempty"`

	// Controls holds viz-specific controls ("metric", "x", "series", ...).
	Controls map[string]any `json:"-"`
}

// formDataKeys are the JSON keys with a dedicated FormData field.
var formDataKeys = jsonKeys(reflect.TypeOf(FormData{}))

// UnmarshalJSON decodes known keys into fields and the rest into Controls.
func (fd *FormData) UnmarshalJSON(data []byte) error {
	type plain FormData
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	var all map[string]any
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	for key, value := range all {
		if formDataKeys[key] {
			continue
		}
		if p.Controls == nil {
			p.Controls = make(map[string]any)
		}
		p.Controls[key] = value
	}

	*fd = FormData(p)
	return nil
}

func jsonKeys(t reflect.Type) map[string]bool {
	keys := make(map[string]bool, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		if name != "" && name != "-" {
			keys[name] = true
		}
	}
	return keys
}

// ExtraFormData is injected by dashboard-level filters and cross filters.
type ExtraFormData struct {
	AdhocFilters    []AdhocFilter  `json:"adhoc_filters,omitempty"`
	Filters         []FilterClause `json:"filters,omitempty"`
	TimeRange       string         `json:"time_range,omitempty"`
	GranularitySQLA string         `json:"granularity_sqla,omitempty"`
	TimeGrainSQLA   string         `json:"time_grain_sqla,omitempty"`
	CustomFormData  JSONObject     `json:"custom_form_data,omitempty"`
}

// ============================================================================
// FILTERS
// ============================================================================

// Adhoc filter expression types and clauses.
const (
	ExpressionSimple = "SIMPLE"
	ExpressionSQL    = "SQL"

	ClauseWhere  = "WHERE"
	ClauseHaving = "HAVING"
)

// AdhocFilter is a filter built in the explore UI.
// SIMPLE filters use Subject/Operator/Comparator; SQL filters use SQLExpression.
type AdhocFilter struct {
	ExpressionType string `json:"expressionType"`
	Clause         string `json:"clause"`
	Subject        string `json:"subject,omitempty"`
	Operator       string `json:"operator,omitempty"`
	Comparator     any    `json:"comparator,omitempty"`
	SQLExpression  string `json:"sqlExpression,omitempty"`
}

// FilterClause is a structured WHERE predicate.
type FilterClause struct {
	Col string `json:"col"`
	Op  string `json:"op"`
	Val any    `json:"val,omitempty"`
}

// ============================================================================
// QUERY OBJECT
// ============================================================================

// QueryObject is one query against the datasource.
type QueryObject struct {
	TimeRange   string `json:"time_range,omitempty"`
	Since       string `json:"since,omitempty"`
	Until       string `json:"until,omitempty"`
	Granularity string `json:"granularity,omitempty"`

	Columns []string        `json:"columns,omitempty"`
	Metrics []string        `json:"metrics,omitempty"`
	Orderby []OrderByClause `json:"orderby,omitempty"`
	Filters []FilterClause  `json:"filters"`
	Extras  QueryExtras     `json:"extras"`

	RowLimit          *int     `json:"row_limit,omitempty"`
	RowOffset         *int     `json:"row_offset,omitempty"`
	OrderDesc         bool     `json:"order_desc"`
	SeriesColumns     []string `json:"series_columns,omitempty"`
	SeriesLimit       int      `json:"series_limit"`
	SeriesLimitMetric string   `json:"series_limit_metric,omitempty"`

	URLParams      map[string]string `json:"url_params,omitempty"`
	CustomParams   JSONObject        `json:"custom_params,omitempty"`
	CustomFormData JSONObject        `json:"custom_form_data,omitempty"`
}

// QueryExtras carries free-form SQL predicates and the time grain.
type QueryExtras struct {
	Where         string `json:"where,omitempty"`
	Having        string `json:"having,omitempty"`
	TimeGrainSQLA string `json:"time_grain_sqla,omitempty"`
}

// OrderByClause sorts by a column or metric. Serialized as [column, ascending].
type OrderByClause struct {
	Column    string
	Ascending bool
}

// MarshalJSON encodes the clause as a two-element array.
func (o OrderByClause) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{o.Column, o.Ascending})
}

// UnmarshalJSON decodes a [column, ascending] array.
func (o *OrderByClause) UnmarshalJSON(data []byte) error {
	var tuple []json.RawMessage
	if err := json.Unmarshal(data, &tuple); err != nil {
		return err
	}
	if len(tuple) != 2 {
		return ErrInvalidOrderBy
	}
	if err := json.Unmarshal(tuple[0], &o.Column); err != nil {
		return err
	}
	return json.Unmarshal(tuple[1], &o.Ascending)
}

// ============================================================================
// QUERY CONTEXT
// ============================================================================

// QueryContext is the request the transport layer sends to the backend.
// Queries is never empty.
type QueryContext struct {
	Datasource   DatasourceKey `json:"datasource"`
	Force        bool          `json:"force"`
	Queries      []QueryObject `json:"queries" jsonschema:"minItems=1"`
	ResultFormat ResultFormat  `json:"result_format"`
	ResultType   ResultType    `json:"result_type"`
}

// DataMask is the derived selection state a chart publishes to the dashboard.
type DataMask struct {
	ExtraFormData *ExtraFormData `json:"extraFormData,omitempty"`
	FilterState   JSONObject     `json:"filterState,omitempty"`
	OwnState      JSONObject     `json:"ownState,omitempty"`
}
