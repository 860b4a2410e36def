// Package vizcore provides the number formatting and query building core of
// a BI dashboard's chart layer.
//
// Usage:
//
//	import (
//	    "github.com/spektr-org/vizcore/numfmt"
//	    "github.com/spektr-org/vizcore/query"
//	)
//
//	f := numfmt.NewSmartFormatter(numfmt.WithSigned())
//	f.Format(1500) // "+1.46 KB"
//
//	ctx, err := query.BuildQueryContext(formData, query.Options{
//	    FieldAliases: query.FieldAliases{"series": "metrics"},
//	})
//
// The numfmt package renders values for axes, tooltips and tables. The query
// package turns a chart's saved form data into the request body sent to the
// data API. Neither package performs I/O.
package vizcore
