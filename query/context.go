package query

import (
	"errors"
	"fmt"
	"log/slog"
)

// ============================================================================
// QUERY CONTEXT BUILDER — Entry point for data-fetching layers
// ============================================================================
// Pipeline:
//   1. Resolve Config (nil, Transform, or Options) into settings
//   2. Parse the datasource key
//   3. Build the base QueryObject
//   4. Run the transform with own state and hooks
//   5. Apply force / result_format / result_type defaults
//
// Any error in 2–4 is returned as-is; no partial context is produced.
// ============================================================================

// ErrNoQueries is returned when a transform yields no queries.
var ErrNoQueries = errors.New("transform produced no queries")

// SetDataMaskHook publishes derived selection state to the dashboard.
type SetDataMaskHook func(mask DataMask)

// SetCachedChangesHook stores partial results a chart wants to keep.
type SetCachedChangesHook func(changes any)

// Hooks are callbacks a transform may invoke synchronously.
type Hooks struct {
	// SetDataMask falls back to a no-op when nil.
	SetDataMask SetDataMaskHook
	// SetCachedChanges falls back to a no-op when nil.
	SetCachedChanges SetCachedChangesHook
}

func (h Hooks) withDefaults() Hooks {
	if h.SetDataMask == nil {
		h.SetDataMask = func(DataMask) {}
	}
	if h.SetCachedChanges == nil {
		h.SetCachedChanges = func(any) {}
	}
	return h
}

// TransformExtras carries values produced outside the form.
type TransformExtras struct {
	CachedChanges any `json:"cachedChanges,omitempty"`
}

// TransformOptions is passed to a Transform. Hooks are always non-nil.
type TransformOptions struct {
	Extras   TransformExtras
	OwnState JSONObject
	Hooks    Hooks
}

// Transform turns the base query into the final list of queries.
type Transform func(base QueryObject, opts TransformOptions) []QueryObject

// Options configures BuildQueryContext. Zero fields use their defaults.
type Options struct {
	// Transform defaults to wrapping the base query in a one-element slice.
	Transform Transform
	// FieldAliases defaults to none beyond the built-in aliases.
	FieldAliases FieldAliases
	// OwnState defaults to an empty object.
	OwnState JSONObject
	Hooks    Hooks
}

// Config is either a Transform or an Options value (or *Options).
type Config interface {
	queryConfig()
}

func (Transform) queryConfig() {}
func (Options) queryConfig()   {}

type settings struct {
	transform Transform
	aliases   FieldAliases
	ownState  JSONObject
	hooks     Hooks
}

func wrapInSlice(base QueryObject, _ TransformOptions) []QueryObject {
	return []QueryObject{base}
}

func resolveConfig(cfg Config) settings {
	s := settings{
		transform: wrapInSlice,
		aliases:   FieldAliases{},
		ownState:  JSONObject{},
	}

	var opts *Options
	switch c := cfg.(type) {
	case Transform:
		if c != nil {
			s.transform = c
		}
	case Options:
		opts = &c
	case *Options:
		opts = c
	}

	if opts != nil {
		if opts.Transform != nil {
			s.transform = opts.Transform
		}
		if opts.FieldAliases != nil {
			s.aliases = opts.FieldAliases
		}
		if opts.OwnState != nil {
			s.ownState = opts.OwnState
		}
		s.hooks = opts.Hooks
	}
	s.hooks = s.hooks.withDefaults()
	return s
}

// BuildQueryContext assembles the request for a chart.
//
// cfg may be nil, a Transform, or Options:
//
//	ctx, err := query.BuildQueryContext(fd, query.Transform(func(base query.QueryObject, _ query.TransformOptions) []query.QueryObject {
//	    return []query.QueryObject{base, totals(base)}
//	}))
func BuildQueryContext(fd FormData, cfg Config) (*QueryContext, error) {
	s := resolveConfig(cfg)

	datasource, err := ParseDatasourceKey(fd.Datasource)
	if err != nil {
		return nil, err
	}

	base, err := BuildQueryObject(fd, s.aliases)
	if err != nil {
		return nil, fmt.Errorf("build query object: %w", err)
	}

	queries := s.transform(base, TransformOptions{
		Extras:   TransformExtras{},
		OwnState: s.ownState,
		Hooks:    s.hooks,
	})
	if len(queries) == 0 {
		return nil, fmt.Errorf("datasource %s: %w", datasource, ErrNoQueries)
	}

	qc := &QueryContext{
		Datasource:   datasource,
		Force:        fd.Force,
		Queries:      queries,
		ResultFormat: fd.ResultFormat,
		ResultType:   fd.ResultType,
	}
	if qc.ResultFormat == "" {
		qc.ResultFormat = ResultFormatJSON
	}
	if qc.ResultType == "" {
		qc.ResultType = ResultTypeFull
	}

	slog.Debug("query context built",
		"datasource", datasource.String(),
		"queries", len(queries),
		"result_format", qc.ResultFormat,
		"result_type", qc.ResultType)

	return qc, nil
}
