// Package numfmt formats numbers for dashboard display.
//
// The smart formatter adapts to magnitude: byte tiers for large values,
// fixed decimals in the everyday range, SI micro units for tiny ones.
// Formatters are collected in a Registry keyed by id.
package numfmt

import (
	"fmt"
	"math"
	"strconv"
)

// ============================================================================
// FORMATTER — Named number formatting function
// ============================================================================
// A Formatter pairs a formatting function with the metadata a catalog needs
// to list it (id, label, description). Non-finite input is handled here so
// individual format functions only see finite values through Format.
// ============================================================================

// Config describes a formatter to construct with New.
type Config struct {
	ID          string
	Label       string
	Description string
	FormatFunc  func(value float64) string
}

// Formatter renders numbers for display.
type Formatter struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`

	formatFunc func(value float64) string
}

// New creates a Formatter from cfg. A nil FormatFunc renders the shortest
// decimal representation of the value.
func New(cfg Config) *Formatter {
	fn := cfg.FormatFunc
	if fn == nil {
		fn = func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	}
	return &Formatter{
		ID:          cfg.ID,
		Label:       cfg.Label,
		Description: cfg.Description,
		formatFunc:  fn,
	}
}

// Format renders value. NaN and infinities are rendered by the formatter
// itself and never reach the format function.
func (f *Formatter) Format(value float64) string {
	switch {
	case math.IsNaN(value):
		return "NaN"
	case math.IsInf(value, 1):
		return "∞"
	case math.IsInf(value, -1):
		return "-∞"
	}
	return f.formatFunc(value)
}

// FormatNullable renders a value that may be missing.
func (f *Formatter) FormatNullable(value *float64) string {
	if value == nil {
		return "null"
	}
	return f.Format(*value)
}

// Preview shows how value is rendered, e.g. "12345.432 => 12.06 KB".
func (f *Formatter) Preview(value float64) string {
	return fmt.Sprintf("%s => %s", strconv.FormatFloat(value, 'f', -1, 64), f.Format(value))
}
