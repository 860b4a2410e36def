package numfmt

import "math"

// ============================================================================
// SMART FORMATTER — Picks a representation from the value's magnitude
// ============================================================================
// Policy, checked in order:
//   0                      → "0"
//   |v| >= 1000            → byte tiers ("1.46 KB")
//   1 <= |v| < 1000        → 2 decimals ("42.57")
//   0.001 <= |v| < 1       → 4 decimals ("0.25")
//   0.000001 < |v| < 0.001 → micro units, 3 significant digits ("2.5µ")
//   otherwise              → SI prefix, 3 significant digits ("100n")
// ============================================================================

// NewSmartFormatter builds the adaptive formatter.
//
//	f := numfmt.NewSmartFormatter(numfmt.WithSigned())
//	f.Format(0.25) // "+0.25"
func NewSmartFormatter(opts ...Option) *Formatter {
	cfg := applyOptions(opts)
	bytes := newByteFormatter(cfg.Locale)

	sign := func(float64) string { return "" }
	if cfg.Signed {
		sign = func(v float64) string {
			if v > 0 {
				return "+"
			}
			return ""
		}
	}

	return New(Config{
		ID:          cfg.ID,
		Label:       cfg.Label,
		Description: cfg.Description,
		FormatFunc: func(v float64) string {
			return sign(v) + smartValue(v, bytes)
		},
	})
}

func smartValue(v float64, bytes byteFormatter) string {
	if v == 0 {
		return "0"
	}
	abs := math.Abs(v)
	switch {
	case abs >= 1000:
		return bytes.format(v)
	case abs >= 1:
		return formatFixed(v, 2)
	case abs >= 0.001:
		return formatFixed(v, 4)
	case abs > 0.000001:
		return formatSI(v*1000000, 3) + "µ"
	}
	return formatSI(v, 3)
}
