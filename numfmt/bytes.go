package numfmt

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// ============================================================================
// BYTE TIERS — Power-of-1024 scaling with KB..YB labels
// ============================================================================
// Tiers step by exact powers of two (2^10 per tier) while the labels read
// like decimal units (1024 → "1 KB").
// ============================================================================

var byteTiers = [...]string{"", "KB", "MB", "GB", "TB", "PB", "EB", "ZB", "YB"}

// byteTierParts scales v into its tier. Values below 1 and non-finite
// values stay in tier 0.
func byteTierParts(v float64) (float64, int) {
	if math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) < 1 {
		return v, 0
	}
	exponent := math.Log2(math.Abs(v))
	tier := min(int(math.Trunc(exponent/10)), len(byteTiers)-1)
	return v / math.Exp2(float64(tier*10)), tier
}

type byteFormatter struct {
	printer *message.Printer
}

func newByteFormatter(tag language.Tag) byteFormatter {
	return byteFormatter{printer: message.NewPrinter(tag)}
}

// format renders the scaled value with locale grouping and at most two
// fractional digits (halves round up), then a space and the tier label.
// Tier 0 keeps the trailing space.
func (b byteFormatter) format(v float64) string {
	x, tier := byteTierParts(v)
	return b.decimal(x) + " " + byteTiers[tier]
}

func (b byteFormatter) decimal(x float64) string {
	switch {
	case math.IsNaN(x):
		return "NaN"
	case math.IsInf(x, 1):
		return "∞"
	case math.IsInf(x, -1):
		return "-∞"
	}
	abs := math.Abs(x)
	if abs >= 1e21 {
		// Beyond YB: shortest digits, zero padded, instead of the exact
		// binary expansion.
		digits, _ := decimalParts(abs, 0)
		return b.printer.Sprint(number.Decimal(x, number.Precision(len(digits))))
	}
	return b.printer.Sprint(number.Decimal(math.Copysign(breakTie(abs, 2), x), number.MaxFractionDigits(2)))
}
