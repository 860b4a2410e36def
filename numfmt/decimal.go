package numfmt

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// ============================================================================
// DECIMAL RENDERING — Fixed-point and SI-prefix notation
// ============================================================================
// Both renderers trim insignificant trailing zeros ("1.50" → "1.5",
// "2.00" → "2") and drop the sign of a negative value that rounds to zero.
// Exact halves round away from zero (2.125 → "2.13").
// ============================================================================

// siPrefixes covers 10^-24 (y) through 10^24 (Y); index 8 is the unit.
var siPrefixes = [...]string{"y", "z", "a", "f", "p", "n", "µ", "m", "", "k", "M", "G", "T", "P", "E", "Z", "Y"}

// formatFixed renders x with at most digits fractional digits.
func formatFixed(x float64, digits int) string {
	if math.IsNaN(x) {
		return "NaN"
	}
	abs := math.Abs(x)
	body := "Infinity"
	if !math.IsInf(abs, 0) {
		body = strconv.FormatFloat(breakTie(abs, digits), 'f', digits, 64)
	}
	return withSign(trimZeros(body), isNegative(x))
}

// formatSI renders x at p significant digits with an SI prefix.
// The value is rounded before the prefix is chosen, so 999.9 becomes "1k".
func formatSI(x float64, p int) string {
	if math.IsNaN(x) {
		return "NaN"
	}
	abs := math.Abs(x)
	if math.IsInf(abs, 0) {
		return withSign("Infinity", isNegative(x))
	}

	digits, exp := decimalParts(abs, p)
	tier := int(math.Floor(float64(exp) / 3))
	tier = max(-8, min(8, tier))

	var body string
	i := exp - tier*3 + 1
	n := len(digits)
	switch {
	case i == n:
		body = digits
	case i > n:
		body = digits + strings.Repeat("0", i-n)
	case i > 0:
		body = digits[:i] + "." + digits[i:]
	default:
		// Below 1y: spell out the leading zeros.
		rest, _ := decimalParts(abs, max(0, p+i-1))
		body = "0." + strings.Repeat("0", -i) + rest
	}

	return withSign(trimZeros(body), isNegative(x)) + siPrefixes[8+tier]
}

// decimalParts returns the significant digits of x (no decimal point) and
// its base-10 exponent, rounded to p significant digits. p == 0 keeps the
// shortest exact representation.
func decimalParts(x float64, p int) (string, int) {
	prec := -1
	if p > 0 {
		prec = p - 1
		_, exp := decimalParts(x, 0)
		x = breakTie(x, prec-exp)
	}
	s := strconv.FormatFloat(x, 'e', prec, 64)
	e := strings.IndexByte(s, 'e')
	exp, _ := strconv.Atoi(s[e+1:])
	return strings.Replace(s[:e], ".", "", 1), exp
}

// breakTie moves a non-negative x that lies exactly halfway between two
// values with digits fractional digits one ulp up, so strconv (which rounds
// ties to even) rounds it up. digits may be negative.
func breakTie(x float64, digits int) float64 {
	r := new(big.Rat).SetFloat64(x)
	if r == nil {
		return x
	}
	n := int64(digits)
	if n < 0 {
		n = -n
	}
	scale := new(big.Rat).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(n), nil))
	if digits >= 0 {
		r.Mul(r, scale)
	} else {
		r.Quo(r, scale)
	}
	r.Mul(r, big.NewRat(2, 1))
	if r.IsInt() && r.Num().Bit(0) == 1 {
		return math.Nextafter(x, math.Inf(1))
	}
	return x
}

func trimZeros(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

func withSign(body string, negative bool) string {
	if !negative {
		return body
	}
	if v, err := strconv.ParseFloat(body, 64); err == nil && v == 0 {
		return body
	}
	return "-" + body
}

func isNegative(x float64) bool {
	return x < 0 || (x == 0 && math.Signbit(x))
}
