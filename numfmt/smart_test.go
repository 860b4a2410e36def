package numfmt

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

// ============================================================================
// SMART FORMATTER TESTS
// ============================================================================

func TestSmartFormatterMagnitudeBranches(t *testing.T) {
	f := NewSmartFormatter()

	tests := []struct {
		name  string
		value float64
		want  string
	}{
		{"zero", 0, "0"},
		{"negative zero", math.Copysign(0, -1), "0"},

		// ── byte tiers ──
		{"thousand stays in tier 0", 1000, "1,000 "},
		{"exactly 1024", 1024, "1 KB"},
		{"fractional KB", 1500, "1.46 KB"},
		{"grouped KB", 12345.432, "12.06 KB"},
		{"exactly 2^20", 1 << 20, "1 MB"},
		{"negative KB", -2048, "-2 KB"},
		{"tier capped at YB", math.Exp2(90), "1,024 YB"},
		{"beyond YB", 1e30 * math.Exp2(80), "1,000,000,000,000,000,000,000,000,000,000 YB"},
		{"half KB rounds up", 1152, "1.13 KB"},
		{"1.625 KB rounds up", 1664, "1.63 KB"},
		{"negative half KB", -1152, "-1.13 KB"},
		{"half in tier 0", 1000.125, "1,000.13 "},

		// ── 2 decimals ──
		{"one", 1, "1"},
		{"rounded to 2 places", 42.567, "42.57"},
		{"trailing zero trimmed", 3.5, "3.5"},
		{"negative fixed", -5, "-5"},
		{"half at 2 places", 2.125, "2.13"},

		// ── 4 decimals ──
		{"quarter", 0.25, "0.25"},
		{"tenth", 0.1000, "0.1"},
		{"rounded to 4 places", 0.56789, "0.5679"},
		{"lower bound", 0.001, "0.001"},
		{"negative fraction", -0.5, "-0.5"},
		{"half at 4 places", 0.03125, "0.0313"},

		// ── micro ──
		{"micro", 0.0000025, "2.5µ"},
		{"micro three digits", 0.000123, "123µ"},
		{"negative micro", -0.0000025, "-2.5µ"},

		// ── SI ──
		{"exactly one millionth", 0.000001, "1µ"},
		{"nano", 1e-7, "100n"},
		{"negative nano", -1e-7, "-100n"},
		{"below yocto", 1e-30, "0.000001y"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.Format(tt.value))
		})
	}
}

func TestSmartFormatterNonFinite(t *testing.T) {
	f := NewSmartFormatter()

	assert.Equal(t, "NaN", f.Format(math.NaN()))
	assert.Equal(t, "∞", f.Format(math.Inf(1)))
	assert.Equal(t, "-∞", f.Format(math.Inf(-1)))

	// The raw policy routes infinities through the byte-tier branch.
	bytes := newByteFormatter(language.English)
	assert.Equal(t, "∞ ", smartValue(math.Inf(1), bytes))
	assert.Equal(t, "-∞ ", smartValue(math.Inf(-1), bytes))
	assert.Equal(t, "NaN", smartValue(math.NaN(), bytes))
}

func TestSmartFormatterFractionDigits(t *testing.T) {
	f := NewSmartFormatter()

	for _, v := range []float64{0.001, 0.0123456, 0.3333333, 0.999949} {
		out := f.Format(v)
		_, frac, found := strings.Cut(out, ".")
		if found {
			assert.LessOrEqual(t, len(frac), 4, "%v rendered as %q", v, out)
			assert.False(t, strings.HasSuffix(frac, "0"), "%v rendered as %q", v, out)
		}
	}
	for _, v := range []float64{1, 1.005, 42.567, 999.4} {
		out := f.Format(v)
		_, frac, found := strings.Cut(out, ".")
		if found {
			assert.LessOrEqual(t, len(frac), 2, "%v rendered as %q", v, out)
		}
	}
}

func TestSmartFormatterTierMonotonic(t *testing.T) {
	f := NewSmartFormatter()

	for i := 1; i < len(byteTiers); i++ {
		v := math.Exp2(float64(i * 10))
		assert.Equal(t, "1 "+byteTiers[i], f.Format(v))
		assert.True(t, strings.HasSuffix(f.Format(v*3), " "+byteTiers[i]))
	}
}

func TestSmartFormatterSigned(t *testing.T) {
	f := NewSmartFormatter(WithSigned())

	assert.Equal(t, "+5", f.Format(5))
	assert.True(t, strings.HasPrefix(f.Format(5), "+"))
	assert.False(t, strings.HasPrefix(f.Format(-5), "+"))
	assert.Equal(t, "-5", f.Format(-5))
	assert.Equal(t, "0", f.Format(0))
	assert.Equal(t, "+1 KB", f.Format(1024))
	assert.Equal(t, "+2.5µ", f.Format(0.0000025))
	assert.Equal(t, "NaN", f.Format(math.NaN()))
}

func TestSmartFormatterMetadata(t *testing.T) {
	unsigned := NewSmartFormatter()
	assert.Equal(t, SmartNumber, unsigned.ID)
	assert.Equal(t, DefaultSmartLabel, unsigned.Label)
	assert.Empty(t, unsigned.Description)

	signed := NewSmartFormatter(WithSigned())
	assert.Equal(t, SmartNumberSigned, signed.ID)

	custom := NewSmartFormatter(
		WithSigned(),
		WithID("BYTES_ADAPTIVE"),
		WithLabel(""),
		WithDescription("Adaptive with sign"),
	)
	assert.Equal(t, "BYTES_ADAPTIVE", custom.ID)
	assert.Equal(t, "", custom.Label)
	assert.Equal(t, "Adaptive with sign", custom.Description)
	assert.Equal(t, "+5", custom.Format(5))
}

func TestSmartFormatterLocale(t *testing.T) {
	f := NewSmartFormatter(WithLocale(language.German))

	assert.Equal(t, "1,46 KB", f.Format(1500))
	assert.Equal(t, "1,5 MB", f.Format(1.5*(1<<20)))
	assert.Equal(t, "1.000 ", f.Format(1000))
	// Fixed and SI branches are locale independent.
	assert.Equal(t, "42.57", f.Format(42.567))
}
