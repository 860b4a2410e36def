package numfmt

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatFixed(t *testing.T) {
	tests := []struct {
		value  float64
		digits int
		want   string
	}{
		{42.567, 2, "42.57"},
		{2, 2, "2"},
		{1.5, 4, "1.5"},
		{-0.00001, 2, "0"},
		{-12.3, 2, "-12.3"},
		{2.125, 2, "2.13"},
		{-2.125, 2, "-2.13"},
		{0.125, 2, "0.13"},
		{0.03125, 4, "0.0313"},
		{1.005, 2, "1"},
		{math.Inf(-1), 2, "-Infinity"},
		{math.NaN(), 2, "NaN"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatFixed(tt.value, tt.digits), "formatFixed(%v, %d)", tt.value, tt.digits)
	}
}

func TestFormatSI(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{0, "0"},
		{1, "1"},
		{2.5, "2.5"},
		{999.9, "1k"},
		{1234567, "1.23M"},
		{1125, "1.13k"},
		{0.0123, "12.3m"},
		{-4.56e-9, "-4.56n"},
		{1e30, "1000000Y"},
		{math.Inf(1), "Infinity"},
		{math.NaN(), "NaN"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatSI(tt.value, 3), "formatSI(%v)", tt.value)
	}
}

func TestDecimalParts(t *testing.T) {
	digits, exp := decimalParts(123456, 3)
	assert.Equal(t, "123", digits)
	assert.Equal(t, 5, exp)

	digits, exp = decimalParts(0.00042, 0)
	assert.Equal(t, "42", digits)
	assert.Equal(t, -4, exp)
}

func TestBreakTie(t *testing.T) {
	assert.Greater(t, breakTie(1.125, 2), 1.125)
	assert.Greater(t, breakTie(1250, -2), 1250.0)
	assert.Equal(t, 1.12, breakTie(1.12, 2))
	assert.Equal(t, 1.375, breakTie(1.375, 3))
	assert.Equal(t, 1200.0, breakTie(1200, -2))
	assert.Equal(t, math.Inf(1), breakTie(math.Inf(1), 2))
}

func TestByteTierParts(t *testing.T) {
	x, tier := byteTierParts(3 * 1024 * 1024)
	assert.Equal(t, 3.0, x)
	assert.Equal(t, 2, tier)

	x, tier = byteTierParts(0.5)
	assert.Equal(t, 0.5, x)
	assert.Equal(t, 0, tier)

	_, tier = byteTierParts(math.Inf(1))
	assert.Equal(t, 0, tier)
}
