package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFloatOrZero(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected float64
	}{
		{"integer", "120", 120},
		{"decimal", "85.25", 85.25},
		{"surrounding spaces", "  42.5 ", 42.5},
		{"negative", "-3.5", -3.5},
		{"leading dot", ".5", 0.5},
		{"exponent", "1.5e2", 150},
		{"trailing unit", "1250.5 MCFT", 1250.5},
		{"trailing percent", "92%", 92},
		{"thousands comma stops parse", "1,234", 1},
		{"blank", "", 0},
		{"whitespace only", "   ", 0},
		{"dash placeholder", "-", 0},
		{"text", "निरंक", 0},
		{"NaN word", "NaN", 0},
		{"Inf word", "Inf", 0},
		{"hex is not a number", "0x1F", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseFloatOrZero(tt.in))
		})
	}
}

func TestParseFloatOrZero_OverflowIsZero(t *testing.T) {
	for _, in := range []string{"1e999", "-1e999", "9e400 MCFT"} {
		v, ok := parseFloat(in)
		assert.False(t, ok, in)
		assert.Zero(t, v, in)
		assert.False(t, math.IsInf(ParseFloatOrZero(in), 0), in)
	}
}

func TestParseLeadingInt(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		want   int
		wantOK bool
	}{
		{"plain", "12", 12, true},
		{"padded", " 7 ", 7, true},
		{"trailing text", "12a", 12, true},
		{"decimal truncates", "3.9", 3, true},
		{"signed", "-4", -4, true},
		{"blank", "", 0, false},
		{"text", "एकूण", 0, false},
		{"dash", "-", 0, false},
		{"devanagari digits", "१२", 0, false},
		{"overflow still integer", "99999999999999999999999", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseLeadingInt(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
