package domain

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	// floatPrefixRe matches the longest leading decimal literal, e.g.
	// "1250.5 MCFT" -> "1250.5", "8e2x" -> "8e2".
	floatPrefixRe = regexp.MustCompile(`^[+-]?(?:\d+(?:\.\d*)?|\.\d+)(?:[eE][+-]?\d+)?`)

	// intPrefixRe matches a leading signed run of ASCII digits.
	intPrefixRe = regexp.MustCompile(`^[+-]?\d+`)
)

// ParseFloatOrZero parses the leading numeric part of s, returning 0 when s is
// blank, does not start with a number, or overflows float64. Words such as
// "NaN" or "Inf" are not numbers here.
func ParseFloatOrZero(s string) float64 {
	v, _ := parseFloat(s)
	return v
}

// parseFloat reports whether s carried a number at all, so callers can tell a
// genuine zero from a zero-filled cell.
func parseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	prefix := floatPrefixRe.FindString(s)
	if prefix == "" {
		return 0, false
	}
	// Out-of-range literals such as "1e999" are not usable numbers.
	v, err := strconv.ParseFloat(prefix, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// fieldFloat reads a record field with lenient parsing.
func fieldFloat(r RawRecord, field string) float64 {
	s, _ := r.Field(field)
	return ParseFloatOrZero(s)
}

// parseLeadingInt parses an integer prefix of s after trimming. It reports
// false when s has no leading digits. Values too large for int parse as 0 but
// still count as integers.
func parseLeadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	prefix := intPrefixRe.FindString(s)
	if prefix == "" {
		return 0, false
	}
	n, err := strconv.Atoi(prefix)
	if err != nil {
		return 0, true
	}
	return n, true
}
