// Package numeric holds the lenient number parsing used by the editor
// components. Form input is never rejected; callers decide the fallback.
package numeric

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ParseInt reads a leading base-10 integer from s, ignoring surrounding
// whitespace and anything after the digits ("12abc" -> 12, "3.7" -> 3).
// ok is false when s does not start with a number.
func ParseInt(s string) (value int, ok bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)

	negative := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		negative = s[0] == '-'
		s = s[1:]
	}

	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}

	parsed, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		// Only range errors are possible here; saturate.
		parsed = math.MaxInt32
	}
	if parsed > math.MaxInt32 {
		parsed = math.MaxInt32
	}
	if negative {
		parsed = -parsed
	}
	return int(parsed), true
}

// ParseNumber converts a whole token to a number. Blank text is 0, like an
// empty form field. Decimal and exponent forms are accepted, as are unsigned
// 0x, 0o and 0b integers. Digit separators, hex floats and non-finite
// input report ok=false.
func ParseNumber(s string) (value float64, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, true
	}
	if strings.ContainsRune(s, '_') {
		return 0, false
	}

	if base := radix(s); base != 0 {
		digits := s[2:]
		if digits == "" {
			return 0, false
		}
		parsed, err := strconv.ParseUint(digits, base, 64)
		if err != nil {
			if !errors.Is(err, strconv.ErrRange) {
				return 0, false
			}
			parsed = math.MaxUint64
		}
		return float64(parsed), true
	}

	if strings.ContainsAny(s, "xXpP") {
		return 0, false
	}
	parsed, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	if math.IsInf(parsed, 0) || math.IsNaN(parsed) {
		return 0, false
	}
	return parsed, true
}

func radix(s string) int {
	if len(s) < 2 || s[0] != '0' {
		return 0
	}
	switch s[1] {
	case 'x', 'X':
		return 16
	case 'o', 'O':
		return 8
	case 'b', 'B':
		return 2
	}
	return 0
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
