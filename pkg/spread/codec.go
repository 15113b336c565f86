// Package spread encodes six-stat spreads and enforces the effort/innate
// allocation caps.
package spread

import (
	"math"
	"strconv"
	"strings"

	"github.com/latoulicious/dexbox/pkg/numeric"
)

// Size is the number of stats in a spread.
const Size = 6

// StatKeys is the fixed stat order of every spread.
var StatKeys = [Size]string{"hp", "atk", "def", "spa", "spd", "spe"}

// Spread is one value per stat, in StatKeys order.
type Spread [Size]int

var (
	// DefaultEffort is used when a record carries no effort spread.
	DefaultEffort = Spread{0, 0, 0, 0, 0, 0}
	// DefaultInnate is used when a record carries no innate spread.
	DefaultInnate = Spread{31, 31, 31, 31, 31, 31}
)

func isDelimiter(r rune) bool {
	return r == '-' || r == ',' || r == '/'
}

// Decode parses a delimited spread ("252-0-4-0-0-252", "31/31/...", "1,2,...").
// Positions that are missing or not numeric take the fallback's value, and
// blank text returns the fallback unchanged. Decode never fails.
func Decode(text string, fallback Spread) Spread {
	if strings.TrimSpace(text) == "" {
		return fallback
	}

	// FieldsFunc would collapse empty positions; "1--3" must keep its hole.
	parts := splitKeepEmpty(text)

	var out Spread
	for i := range out {
		out[i] = fallback[i]
		if i >= len(parts) {
			continue
		}
		if value, ok := numeric.ParseNumber(parts[i]); ok {
			out[i] = truncate(value)
		}
	}
	return out
}

// truncate drops the fraction and saturates at the int32 range, so huge
// tokens still clamp to the nearest cap instead of wrapping.
func truncate(value float64) int {
	value = math.Trunc(value)
	if value > math.MaxInt32 {
		return math.MaxInt32
	}
	if value < math.MinInt32 {
		return math.MinInt32
	}
	return int(value)
}

func splitKeepEmpty(text string) []string {
	parts := make([]string, 0, Size)
	start := 0
	for i, r := range text {
		if isDelimiter(r) {
			parts = append(parts, text[start:i])
			start = i + 1
		}
	}
	return append(parts, text[start:])
}

// Encode joins the spread with "-".
func Encode(values Spread) string {
	var b strings.Builder
	for i, v := range values {
		if i > 0 {
			b.WriteByte('-')
		}
		b.WriteString(strconv.Itoa(v))
	}
	return b.String()
}

// Sum returns the total of all six values.
func Sum(values Spread) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}
