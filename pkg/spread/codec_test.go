package spread_test

import (
	"math"
	"testing"

	"github.com/latoulicious/dexbox/pkg/spread"
	"github.com/stretchr/testify/assert"
)

func TestDecode_Delimiters(t *testing.T) {
	fallback := spread.DefaultEffort

	assert.Equal(t, spread.Spread{252, 0, 4, 0, 0, 252}, spread.Decode("252-0-4-0-0-252", fallback))
	assert.Equal(t, spread.Spread{1, 2, 3, 4, 5, 6}, spread.Decode("1,2,3,4,5,6", fallback))
	assert.Equal(t, spread.Spread{31, 30, 29, 28, 27, 26}, spread.Decode("31/30/29/28/27/26", fallback))
	assert.Equal(t, spread.Spread{1, 2, 3, 4, 5, 6}, spread.Decode("1-2,3/4-5,6", fallback))
}

func TestDecode_BlankReturnsFallback(t *testing.T) {
	fallback := spread.DefaultInnate

	assert.Equal(t, fallback, spread.Decode("", fallback))
	assert.Equal(t, fallback, spread.Decode("   ", fallback))
}

func TestDecode_PerPositionFallback(t *testing.T) {
	fallback := spread.Spread{9, 9, 9, 9, 9, 9}

	// Short input: missing positions fall back.
	assert.Equal(t, spread.Spread{1, 2, 9, 9, 9, 9}, spread.Decode("1-2", fallback))

	// Non-numeric positions fall back, empty positions read as zero.
	assert.Equal(t, spread.Spread{1, 9, 0, 4, 9, 6}, spread.Decode("1-x-/4-Infinity-6", fallback))

	// Fractions are truncated.
	assert.Equal(t, spread.Spread{5, 9, 9, 9, 9, 9}, spread.Decode("5.8", fallback))
}

func TestDecode_HugeValuesSaturate(t *testing.T) {
	decoded := spread.Decode("1e30-9999999999999-0-0-0-0", spread.DefaultEffort)
	assert.Equal(t, spread.Spread{math.MaxInt32, math.MaxInt32, 0, 0, 0, 0}, decoded)

	fitted := spread.Effort.Fit(decoded)
	assert.Equal(t, spread.Spread{252, 252, 0, 0, 0, 0}, fitted.Spread)

	fitted = spread.Effort.Fit(spread.Decode("1E30/1e30/1e30/0/0/0", spread.DefaultEffort))
	assert.Equal(t, spread.Spread{252, 252, 6, 0, 0, 0}, fitted.Spread)
	assert.Equal(t, 510, fitted.Total)
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	spreads := []spread.Spread{
		{0, 0, 0, 0, 0, 0},
		{252, 252, 6, 0, 0, 0},
		{31, 31, 31, 31, 31, 31},
		{1, 22, 333, 4444, 55555, 7},
	}

	for _, s := range spreads {
		encoded := spread.Encode(s)
		assert.Equal(t, s, spread.Decode(encoded, spread.Spread{9, 9, 9, 9, 9, 9}), encoded)
	}
}

func TestEncode_Format(t *testing.T) {
	assert.Equal(t, "252-0-4-0-0-252", spread.Encode(spread.Spread{252, 0, 4, 0, 0, 252}))
}
