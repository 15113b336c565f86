// Package level derives the level floor of a record and clamps levels into
// range.
package level

import (
	"strconv"
	"strings"

	"github.com/latoulicious/dexbox/pkg/numeric"
	"github.com/latoulicious/dexbox/pkg/record"
)

const (
	MinLevel = 1
	MaxLevel = 100
)

// Constraint is the level control state: its bounds and current value.
type Constraint struct {
	Min   int `json:"min"`
	Max   int `json:"max"`
	Value int `json:"value"`
}

func parse(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	return numeric.ParseInt(raw)
}

// BaseMinLevel is the record's dataset floor, 1 when absent, within [1, 100].
func BaseMinLevel(r record.Record) int {
	value, ok := parse(r.LevelFloor)
	if !ok {
		return MinLevel
	}
	return numeric.Clamp(value, MinLevel, MaxLevel)
}

// BossMinLevel is the boss floor. It never drops below the base floor and
// equals it when the record has no boss minimum.
func BossMinLevel(r record.Record) int {
	base := BaseMinLevel(r)
	value, ok := parse(r.BossLVMin)
	if !ok {
		return base
	}
	if value < base {
		value = base
	}
	return numeric.Clamp(value, MinLevel, MaxLevel)
}

// EffectiveMinLevel is the floor in force for the given boss mode.
func EffectiveMinLevel(r record.Record, boss bool) int {
	if boss {
		return BossMinLevel(r)
	}
	return BaseMinLevel(r)
}

// Clamp parses a candidate level and bounds it to [max(minimum, 1), 100].
// Unparseable input takes the minimum.
func Clamp(candidate string, minimum int) int {
	value, ok := parse(candidate)
	if !ok {
		value = minimum
	}
	if value < minimum {
		value = minimum
	}
	if value < MinLevel {
		value = MinLevel
	}
	if value > MaxLevel {
		value = MaxLevel
	}
	return value
}

// SanitizeInput keeps only the digits of a level being typed.
func SanitizeInput(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Reconcile re-derives the floor from the record's boss flag and clamps the
// stored level into range. An empty level takes the floor. Levels are only
// raised to meet a floor, never lowered because a floor was relaxed.
func Reconcile(r *record.Record) Constraint {
	minimum := numeric.Clamp(EffectiveMinLevel(*r, r.IsBoss), MinLevel, MaxLevel)

	value := minimum
	if strings.TrimSpace(r.LVMin) != "" {
		value = Clamp(r.LVMin, minimum)
	}
	r.LVMin = strconv.Itoa(value)

	return Constraint{Min: minimum, Max: MaxLevel, Value: value}
}

// Bounds reports the level control bounds without touching the stored value.
func Bounds(r record.Record) Constraint {
	minimum := numeric.Clamp(EffectiveMinLevel(r, r.IsBoss), MinLevel, MaxLevel)
	value, ok := parse(r.LVMin)
	if !ok {
		value = 0
	}
	return Constraint{Min: minimum, Max: MaxLevel, Value: value}
}
