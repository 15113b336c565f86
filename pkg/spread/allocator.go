package spread

import "github.com/latoulicious/dexbox/pkg/numeric"

// Allocator enforces a per-value cap and an optional total cap on a spread.
type Allocator struct {
	Name        string
	PerValueCap int
	// TotalCap of 0 means the spread has no total budget.
	TotalCap int
}

var (
	// Effort is the effort value allocator: 252 per stat, 510 in total.
	Effort = Allocator{Name: "effort", PerValueCap: 252, TotalCap: 510}
	// Innate is the innate value allocator: 31 per stat, no total.
	Innate = Allocator{Name: "innate", PerValueCap: 31}
)

// Result is a corrected spread plus the values the UI displays next to it.
type Result struct {
	Spread Spread `json:"spread"`
	Total  int    `json:"total"`
	// CapReached is set once the total budget is used up (total >= cap).
	CapReached bool `json:"cap_reached"`
}

// HasTotalCap reports whether the allocator limits the sum of the spread.
func (a Allocator) HasTotalCap() bool {
	return a.TotalCap > 0
}

func (a Allocator) clampValue(v int) int {
	return numeric.Clamp(v, 0, a.PerValueCap)
}

// SetValue applies a single-field edit. The raw input is parsed leniently
// (garbage and negatives become 0) and clamped to the per-value cap. When the
// new total overflows the total cap, only the edited value gives way: it is
// lowered to cap minus the sum of the others, never below 0.
func (a Allocator) SetValue(current Spread, index int, raw string) Result {
	next := a.clampAll(current)
	if index < 0 || index >= Size {
		return a.result(next)
	}

	value, ok := numeric.ParseInt(raw)
	if !ok || value < 0 {
		value = 0
	}
	next[index] = a.clampValue(value)

	if a.HasTotalCap() {
		others := Sum(next) - next[index]
		if others+next[index] > a.TotalCap {
			allowed := a.TotalCap - others
			if allowed < 0 {
				allowed = 0
			}
			next[index] = allowed
		}
	}

	return a.result(next)
}

// Renormalize re-clamps every value independently. It does not apply the
// total rule, which belongs to the single-field edit path.
func (a Allocator) Renormalize(current Spread) Result {
	return a.result(a.clampAll(current))
}

func (a Allocator) clampAll(current Spread) Spread {
	var next Spread
	for i, v := range current {
		next[i] = a.clampValue(v)
	}
	return next
}

func (a Allocator) result(values Spread) Result {
	total := Sum(values)
	return Result{
		Spread:     values,
		Total:      total,
		CapReached: a.HasTotalCap() && total >= a.TotalCap,
	}
}

// Fit installs a whole spread at once, as when a record is loaded. Values are
// clamped, then any overflow of the total cap is taken from the last stat
// backwards so the result always respects both caps.
func (a Allocator) Fit(current Spread) Result {
	next := a.clampAll(current)
	if !a.HasTotalCap() {
		return a.result(next)
	}

	excess := Sum(next) - a.TotalCap
	for i := Size - 1; i >= 0 && excess > 0; i-- {
		cut := next[i]
		if cut > excess {
			cut = excess
		}
		next[i] -= cut
		excess -= cut
	}
	return a.result(next)
}
