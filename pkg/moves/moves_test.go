package moves_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/latoulicious/dexbox/pkg/moves"
	"github.com/latoulicious/dexbox/pkg/record"
)

func TestParseList(t *testing.T) {
	assert.Equal(t, []string{"撞击", "叫声", "藤鞭"}, moves.ParseList(" 撞击-叫声--撞击 - 藤鞭 "))
	assert.Empty(t, moves.ParseList(""))
	assert.Empty(t, moves.ParseList("- - -"))
}

func TestAvailableMoves(t *testing.T) {
	pools := moves.AvailableMoves(record.Record{MoveLv: "Tackle-Growl", MoveTM: "Toxic"})
	assert.Equal(t, []string{"Tackle", "Growl"}, pools.Level)
	assert.Equal(t, []string{"Toxic"}, pools.TM)
	assert.True(t, pools.Contains("Toxic"))
	assert.False(t, pools.Contains("Ember"))
}

func newSet(t *testing.T, r record.Record) (*moves.SlotSet, *[]moves.Conflict) {
	t.Helper()
	var conflicts []moves.Conflict
	set := moves.NewSlotSet(func(c moves.Conflict) { conflicts = append(conflicts, c) })
	set.Rebuild(r)
	return set, &conflicts
}

func TestSetSlot_RejectsDuplicate(t *testing.T) {
	set, conflicts := newSet(t, record.Record{
		MoveLv:   "Tackle-Growl-Ember",
		PreMove1: "Tackle",
		PreMove2: "Growl",
	})

	assert.False(t, set.SetSlot(2, "Tackle"))
	assert.Equal(t, "", set.Value(2))
	require.Len(t, *conflicts, 1)
	assert.Equal(t, moves.Conflict{Slot: 2, Value: "Tackle", HeldBy: 0, Message: moves.ConflictMessage}, (*conflicts)[0])

	assert.True(t, set.SetSlot(2, "Ember"))
	assert.Equal(t, [4]string{"Tackle", "Growl", "Ember", ""}, set.Values())
}

func TestSetSlot_RollbackKeepsPreviousCommit(t *testing.T) {
	set, _ := newSet(t, record.Record{MoveLv: "A-B-C", PreMove1: "A", PreMove2: "B"})

	assert.False(t, set.SetSlot(1, "A"))
	assert.Equal(t, "B", set.Value(1))
}

func TestSetSlot_EmptyClearsCommit(t *testing.T) {
	set, conflicts := newSet(t, record.Record{MoveLv: "A-B", PreMove1: "A"})

	assert.True(t, set.SetSlot(0, ""))
	assert.Equal(t, "", set.Value(0))
	assert.True(t, set.SetSlot(1, "A"))
	assert.Empty(t, *conflicts)
}

func TestSetSlot_ReselectSameValueInSameSlot(t *testing.T) {
	set, _ := newSet(t, record.Record{MoveLv: "A-B", PreMove1: "A"})
	assert.True(t, set.SetSlot(0, "A"))
}

func TestSetSlot_IndexOutOfRange(t *testing.T) {
	set, conflicts := newSet(t, record.Record{})
	assert.False(t, set.SetSlot(4, "A"))
	assert.False(t, set.SetSlot(-1, "A"))
	assert.Empty(t, *conflicts)
}

func TestSetSlot_CustomValueInjected(t *testing.T) {
	set, _ := newSet(t, record.Record{MoveLv: "A"})
	require.True(t, set.SetSlot(0, "Custom"))

	opts := set.Views()[0].Options
	last := opts[len(opts)-1]
	assert.Equal(t, moves.Option{Value: "Custom", Label: "Custom", Dynamic: true}, last)
}

func TestSlotInvariant_DistinctAfterRandomOps(t *testing.T) {
	set, _ := newSet(t, record.Record{MoveLv: "A-B-C-D", MoveTM: "E-F"})
	ops := []struct {
		slot  int
		value string
	}{
		{0, "A"}, {1, "A"}, {1, "B"}, {2, "B"}, {2, "C"}, {3, "A"}, {3, "D"}, {0, ""}, {3, "A"}, {0, "D"}, {0, "E"},
	}
	for _, op := range ops {
		set.SetSlot(op.slot, op.value)
		seen := map[string]bool{}
		for _, v := range set.Values() {
			if v == "" {
				continue
			}
			assert.False(t, seen[v], "duplicate %q after %+v", v, op)
			seen[v] = true
		}
	}
}

func TestRebuild_OptionLayout(t *testing.T) {
	set, _ := newSet(t, record.Record{MoveLv: "A-B", MoveTM: "T"})
	opts := set.Views()[0].Options

	require.Len(t, opts, 5)
	assert.Equal(t, moves.Option{Value: "", Label: moves.PlaceholderLabel}, opts[0])
	assert.Equal(t, moves.CategoryLevel, opts[1].Category)
	assert.True(t, opts[3].Separator)
	assert.True(t, opts[3].Disabled)
	assert.Equal(t, moves.Option{Value: "T", Label: "T", Category: moves.CategoryTM}, opts[4])
}

func TestRebuild_NoSeparatorWithSinglePool(t *testing.T) {
	set, _ := newSet(t, record.Record{MoveTM: "T1-T2"})
	opts := set.Views()[0].Options
	assert.Len(t, opts, 3)
	for _, opt := range opts {
		assert.False(t, opt.Separator)
	}
}

func TestRebuild_StaleValueStaysVisible(t *testing.T) {
	set, _ := newSet(t, record.Record{MoveLv: "A", PreMove1: "Old"})
	view := set.Views()[0]

	assert.Equal(t, "Old", view.Value)
	last := view.Options[len(view.Options)-1]
	assert.True(t, last.Dynamic)
	assert.Equal(t, "Old", last.Value)
}

func TestRebuild_FallsBackToPreviousCommit(t *testing.T) {
	set, _ := newSet(t, record.Record{MoveLv: "A-B", PreMove1: "A"})
	require.True(t, set.SetSlot(1, "B"))

	set.Rebuild(record.Record{MoveLv: "X-Y", PreMove1: "X"})
	assert.Equal(t, [4]string{"X", "B", "", ""}, set.Values())
}

func TestRebuild_DropsDuplicateStoredMoves(t *testing.T) {
	set, _ := newSet(t, record.Record{MoveLv: "A", PreMove1: "A", PreMove3: "A"})
	assert.Equal(t, [4]string{"A", "", "", ""}, set.Values())
}

func TestApply(t *testing.T) {
	set, _ := newSet(t, record.Record{MoveLv: "A-B"})
	set.SetSlot(0, "B")
	var r record.Record
	set.Apply(&r)
	assert.Equal(t, "B", r.PreMove1)
}
