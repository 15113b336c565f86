package box_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/latoulicious/dexbox/pkg/box"
	"github.com/latoulicious/dexbox/pkg/record"
)

func newBox() *box.Box {
	return box.New(language.SimplifiedChinese)
}

func TestSave_IgnoresRecordWithoutNumber(t *testing.T) {
	b := newBox()
	result := b.Save(record.Record{CNName: "无编号"})

	assert.False(t, result.Saved)
	assert.Zero(t, b.Len())

	result = b.Save(record.Record{No: " \t "})
	assert.False(t, result.Saved)
	assert.Zero(t, b.Len())
}

func TestSave_AppendsThenAppendsAgain(t *testing.T) {
	b := newBox()
	first := b.Save(record.Record{No: "1"})
	second := b.Save(record.Record{No: "1"})

	assert.True(t, first.Added)
	assert.True(t, second.Added)
	assert.NotEqual(t, first.Handle, second.Handle)
	assert.Equal(t, 2, b.Len())
	assert.Equal(t, uuid.Nil, b.Editing())
}

func TestEditThenSaveOverwrites(t *testing.T) {
	b := newBox()
	added := b.Save(record.Record{No: "4", LVMin: "5"})

	r, err := b.Edit(added.Handle)
	require.NoError(t, err)
	assert.Equal(t, added.Handle, b.Editing())

	r.LVMin = "30"
	result := b.Save(r)
	assert.True(t, result.Saved)
	assert.False(t, result.Added)
	assert.Equal(t, added.Handle, result.Handle)

	entry, err := b.Get(added.Handle)
	require.NoError(t, err)
	assert.Equal(t, "30", entry.Record.LVMin)
	assert.Equal(t, 1, b.Len())
}

func TestEdit_ReturnsCopy(t *testing.T) {
	b := newBox()
	added := b.Save(record.Record{No: "4", CNName: "小火龙"})

	r, _ := b.Edit(added.Handle)
	r.CNName = "changed"

	entry, _ := b.Get(added.Handle)
	assert.Equal(t, "小火龙", entry.Record.CNName)
}

func TestDelete(t *testing.T) {
	b := newBox()
	a := b.Save(record.Record{No: "1"})
	c := b.Save(record.Record{No: "2"})
	_, err := b.Edit(a.Handle)
	require.NoError(t, err)

	require.NoError(t, b.Delete(c.Handle))
	assert.Equal(t, a.Handle, b.Editing())

	require.NoError(t, b.Delete(a.Handle))
	assert.Equal(t, uuid.Nil, b.Editing())
	assert.Zero(t, b.Len())

	assert.ErrorIs(t, b.Delete(a.Handle), box.ErrEntryNotFound)
	_, err = b.Edit(a.Handle)
	assert.ErrorIs(t, err, box.ErrEntryNotFound)
}

func TestSave_EditedEntryDeletedAppends(t *testing.T) {
	b := newBox()
	a := b.Save(record.Record{No: "1"})
	_, _ = b.Edit(a.Handle)
	_ = b.Delete(a.Handle)

	result := b.Save(record.Record{No: "1"})
	assert.True(t, result.Added)
}

func numbers(entries []box.Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Record.No)
	}
	return out
}

func TestSorted(t *testing.T) {
	b := newBox()
	for _, r := range []record.Record{
		{No: "10", CNName: "绿毛虫"},
		{No: "2", ENGName: "Ivysaur"},
		{No: "x", CNName: "阿柏蛇"},
		{No: "1", CNName: "妙蛙种子"},
	} {
		b.Save(r)
	}

	assert.Equal(t, []string{"10", "2", "x", "1"}, numbers(b.Sorted(box.OrderInsertion)))
	assert.Equal(t, []string{"10", "2", "x", "1"}, numbers(b.Sorted("bogus")))
	assert.Equal(t, []string{"1", "2", "10", "x"}, numbers(b.Sorted(box.OrderAsc)))
	assert.Equal(t, []string{"10", "2", "1", "x"}, numbers(b.Sorted(box.OrderDesc)))
}

func TestSorted_NameUsesCollation(t *testing.T) {
	b := box.New(language.English)
	b.Save(record.Record{No: "2", ENGName: "Ivysaur"})
	b.Save(record.Record{No: "10", CNName: "caterpie"})
	b.Save(record.Record{No: "1", ENGName: "Bulbasaur"})

	assert.Equal(t, []string{"1", "10", "2"}, numbers(b.Sorted(box.OrderName)))
}

func TestCards(t *testing.T) {
	b := newBox()
	added := b.Save(record.Record{No: "7", ENGName: "Squirtle", PreMove1: "Tackle", IsShiny: true})
	_, _ = b.Edit(added.Handle)

	cards := b.Cards(box.OrderAsc)
	require.Len(t, cards, 1)
	card := cards[0]
	assert.Equal(t, "007", card.PaddedNo)
	assert.Equal(t, "Squirtle", card.DisplayName)
	assert.Equal(t, "--", card.Level)
	assert.Equal(t, []string{"Tackle", "--", "--", "--"}, card.Moves)
	assert.True(t, card.IsShiny)
	assert.True(t, card.Editing)
}
