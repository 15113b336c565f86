// Package box keeps the saved records. Entries are addressed by a handle
// assigned at insertion because record numbers may repeat.
package box

import (
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/latoulicious/dexbox/pkg/numeric"
	"github.com/latoulicious/dexbox/pkg/record"
)

// ErrEntryNotFound is returned for handles not in the box.
var ErrEntryNotFound = errors.New("box entry not found")

// Order selects how entries are listed.
type Order string

const (
	OrderInsertion Order = ""
	OrderAsc       Order = "asc"
	OrderDesc      Order = "desc"
	OrderName      Order = "name"
)

// Entry is one saved record.
type Entry struct {
	Handle uuid.UUID     `json:"handle"`
	Record record.Record `json:"record"`
}

// Card is the display form of an entry.
type Card struct {
	Handle      uuid.UUID `json:"handle"`
	No          string    `json:"no"`
	PaddedNo    string    `json:"padded_no"`
	DisplayName string    `json:"display_name"`
	ENGName     string    `json:"eng_name,omitempty"`
	Level       string    `json:"level"`
	Nature      string    `json:"nature"`
	HeldItem    string    `json:"held_item"`
	Ball        string    `json:"ball"`
	Moves       []string  `json:"moves"`
	IsShiny     bool      `json:"is_shiny"`
	IsBoss      bool      `json:"is_boss"`
	Editing     bool      `json:"editing"`
}

// SaveResult reports what Save did.
type SaveResult struct {
	Handle uuid.UUID `json:"handle"`
	Added  bool      `json:"added"`
	// Saved is false when the record had no number and nothing happened.
	Saved bool `json:"saved"`
}

// Box is an ordered collection of entries plus the handle being edited.
type Box struct {
	mu      sync.RWMutex
	entries []Entry
	editing uuid.UUID
	locale  language.Tag
}

// New creates an empty box. Name ordering collates for locale.
func New(locale language.Tag) *Box {
	return &Box{locale: locale}
}

func (b *Box) indexOf(handle uuid.UUID) int {
	for i, entry := range b.entries {
		if entry.Handle == handle {
			return i
		}
	}
	return -1
}

// Save overwrites the entry being edited, or appends a new entry when no
// entry is being edited. Appending clears the editing handle, so a second
// save appends again. A record with a blank number is ignored.
func (b *Box) Save(r record.Record) SaveResult {
	if strings.TrimSpace(r.No) == "" {
		return SaveResult{}
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.editing != uuid.Nil {
		if i := b.indexOf(b.editing); i >= 0 {
			b.entries[i].Record = r
			return SaveResult{Handle: b.editing, Saved: true}
		}
	}

	entry := Entry{Handle: uuid.New(), Record: r}
	b.entries = append(b.entries, entry)
	b.editing = uuid.Nil
	return SaveResult{Handle: entry.Handle, Added: true, Saved: true}
}

// Edit marks handle as being edited and returns a copy of its record.
func (b *Box) Edit(handle uuid.UUID) (record.Record, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.indexOf(handle)
	if i < 0 {
		return record.Record{}, ErrEntryNotFound
	}
	b.editing = handle
	return b.entries[i].Record, nil
}

// StopEditing clears the editing handle.
func (b *Box) StopEditing() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.editing = uuid.Nil
}

// Editing returns the handle being edited, uuid.Nil when none.
func (b *Box) Editing() uuid.UUID {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.editing
}

// Delete removes handle. Deleting the entry being edited clears the
// editing handle.
func (b *Box) Delete(handle uuid.UUID) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.indexOf(handle)
	if i < 0 {
		return ErrEntryNotFound
	}
	b.entries = append(b.entries[:i], b.entries[i+1:]...)
	if b.editing == handle {
		b.editing = uuid.Nil
	}
	return nil
}

// Get returns a copy of one entry.
func (b *Box) Get(handle uuid.UUID) (Entry, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	i := b.indexOf(handle)
	if i < 0 {
		return Entry{}, ErrEntryNotFound
	}
	return b.entries[i], nil
}

// Len is the number of entries.
func (b *Box) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.entries)
}

// Entries returns the entries in insertion order.
func (b *Box) Entries() []Entry {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]Entry, len(b.entries))
	copy(out, b.entries)
	return out
}

// numberKey is the numeric value of No. Non-numbers sort after numbers in
// both directions.
func numberKey(r record.Record) (float64, bool) {
	return numeric.ParseNumber(r.No)
}

func sortName(r record.Record) string {
	if r.CNName != "" {
		return r.CNName
	}
	return r.ENGName
}

// Sorted returns the entries in the given order. Unknown orders keep
// insertion order.
func (b *Box) Sorted(order Order) []Entry {
	entries := b.Entries()

	switch order {
	case OrderAsc, OrderDesc:
		sort.SliceStable(entries, func(i, j int) bool {
			a, aok := numberKey(entries[i].Record)
			c, cok := numberKey(entries[j].Record)
			if aok != cok {
				return aok
			}
			if !aok {
				return false
			}
			if order == OrderDesc {
				return a > c
			}
			return a < c
		})
	case OrderName:
		col := collate.New(b.locale)
		sort.SliceStable(entries, func(i, j int) bool {
			return col.CompareString(sortName(entries[i].Record), sortName(entries[j].Record)) < 0
		})
	}
	return entries
}

// Cards renders the entries in the given order.
func (b *Box) Cards(order Order) []Card {
	editing := b.Editing()
	entries := b.Sorted(order)
	cards := make([]Card, 0, len(entries))
	for _, entry := range entries {
		cards = append(cards, newCard(entry, editing))
	}
	return cards
}

func orDash(s string) string {
	if s == "" {
		return "--"
	}
	return s
}

func newCard(entry Entry, editing uuid.UUID) Card {
	r := entry.Record
	moves := make([]string, 0, record.SlotCount)
	for _, move := range r.Moves() {
		moves = append(moves, orDash(move))
	}
	return Card{
		Handle:      entry.Handle,
		No:          r.No,
		PaddedNo:    r.PaddedNo(),
		DisplayName: r.DisplayName(),
		ENGName:     r.ENGName,
		Level:       orDash(r.LVMin),
		Nature:      orDash(r.PreNature),
		HeldItem:    orDash(r.HeldItem),
		Ball:        orDash(r.PreBall),
		Moves:       moves,
		IsShiny:     r.IsShiny,
		IsBoss:      r.IsBoss,
		Editing:     entry.Handle == editing,
	}
}
