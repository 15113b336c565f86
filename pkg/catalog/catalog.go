package catalog

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

// Catalog is an immutable, loaded reference dataset plus its lookup lists.
type Catalog struct {
	entries []Entry
	lists   Lists
}

// New sorts entries by ascending numeric No and wraps them. Entries whose No
// is not a number keep their relative order after the numeric ones.
func New(entries []Entry, lists Lists) *Catalog {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, aok := sorted[i].sortKey()
		b, bok := sorted[j].sortKey()
		if aok != bok {
			return aok
		}
		return aok && a < b
	})

	return &Catalog{
		entries: sorted,
		lists:   lists,
	}
}

// Len is the number of entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Entries returns a copy of the sorted entries.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Lists returns the lookup lists.
func (c *Catalog) Lists() Lists {
	return c.lists
}

// Find looks an entry up by its No.
func (c *Catalog) Find(no string) (Entry, bool) {
	for _, entry := range c.entries {
		if entry.No.Value == no {
			return entry, true
		}
	}
	return Entry{}, false
}

// Default is the entry selected at startup: No "1", else the first entry.
func (c *Catalog) Default() (Entry, bool) {
	if entry, ok := c.Find("1"); ok {
		return entry, true
	}
	if len(c.entries) == 0 {
		return Entry{}, false
	}
	return c.entries[0], true
}

// DefaultHeldItemName resolves the configured default item against the
// loaded item list.
func (c *Catalog) DefaultHeldItemName(id, fallback string) string {
	return DefaultHeldItemName(c.lists.Items, id, fallback)
}

// Search returns entries whose No, CN_Name or ENG_Name contains query,
// ignoring case. A blank query returns every entry.
func (c *Catalog) Search(query string) []Entry {
	query = strings.TrimSpace(query)
	if query == "" {
		return c.Entries()
	}

	// Casers are stateful, so each search gets its own.
	fold := cases.Fold()
	needle := fold.String(query)

	results := make([]Entry, 0)
	for _, entry := range c.entries {
		if matches(fold, entry, needle) {
			results = append(results, entry)
		}
	}
	return results
}

func matches(fold cases.Caser, entry Entry, needle string) bool {
	for _, value := range []string{entry.No.Value, entry.CNName.Value, entry.ENGName.Value} {
		if value != "" && strings.Contains(fold.String(value), needle) {
			return true
		}
	}
	return false
}
