package catalog

import (
	"fmt"
	"strings"
)

// ListKind names one of the three lookup lists.
type ListKind string

const (
	ListBalls   ListKind = "balls"
	ListItems   ListKind = "items"
	ListNatures ListKind = "natures"
)

// ListKinds is every lookup list, in load order.
var ListKinds = []ListKind{ListBalls, ListItems, ListNatures}

// LookupItem is one row of a lookup list. Natures carry no id.
type LookupItem struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

// Lists holds the reference lists offered by the select controls.
type Lists struct {
	Balls   []LookupItem `json:"balls"`
	Items   []LookupItem `json:"items"`
	Natures []LookupItem `json:"natures"`
}

// Get returns the list for kind.
func (l Lists) Get(kind ListKind) []LookupItem {
	switch kind {
	case ListBalls:
		return l.Balls
	case ListItems:
		return l.Items
	case ListNatures:
		return l.Natures
	}
	return nil
}

func (l *Lists) set(kind ListKind, items []LookupItem) {
	switch kind {
	case ListBalls:
		l.Balls = items
	case ListItems:
		l.Items = items
	case ListNatures:
		l.Natures = items
	}
}

// DefaultHeldItemName is the name of the item whose id is id, or fallback
// when no such item exists or its name is empty.
func DefaultHeldItemName(items []LookupItem, id, fallback string) string {
	for _, item := range items {
		if item.ID == id {
			if item.Name != "" {
				return item.Name
			}
			break
		}
	}
	return fallback
}

// nonBlankLines splits text into trimmed, non-empty lines.
func nonBlankLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// ParseTableList reads "id name..." rows. The name is the rest of the line
// joined by single spaces and falls back to the id.
func ParseTableList(text string, skipHeader bool) []LookupItem {
	lines := nonBlankLines(text)
	if skipHeader && len(lines) > 0 {
		lines = lines[1:]
	}

	items := make([]LookupItem, 0, len(lines))
	for _, line := range lines {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		item := LookupItem{ID: fields[0], Name: strings.Join(fields[1:], " ")}
		if item.Name == "" {
			item.Name = item.ID
		}
		items = append(items, item)
	}
	return items
}

// ParseNatureList reads the first token of every line after the header.
func ParseNatureList(text string) []LookupItem {
	lines := nonBlankLines(text)
	if len(lines) > 0 {
		lines = lines[1:]
	}

	items := make([]LookupItem, 0, len(lines))
	for _, line := range lines {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		items = append(items, LookupItem{Name: fields[0]})
	}
	return items
}

// ParseList parses text in the format used by kind.
func ParseList(kind ListKind, text string) ([]LookupItem, error) {
	switch kind {
	case ListBalls, ListItems:
		return ParseTableList(text, true), nil
	case ListNatures:
		return ParseNatureList(text), nil
	}
	return nil, fmt.Errorf("unknown list kind %q", kind)
}
