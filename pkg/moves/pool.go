// Package moves parses move pools and keeps the four move slots of a record
// free of duplicates.
package moves

import (
	"strings"

	"github.com/latoulicious/dexbox/pkg/record"
)

// Delimiter separates moves in the Move_Lv, Move_TM and Move_Boss columns.
const Delimiter = "-"

// Category tells which pool a move option came from.
type Category string

const (
	CategoryLevel Category = "level"
	CategoryTM    Category = "tm"
)

// ParseList splits a move source string into trimmed, de-duplicated names
// in first-seen order.
func ParseList(raw string) []string {
	parts := strings.Split(raw, Delimiter)
	seen := make(map[string]struct{}, len(parts))
	moves := make([]string, 0, len(parts))
	for _, part := range parts {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		moves = append(moves, name)
	}
	return moves
}

// Pools are the moves a record may learn.
type Pools struct {
	Level []string `json:"level"`
	TM    []string `json:"tm"`
}

// AvailableMoves parses both pools of a record.
func AvailableMoves(r record.Record) Pools {
	return Pools{
		Level: ParseList(r.MoveLv),
		TM:    ParseList(r.MoveTM),
	}
}

// Contains reports whether move is in either pool.
func (p Pools) Contains(move string) bool {
	for _, list := range [][]string{p.Level, p.TM} {
		for _, m := range list {
			if m == move {
				return true
			}
		}
	}
	return false
}
