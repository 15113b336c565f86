// Package sprite turns loose picture references into candidate asset
// locations and probes them in order.
package sprite

import (
	"path"
	"regexp"
	"strings"
)

// DefaultDir is the asset directory bare references resolve into.
const DefaultDir = "picture"

// Extensions are the supported image extensions, in probe order.
var Extensions = []string{"png", "jpg", "jpeg", "webp", "gif", "svg"}

var (
	numericWithExt = regexp.MustCompile(`(?i)^(\d+)\.(png|jpe?g|webp|gif|svg)$`)
	numericOnly    = regexp.MustCompile(`^\d+$`)
)

// isPassthrough reports references used as-is: absolute URLs and explicit
// paths.
func isPassthrough(ref string) bool {
	lower := strings.ToLower(ref)
	for _, scheme := range []string{"http:", "https:", "data:", "blob:"} {
		if strings.HasPrefix(lower, scheme) {
			return true
		}
	}
	return strings.HasPrefix(ref, "./") || strings.HasPrefix(ref, "../") || strings.HasPrefix(ref, "/")
}

// numberVariants returns the digits as given, without leading zeros (at
// least one digit kept) and zero-padded to width 3.
func numberVariants(digits string) [3]string {
	trimmed := strings.TrimLeft(digits, "0")
	if trimmed == "" {
		trimmed = "0"
	}
	padded := digits
	if len(padded) < 3 {
		padded = strings.Repeat("0", 3-len(padded)) + padded
	}
	return [3]string{digits, trimmed, padded}
}

type orderedSet struct {
	seen  map[string]struct{}
	items []string
}

func (s *orderedSet) add(item string) {
	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}
	if _, ok := s.seen[item]; ok {
		return
	}
	s.seen[item] = struct{}{}
	s.items = append(s.items, item)
}

// Candidates lists the locations to try for reference, in probe order. dir
// is the asset directory; empty means DefaultDir. A fresh call recomputes
// the list.
func Candidates(reference, dir string) []string {
	if dir == "" {
		dir = DefaultDir
	}
	ref := strings.TrimSpace(reference)
	if ref == "" {
		return []string{}
	}

	if isPassthrough(ref) {
		return []string{ref}
	}

	if m := numericWithExt.FindStringSubmatch(ref); m != nil {
		ext := strings.ToLower(m[2])
		var set orderedSet
		for _, variant := range numberVariants(m[1]) {
			set.add(path.Join(dir, variant+"."+ext))
		}
		return set.items
	}

	if numericOnly.MatchString(ref) {
		variants := numberVariants(ref)
		var set orderedSet
		for _, ext := range Extensions {
			for _, variant := range variants {
				set.add(path.Join(dir, variant+"."+ext))
			}
		}
		return set.items
	}

	if !strings.Contains(ref, ".") {
		return []string{path.Join(dir, ref)}
	}

	return []string{ref}
}
