// Package lesson parses lesson content into vocabulary entries and provides
// the starter lesson set.
package lesson

import "strings"

// Entry is one "term = definition" line of lesson content.
type Entry struct {
	Term       string
	Definition string
}

// ParseEntries splits content into entries. Lines without a separator or
// with an empty side are skipped; only the first "=" separates term from
// definition.
func ParseEntries(content string) []Entry {
	var entries []Entry
	for _, line := range strings.Split(content, "\n") {
		term, def, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		term = strings.TrimSpace(term)
		def = strings.TrimSpace(def)
		if term == "" || def == "" {
			continue
		}
		entries = append(entries, Entry{Term: term, Definition: def})
	}
	return entries
}

// FormatEntries renders entries back into lesson content.
func FormatEntries(entries []Entry) string {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, e.Term+" = "+e.Definition)
	}
	return strings.Join(lines, "\n")
}
