// Package mapping matches CSV column headers to destination field definitions.
package mapping

import (
	"strings"

	"github.com/avery/staffdesk/internal/fields"
)

// FieldMapping maps a destination field name to the CSV header that feeds it.
// An empty or absent entry means "skip this field".
type FieldMapping map[string]string

// Normalize lowercases a header or label, trims it, strips a trailing run of
// '*' characters (the UI's "required" markers) and trims again.
func Normalize(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	s = strings.TrimRight(s, "*")
	return strings.TrimSpace(s)
}

// variants returns the deduplicated set of normalized header spellings that
// should auto-match a definition.
func variants(def fields.Definition) []string {
	candidates := []string{
		Normalize(def.Label),
		Normalize(strings.ReplaceAll(def.Name, "_", " ")),
		strings.ReplaceAll(strings.ToLower(def.Name), " ", "_"),
		Normalize(strings.ReplaceAll(def.Label, " ", "")),
		Normalize(strings.ReplaceAll(def.Label, " ", "_")),
	}

	seen := make(map[string]bool, len(candidates))
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

// AutoMap produces a best-effort mapping from definitions to CSV headers
// without user interaction. Definitions are visited in their given order and
// each claims the first unused header whose normalized form equals one of its
// variants; a header feeds at most one field ("first field wins"). Unmatched
// definitions are simply left out and must be completed by hand.
func AutoMap(headers []string, defs []fields.Definition) FieldMapping {
	mapping := make(FieldMapping)
	used := make(map[int]bool, len(headers))

	for _, def := range defs {
		if def.Name == "" {
			continue
		}
		wanted := variants(def)
		for i, header := range headers {
			if used[i] {
				continue
			}
			if headerMatches(header, wanted) {
				mapping[def.Name] = header
				used[i] = true
				break
			}
		}
	}

	return mapping
}

func headerMatches(header string, wanted []string) bool {
	norm := Normalize(header)
	folded := strings.ReplaceAll(norm, "_", " ")
	for _, w := range wanted {
		if norm == w || folded == w || folded == strings.ReplaceAll(w, "_", " ") {
			return true
		}
	}
	return false
}

// IsMapped reports whether a field has a non-blank header assigned.
func (m FieldMapping) IsMapped(fieldName string) bool {
	return strings.TrimSpace(m[fieldName]) != ""
}

// Set assigns a header to a field; a blank header clears the entry.
func (m FieldMapping) Set(fieldName, header string) {
	if strings.TrimSpace(header) == "" {
		delete(m, fieldName)
		return
	}
	m[fieldName] = header
}
