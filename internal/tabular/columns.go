package tabular

import "strings"

// Column resolution insulates the loaders from upstream renames: the
// regulators rename columns between releases ("Service_Postcode",
// "ServicePostcode", "Postcode"...), so loaders describe each field as an
// ordered candidate list and resolution is exact-then-partial,
// case-insensitive.

// NoColumn is the sentinel returned by ResolveIndex when no candidate
// matches any header. Callers must treat an unresolved column as an
// empty-string field, not an error.
const NoColumn = -1

// ResolveIndex finds the header column best matching one of candidates.
//
// Matching order: (1) case-insensitive exact match against any candidate,
// in candidate order; (2) case-insensitive substring match (header contains
// candidate), in candidate order. First match wins; ties break by header
// column order.
func ResolveIndex(header []string, candidates []string) int {
	for _, cand := range candidates {
		c := strings.ToLower(cand)
		for i, h := range header {
			if strings.ToLower(h) == c {
				return i
			}
		}
	}
	for _, cand := range candidates {
		c := strings.ToLower(cand)
		for i, h := range header {
			if strings.Contains(strings.ToLower(h), c) {
				return i
			}
		}
	}
	return NoColumn
}

// ResolveKey is ResolveIndex over a key set (keyed row-objects from the
// XLSX reader rather than positional cells). Returns the matching key, or
// "" when nothing matches.
func ResolveKey(keys []string, candidates []string) string {
	if i := ResolveIndex(keys, candidates); i != NoColumn {
		return keys[i]
	}
	return ""
}

// Cell returns row[idx], tolerating NoColumn and short rows.
func Cell(row []string, idx int) string {
	if idx == NoColumn || idx >= len(row) {
		return ""
	}
	return row[idx]
}
