package dataset

import "strings"

// DefaultMaxResults caps result sets when the caller does not ask for a
// specific size.
const DefaultMaxResults = 20

// AreaMatch selects how an area filter compares against a record's area.
// Council and county names are exact administrative labels; district
// names on the RQIA register are free text, so they match by substring.
type AreaMatch int

const (
	AreaExact AreaMatch = iota
	AreaContains
)

// Filters narrows a register query. Zero-value fields are ignored.
// All comparisons are case-insensitive; Name and ServiceType match by
// substring, Area matches per AreaMode.
type Filters struct {
	Name        string
	Area        string
	AreaMode    AreaMatch
	ServiceType string
	MaxResults  int
}

// Query filters records in their original order, stopping once the
// result cap is reached.
func Query(records []ProviderRecord, f Filters) []ProviderRecord {
	max := f.MaxResults
	if max <= 0 {
		max = DefaultMaxResults
	}

	name := strings.ToLower(f.Name)
	area := strings.ToLower(f.Area)
	serviceType := strings.ToLower(f.ServiceType)

	var out []ProviderRecord
	for _, rec := range records {
		if name != "" && !strings.Contains(strings.ToLower(rec.Name), name) {
			continue
		}
		if area != "" {
			recArea := strings.ToLower(rec.Area)
			switch f.AreaMode {
			case AreaContains:
				if !strings.Contains(recArea, area) {
					continue
				}
			default:
				if recArea != area {
					continue
				}
			}
		}
		if serviceType != "" && !strings.Contains(strings.ToLower(rec.ServiceType), serviceType) {
			continue
		}
		out = append(out, rec)
		if len(out) >= max {
			break
		}
	}
	return out
}

// ByPostcodePrefix returns records whose postcode starts with the given
// prefix, compared with spaces removed on both sides.
func ByPostcodePrefix(records []ProviderRecord, prefix string, maxResults int) []ProviderRecord {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	want := normalizePostcode(prefix)
	if want == "" {
		return nil
	}

	var out []ProviderRecord
	for _, rec := range records {
		if strings.HasPrefix(normalizePostcode(rec.Postcode), want) {
			out = append(out, rec)
			if len(out) >= maxResults {
				break
			}
		}
	}
	return out
}

func normalizePostcode(s string) string {
	return strings.ToUpper(strings.ReplaceAll(s, " ", ""))
}
