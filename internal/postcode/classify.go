// Package postcode classifies UK/Ireland postcodes into jurisdictions and
// resolves them to coordinates and local authorities via postcodes.io.
package postcode

import (
	"regexp"
	"strings"
)

// Jurisdiction identifies which regulator covers a postcode.
type Jurisdiction string

const (
	England         Jurisdiction = "England"
	Scotland        Jurisdiction = "Scotland"
	NorthernIreland Jurisdiction = "Northern Ireland"
	Ireland         Jurisdiction = "Ireland"
)

// Country is an optional caller override for classification.
// Accepted values: "ni", "scotland", "ireland", "england", "" (auto).
type Country string

// letter+digit outward code shape, e.g. G1, EH12, PE13.
var areaPattern = regexp.MustCompile(`^[A-Z]{1,2}\d{1,2}$`)

// Postcode areas served by the Care Inspectorate.
var scottishAreas = []string{
	"AB", "DD", "DG", "EH", "FK", "G", "HS", "IV",
	"KA", "KW", "KY", "ML", "PA", "PH", "TD", "ZE",
}

// Eircode routing-key first letters.
var irishAreas = []string{
	"A", "C", "D", "E", "F", "H", "K", "N",
	"P", "R", "T", "V", "W", "X", "Y",
}

// Area extracts the uppercased outward prefix from a raw postcode,
// e.g. "pe13 2pr" → "PE13".
func Area(raw string) string {
	fields := strings.Fields(strings.ToUpper(strings.TrimSpace(raw)))
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// Classify maps a postcode area to a jurisdiction.
//
// A forced country wins unconditionally. Otherwise the rule order is
// significant and must not be rearranged: "BT" is checked before the
// generic letter+digit pattern because BT1 would otherwise also satisfy
// it; and a letter+digit prefix that misses the Scottish allow-list falls
// through to the Irish letter list inside the same branch, never back out.
func Classify(area string, forced Country) Jurisdiction {
	switch forced {
	case "ni":
		return NorthernIreland
	case "scotland":
		return Scotland
	case "ireland":
		return Ireland
	case "england":
		return England
	}

	if strings.HasPrefix(area, "BT") {
		return NorthernIreland
	}

	if areaPattern.MatchString(area) {
		for _, a := range scottishAreas {
			if strings.HasPrefix(area, a) {
				return Scotland
			}
		}
		for _, a := range irishAreas {
			if strings.HasPrefix(area, a) {
				return Ireland
			}
		}
	}

	return England
}
