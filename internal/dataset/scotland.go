package dataset

import (
	"os"
	"strings"

	"github.com/mgcare/carefinder/internal/tabular"
)

// Column name variants seen across Care Inspectorate datastore releases.
var (
	scotNumberCols   = []string{"CSNumber"}
	scotNameCols     = []string{"ServiceName", "Service_Name"}
	scotTypeCols     = []string{"CareService", "ServiceType", "Service_Type"}
	scotSubtypeCols  = []string{"Subtype", "Sub_Type"}
	scotAddr1Cols    = []string{"Address_line_1", "Address"}
	scotTownCols     = []string{"Service_town", "Town"}
	scotPostcodeCols = []string{"Service_Postcode", "Postcode"}
	scotCouncilCols  = []string{"Council_Area_Name", "Council_Area", "LocalAuthority"}
	scotPhoneCols    = []string{"Service_Phone_Number", "Phone", "Telephone"}
	scotProviderCols = []string{"ServiceProvider", "Service_Provider", "Provider"}
	scotRegDateCols  = []string{"Date_Reg", "DateReg", "Registration_Date"}
	scotStatusCols   = []string{"ServiceStatus", "Status"}
)

// loadScotland reads the Care Inspectorate datastore CSV into normalized
// records, keeping only active services. Rows with no resolvable status
// column are kept; rows with no resolvable name are dropped.
func loadScotland(path string) ([]ProviderRecord, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	rows := tabular.ParseCSV(string(raw))
	if len(rows) < 2 {
		return nil, nil
	}
	header := rows[0]

	numCol := tabular.ResolveIndex(header, scotNumberCols)
	nameCol := tabular.ResolveIndex(header, scotNameCols)
	typeCol := tabular.ResolveIndex(header, scotTypeCols)
	subtypeCol := tabular.ResolveIndex(header, scotSubtypeCols)
	addr1Col := tabular.ResolveIndex(header, scotAddr1Cols)
	townCol := tabular.ResolveIndex(header, scotTownCols)
	postcodeCol := tabular.ResolveIndex(header, scotPostcodeCols)
	councilCol := tabular.ResolveIndex(header, scotCouncilCols)
	phoneCol := tabular.ResolveIndex(header, scotPhoneCols)
	providerCol := tabular.ResolveIndex(header, scotProviderCols)
	regDateCol := tabular.ResolveIndex(header, scotRegDateCols)
	statusCol := tabular.ResolveIndex(header, scotStatusCols)

	records := make([]ProviderRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		status := strings.ToLower(tabular.Cell(row, statusCol))
		if status != "" && status != "active" {
			continue
		}

		name := tabular.Cell(row, nameCol)
		if name == "" {
			continue
		}

		addr := tabular.Cell(row, addr1Col)
		town := tabular.Cell(row, townCol)
		records = append(records, ProviderRecord{
			Source:       SourceScotlandCI,
			ID:           tabular.Cell(row, numCol),
			Name:         name,
			Address:      joinNonEmpty(addr, town),
			Town:         town,
			Postcode:     tabular.Cell(row, postcodeCol),
			Area:         tabular.Cell(row, councilCol),
			Region:       "Scotland",
			ServiceType:  tabular.Cell(row, typeCol),
			Subtype:      tabular.Cell(row, subtypeCol),
			Phone:        tabular.Cell(row, phoneCol),
			Provider:     tabular.Cell(row, providerCol),
			RegisteredAt: tabular.Cell(row, regDateCol),
		})
	}
	return records, nil
}

func joinNonEmpty(parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ", ")
}
