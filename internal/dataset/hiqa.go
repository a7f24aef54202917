package dataset

import (
	"os"
	"regexp"
	"strconv"

	"github.com/mgcare/carefinder/internal/tabular"
)

// Column name variants seen across HIQA register exports.
var (
	hiqaNameCols      = []string{"Centre_Title", "Centre Name", "Name"}
	hiqaAddressCols   = []string{"Centre_Address", "Address"}
	hiqaCountyCols    = []string{"County"}
	hiqaBedsCols      = []string{"Maximum_Occupancy", "Beds", "Occupancy"}
	hiqaPhoneCols     = []string{"Centre_Phone", "Phone", "Telephone"}
	hiqaPICCols       = []string{"Person_in_Charge", "Person in Charge"}
	hiqaProviderCols  = []string{"Registration_Provider", "Registered Provider", "Provider"}
	hiqaRegDateCols   = []string{"Registration_Date", "Date of Registration"}
	hiqaExpiryCols    = []string{"Expiry", "Expiration"}
	hiqaRegNumberCols = []string{"Registration_Number", "Reg Number", "Registration No"}
)

// Eircodes are embedded in the free-text address rather than a dedicated
// column, e.g. "Main Street, Athlone, N37 XK52".
var eircodePattern = regexp.MustCompile(`[A-Z]\d{2}\s?[A-Z0-9]{4}`)

// loadHIQA reads the HIQA nursing-home register CSV into normalized
// records, extracting each centre's Eircode from its address line.
func loadHIQA(path string) ([]ProviderRecord, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	rows := tabular.ParseCSV(string(raw))
	if len(rows) < 2 {
		return nil, nil
	}
	header := rows[0]

	nameCol := tabular.ResolveIndex(header, hiqaNameCols)
	addressCol := tabular.ResolveIndex(header, hiqaAddressCols)
	countyCol := tabular.ResolveIndex(header, hiqaCountyCols)
	bedsCol := tabular.ResolveIndex(header, hiqaBedsCols)
	phoneCol := tabular.ResolveIndex(header, hiqaPhoneCols)
	picCol := tabular.ResolveIndex(header, hiqaPICCols)
	providerCol := tabular.ResolveIndex(header, hiqaProviderCols)
	regDateCol := tabular.ResolveIndex(header, hiqaRegDateCols)
	expiryCol := tabular.ResolveIndex(header, hiqaExpiryCols)
	regNumCol := tabular.ResolveIndex(header, hiqaRegNumberCols)

	records := make([]ProviderRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		name := tabular.Cell(row, nameCol)
		if name == "" {
			continue
		}

		address := tabular.Cell(row, addressCol)
		rec := ProviderRecord{
			Source:         SourceHIQA,
			ID:             tabular.Cell(row, regNumCol),
			Name:           name,
			Address:        address,
			Postcode:       eircodePattern.FindString(address),
			Area:           tabular.Cell(row, countyCol),
			Region:         "Ireland",
			Phone:          tabular.Cell(row, phoneCol),
			Provider:       tabular.Cell(row, providerCol),
			PersonInCharge: tabular.Cell(row, picCol),
			RegisteredAt:   tabular.Cell(row, regDateCol),
			ExpiresAt:      tabular.Cell(row, expiryCol),
		}
		if n, err := strconv.Atoi(tabular.Cell(row, bedsCol)); err == nil && n > 0 {
			rec.Beds = &n
		}
		records = append(records, rec)
	}
	return records, nil
}
