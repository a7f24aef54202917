package dataset

import (
	"github.com/xuri/excelize/v2"

	"github.com/mgcare/carefinder/internal/tabular"
)

// Column name variants seen across RQIA Register of Services workbooks.
// RQIA renames columns between releases more than any other source, so
// these lean on partial matching.
var (
	rqiaNameCols     = []string{"service name", "servicename", "establishment name", "name"}
	rqiaTypeCols     = []string{"service type", "servicetype", "category"}
	rqiaAddressCols  = []string{"address"}
	rqiaPostcodeCols = []string{"postcode", "post code"}
	rqiaPhoneCols    = []string{"phone", "telephone", "tel"}
	rqiaProviderCols = []string{"provider", "registered provider"}
	rqiaDistrictCols = []string{"town", "district", "lgd", "local government", "council"}
	rqiaInspectCols  = []string{"inspection", "inspected", "last inspected"}
)

// loadRQIA reads the RQIA Register of Services workbook (first sheet)
// into normalized records.
func loadRQIA(path string) ([]ProviderRecord, error) {
	wb, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	rows, err := wb.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, nil
	}
	header := rows[0]

	nameCol := tabular.ResolveIndex(header, rqiaNameCols)
	typeCol := tabular.ResolveIndex(header, rqiaTypeCols)
	addressCol := tabular.ResolveIndex(header, rqiaAddressCols)
	postcodeCol := tabular.ResolveIndex(header, rqiaPostcodeCols)
	phoneCol := tabular.ResolveIndex(header, rqiaPhoneCols)
	providerCol := tabular.ResolveIndex(header, rqiaProviderCols)
	districtCol := tabular.ResolveIndex(header, rqiaDistrictCols)
	inspectCol := tabular.ResolveIndex(header, rqiaInspectCols)

	records := make([]ProviderRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		name := tabular.Cell(row, nameCol)
		if name == "" {
			continue
		}
		records = append(records, ProviderRecord{
			Source:         SourceRQIA,
			Name:           name,
			Address:        tabular.Cell(row, addressCol),
			Postcode:       tabular.Cell(row, postcodeCol),
			Area:           tabular.Cell(row, districtCol),
			Region:         "Northern Ireland",
			ServiceType:    tabular.Cell(row, typeCol),
			Phone:          tabular.Cell(row, phoneCol),
			Provider:       tabular.Cell(row, providerCol),
			LastInspection: tabular.Cell(row, inspectCol),
		})
	}
	return records, nil
}
