package dataset

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadScotlandFiltersInactive(t *testing.T) {
	csv := "CSNumber,ServiceName,CareService,Service_town,Service_Postcode,Council_Area_Name,ServiceStatus\n" +
		"CS1,Rosepark Care Home,Care Home Service,Glasgow,G1 1AA,Glasgow City,Active\n" +
		"CS2,Closed Home,Care Home Service,Dundee,DD1 1AA,Dundee City,Cancelled\n" +
		"CS3,,Care Home Service,Perth,PH1 1AA,Perth and Kinross,Active\n"
	path := writeFixture(t, "scotland.csv", csv)

	recs, err := loadScotland(path)
	require.NoError(t, err)
	require.Len(t, recs, 1)

	rec := recs[0]
	assert.Equal(t, SourceScotlandCI, rec.Source)
	assert.Equal(t, "CS1", rec.ID)
	assert.Equal(t, "Rosepark Care Home", rec.Name)
	assert.Equal(t, "Glasgow City", rec.Area)
	assert.Equal(t, "Scotland", rec.Region)
	assert.Equal(t, "G1 1AA", rec.Postcode)
}

func TestLoadScotlandJoinsAddressAndTown(t *testing.T) {
	csv := "ServiceName,Address_line_1,Service_town,ServiceStatus\n" +
		"Home A,12 High Street,Edinburgh,Active\n" +
		"Home B,,Aberdeen,Active\n"
	path := writeFixture(t, "scotland.csv", csv)

	recs, err := loadScotland(path)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "12 High Street, Edinburgh", recs[0].Address)
	assert.Equal(t, "Aberdeen", recs[1].Address)
}

func TestLoadScotlandKeepsRowsWithoutStatusColumn(t *testing.T) {
	csv := "ServiceName,Council_Area_Name\nHome A,Fife\n"
	path := writeFixture(t, "scotland.csv", csv)

	recs, err := loadScotland(path)
	require.NoError(t, err)
	require.Len(t, recs, 1)
}

func TestLoadScotlandMissingFile(t *testing.T) {
	_, err := loadScotland(filepath.Join(t.TempDir(), "absent.csv"))
	assert.Error(t, err)
}

func writeWorkbook(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	wb := excelize.NewFile()
	defer wb.Close()
	sheet := wb.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, wb.SetSheetRow(sheet, cell, &row))
	}
	path := filepath.Join(t.TempDir(), "rqia.xlsx")
	require.NoError(t, wb.SaveAs(path))
	return path
}

func TestLoadRQIAResolvesPartialHeaders(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"Service Name", "Service Type", "Address", "Postcode", "Local Government District", "Date of Last Inspection"},
		{"Titanic Quarter Care", "Nursing Home", "1 Queens Road", "BT3 9DT", "Belfast", "2026-03-12"},
		{"", "Nursing Home", "2 Queens Road", "BT3 9DU", "Belfast", ""},
		{"Mourne View", "Residential Care Home", "5 Shore Street", "BT34 3EX", "Newry, Mourne and Down", "2025-11-02"},
	})

	recs, err := loadRQIA(path)
	require.NoError(t, err)
	require.Len(t, recs, 2)

	first := recs[0]
	assert.Equal(t, SourceRQIA, first.Source)
	assert.Equal(t, "Titanic Quarter Care", first.Name)
	assert.Equal(t, "Nursing Home", first.ServiceType)
	assert.Equal(t, "BT3 9DT", first.Postcode)
	assert.Equal(t, "Belfast", first.Area)
	assert.Equal(t, "Northern Ireland", first.Region)
	assert.Equal(t, "2026-03-12", first.LastInspection)

	assert.Equal(t, "Mourne View", recs[1].Name)
	assert.Equal(t, "Newry, Mourne and Down", recs[1].Area)
}

func TestLoadRQIAHeaderOnly(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"Service Name", "Address"},
	})

	recs, err := loadRQIA(path)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestLoadRQIAMissingFile(t *testing.T) {
	_, err := loadRQIA(filepath.Join(t.TempDir(), "absent.xlsx"))
	assert.Error(t, err)
}

func TestLoadHIQAExtractsEircode(t *testing.T) {
	csv := "Centre_Title,Centre_Address,County,Maximum_Occupancy,Person_in_Charge\n" +
		"St Brigid's Nursing Home,\"Main Street, Athlone, N37 XK52\",Westmeath,45,Mary Byrne\n" +
		"No Eircode Home,\"Church Road, Sligo\",Sligo,not-a-number,\n"
	path := writeFixture(t, "hiqa.csv", csv)

	recs, err := loadHIQA(path)
	require.NoError(t, err)
	require.Len(t, recs, 2)

	first := recs[0]
	assert.Equal(t, SourceHIQA, first.Source)
	assert.Equal(t, "N37 XK52", first.Postcode)
	assert.Equal(t, "Westmeath", first.Area)
	assert.Equal(t, "Ireland", first.Region)
	assert.Equal(t, "Mary Byrne", first.PersonInCharge)
	require.NotNil(t, first.Beds)
	assert.Equal(t, 45, *first.Beds)

	second := recs[1]
	assert.Empty(t, second.Postcode)
	assert.Nil(t, second.Beds)
}

func TestQueryAreaExact(t *testing.T) {
	records := []ProviderRecord{
		{Name: "Home A", Area: "Edinburgh"},
		{Name: "Home B", Area: "City of Edinburgh"},
		{Name: "Home C", Area: "edinburgh"},
	}

	got := Query(records, Filters{Area: "Edinburgh"})
	require.Len(t, got, 2)
	assert.Equal(t, "Home A", got[0].Name)
	assert.Equal(t, "Home C", got[1].Name)
}

func TestQueryAreaContains(t *testing.T) {
	records := []ProviderRecord{
		{Name: "Home A", Area: "Belfast City Council"},
		{Name: "Home B", Area: "Derry City and Strabane"},
	}

	got := Query(records, Filters{Area: "belfast", AreaMode: AreaContains})
	require.Len(t, got, 1)
	assert.Equal(t, "Home A", got[0].Name)
}

func TestQueryServiceTypeSubstring(t *testing.T) {
	records := []ProviderRecord{
		{Name: "Home A", ServiceType: "Care Home Service"},
		{Name: "Agency B", ServiceType: "Nurse Agency"},
	}

	got := Query(records, Filters{ServiceType: "care home"})
	require.Len(t, got, 1)
	assert.Equal(t, "Home A", got[0].Name)
}

func TestQueryNameSubstringAndCap(t *testing.T) {
	records := make([]ProviderRecord, 0, 30)
	for i := 0; i < 30; i++ {
		records = append(records, ProviderRecord{Name: "Sunrise Care"})
	}

	got := Query(records, Filters{Name: "sunrise"})
	assert.Len(t, got, DefaultMaxResults)

	got = Query(records, Filters{Name: "sunrise", MaxResults: 5})
	assert.Len(t, got, 5)
}

func TestQueryPreservesOrder(t *testing.T) {
	records := []ProviderRecord{
		{Name: "Zeta"},
		{Name: "Alpha"},
		{Name: "Mid"},
	}

	got := Query(records, Filters{})
	require.Len(t, got, 3)
	assert.Equal(t, "Zeta", got[0].Name)
	assert.Equal(t, "Alpha", got[1].Name)
	assert.Equal(t, "Mid", got[2].Name)
}

func TestByPostcodePrefixIgnoresSpaces(t *testing.T) {
	records := []ProviderRecord{
		{Name: "Home A", Postcode: "BT1 1AA"},
		{Name: "Home B", Postcode: "BT11AB"},
		{Name: "Home C", Postcode: "BT9 5AA"},
	}

	got := ByPostcodePrefix(records, "bt1 1", 0)
	require.Len(t, got, 2)
	assert.Equal(t, "Home A", got[0].Name)
	assert.Equal(t, "Home B", got[1].Name)

	assert.Empty(t, ByPostcodePrefix(records, "", 0))
}

func TestLoadTimestampsMissingFile(t *testing.T) {
	ts := LoadTimestamps(t.TempDir())
	assert.Empty(t, ts.Scotland)
	assert.Empty(t, ts.RQIA)
	assert.Empty(t, ts.HIQA)
}

func TestLoadTimestampsReadsSidecar(t *testing.T) {
	dir := t.TempDir()
	content := `{"scotland":"2026-06-01","rqia":"2026-05-15T00:00:00Z"}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "timestamps.json"), []byte(content), 0o644))

	ts := LoadTimestamps(dir)
	assert.Equal(t, "2026-06-01", ts.Scotland)
	assert.Equal(t, "2026-05-15T00:00:00Z", ts.RQIA)
	assert.Empty(t, ts.HIQA)
}

func TestDaysOldAndStale(t *testing.T) {
	recent := time.Now().AddDate(0, 0, -10).Format("2006-01-02")
	old := time.Now().AddDate(0, 0, -90).Format("2006-01-02")

	assert.InDelta(t, 10, DaysOld(recent), 1)
	assert.False(t, Stale(recent))
	assert.True(t, Stale(old))
	assert.Equal(t, -1, DaysOld("garbage"))
	assert.True(t, Stale(""))
}

func TestFormatAge(t *testing.T) {
	assert.Equal(t, "Not available", FormatAge(""))
	assert.Contains(t, FormatAge(time.Now().AddDate(0, 0, -5).Format("2006-01-02")), "days old")
}
