package tabular

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSVQuotedComma(t *testing.T) {
	rows := ParseCSV("\"Smith, Jane\",42\n")
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"Smith, Jane", "42"}, rows[0])
}

func TestParseCSVEscapedQuotes(t *testing.T) {
	rows := ParseCSV("\"The \"\"Willows\"\" Home\",EH1\n")
	require.Len(t, rows, 1)
	assert.Equal(t, `The "Willows" Home`, rows[0][0])
}

func TestParseCSVQuotedNewline(t *testing.T) {
	rows := ParseCSV("\"12 High St\nWisbech\",PE13\n")
	require.Len(t, rows, 1)
	assert.Equal(t, "12 High St\nWisbech", rows[0][0])
	assert.Equal(t, "PE13", rows[0][1])
}

func TestParseCSVLineEndings(t *testing.T) {
	crlf := ParseCSV("a,b\r\nc,d\r\n")
	lf := ParseCSV("a,b\nc,d\n")
	assert.Equal(t, lf, crlf)
	require.Len(t, crlf, 2)
}

func TestParseCSVSkipsBlankRows(t *testing.T) {
	rows := ParseCSV("a,b\n\n,,\nc,d\n")
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"a", "b"}, rows[0])
	assert.Equal(t, []string{"c", "d"}, rows[1])
}

func TestParseCSVTrimsCells(t *testing.T) {
	rows := ParseCSV("  Elm Lodge  , EH12 5AB \n")
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"Elm Lodge", "EH12 5AB"}, rows[0])
}

func TestParseCSVMissingFinalNewline(t *testing.T) {
	rows := ParseCSV("a,b\nc,d")
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"c", "d"}, rows[1])
}

func TestParseCSVUnterminatedQuoteFlushes(t *testing.T) {
	// Malformed trailing quote state: flush what was accumulated.
	rows := ParseCSV("a,\"unterminated")
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"a", "unterminated"}, rows[0])
}

func TestResolveIndexExactBeforePartial(t *testing.T) {
	header := []string{"Service_Postcode", "Postcode"}
	// Exact match wins over the earlier substring hit.
	assert.Equal(t, 1, ResolveIndex(header, []string{"postcode"}))
}

func TestResolveIndexPartial(t *testing.T) {
	header := []string{"Service_Postcode", "ServiceName"}
	assert.Equal(t, 0, ResolveIndex(header, []string{"postcode"}))
}

func TestResolveIndexCandidateOrder(t *testing.T) {
	header := []string{"CareService", "Subtype"}
	assert.Equal(t, 0, ResolveIndex(header, []string{"CareService", "ServiceType"}))
	assert.Equal(t, 1, ResolveIndex(header, []string{"Subtype", "CareService"}))
}

func TestResolveIndexNotFound(t *testing.T) {
	assert.Equal(t, NoColumn, ResolveIndex([]string{"a", "b"}, []string{"postcode"}))
}

func TestResolveKey(t *testing.T) {
	keys := []string{"Establishment Name", "Local Government District"}
	assert.Equal(t, "Establishment Name", ResolveKey(keys, []string{"service name", "name"}))
	assert.Equal(t, "", ResolveKey(keys, []string{"beds"}))
}

func TestCellToleratesShortRows(t *testing.T) {
	row := []string{"only"}
	assert.Equal(t, "only", Cell(row, 0))
	assert.Equal(t, "", Cell(row, 5))
	assert.Equal(t, "", Cell(row, NoColumn))
}
