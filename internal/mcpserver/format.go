package mcpserver

import (
	"fmt"
	"strings"

	"github.com/mgcare/carefinder/internal/cqc"
	"github.com/mgcare/carefinder/internal/dataset"
)

// formatEnriched renders one enriched CQC location as a text block.
func formatEnriched(e cqc.Enriched) string {
	var b strings.Builder

	name := e.LocationName
	if name == "" {
		name = "Unknown Provider"
	}
	fmt.Fprintf(&b, "**%s**\n", name)
	fmt.Fprintf(&b, "Location ID: %s\n", e.LocationID)
	if e.RegistrationStatus != "" {
		fmt.Fprintf(&b, "Status: %s\n", e.RegistrationStatus)
	}
	if e.FullAddress != "" {
		fmt.Fprintf(&b, "Address: %s, %s\n", e.FullAddress, e.PostalCode)
	} else if e.PostalCode != "" {
		fmt.Fprintf(&b, "Postcode: %s\n", e.PostalCode)
	}
	if e.LocalAuthority != "" {
		fmt.Fprintf(&b, "Local Authority: %s\n", e.LocalAuthority)
	}
	if e.Region != "" {
		fmt.Fprintf(&b, "Region: %s\n", e.Region)
	}
	if e.Phone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", e.Phone)
	}

	b.WriteString("\n**CQC Ratings:**\n")
	fmt.Fprintf(&b, "  Overall: %s\n", e.Rating)
	fmt.Fprintf(&b, "  Safe: %s\n", e.RatingSafe)
	fmt.Fprintf(&b, "  Effective: %s\n", e.RatingEffective)
	fmt.Fprintf(&b, "  Caring: %s\n", e.RatingCaring)
	fmt.Fprintf(&b, "  Responsive: %s\n", e.RatingResponsive)
	fmt.Fprintf(&b, "  Well-Led: %s\n", e.RatingWellLed)

	if e.LastInspectionDate != "" {
		fmt.Fprintf(&b, "\nLast Inspection: %s\n", e.LastInspectionDate)
	}
	if e.ServiceTypes != "" {
		fmt.Fprintf(&b, "Service Types: %s\n", e.ServiceTypes)
	}
	if e.Specialisms != "" {
		fmt.Fprintf(&b, "Specialisms: %s\n", e.Specialisms)
	}
	return strings.TrimRight(b.String(), "\n")
}

// formatDetail renders a full CQC detail record, including the
// regulated activities the summary projection drops.
func formatDetail(d *cqc.LocationDetail) string {
	var b strings.Builder

	name := d.Name
	if name == "" {
		name = "Unknown Provider"
	}
	fmt.Fprintf(&b, "**%s**\n", name)
	fmt.Fprintf(&b, "Location ID: %s\n", d.LocationID)
	if d.RegistrationStatus != "" {
		fmt.Fprintf(&b, "Status: %s\n", d.RegistrationStatus)
	}
	if d.PostalAddressLine1 != "" || d.PostalAddressTown != "" {
		fmt.Fprintf(&b, "Address: %s, %s\n", d.PostalAddressLine1, d.PostalAddressTown)
	}
	if d.LocalAuthority != "" {
		fmt.Fprintf(&b, "Local Authority: %s\n", d.LocalAuthority)
	}
	if d.Region != "" {
		fmt.Fprintf(&b, "Region: %s\n", d.Region)
	}
	if d.MainPhoneNumber != "" {
		fmt.Fprintf(&b, "Phone: %s\n", d.MainPhoneNumber)
	}
	if d.Website != "" {
		fmt.Fprintf(&b, "Website: %s\n", d.Website)
	}
	if d.NumberOfBeds > 0 {
		fmt.Fprintf(&b, "Beds: %d\n", d.NumberOfBeds)
	}

	if d.CurrentRatings.Overall.Rating != "" {
		b.WriteString("\n**CQC Ratings:**\n")
		fmt.Fprintf(&b, "  Overall: %s\n", d.CurrentRatings.Overall.Rating)
		writeRating(&b, "Safe", d.CurrentRatings.Safe.Rating)
		writeRating(&b, "Effective", d.CurrentRatings.Effective.Rating)
		writeRating(&b, "Caring", d.CurrentRatings.Caring.Rating)
		writeRating(&b, "Responsive", d.CurrentRatings.Responsive.Rating)
		writeRating(&b, "Well-Led", d.CurrentRatings.WellLed.Rating)
	}

	if d.LastInspection != nil && d.LastInspection.Date != "" {
		fmt.Fprintf(&b, "\nLast Inspection: %s\n", d.LastInspection.Date)
	}
	if len(d.GacServiceTypes) > 0 {
		fmt.Fprintf(&b, "Service Types: %s\n", cqc.JoinNames(d.GacServiceTypes))
	}
	if len(d.Specialisms) > 0 {
		fmt.Fprintf(&b, "Specialisms: %s\n", cqc.JoinNames(d.Specialisms))
	}
	if len(d.RegulatedActivities) > 0 {
		b.WriteString("\n**Regulated Activities:**\n")
		for _, activity := range d.RegulatedActivities {
			fmt.Fprintf(&b, "  - %s\n", activity.Name)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func writeRating(b *strings.Builder, label, rating string) {
	if rating != "" {
		fmt.Fprintf(b, "  %s: %s\n", label, rating)
	}
}

func formatIreland(matched []dataset.ProviderRecord, maxResults int, county, stamp string) string {
	var b strings.Builder
	b.WriteString("**Nursing Homes in Ireland (HIQA)**\n")
	fmt.Fprintf(&b, "Data source: HIQA Register - %s\n", dataset.FormatAge(stamp))
	if dataset.Stale(stamp) {
		b.WriteString("Warning: data may be outdated. Re-download the register.\n")
	}
	fmt.Fprintf(&b, "Found %d providers", len(matched))
	if county != "" {
		fmt.Fprintf(&b, " in %s", county)
	}
	b.WriteString("\n\n")

	limited := capRecords(matched, maxResults)
	if len(limited) == 0 {
		b.WriteString("No providers found matching your criteria.")
		return b.String()
	}

	for _, p := range limited {
		fmt.Fprintf(&b, "**%s**\n", p.Name)
		fmt.Fprintf(&b, "Address: %s\n", p.Address)
		fmt.Fprintf(&b, "County: %s\n", p.Area)
		if p.Beds != nil {
			fmt.Fprintf(&b, "Beds: %d\n", *p.Beds)
		}
		if p.Phone != "" {
			fmt.Fprintf(&b, "Phone: %s\n", p.Phone)
		}
		if p.PersonInCharge != "" {
			fmt.Fprintf(&b, "Person in Charge: %s\n", p.PersonInCharge)
		}
		fmt.Fprintf(&b, "Provider: %s\n", p.Provider)
		if p.ID != "" {
			fmt.Fprintf(&b, "Registration: %s\n", p.ID)
		}
		if p.ExpiresAt != "" {
			fmt.Fprintf(&b, "Expires: %s\n", p.ExpiresAt)
		}
		b.WriteString("\n---\n\n")
	}
	writeTruncationNote(&b, len(matched), maxResults)
	return b.String()
}

func formatNorthernIreland(matched []dataset.ProviderRecord, maxResults int, serviceType, stamp string) string {
	var b strings.Builder
	b.WriteString("**Care Services in Northern Ireland (RQIA)**\n")
	fmt.Fprintf(&b, "Data source: RQIA Register - %s\n", dataset.FormatAge(stamp))
	if dataset.Stale(stamp) {
		b.WriteString("Warning: data may be outdated. Re-download the register.\n")
	}
	fmt.Fprintf(&b, "Found %d services", len(matched))
	if serviceType != "" {
		fmt.Fprintf(&b, " of type %q", serviceType)
	}
	b.WriteString("\n\n")

	limited := capRecords(matched, maxResults)
	if len(limited) == 0 {
		b.WriteString("No services found matching your criteria.")
		return b.String()
	}

	for _, p := range limited {
		fmt.Fprintf(&b, "**%s**\n", p.Name)
		fmt.Fprintf(&b, "Type: %s\n", p.ServiceType)
		if p.Address != "" {
			fmt.Fprintf(&b, "Address: %s\n", p.Address)
		}
		if p.Postcode != "" {
			fmt.Fprintf(&b, "Postcode: %s\n", p.Postcode)
		}
		if p.Phone != "" {
			fmt.Fprintf(&b, "Phone: %s\n", p.Phone)
		}
		fmt.Fprintf(&b, "Provider: %s\n", p.Provider)
		fmt.Fprintf(&b, "District: %s\n", p.Area)
		if p.LastInspection != "" {
			fmt.Fprintf(&b, "Last Inspection: %s\n", p.LastInspection)
		}
		b.WriteString("\n---\n\n")
	}
	writeTruncationNote(&b, len(matched), maxResults)
	return b.String()
}

func formatScotland(matched []dataset.ProviderRecord, maxResults int, serviceType, councilArea, stamp string, loaded int) string {
	var b strings.Builder
	b.WriteString("**Care Services in Scotland (Care Inspectorate)**\n")
	fmt.Fprintf(&b, "Data source: Care Inspectorate Datastore - %s\n", dataset.FormatAge(stamp))
	if dataset.Stale(stamp) {
		b.WriteString("Warning: data may be outdated. Re-download the datastore.\n")
	}
	fmt.Fprintf(&b, "Found %d services", len(matched))
	if serviceType != "" {
		fmt.Fprintf(&b, " of type %q", serviceType)
	}
	if councilArea != "" {
		fmt.Fprintf(&b, " in %s", councilArea)
	}
	b.WriteString("\n\n")

	limited := capRecords(matched, maxResults)
	if len(limited) == 0 {
		b.WriteString("No services found matching your criteria.\n")
		if loaded == 0 {
			b.WriteString("\nNote: Scotland data file not found. Download from the Care Inspectorate website.")
		}
		return b.String()
	}

	for _, p := range limited {
		fmt.Fprintf(&b, "**%s**\n", p.Name)
		if p.ID != "" {
			fmt.Fprintf(&b, "Service Number: %s\n", p.ID)
		}
		fmt.Fprintf(&b, "Type: %s", p.ServiceType)
		if p.Subtype != "" {
			fmt.Fprintf(&b, " (%s)", p.Subtype)
		}
		b.WriteString("\n")
		if p.Address != "" {
			fmt.Fprintf(&b, "Address: %s\n", p.Address)
		}
		if p.Postcode != "" {
			fmt.Fprintf(&b, "Postcode: %s\n", p.Postcode)
		}
		if p.Phone != "" {
			fmt.Fprintf(&b, "Phone: %s\n", p.Phone)
		}
		fmt.Fprintf(&b, "Provider: %s\n", p.Provider)
		fmt.Fprintf(&b, "Council Area: %s\n", p.Area)
		b.WriteString("\n---\n\n")
	}
	writeTruncationNote(&b, len(matched), maxResults)
	return b.String()
}

// walesGuidance explains why Wales has no searchable data and how to
// find providers manually. CIW publishes neither an API nor a
// downloadable register.
func walesGuidance() string {
	var b strings.Builder
	b.WriteString("**Care Provider Search - Wales**\n\n")
	b.WriteString("**Data Not Available - Awaiting Open Data Access**\n\n")
	b.WriteString("Care Inspectorate Wales (CIW) does not currently provide open data access:\n")
	b.WriteString("- No public API\n")
	b.WriteString("- No downloadable dataset (CSV/Excel/JSON)\n")
	b.WriteString("- No bulk data export\n\n")
	b.WriteString("Without open data, Wales providers cannot be included in this automated search tool. ")
	b.WriteString("The other jurisdictions (England, Scotland, N. Ireland, Ireland) all provide open data access.\n\n")
	b.WriteString("---\n\n")
	b.WriteString("**How to Find Wales Care Providers:**\n\n")
	b.WriteString("**Option 1: CIW Online Directory** (manual search)\n")
	b.WriteString("https://digital.careinspectorate.wales/directory\n")
	b.WriteString("- Search by location, service type, provider name\n")
	b.WriteString("- View individual provider details and inspection reports\n")
	b.WriteString("- Must search one-by-one (no bulk export)\n\n")
	b.WriteString("**Option 2: Request Data from CIW** (for research/business use)\n")
	b.WriteString("Email: CIWInformation@gov.wales\n")
	b.WriteString("- Request the full register under the Open Government Licence\n")
	b.WriteString("- They may provide an Excel/CSV extract\n\n")
	b.WriteString("**Option 3: CIW Statistics** (aggregate only)\n")
	b.WriteString("https://www.careinspectorate.wales/data-tools\n")
	b.WriteString("- Aggregate statistics and reports, no individual listings\n\n")
	b.WriteString("Wales support will be added as soon as CIW provides a public API or a downloadable dataset.")
	return b.String()
}

// formatFreshness renders the staleness table plus manual download
// instructions for each bundled register.
func formatFreshness(snap *dataset.Snapshot) string {
	ts := snap.Timestamps

	status := func(loaded int, stamp string) string {
		switch {
		case loaded == 0:
			return "Not loaded"
		case dataset.Stale(stamp):
			return "Stale"
		default:
			return "OK"
		}
	}

	var b strings.Builder
	b.WriteString("**Data Freshness Report**\n\n")
	b.WriteString("| Country | Source | Last Updated | Status |\n")
	b.WriteString("|---------|--------|--------------|--------|\n")
	b.WriteString("| England | CQC API | Live | Real-time |\n")
	fmt.Fprintf(&b, "| Scotland | Care Inspectorate | %s | %s |\n",
		dataset.FormatAge(ts.Scotland), status(len(snap.Scotland), ts.Scotland))
	b.WriteString("| Wales | CIW | Coming soon | Not yet implemented |\n")
	fmt.Fprintf(&b, "| N. Ireland | RQIA | %s | %s |\n",
		dataset.FormatAge(ts.RQIA), status(len(snap.NorthernIreland), ts.RQIA))
	fmt.Fprintf(&b, "| Ireland | HIQA | %s | %s |\n",
		dataset.FormatAge(ts.HIQA), status(len(snap.Ireland), ts.HIQA))

	b.WriteString("\n**Record Counts:**\n")
	b.WriteString("- England: Live API (119,000+ providers)\n")
	fmt.Fprintf(&b, "- Scotland: %d services\n", len(snap.Scotland))
	fmt.Fprintf(&b, "- Northern Ireland: %d services\n", len(snap.NorthernIreland))
	fmt.Fprintf(&b, "- Ireland: %d nursing homes\n", len(snap.Ireland))

	b.WriteString("\n---\n\n")
	b.WriteString("**How to Update Data**\n\n")
	b.WriteString("1. **Ireland (HIQA):**\n")
	b.WriteString("   - Go to: https://www.hiqa.ie/areas-we-work/older-peoples-services\n")
	b.WriteString("   - Click \"Download the Register\"\n")
	b.WriteString("   - Save as `hiqa.csv` in the data folder\n\n")
	b.WriteString("2. **Northern Ireland (RQIA):**\n")
	b.WriteString("   - Go to: https://www.rqia.org.uk/register/\n")
	b.WriteString("   - Download \"Full Register of Services\" (Excel file)\n")
	b.WriteString("   - Save as `rqia.xlsx` in the data folder\n\n")
	b.WriteString("3. **Scotland (Care Inspectorate):**\n")
	b.WriteString("   - Go to: https://www.careinspectorate.com/index.php/publications-statistics/44-public/93-datastore\n")
	b.WriteString("   - Download the latest \"Datastore CSV\"\n")
	b.WriteString("   - Save as `scotland.csv` in the data folder\n\n")
	b.WriteString("Then restart the server to load the new data.\n")

	if len(snap.Scotland) == 0 || len(snap.NorthernIreland) == 0 || len(snap.Ireland) == 0 ||
		dataset.Stale(ts.Scotland) || dataset.Stale(ts.RQIA) || dataset.Stale(ts.HIQA) {
		b.WriteString("\n**Action recommended:** some data is missing or stale.")
	}
	return b.String()
}

func capRecords(records []dataset.ProviderRecord, max int) []dataset.ProviderRecord {
	if max <= 0 {
		max = dataset.DefaultMaxResults
	}
	if len(records) > max {
		return records[:max]
	}
	return records
}

func writeTruncationNote(b *strings.Builder, total, max int) {
	if max > 0 && total > max {
		fmt.Fprintf(b, "*Showing %d of %d results*", max, total)
	}
}
