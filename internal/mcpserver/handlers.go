package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mgcare/carefinder/internal/cqc"
	"github.com/mgcare/carefinder/internal/dataset"
)

func (s *MCPServer) handleSearchCareProviders(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	perPage := request.GetInt("perPage", 20)
	if perPage > 50 {
		perPage = 50
	}

	result, err := s.cqc.SearchLocations(ctx, cqc.SearchParams{
		LocalAuthority: request.GetString("localAuthority", ""),
		Region:         request.GetString("region", ""),
		Rating:         request.GetString("rating", ""),
		CareHome:       request.GetString("careHome", ""),
		Page:           request.GetInt("page", 1),
		PerPage:        perPage,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("CQC search failed: %v", err)), nil
	}

	var b strings.Builder
	b.WriteString("**CQC Search Results (England)**\n")
	b.WriteString("Data source: CQC API (Live)\n")
	fmt.Fprintf(&b, "Found %d providers (page %d of %d)\n", result.Total, result.Page, result.TotalPages)

	if len(result.Locations) == 0 {
		b.WriteString("\nNo providers found matching your criteria.")
		return mcp.NewToolResultText(b.String()), nil
	}

	enriched := s.cqc.EnrichLocations(ctx, result.Locations, 0)
	registered := filterRegistered(enriched)

	if len(registered) == 0 {
		b.WriteString("\nNo currently registered providers found.")
	} else {
		b.WriteString("\n\n")
		b.WriteString(joinBlocks(registered, formatEnriched))
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (s *MCPServer) handleSearchByPostcode(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := request.RequireString("postcode")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	prefix := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(raw), " ", ""))
	if len(prefix) > 4 {
		prefix = prefix[:4]
	}

	info, err := s.postcodes.Lookup(ctx, raw)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Postcode %q not found. Please check the postcode is valid.", raw)), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**Care Providers near %s**\n", raw)
	fmt.Fprintf(&b, "District: %s\n", info.AdminDistrict)
	fmt.Fprintf(&b, "County/Authority: %s\n", info.LocalAuthority())
	fmt.Fprintf(&b, "Region: %s\n", info.Region)
	b.WriteString("Data source: CQC API (Live)\n\n")

	result, err := s.cqc.SearchLocations(ctx, cqc.SearchParams{
		LocalAuthority: info.LocalAuthority(),
		CareHome:       request.GetString("careHome", ""),
		Rating:         request.GetString("rating", ""),
		PerPage:        100,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("CQC search failed: %v", err)), nil
	}
	if len(result.Locations) == 0 {
		fmt.Fprintf(&b, "No providers found in %s.", info.LocalAuthority())
		return mcp.NewToolResultText(b.String()), nil
	}

	enriched := s.cqc.EnrichLocations(ctx, result.Locations, 15)
	var matched []cqc.Enriched
	for _, e := range filterRegistered(enriched) {
		locPostcode := strings.ToUpper(strings.ReplaceAll(e.PostalCode, " ", ""))
		if strings.HasPrefix(locPostcode, prefix) {
			matched = append(matched, e)
		}
	}

	maxResults := request.GetInt("perPage", 20)
	limited := matched
	if len(limited) > maxResults {
		limited = limited[:maxResults]
	}

	fmt.Fprintf(&b, "Found %d providers in %s area\n\n", len(matched), prefix)
	if len(limited) == 0 {
		fmt.Fprintf(&b, "No registered providers found with %s postcode.\n", prefix)
		fmt.Fprintf(&b, "\nTry searching the whole local authority: %s", info.LocalAuthority())
	} else {
		b.WriteString(joinBlocks(limited, formatEnriched))
		if len(matched) > maxResults {
			fmt.Fprintf(&b, "\n\n*Showing %d of %d results*", maxResults, len(matched))
		}
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (s *MCPServer) handleGetProviderDetails(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	locationID, err := request.RequireString("locationId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	detail, err := s.cqc.GetLocation(ctx, locationID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get provider details: %v", err)), nil
	}

	var b strings.Builder
	b.WriteString("**Provider Details (England)**\n")
	b.WriteString("Data source: CQC API (Live)\n\n")
	b.WriteString(formatDetail(detail))
	return mcp.NewToolResultText(b.String()), nil
}

func (s *MCPServer) handleGetRatingsSummary(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	localAuthority := request.GetString("localAuthority", "")
	region := request.GetString("region", "")

	result, err := s.cqc.SearchLocations(ctx, cqc.SearchParams{
		LocalAuthority: localAuthority,
		Region:         region,
		CareHome:       request.GetString("careHome", ""),
		PerPage:        100,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("CQC search failed: %v", err)), nil
	}

	registered := filterRegistered(s.cqc.EnrichLocations(ctx, result.Locations, 15))

	order := []string{"Outstanding", "Good", "Requires improvement", "Inadequate", "Not yet rated"}
	counts := map[string]int{}
	for _, e := range registered {
		rating := e.Rating
		switch rating {
		case "Outstanding", "Good", "Requires improvement", "Inadequate":
		default:
			rating = "Not yet rated"
		}
		counts[rating]++
	}

	var b strings.Builder
	b.WriteString("**Ratings Summary (England)**\n")
	b.WriteString("Data source: CQC API (Live)\n")
	if localAuthority != "" {
		fmt.Fprintf(&b, "Local Authority: %s\n", localAuthority)
	}
	if region != "" {
		fmt.Fprintf(&b, "Region: %s\n", region)
	}
	fmt.Fprintf(&b, "\nAnalysed %d registered providers (of %d total)\n\n", len(registered), result.Total)

	b.WriteString("**Distribution:**\n")
	for _, rating := range order {
		count := counts[rating]
		pct := 0.0
		barLen := 0
		if len(registered) > 0 {
			pct = float64(count) / float64(len(registered)) * 100
			barLen = int(float64(count)/float64(len(registered))*20 + 0.5)
		}
		fmt.Fprintf(&b, "  %s: %d (%.1f%%) %s\n", rating, count, pct, strings.Repeat("█", barLen))
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (s *MCPServer) handleLookupPostcode(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := request.RequireString("postcode")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	info, err := s.postcodes.Lookup(ctx, raw)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Postcode %q not found.", raw)), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**Postcode: %s**\n\n", info.Postcode)
	fmt.Fprintf(&b, "Country: %s\n", info.Country)
	fmt.Fprintf(&b, "District: %s\n", info.AdminDistrict)
	if info.AdminCounty != "" {
		fmt.Fprintf(&b, "County: %s\n", info.AdminCounty)
	}
	fmt.Fprintf(&b, "Region: %s\n", info.Region)
	fmt.Fprintf(&b, "Constituency: %s\n", info.ParliamentaryConstituency)
	fmt.Fprintf(&b, "Coordinates: %v, %v\n", info.Latitude, info.Longitude)
	fmt.Fprintf(&b, "\n*Use %q as localAuthority for CQC searches*", info.LocalAuthority())
	return mcp.NewToolResultText(b.String()), nil
}

func (s *MCPServer) handleSearchIreland(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	county := request.GetString("county", "")

	// Query without a cap so the header can report the full match count.
	matched := dataset.Query(s.snapshot.Ireland, dataset.Filters{
		Name:       request.GetString("name", ""),
		Area:       county,
		AreaMode:   dataset.AreaContains,
		MaxResults: len(s.snapshot.Ireland) + 1,
	})
	return mcp.NewToolResultText(formatIreland(matched, request.GetInt("maxResults", 20),
		county, s.snapshot.Timestamps.HIQA)), nil
}

func (s *MCPServer) handleSearchNorthernIreland(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	serviceType := request.GetString("serviceType", "")

	matched := dataset.Query(s.snapshot.NorthernIreland, dataset.Filters{
		Name:        request.GetString("name", ""),
		Area:        request.GetString("district", ""),
		AreaMode:    dataset.AreaContains,
		ServiceType: serviceType,
		MaxResults:  len(s.snapshot.NorthernIreland) + 1,
	})
	return mcp.NewToolResultText(formatNorthernIreland(matched, request.GetInt("maxResults", 20),
		serviceType, s.snapshot.Timestamps.RQIA)), nil
}

func (s *MCPServer) handleSearchScotland(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	serviceType := request.GetString("serviceType", "")
	councilArea := request.GetString("councilArea", "")

	matched := dataset.Query(s.snapshot.Scotland, dataset.Filters{
		Name:        request.GetString("name", ""),
		Area:        councilArea,
		AreaMode:    dataset.AreaContains,
		ServiceType: serviceType,
		MaxResults:  len(s.snapshot.Scotland) + 1,
	})
	return mcp.NewToolResultText(formatScotland(matched, request.GetInt("maxResults", 20),
		serviceType, councilArea, s.snapshot.Timestamps.Scotland, len(s.snapshot.Scotland))), nil
}

func (s *MCPServer) handleSearchWales(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(walesGuidance()), nil
}

func (s *MCPServer) handleCheckDataFreshness(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(formatFreshness(s.snapshot)), nil
}

func filterRegistered(enriched []cqc.Enriched) []cqc.Enriched {
	kept := enriched[:0:0]
	for _, e := range enriched {
		if e.RegistrationStatus == "Registered" {
			kept = append(kept, e)
		}
	}
	return kept
}

func joinBlocks[T any](items []T, format func(T) string) string {
	blocks := make([]string, len(items))
	for i, item := range items {
		blocks[i] = format(item)
	}
	return strings.Join(blocks, "\n\n---\n\n")
}
