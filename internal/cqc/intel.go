package cqc

import (
	"context"
	"sort"
	"strings"
	"time"
)

// englishRegions is the fixed set the region comparison probes. CQC has
// no endpoint listing regions, so the nine English NHS regions are
// hardcoded.
var englishRegions = []string{
	"London", "South East", "South West", "East of England",
	"West Midlands", "East Midlands", "Yorkshire and the Humber",
	"North West", "North East",
}

var ratingTiers = []string{"Outstanding", "Good", "Requires improvement", "Inadequate"}

// AggregateParams are the shared knobs of the aggregation queries.
// CareHome defaults to "Y"; MaxResults defaults to 100.
type AggregateParams struct {
	CareHome   string
	Region     string
	Rating     string
	MaxResults int
}

func (p *AggregateParams) defaults() {
	if p.CareHome == "" {
		p.CareHome = "Y"
	}
	if p.MaxResults <= 0 {
		p.MaxResults = 100
	}
}

// RegionGroup is one bucket of a grouped-by-region result.
type RegionGroup struct {
	Region    string     `json:"region"`
	Count     int        `json:"count"`
	Locations []Enriched `json:"locations"`
}

// OutstandingResult carries either a flat list (region filter given) or
// a per-region breakdown (no filter).
type OutstandingResult struct {
	Total     int           `json:"total"`
	Region    string        `json:"region,omitempty"`
	Locations []Enriched    `json:"locations,omitempty"`
	ByRegion  []RegionGroup `json:"byRegion,omitempty"`
}

// Outstanding finds Outstanding-rated registered locations. Without a
// region filter the result is grouped by region, largest group first.
func (c *Client) Outstanding(ctx context.Context, p AggregateParams) (*OutstandingResult, error) {
	p.defaults()

	locations, err := c.walkPages(ctx, SearchParams{
		Rating:   "Outstanding",
		CareHome: p.CareHome,
		Region:   p.Region,
		PerPage:  100,
	}, 10, p.MaxResults)
	if err != nil {
		return nil, err
	}

	enriched := c.enrichAll(ctx, locations, 15)
	registered := enriched[:0:0]
	for _, e := range enriched {
		if e.RegistrationStatus == "Registered" {
			registered = append(registered, e)
		}
	}

	result := &OutstandingResult{Total: len(registered)}
	if p.Region != "" {
		result.Region = p.Region
		result.Locations = registered
		return result, nil
	}

	buckets := make(map[string][]Enriched)
	for _, e := range registered {
		region := e.Region
		if region == "" {
			region = "Unknown"
		}
		buckets[region] = append(buckets[region], e)
	}
	for region, locs := range buckets {
		result.ByRegion = append(result.ByRegion, RegionGroup{
			Region:    region,
			Count:     len(locs),
			Locations: locs,
		})
	}
	sort.Slice(result.ByRegion, func(i, j int) bool {
		return result.ByRegion[i].Count > result.ByRegion[j].Count
	})
	return result, nil
}

// AtRisk finds registered locations rated Requires improvement or
// Inadequate (or a single caller-chosen rating), Inadequate first.
func (c *Client) AtRisk(ctx context.Context, p AggregateParams) ([]Enriched, error) {
	p.defaults()

	ratings := []string{"Requires improvement", "Inadequate"}
	if p.Rating != "" {
		ratings = []string{p.Rating}
	}

	var all []Location
	for _, rating := range ratings {
		locs, err := c.walkPages(ctx, SearchParams{
			Rating:   rating,
			CareHome: p.CareHome,
			Region:   p.Region,
			PerPage:  100,
		}, 10, p.MaxResults-len(all))
		if err != nil {
			return nil, err
		}
		all = append(all, locs...)
		if len(all) >= p.MaxResults {
			break
		}
	}
	if len(all) > p.MaxResults {
		all = all[:p.MaxResults]
	}

	enriched := c.enrichAll(ctx, all, 0)
	registered := enriched[:0:0]
	for _, e := range enriched {
		if e.RegistrationStatus == "Registered" {
			registered = append(registered, e)
		}
	}

	sort.SliceStable(registered, func(i, j int) bool {
		return registered[i].Rating == "Inadequate" && registered[j].Rating != "Inadequate"
	})
	return registered, nil
}

// InspectionSummary is the summary-level projection of a recent
// inspection hit. The recency query stays on the list endpoint; no
// detail fetches.
type InspectionSummary struct {
	LocationID         string `json:"locationId"`
	LocationName       string `json:"locationName"`
	PostalCode         string `json:"postalCode"`
	Region             string `json:"region,omitempty"`
	Rating             string `json:"rating,omitempty"`
	LastInspectionDate string `json:"lastInspectionDate"`
	ReportURL          string `json:"cqcReportUrl"`
}

// RecentInspections lists locations inspected within the past N days.
func (c *Client) RecentInspections(ctx context.Context, days int, p AggregateParams) ([]InspectionSummary, error) {
	p.defaults()
	if days <= 0 {
		days = 30
	}
	cutoff := time.Now().AddDate(0, 0, -days)

	locations, err := c.walkPages(ctx, SearchParams{
		CareHome: p.CareHome,
		Region:   p.Region,
		PerPage:  100,
	}, 10, p.MaxResults)
	if err != nil {
		return nil, err
	}

	var out []InspectionSummary
	for _, loc := range locations {
		if loc.LastInspection == nil {
			continue
		}
		inspected, err := time.Parse("2006-01-02", loc.LastInspection.Date)
		if err != nil || inspected.Before(cutoff) {
			continue
		}
		out = append(out, InspectionSummary{
			LocationID:         loc.LocationID,
			LocationName:       loc.LocationName,
			PostalCode:         loc.PostalCode,
			Region:             loc.Region,
			Rating:             loc.OverallRating,
			LastInspectionDate: loc.LastInspection.Date,
			ReportURL:          ReportURL(loc.LocationID),
		})
		if len(out) >= p.MaxResults {
			break
		}
	}
	return out, nil
}

// enrichCeiling bounds how many summary rows the bed/registration-date
// scans will detail-fetch; those predicates only exist on the detail
// record, so every candidate costs a request.
const enrichCeiling = 200

// LargeHomes finds registered locations with at least minBeds beds,
// largest first.
func (c *Client) LargeHomes(ctx context.Context, minBeds int, p AggregateParams) ([]Enriched, error) {
	p.defaults()
	if minBeds <= 0 {
		minBeds = 50
	}

	locations, err := c.walkPages(ctx, SearchParams{
		CareHome: p.CareHome,
		Region:   p.Region,
		Rating:   p.Rating,
		PerPage:  100,
	}, 10, enrichCeiling)
	if err != nil {
		return nil, err
	}

	enriched := c.enrichAll(ctx, locations, 0)
	kept := enriched[:0:0]
	for _, e := range enriched {
		if e.RegistrationStatus == "Registered" && e.Beds >= minBeds {
			kept = append(kept, e)
		}
	}

	sort.Slice(kept, func(i, j int) bool { return kept[i].Beds > kept[j].Beds })
	if len(kept) > p.MaxResults {
		kept = kept[:p.MaxResults]
	}
	return kept, nil
}

// NewRegistrations finds locations registered within the past N months,
// newest first.
func (c *Client) NewRegistrations(ctx context.Context, months int, p AggregateParams) ([]Enriched, error) {
	p.defaults()
	if months <= 0 {
		months = 6
	}
	cutoff := time.Now().AddDate(0, -months, 0)

	locations, err := c.walkPages(ctx, SearchParams{
		CareHome: p.CareHome,
		Region:   p.Region,
		PerPage:  100,
	}, 10, enrichCeiling)
	if err != nil {
		return nil, err
	}

	enriched := c.enrichAll(ctx, locations, 0)
	kept := enriched[:0:0]
	for _, e := range enriched {
		if e.RegistrationDate == "" {
			continue
		}
		registered, err := time.Parse("2006-01-02", e.RegistrationDate)
		if err != nil || registered.Before(cutoff) {
			continue
		}
		kept = append(kept, e)
	}

	sort.Slice(kept, func(i, j int) bool {
		return kept[i].RegistrationDate > kept[j].RegistrationDate
	})
	if len(kept) > p.MaxResults {
		kept = kept[:p.MaxResults]
	}
	return kept, nil
}

// PortfolioStats summarize every location operated by one provider.
type PortfolioStats struct {
	TotalLocations  int            `json:"totalLocations"`
	TotalBeds       int            `json:"totalBeds"`
	RegisteredCount int            `json:"registeredCount"`
	RatingBreakdown map[string]int `json:"ratingBreakdown"`
}

// PortfolioResult is the portfolio query response.
type PortfolioResult struct {
	Provider  string         `json:"provider"`
	Stats     PortfolioStats `json:"stats"`
	Locations []Enriched     `json:"locations"`
}

// Portfolio lists and summarizes every location run by a provider,
// matched by provider id or by organisation-name substring.
func (c *Client) Portfolio(ctx context.Context, providerName, providerID, careHome string) (*PortfolioResult, error) {
	locations, err := c.walkPages(ctx, SearchParams{
		ProviderID: providerID,
		CareHome:   careHome,
		PerPage:    100,
	}, 20, 0)
	if err != nil {
		return nil, err
	}

	if providerName != "" {
		want := strings.ToLower(providerName)
		matched := locations[:0:0]
		for _, loc := range locations {
			if strings.Contains(strings.ToLower(loc.OrganisationName), want) {
				matched = append(matched, loc)
			}
		}
		locations = matched
	}

	enriched := c.enrichAll(ctx, locations, 0)

	stats := PortfolioStats{
		TotalLocations: len(enriched),
		RatingBreakdown: map[string]int{
			"Outstanding": 0, "Good": 0,
			"Requires improvement": 0, "Inadequate": 0, "Not rated": 0,
		},
	}
	for _, e := range enriched {
		stats.TotalBeds += e.Beds
		if e.RegistrationStatus == "Registered" {
			stats.RegisteredCount++
		}
		stats.RatingBreakdown[e.Rating]++
	}

	provider := providerName
	if provider == "" {
		provider = providerID
	}
	return &PortfolioResult{Provider: provider, Stats: stats, Locations: enriched}, nil
}

// AnalyzeServices finds registered care homes whose specialisms or
// service types match the given term.
func (c *Client) AnalyzeServices(ctx context.Context, serviceType string, p AggregateParams) ([]Enriched, error) {
	p.defaults()

	locations, err := c.walkPages(ctx, SearchParams{
		CareHome: "Y",
		Region:   p.Region,
		Rating:   p.Rating,
		PerPage:  100,
	}, 10, enrichCeiling)
	if err != nil {
		return nil, err
	}

	enriched := c.enrichAll(ctx, locations, 0)
	want := strings.ToLower(serviceType)
	kept := enriched[:0:0]
	for _, e := range enriched {
		if e.RegistrationStatus != "Registered" {
			continue
		}
		if strings.Contains(strings.ToLower(e.Specialisms), want) ||
			strings.Contains(strings.ToLower(e.ServiceTypes), want) {
			kept = append(kept, e)
		}
	}
	if len(kept) > p.MaxResults {
		kept = kept[:p.MaxResults]
	}
	return kept, nil
}

// TierCounts is a per-rating total breakdown from perPage=1 count
// probes.
type TierCounts map[string]int

// RegionStats compares one region's care-home counts by rating tier.
type RegionStats struct {
	Region     string     `json:"region"`
	TotalHomes int        `json:"totalHomes"`
	Ratings    TierCounts `json:"ratings"`
}

// CompareRegions probes total and per-rating counts for each of the
// nine English regions, sorted by total descending. A failed probe
// reports zero rather than failing the comparison.
func (c *Client) CompareRegions(ctx context.Context, careHome string) ([]RegionStats, error) {
	if careHome == "" {
		careHome = "Y"
	}

	stats := make([]RegionStats, 0, len(englishRegions))
	for _, region := range englishRegions {
		total, ratings := c.probeCounts(ctx, SearchParams{Region: region, CareHome: careHome})
		stats = append(stats, RegionStats{Region: region, TotalHomes: total, Ratings: ratings})
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].TotalHomes > stats[j].TotalHomes })
	return stats, nil
}

// AuthorityStats compares one local authority's care-home counts by
// rating tier.
type AuthorityStats struct {
	LocalAuthority string     `json:"localAuthority"`
	TotalHomes     int        `json:"totalHomes"`
	Ratings        TierCounts `json:"ratings"`
}

// CompareAuthorities probes total and per-rating counts for each named
// local authority, in the caller's order.
func (c *Client) CompareAuthorities(ctx context.Context, authorities []string, careHome string) ([]AuthorityStats, error) {
	if careHome == "" {
		careHome = "Y"
	}

	stats := make([]AuthorityStats, 0, len(authorities))
	for _, authority := range authorities {
		total, ratings := c.probeCounts(ctx, SearchParams{LocalAuthority: authority, CareHome: careHome})
		stats = append(stats, AuthorityStats{LocalAuthority: authority, TotalHomes: total, Ratings: ratings})
	}
	return stats, nil
}

// probeCounts reads totals from perPage=1 searches, one per rating tier
// plus one unfiltered.
func (c *Client) probeCounts(ctx context.Context, base SearchParams) (int, TierCounts) {
	base.PerPage = 1

	total := 0
	if result, err := c.SearchLocations(ctx, base); err == nil {
		total = result.Total
	} else {
		c.logger.Warn("count probe failed", "error", err)
	}

	counts := make(TierCounts, len(ratingTiers))
	for _, rating := range ratingTiers {
		params := base
		params.Rating = rating
		if result, err := c.SearchLocations(ctx, params); err == nil {
			counts[rating] = result.Total
		} else {
			counts[rating] = 0
		}
	}
	return total, counts
}
