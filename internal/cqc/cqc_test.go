package cqc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "test-key", 6000, 10, nil)
}

func TestDistanceZeroForSamePoint(t *testing.T) {
	assert.InDelta(t, 0, Distance(52.5, -0.16, 52.5, -0.16), 1e-9)
}

func TestDistanceOneDegreeLatitude(t *testing.T) {
	// One degree of latitude is roughly 69 miles everywhere on Earth.
	d := Distance(52.0, -0.16, 53.0, -0.16)
	assert.InDelta(t, 69.0, d, 0.5)
}

func TestKeepByStatus(t *testing.T) {
	now := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	registered := Enriched{RegistrationStatus: "Registered"}
	assert.True(t, keepByStatus(registered, now))

	recentDereg := Enriched{
		RegistrationStatus: "Deregistered",
		LastInspectionDate: "2026-07-15",
	}
	assert.True(t, keepByStatus(recentDereg, now))

	staleDereg := Enriched{
		RegistrationStatus: "Deregistered",
		LastInspectionDate: "2026-04-15",
	}
	assert.False(t, keepByStatus(staleDereg, now))

	noInspection := Enriched{RegistrationStatus: "Deregistered"}
	assert.False(t, keepByStatus(noInspection, now))
}

func TestSearchLocationsSendsSubscriptionKey(t *testing.T) {
	var gotKey, gotRating string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("Ocp-Apim-Subscription-Key")
		gotRating = r.URL.Query().Get("overallRating")
		json.NewEncoder(w).Encode(SearchResult{Total: 1, TotalPages: 1, Locations: []Location{
			{LocationID: "1-101", LocationName: "Sunrise House", PostalCode: "PE13 1AA"},
		}})
	}))

	result, err := client.SearchLocations(context.Background(), SearchParams{Rating: "Outstanding"})
	require.NoError(t, err)
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, "Outstanding", gotRating)
	require.Len(t, result.Locations, 1)
	assert.Equal(t, "Sunrise House", result.Locations[0].LocationName)
}

func TestGetLocationNotFound(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"not found"}`, http.StatusNotFound)
	}))

	_, err := client.GetLocation(context.Background(), "1-missing")
	assert.Error(t, err)
}

func TestWalkPagesStopsAtTotalPages(t *testing.T) {
	var pagesServed []string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		pagesServed = append(pagesServed, page)
		json.NewEncoder(w).Encode(SearchResult{
			Total:      4,
			TotalPages: 2,
			Locations: []Location{
				{LocationID: "1-" + page + "a"},
				{LocationID: "1-" + page + "b"},
			},
		})
	}))

	locs, err := client.walkPages(context.Background(), SearchParams{PerPage: 2}, 10, 0)
	require.NoError(t, err)
	assert.Len(t, locs, 4)
	assert.Equal(t, []string{"1", "2"}, pagesServed)
}

func TestWalkPagesHonoursCeiling(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(SearchResult{
			Total:      1000,
			TotalPages: 50,
			Locations: []Location{
				{LocationID: "a"}, {LocationID: "b"}, {LocationID: "c"},
			},
		})
	}))

	locs, err := client.walkPages(context.Background(), SearchParams{PerPage: 3}, 50, 5)
	require.NoError(t, err)
	assert.Len(t, locs, 5)
}

func TestEnrichAllDropsFailedDetails(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/locations/1-bad" {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(LocationDetail{
			RegistrationStatus: "Registered",
			NumberOfBeds:       40,
			Region:             "East of England",
		})
	}))

	locations := make([]Location, 0, 10)
	for i := 0; i < 9; i++ {
		locations = append(locations, Location{LocationID: fmt.Sprintf("1-ok%d", i)})
	}
	locations = append(locations, Location{LocationID: "1-bad"})

	enriched := client.enrichAll(context.Background(), locations, 4)
	assert.Len(t, enriched, 9)
	for _, e := range enriched {
		assert.Equal(t, "Registered", e.RegistrationStatus)
	}
}

func TestRadiusSearchDedupesAndSortsByDistance(t *testing.T) {
	// Every authority returns the same four locations, as happens when
	// neighbouring authority boundaries overlap a provider's listings.
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/locations" {
			json.NewEncoder(w).Encode(SearchResult{
				Total: 4, TotalPages: 1,
				Locations: []Location{
					{LocationID: "1-near", LocationName: "Near House"},
					{LocationID: "1-far", LocationName: "Far House"},
					{LocationID: "1-outside", LocationName: "Outside House"},
					{LocationID: "1-nocoords", LocationName: "Unmapped House"},
				},
			})
			return
		}

		detail := LocationDetail{RegistrationStatus: "Registered"}
		switch r.URL.Path {
		case "/locations/1-near":
			detail.OnspdLatitude, detail.OnspdLongitude = 52.01, -0.1
		case "/locations/1-far":
			detail.OnspdLatitude, detail.OnspdLongitude = 52.05, -0.1
		case "/locations/1-outside":
			detail.OnspdLatitude, detail.OnspdLongitude = 53.0, -0.1
		case "/locations/1-nocoords":
			// ONSPD has no coordinates for some new registrations.
		}
		json.NewEncoder(w).Encode(detail)
	}))

	got, err := client.RadiusSearch(context.Background(), RadiusParams{
		Latitude:       52.0,
		Longitude:      -0.1,
		LocalAuthority: "Fenland",
		Miles:          10,
	})
	require.NoError(t, err)

	// The out-of-radius and coordinate-less homes drop out, and each id
	// appears once despite being served for all seven authorities.
	require.Len(t, got, 2)
	assert.Equal(t, "Near House", got[0].LocationName)
	assert.Equal(t, "Far House", got[1].LocationName)
	assert.Less(t, got[0].Distance, got[1].Distance)
	assert.InDelta(t, 0.7, got[0].Distance, 0.1)
}

func TestProbeCountsReadsTotals(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		total := 100
		if r.URL.Query().Get("overallRating") == "Outstanding" {
			total = 7
		}
		json.NewEncoder(w).Encode(SearchResult{Total: total, TotalPages: 1})
	}))

	total, ratings := client.probeCounts(context.Background(), SearchParams{Region: "London"})
	assert.Equal(t, 100, total)
	assert.Equal(t, 7, ratings["Outstanding"])
	assert.Equal(t, 100, ratings["Good"])
}

func TestAtRiskSortsInadequateFirst(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/locations" {
			rating := r.URL.Query().Get("overallRating")
			id := "1-ri"
			if rating == "Inadequate" {
				id = "1-inad"
			}
			json.NewEncoder(w).Encode(SearchResult{
				Total: 1, TotalPages: 1,
				Locations: []Location{{LocationID: id, LocationName: rating}},
			})
			return
		}
		detail := LocationDetail{RegistrationStatus: "Registered"}
		if r.URL.Path == "/locations/1-inad" {
			detail.CurrentRatings.Overall.Rating = "Inadequate"
		} else {
			detail.CurrentRatings.Overall.Rating = "Requires improvement"
		}
		json.NewEncoder(w).Encode(detail)
	}))

	got, err := client.AtRisk(context.Background(), AggregateParams{})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Inadequate", got[0].Rating)
	assert.Equal(t, "Requires improvement", got[1].Rating)
}

func TestPortfolioStats(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/locations" {
			json.NewEncoder(w).Encode(SearchResult{
				Total: 2, TotalPages: 1,
				Locations: []Location{
					{LocationID: "1-a", OrganisationName: "Sunrise Care Group"},
					{LocationID: "1-b", OrganisationName: "Sunrise Care Group"},
					{LocationID: "1-c", OrganisationName: "Other Provider"},
				},
			})
			return
		}
		detail := LocationDetail{RegistrationStatus: "Registered", NumberOfBeds: 30}
		detail.CurrentRatings.Overall.Rating = "Good"
		json.NewEncoder(w).Encode(detail)
	}))

	got, err := client.Portfolio(context.Background(), "sunrise", "", "")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Stats.TotalLocations)
	assert.Equal(t, 60, got.Stats.TotalBeds)
	assert.Equal(t, 2, got.Stats.RegisteredCount)
	assert.Equal(t, 2, got.Stats.RatingBreakdown["Good"])
	assert.Equal(t, 0, got.Stats.RatingBreakdown["Inadequate"])
}
