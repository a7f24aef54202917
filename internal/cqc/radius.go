package cqc

import (
	"context"
	"sort"
	"time"
)

// Fenland and its surrounds have very few providers inside any single
// authority boundary, so radius searches widen to the neighbouring
// authorities as well.
var neighbourAuthorities = []string{
	"Cambridgeshire",
	"Peterborough",
	"East Cambridgeshire",
	"Huntingdonshire",
	"South Holland",
	"King's Lynn and West Norfolk",
}

// deregisteredGraceMonths keeps recently closed homes in radius results.
// A home deregistered with an inspection inside this window is still
// useful signal for someone researching an area.
const deregisteredGraceMonths = 3

// RadiusParams describe a radius search around a geocoded postcode.
type RadiusParams struct {
	Latitude       float64
	Longitude      float64
	LocalAuthority string
	Miles          float64
	CareHome       string
	Rating         string
	MaxResults     int
}

// RadiusSearch finds locations within the given distance of a point,
// pulling from the primary authority plus the fixed neighbour list,
// enriching each hit for coordinates, and sorting ascending by distance.
func (c *Client) RadiusSearch(ctx context.Context, p RadiusParams) ([]Enriched, error) {
	if p.MaxResults <= 0 {
		p.MaxResults = 50
	}

	authorities := append([]string{p.LocalAuthority}, neighbourAuthorities...)

	var all []Location
	seen := make(map[string]bool)
	for _, authority := range authorities {
		locs, err := c.walkPages(ctx, SearchParams{
			LocalAuthority: authority,
			CareHome:       p.CareHome,
			Rating:         p.Rating,
			PerPage:        20,
		}, 20, 0)
		if err != nil {
			return nil, err
		}
		for _, loc := range locs {
			if !seen[loc.LocationID] {
				seen[loc.LocationID] = true
				all = append(all, loc)
			}
		}
	}

	enriched := c.enrichAll(ctx, all, 0)

	var within []Enriched
	for _, e := range enriched {
		if e.Latitude == 0 && e.Longitude == 0 {
			continue
		}
		if !keepByStatus(e, time.Now()) {
			continue
		}
		d := Distance(p.Latitude, p.Longitude, e.Latitude, e.Longitude)
		if d <= p.Miles {
			e.Distance = roundTenth(d)
			within = append(within, e)
		}
	}

	sort.Slice(within, func(i, j int) bool {
		return within[i].Distance < within[j].Distance
	})
	if len(within) > p.MaxResults {
		within = within[:p.MaxResults]
	}
	return within, nil
}

// keepByStatus retains registered homes, plus deregistered ones whose
// last inspection falls inside the grace window.
func keepByStatus(e Enriched, now time.Time) bool {
	if e.RegistrationStatus == "Registered" {
		return true
	}
	if e.RegistrationStatus != "Deregistered" || e.LastInspectionDate == "" {
		return false
	}
	inspected, err := time.Parse("2006-01-02", e.LastInspectionDate)
	if err != nil {
		return false
	}
	return inspected.After(now.AddDate(0, -deregisteredGraceMonths, 0))
}
