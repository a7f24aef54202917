package handler

import (
	"net/http"
	"strings"

	"github.com/mgcare/carefinder/internal/api/respond"
	"github.com/mgcare/carefinder/internal/cqc"
	"github.com/mgcare/carefinder/internal/dataset"
	"github.com/mgcare/carefinder/internal/errs"
	"github.com/mgcare/carefinder/internal/postcode"
)

type dispatchResult struct {
	Postcode     string      `json:"postcode"`
	PostcodeArea string      `json:"postcodeArea"`
	Region       string      `json:"region"`
	Count        int         `json:"count"`
	Providers    interface{} `json:"providers"`
}

// SearchProviders routes a postcode search to the jurisdiction owning it.
// @Summary Cross-jurisdiction provider search
// @Description Classifies the postcode (or honours the country override) and searches the matching register.
// @Tags dispatch
// @Produce json
// @Param postcode query string true "Postcode or Eircode prefix"
// @Param country query string false "Override: ni, scotland, ireland, england"
// @Param maxResults query int false "Result cap (default 20)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Router /api/providers/search [get]
func (h *Handler) SearchProviders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	raw := strings.TrimSpace(q.Get("postcode"))
	if raw == "" {
		respond.Error(w, errs.Validationf("postcode parameter is required"))
		return
	}

	area := postcode.Area(raw)
	forced := postcode.Country(strings.ToLower(q.Get("country")))
	maxResults := queryInt(r, "maxResults", 0)
	jurisdiction := postcode.Classify(area, forced)

	result := dispatchResult{
		Postcode:     strings.ToUpper(raw),
		PostcodeArea: area,
		Region:       string(jurisdiction),
	}

	switch jurisdiction {
	case postcode.NorthernIreland:
		records := dataset.ByPostcodePrefix(h.snapshot.NorthernIreland, area, maxResults)
		result.Count, result.Providers = len(records), emptyIfNil(records)
	case postcode.Scotland:
		records := dataset.ByPostcodePrefix(h.snapshot.Scotland, area, maxResults)
		result.Count, result.Providers = len(records), emptyIfNil(records)
	case postcode.Ireland:
		records := dataset.ByPostcodePrefix(h.snapshot.Ireland, area, maxResults)
		result.Count, result.Providers = len(records), emptyIfNil(records)
	default:
		providers, err := h.searchEngland(r, raw, area, maxResults)
		if err != nil {
			respond.Error(w, err)
			return
		}
		result.Count, result.Providers = len(providers), providers
	}

	respond.WriteJSON(w, http.StatusOK, result)
}

// englandHit is the dispatcher projection of a CQC summary row.
type englandHit struct {
	Source         string `json:"source"`
	LocationID     string `json:"locationId"`
	Name           string `json:"name"`
	Postcode       string `json:"postcode"`
	LocalAuthority string `json:"localAuthority"`
	Rating         string `json:"rating,omitempty"`
	Region         string `json:"region"`
	ReportURL      string `json:"cqcUrl"`
}

// searchEngland geocodes the postcode to its local authority, searches
// CQC within it, and keeps locations in the same postcode area.
func (h *Handler) searchEngland(r *http.Request, raw, area string, maxResults int) ([]englandHit, error) {
	if maxResults <= 0 {
		maxResults = dataset.DefaultMaxResults
	}

	info, err := h.postcodes.Lookup(r.Context(), raw)
	if err != nil {
		return nil, err
	}

	search, err := h.cqc.SearchLocations(r.Context(), cqc.SearchParams{
		LocalAuthority: info.AdminDistrict,
		PerPage:        50,
	})
	if err != nil {
		return nil, err
	}

	hits := make([]englandHit, 0, len(search.Locations))
	for _, loc := range search.Locations {
		if !strings.HasPrefix(strings.ToUpper(loc.PostalCode), area) {
			continue
		}
		hits = append(hits, englandHit{
			Source:         string(dataset.SourceCQC),
			LocationID:     loc.LocationID,
			Name:           loc.LocationName,
			Postcode:       loc.PostalCode,
			LocalAuthority: info.AdminDistrict,
			Rating:         loc.OverallRating,
			Region:         "England",
			ReportURL:      cqc.ReportURL(loc.LocationID),
		})
		if len(hits) >= maxResults {
			break
		}
	}
	return hits, nil
}

func emptyIfNil(records []dataset.ProviderRecord) []dataset.ProviderRecord {
	if records == nil {
		return []dataset.ProviderRecord{}
	}
	return records
}
