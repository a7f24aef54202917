package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mgcare/carefinder/internal/api/respond"
	"github.com/mgcare/carefinder/internal/cqc"
	"github.com/mgcare/carefinder/internal/errs"
	"github.com/mgcare/carefinder/internal/postcode"
)

// SearchCQC runs a single-page CQC locations search.
// @Summary Search English care providers
// @Description Passes the filters through to the CQC locations search.
// @Tags england
// @Produce json
// @Param localAuthority query string false "Local authority"
// @Param region query string false "Region"
// @Param rating query string false "Overall rating"
// @Param careHome query string false "Y to restrict to care homes"
// @Param page query int false "Page (default 1)"
// @Param perPage query int false "Page size (default 20)"
// @Success 200 {object} map[string]interface{}
// @Router /api/search/cqc [get]
func (h *Handler) SearchCQC(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	result, err := h.cqc.SearchLocations(r.Context(), cqc.SearchParams{
		LocalAuthority: q.Get("localAuthority"),
		Region:         q.Get("region"),
		Rating:         q.Get("rating"),
		CareHome:       q.Get("careHome"),
		Page:           queryInt(r, "page", 1),
		PerPage:        queryInt(r, "perPage", 20),
	})
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, result)
}

// SearchPostcode searches CQC around one English postcode.
// @Summary Search English providers near a postcode
// @Description Geocodes the postcode to its local authority, searches CQC there, and keeps locations in the same postcode area.
// @Tags england
// @Produce json
// @Param postcode query string true "Postcode"
// @Param careHome query string false "Y to restrict to care homes"
// @Param rating query string false "Overall rating"
// @Param perPage query int false "Page size (default 20)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /api/search/postcode [get]
func (h *Handler) SearchPostcode(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	raw := q.Get("postcode")
	if raw == "" {
		respond.Error(w, errs.Validationf("postcode is required"))
		return
	}

	info, err := h.postcodes.Lookup(r.Context(), raw)
	if err != nil {
		respond.Error(w, err)
		return
	}

	result, err := h.cqc.SearchLocations(r.Context(), cqc.SearchParams{
		LocalAuthority: info.AdminDistrict,
		CareHome:       q.Get("careHome"),
		Rating:         q.Get("rating"),
		PerPage:        queryInt(r, "perPage", 20),
	})
	if err != nil {
		respond.Error(w, err)
		return
	}

	area := postcode.Area(raw)
	kept := result.Locations[:0:0]
	for _, loc := range result.Locations {
		if strings.HasPrefix(strings.ToUpper(loc.PostalCode), area) {
			kept = append(kept, loc)
		}
	}
	result.Locations = kept

	respond.WriteJSON(w, http.StatusOK, result)
}

// ProviderDetail returns the full CQC record for one location.
// @Summary CQC location detail
// @Tags england
// @Produce json
// @Param locationId path string true "CQC location id"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} respond.ErrorResponse
// @Router /api/provider/{locationId} [get]
func (h *Handler) ProviderDetail(w http.ResponseWriter, r *http.Request) {
	detail, err := h.cqc.GetLocation(r.Context(), chi.URLParam(r, "locationId"))
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, detail)
}

// PostcodeLookup resolves one postcode via postcodes.io.
// @Summary Postcode lookup
// @Tags postcode
// @Produce json
// @Param postcode path string true "Postcode"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} respond.ErrorResponse
// @Router /api/postcode/{postcode} [get]
func (h *Handler) PostcodeLookup(w http.ResponseWriter, r *http.Request) {
	info, err := h.postcodes.Lookup(r.Context(), chi.URLParam(r, "postcode"))
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"result": info})
}

type radiusResult struct {
	SearchPostcode string         `json:"searchPostcode"`
	CenterPoint    radiusCenter   `json:"centerPoint"`
	RadiusMiles    float64        `json:"radiusMiles"`
	Count          int            `json:"count"`
	Locations      []cqc.Enriched `json:"locations"`
}

type radiusCenter struct {
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	LocalAuthority string  `json:"localAuthority"`
}

// SearchRadius finds providers within a distance of a postcode.
// @Summary Radius search
// @Description Geocodes the postcode and returns enriched locations within the given distance, nearest first.
// @Tags england
// @Produce json
// @Param postcode query string true "Postcode"
// @Param miles query number false "Radius in miles (default 5)"
// @Param careHome query string false "Y to restrict to care homes"
// @Param rating query string false "Overall rating"
// @Param maxResults query int false "Result cap (default 50)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /api/search/radius [get]
func (h *Handler) SearchRadius(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	raw := q.Get("postcode")
	if raw == "" {
		respond.Error(w, errs.Validationf("postcode is required"))
		return
	}
	miles := queryFloat(r, "miles", 5)
	if miles <= 0 {
		respond.Error(w, errs.Validationf("miles must be a positive number"))
		return
	}

	info, err := h.postcodes.Lookup(r.Context(), raw)
	if err != nil {
		respond.Error(w, err)
		return
	}

	locations, err := h.cqc.RadiusSearch(r.Context(), cqc.RadiusParams{
		Latitude:       info.Latitude,
		Longitude:      info.Longitude,
		LocalAuthority: info.AdminDistrict,
		Miles:          miles,
		CareHome:       q.Get("careHome"),
		Rating:         q.Get("rating"),
		MaxResults:     queryInt(r, "maxResults", 50),
	})
	if err != nil {
		respond.Error(w, err)
		return
	}
	if locations == nil {
		locations = []cqc.Enriched{}
	}

	respond.WriteJSON(w, http.StatusOK, radiusResult{
		SearchPostcode: raw,
		CenterPoint: radiusCenter{
			Latitude:       info.Latitude,
			Longitude:      info.Longitude,
			LocalAuthority: info.AdminDistrict,
		},
		RadiusMiles: miles,
		Count:       len(locations),
		Locations:   locations,
	})
}
