package handler

import (
	"net/http"
	"strings"

	"github.com/mgcare/carefinder/internal/api/respond"
	"github.com/mgcare/carefinder/internal/cqc"
	"github.com/mgcare/carefinder/internal/errs"
)

func (h *Handler) aggregateParams(r *http.Request) cqc.AggregateParams {
	q := r.URL.Query()
	return cqc.AggregateParams{
		CareHome:   q.Get("careHome"),
		Region:     q.Get("region"),
		Rating:     q.Get("rating"),
		MaxResults: queryInt(r, "maxResults", 0),
	}
}

func emptyEnriched(locations []cqc.Enriched) []cqc.Enriched {
	if locations == nil {
		return []cqc.Enriched{}
	}
	return locations
}

// SearchOutstanding lists Outstanding-rated locations, grouped by region
// unless a region filter is given.
// @Summary Outstanding-rated providers
// @Tags intelligence
// @Produce json
// @Param careHome query string false "Care-home filter (default Y)"
// @Param region query string false "Region"
// @Param maxResults query int false "Result cap (default 100)"
// @Success 200 {object} map[string]interface{}
// @Router /api/search/outstanding [get]
func (h *Handler) SearchOutstanding(w http.ResponseWriter, r *http.Request) {
	result, err := h.cqc.Outstanding(r.Context(), h.aggregateParams(r))
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, result)
}

// SearchAtRisk lists locations rated Requires improvement or Inadequate.
// @Summary At-risk providers
// @Tags intelligence
// @Produce json
// @Param careHome query string false "Care-home filter (default Y)"
// @Param region query string false "Region"
// @Param rating query string false "Restrict to one rating"
// @Param maxResults query int false "Result cap (default 100)"
// @Success 200 {object} map[string]interface{}
// @Router /api/search/at-risk [get]
func (h *Handler) SearchAtRisk(w http.ResponseWriter, r *http.Request) {
	locations, err := h.cqc.AtRisk(r.Context(), h.aggregateParams(r))
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"total":     len(locations),
		"locations": emptyEnriched(locations),
	})
}

// SearchRecentInspections lists locations inspected in the past N days.
// @Summary Recently inspected providers
// @Tags intelligence
// @Produce json
// @Param days query int false "Window in days (default 30)"
// @Param careHome query string false "Care-home filter (default Y)"
// @Param region query string false "Region"
// @Param maxResults query int false "Result cap (default 100)"
// @Success 200 {object} map[string]interface{}
// @Router /api/search/recent-inspections [get]
func (h *Handler) SearchRecentInspections(w http.ResponseWriter, r *http.Request) {
	days := queryInt(r, "days", 30)
	inspections, err := h.cqc.RecentInspections(r.Context(), days, h.aggregateParams(r))
	if err != nil {
		respond.Error(w, err)
		return
	}
	if inspections == nil {
		inspections = []cqc.InspectionSummary{}
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"total":     len(inspections),
		"daysAgo":   days,
		"locations": inspections,
	})
}

// SearchLargeHomes lists registered homes at or above a bed threshold.
// @Summary Large-capacity homes
// @Tags intelligence
// @Produce json
// @Param minBeds query int false "Minimum beds (default 50)"
// @Param careHome query string false "Care-home filter (default Y)"
// @Param region query string false "Region"
// @Param rating query string false "Overall rating"
// @Param maxResults query int false "Result cap (default 100)"
// @Success 200 {object} map[string]interface{}
// @Router /api/search/large-homes [get]
func (h *Handler) SearchLargeHomes(w http.ResponseWriter, r *http.Request) {
	minBeds := queryInt(r, "minBeds", 50)
	locations, err := h.cqc.LargeHomes(r.Context(), minBeds, h.aggregateParams(r))
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"total":     len(locations),
		"minBeds":   minBeds,
		"locations": emptyEnriched(locations),
	})
}

// SearchNewRegistrations lists locations registered in the past N months.
// @Summary Newly registered providers
// @Tags intelligence
// @Produce json
// @Param months query int false "Window in months (default 6)"
// @Param careHome query string false "Care-home filter (default Y)"
// @Param region query string false "Region"
// @Param maxResults query int false "Result cap (default 100)"
// @Success 200 {object} map[string]interface{}
// @Router /api/search/new-registrations [get]
func (h *Handler) SearchNewRegistrations(w http.ResponseWriter, r *http.Request) {
	months := queryInt(r, "months", 6)
	locations, err := h.cqc.NewRegistrations(r.Context(), months, h.aggregateParams(r))
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"total":     len(locations),
		"monthsAgo": months,
		"locations": emptyEnriched(locations),
	})
}

// ProviderPortfolio summarizes every location run by one provider.
// @Summary Provider portfolio
// @Tags intelligence
// @Produce json
// @Param providerName query string false "Organisation name substring"
// @Param providerId query string false "CQC provider id"
// @Param careHome query string false "Care-home filter"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Router /api/provider/portfolio [get]
func (h *Handler) ProviderPortfolio(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	providerName := q.Get("providerName")
	providerID := q.Get("providerId")
	if providerName == "" && providerID == "" {
		respond.Error(w, errs.Validationf("providerName or providerId is required"))
		return
	}

	result, err := h.cqc.Portfolio(r.Context(), providerName, providerID, q.Get("careHome"))
	if err != nil {
		respond.Error(w, err)
		return
	}
	result.Locations = emptyEnriched(result.Locations)
	respond.WriteJSON(w, http.StatusOK, result)
}

// AnalyzeServices finds care homes offering a service or specialism.
// @Summary Service-type analysis
// @Tags intelligence
// @Produce json
// @Param serviceType query string true "Specialism or service-type substring"
// @Param region query string false "Region"
// @Param rating query string false "Overall rating"
// @Param maxResults query int false "Result cap (default 100)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Router /api/analyze/services [get]
func (h *Handler) AnalyzeServices(w http.ResponseWriter, r *http.Request) {
	serviceType := r.URL.Query().Get("serviceType")
	if serviceType == "" {
		respond.Error(w, errs.Validationf(`serviceType is required (e.g. "Dementia", "Learning disabilities")`))
		return
	}

	locations, err := h.cqc.AnalyzeServices(r.Context(), serviceType, h.aggregateParams(r))
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"serviceType": serviceType,
		"total":       len(locations),
		"locations":   emptyEnriched(locations),
	})
}

// CompareRegions compares care-home counts across the English regions.
// @Summary Region comparison
// @Tags intelligence
// @Produce json
// @Param careHome query string false "Care-home filter (default Y)"
// @Success 200 {object} map[string]interface{}
// @Router /api/compare/regions [get]
func (h *Handler) CompareRegions(w http.ResponseWriter, r *http.Request) {
	stats, err := h.cqc.CompareRegions(r.Context(), r.URL.Query().Get("careHome"))
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"regions": stats})
}

// CompareAuthorities compares care-home counts across named authorities.
// @Summary Local authority comparison
// @Tags intelligence
// @Produce json
// @Param authorities query string true "Comma-separated local authorities"
// @Param careHome query string false "Care-home filter (default Y)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Router /api/compare/authorities [get]
func (h *Handler) CompareAuthorities(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("authorities")
	if raw == "" {
		respond.Error(w, errs.Validationf("authorities parameter required (comma-separated list)"))
		return
	}

	var authorities []string
	for _, a := range strings.Split(raw, ",") {
		if a = strings.TrimSpace(a); a != "" {
			authorities = append(authorities, a)
		}
	}

	stats, err := h.cqc.CompareAuthorities(r.Context(), authorities, r.URL.Query().Get("careHome"))
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"authorities": stats})
}
