package handler

import (
	"net/http"

	"github.com/mgcare/carefinder/internal/api/respond"
	"github.com/mgcare/carefinder/internal/dataset"
)

type regionalResult struct {
	Count   int                      `json:"count"`
	Results []dataset.ProviderRecord `json:"results"`
}

func writeRegional(w http.ResponseWriter, records []dataset.ProviderRecord) {
	if records == nil {
		records = []dataset.ProviderRecord{}
	}
	respond.WriteJSON(w, http.StatusOK, regionalResult{Count: len(records), Results: records})
}

// SearchScotland filters the Care Inspectorate register.
// @Summary Search Scottish care services
// @Description Filters the bundled Care Inspectorate register by name, council area, and service type.
// @Tags regional
// @Produce json
// @Param name query string false "Name substring"
// @Param councilArea query string false "Council area (exact match)"
// @Param serviceType query string false "Service type substring"
// @Param maxResults query int false "Result cap (default 20)"
// @Success 200 {object} map[string]interface{}
// @Router /api/search/scotland [get]
func (h *Handler) SearchScotland(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	records := dataset.Query(h.snapshot.Scotland, dataset.Filters{
		Name:        q.Get("name"),
		Area:        q.Get("councilArea"),
		AreaMode:    dataset.AreaExact,
		ServiceType: q.Get("serviceType"),
		MaxResults:  queryInt(r, "maxResults", 0),
	})
	writeRegional(w, records)
}

// SearchNorthernIreland filters the RQIA register.
// @Summary Search Northern Ireland care services
// @Description Filters the bundled RQIA register by name, district, and service type.
// @Tags regional
// @Produce json
// @Param name query string false "Name substring"
// @Param district query string false "District substring"
// @Param serviceType query string false "Service type substring"
// @Param maxResults query int false "Result cap (default 20)"
// @Success 200 {object} map[string]interface{}
// @Router /api/search/northern-ireland [get]
func (h *Handler) SearchNorthernIreland(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	records := dataset.Query(h.snapshot.NorthernIreland, dataset.Filters{
		Name:        q.Get("name"),
		Area:        q.Get("district"),
		AreaMode:    dataset.AreaContains,
		ServiceType: q.Get("serviceType"),
		MaxResults:  queryInt(r, "maxResults", 0),
	})
	writeRegional(w, records)
}

// SearchIreland filters the HIQA register.
// @Summary Search Irish nursing homes
// @Description Filters the bundled HIQA register by name and county.
// @Tags regional
// @Produce json
// @Param name query string false "Name substring"
// @Param county query string false "County (exact match)"
// @Param maxResults query int false "Result cap (default 20)"
// @Success 200 {object} map[string]interface{}
// @Router /api/search/ireland [get]
func (h *Handler) SearchIreland(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	records := dataset.Query(h.snapshot.Ireland, dataset.Filters{
		Name:       q.Get("name"),
		Area:       q.Get("county"),
		AreaMode:   dataset.AreaExact,
		MaxResults: queryInt(r, "maxResults", 0),
	})
	writeRegional(w, records)
}
