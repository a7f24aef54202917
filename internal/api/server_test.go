package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mgcare/carefinder/internal/cache"
	"github.com/mgcare/carefinder/internal/config"
	"github.com/mgcare/carefinder/internal/cqc"
	"github.com/mgcare/carefinder/internal/dataset"
	"github.com/mgcare/carefinder/internal/postcode"
)

func testSnapshot() *dataset.Snapshot {
	return &dataset.Snapshot{
		Scotland: []dataset.ProviderRecord{
			{Source: dataset.SourceScotlandCI, Name: "Leith Care Home", Area: "Edinburgh", Region: "Scotland", Postcode: "EH6 4DP"},
			{Source: dataset.SourceScotlandCI, Name: "Morningside Manor", Area: "Edinburgh", Region: "Scotland", Postcode: "EH10 4BY"},
			{Source: dataset.SourceScotlandCI, Name: "Old Town Lodge", Area: "edinburgh", Region: "Scotland", Postcode: "EH1 1RE"},
			{Source: dataset.SourceScotlandCI, Name: "Kelvin House", Area: "Glasgow City", Region: "Scotland", Postcode: "G12 8QQ"},
			{Source: dataset.SourceScotlandCI, Name: "Canongate Care", Area: "Edinburgh", Region: "Scotland", Postcode: "EH8 8BN"},
			{Source: dataset.SourceScotlandCI, Name: "Stockbridge House", Area: "Edinburgh", Region: "Scotland", Postcode: "EH3 5AH"},
			{Source: dataset.SourceScotlandCI, Name: "Portobello Lodge", Area: "Edinburgh", Region: "Scotland", Postcode: "EH15 1DR"},
		},
		NorthernIreland: []dataset.ProviderRecord{
			{Source: dataset.SourceRQIA, Name: "Titanic Quarter Care", Area: "Belfast", Region: "Northern Ireland", Postcode: "BT1 3LP"},
			{Source: dataset.SourceRQIA, Name: "Lisburn Road Home", Area: "Belfast", Region: "Northern Ireland", Postcode: "BT9 7GT"},
		},
		Ireland: []dataset.ProviderRecord{
			{Source: dataset.SourceHIQA, Name: "Shannon View", Area: "Westmeath", Region: "Ireland", Postcode: "N37 XK52"},
		},
	}
}

func testRouter(t *testing.T, upstream http.Handler) http.Handler {
	t.Helper()

	var baseURL string
	if upstream != nil {
		srv := httptest.NewServer(upstream)
		t.Cleanup(srv.Close)
		baseURL = srv.URL
	}

	cfg := &config.Config{
		CORSAllowOrigins:  []string{"*"},
		RateLimitEnabled:  false,
		RateLimitRequests: 100,
		RateLimitWindow:   time.Minute,
	}
	appCache := cache.New(false)

	return NewRouter(Deps{
		Snapshot:  testSnapshot(),
		CQC:       cqc.NewClient(baseURL, "test-key", 6000, 10, nil),
		Postcodes: postcode.NewClient(baseURL, appCache, nil),
		Cache:     appCache,
		Config:    cfg,
	})
}

func get(t *testing.T, router http.Handler, url string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestHealthReportsRegisterCounts(t *testing.T) {
	router := testRouter(t, nil)
	rec, body := get(t, router, "/health")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])
	loaded := body["dataLoaded"].(map[string]interface{})
	assert.Equal(t, float64(7), loaded["scotland"])
	assert.Equal(t, float64(2), loaded["rqia"])
	assert.Equal(t, float64(1), loaded["hiqa"])
}

func TestSearchScotlandFiltersAndCaps(t *testing.T) {
	router := testRouter(t, nil)
	rec, body := get(t, router, "/api/search/scotland?councilArea=Edinburgh&maxResults=5")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(5), body["count"])
	results := body["results"].([]interface{})
	require.Len(t, results, 5)
	for _, raw := range results {
		rec := raw.(map[string]interface{})
		assert.Equal(t, "edinburgh", strings.ToLower(rec["area"].(string)))
	}
}

func TestDispatcherRoutesBelfastPostcodeToRQIA(t *testing.T) {
	router := testRouter(t, nil)
	rec, body := get(t, router, "/api/providers/search?postcode=BT1+3LP")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Northern Ireland", body["region"])
	assert.Equal(t, "BT1", body["postcodeArea"])
	providers := body["providers"].([]interface{})
	require.Len(t, providers, 1)
	hit := providers[0].(map[string]interface{})
	assert.Equal(t, "RQIA", hit["source"])
	assert.Equal(t, "Titanic Quarter Care", hit["name"])
}

func TestDispatcherCountryOverrideWins(t *testing.T) {
	router := testRouter(t, nil)
	rec, body := get(t, router, "/api/providers/search?postcode=EH6&country=ni")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Northern Ireland", body["region"])
	assert.Equal(t, float64(0), body["count"])
}

func TestDispatcherRequiresPostcode(t *testing.T) {
	router := testRouter(t, nil)
	rec, body := get(t, router, "/api/providers/search")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, body["error"], "postcode")
}

func TestSearchRadiusRequiresPositiveMiles(t *testing.T) {
	router := testRouter(t, nil)
	rec, _ := get(t, router, "/api/search/radius?postcode=PE13+2PR&miles=-2")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPortfolioRouteNotShadowedByDetail(t *testing.T) {
	router := testRouter(t, nil)
	rec, body := get(t, router, "/api/provider/portfolio")

	// A missing-params 400 proves the portfolio handler answered, not
	// the {locationId} wildcard.
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, body["error"], "providerName or providerId")
}

func TestProviderDetailPassthrough(t *testing.T) {
	upstream := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/locations/1-101", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"locationId":         "1-101",
			"registrationStatus": "Registered",
			"numberOfBeds":       42,
		})
	})
	router := testRouter(t, upstream)
	rec, body := get(t, router, "/api/provider/1-101")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1-101", body["locationId"])
	assert.Equal(t, float64(42), body["numberOfBeds"])
}

func TestCompareAuthoritiesRequiresList(t *testing.T) {
	router := testRouter(t, nil)
	rec, _ := get(t, router, "/api/compare/authorities")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
