package postcode

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/mgcare/carefinder/internal/cache"
	"github.com/mgcare/carefinder/internal/errs"
)

// Result is a postcodes.io lookup result.
type Result struct {
	Postcode                  string  `json:"postcode"`
	AdminDistrict             string  `json:"admin_district"`
	AdminCounty               string  `json:"admin_county"`
	Region                    string  `json:"region"`
	Country                   string  `json:"country"`
	ParliamentaryConstituency string  `json:"parliamentary_constituency"`
	Latitude                  float64 `json:"latitude"`
	Longitude                 float64 `json:"longitude"`
}

// LocalAuthority returns the CQC search key for this postcode: the admin
// county when present, otherwise the district.
func (r *Result) LocalAuthority() string {
	if r.AdminCounty != "" {
		return r.AdminCounty
	}
	return r.AdminDistrict
}

type lookupResponse struct {
	Status int     `json:"status"`
	Result *Result `json:"result"`
}

// Client is the HTTP client for postcodes.io lookups.
type Client struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
	cache      *cache.Cache
	logger     *slog.Logger
}

// NewClient creates a postcodes.io client. Lookups are cached because
// postcode geography effectively never changes within a process lifetime.
func NewClient(baseURL string, c *cache.Cache, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    baseURL,
		limiter:    rate.NewLimiter(rate.Limit(10), 5),
		cache:      c,
		logger:     logger,
	}
}

// Lookup resolves a postcode to its district, region, and coordinates.
// Returns errs.ErrNotFound when postcodes.io does not know the postcode.
func (c *Client) Lookup(ctx context.Context, raw string) (*Result, error) {
	clean := strings.ToUpper(strings.ReplaceAll(raw, " ", ""))
	if clean == "" {
		return nil, errs.Validationf("postcode is required")
	}

	key := "postcode:" + clean
	if body, ok := c.cache.Get(key); ok {
		var r Result
		if err := json.Unmarshal(body, &r); err == nil {
			return &r, nil
		}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, errs.Wrap(err, "rate limit wait")
	}

	u := c.baseURL + "/postcodes/" + url.PathEscape(clean)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, errs.Wrap(err, "create request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errs.Upstream(err, "postcodes.io request")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, errs.NotFoundf("postcode %q not found", raw)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errs.Upstreamf("postcodes.io returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errs.Upstream(err, "read response body")
	}

	var decoded lookupResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, errs.Upstream(err, "decode response")
	}
	if decoded.Result == nil {
		return nil, errs.NotFoundf("postcode %q not found", raw)
	}

	if marshaled, err := json.Marshal(decoded.Result); err == nil {
		c.cache.Set(key, marshaled, cache.TTLPostcode)
	}

	return decoded.Result, nil
}
