package cqc

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/mgcare/carefinder/internal/errs"
)

// Client is the HTTP client for all CQC endpoints.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	limiter    *rate.Limiter
	logger     *slog.Logger

	batchSize int
}

// NewClient creates a CQC HTTP client with rate limiting. batchSize
// bounds detail-fetch concurrency during enrichment.
func NewClient(baseURL, apiKey string, requestsPerMinute, batchSize int, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if batchSize <= 0 {
		batchSize = 10
	}
	rps := float64(requestsPerMinute) / 60.0
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
		apiKey:     apiKey,
		limiter:    rate.NewLimiter(rate.Limit(rps), 5),
		logger:     logger,
		batchSize:  batchSize,
	}
}

// SearchParams filter a locations search. Zero-value fields are omitted
// from the query string.
type SearchParams struct {
	LocalAuthority string
	Region         string
	Rating         string
	CareHome       string
	ProviderID     string
	Page           int
	PerPage        int
}

func (p SearchParams) values() url.Values {
	v := url.Values{}
	if p.LocalAuthority != "" {
		v.Set("localAuthority", p.LocalAuthority)
	}
	if p.Region != "" {
		v.Set("region", p.Region)
	}
	if p.Rating != "" {
		v.Set("overallRating", p.Rating)
	}
	if p.CareHome != "" {
		v.Set("careHome", p.CareHome)
	}
	if p.ProviderID != "" {
		v.Set("providerId", p.ProviderID)
	}
	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.PerPage > 0 {
		v.Set("perPage", strconv.Itoa(p.PerPage))
	}
	return v
}

// get performs a rate-limited GET request to a CQC endpoint and decodes
// the JSON response into out.
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return errs.Wrap(err, "rate limit wait")
	}

	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return errs.Wrap(err, "create request")
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errs.Upstream(err, "cqc request "+path)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errs.Upstream(err, "read response body")
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return errs.NotFoundf("cqc %s not found", path)
	case resp.StatusCode != http.StatusOK:
		return errs.Upstreamf("cqc %s returned %d: %s", path, resp.StatusCode, truncate(body, 200))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return errs.Upstream(err, "decode response")
	}
	return nil
}

// SearchLocations runs a single-page locations search.
func (c *Client) SearchLocations(ctx context.Context, params SearchParams) (*SearchResult, error) {
	var result SearchResult
	if err := c.get(ctx, "/locations", params.values(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetLocation fetches the full detail record for one location.
func (c *Client) GetLocation(ctx context.Context, locationID string) (*LocationDetail, error) {
	var detail LocationDetail
	if err := c.get(ctx, "/locations/"+url.PathEscape(locationID), nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// walkPages accumulates summary rows across pages, stopping at maxPages,
// at ceiling accumulated rows, or when the upstream reports no more
// pages. ceiling <= 0 means unbounded by count.
func (c *Client) walkPages(ctx context.Context, params SearchParams, maxPages, ceiling int) ([]Location, error) {
	var all []Location
	for page := 1; page <= maxPages; page++ {
		params.Page = page
		result, err := c.SearchLocations(ctx, params)
		if err != nil {
			return nil, err
		}
		if len(result.Locations) == 0 {
			break
		}
		all = append(all, result.Locations...)
		if ceiling > 0 && len(all) >= ceiling {
			break
		}
		if page >= result.TotalPages {
			break
		}
	}
	if ceiling > 0 && len(all) > ceiling {
		all = all[:ceiling]
	}
	return all, nil
}

func truncate(b []byte, maxLen int) string {
	if len(b) <= maxLen {
		return string(b)
	}
	return string(b[:maxLen]) + "..."
}
