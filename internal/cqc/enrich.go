package cqc

import (
	"context"
	"sync"
)

// EnrichLocations fetches detail records for summary rows and returns
// the enriched projection, dropping rows whose detail fetch failed.
func (c *Client) EnrichLocations(ctx context.Context, locations []Location, batchSize int) []Enriched {
	return c.enrichAll(ctx, locations, batchSize)
}

// enrichAll fetches detail records for each summary row in fixed-size
// concurrent batches. Batch N completes before batch N+1 starts, which
// keeps the burst against the upstream bounded. A row whose detail fetch
// fails is dropped; one bad location must not sink the whole result.
func (c *Client) enrichAll(ctx context.Context, locations []Location, batchSize int) []Enriched {
	if batchSize <= 0 {
		batchSize = c.batchSize
	}

	out := make([]*Enriched, len(locations))
	for start := 0; start < len(locations); start += batchSize {
		end := start + batchSize
		if end > len(locations) {
			end = len(locations)
		}

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				detail, err := c.GetLocation(ctx, locations[i].LocationID)
				if err != nil {
					c.logger.Warn("detail fetch failed, dropping location",
						"locationId", locations[i].LocationID, "error", err)
					return
				}
				e := enrich(locations[i], detail)
				out[i] = &e
			}(i)
		}
		wg.Wait()
	}

	enriched := make([]Enriched, 0, len(locations))
	for _, e := range out {
		if e != nil {
			enriched = append(enriched, *e)
		}
	}
	return enriched
}
