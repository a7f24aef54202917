// Package handler provides HTTP handlers for all API endpoints.
// England queries go out to the live CQC API; the other jurisdictions
// are answered from the in-memory snapshot loaded at startup.
package handler

import (
	"net/http"
	"strconv"

	"github.com/mgcare/carefinder/internal/cache"
	"github.com/mgcare/carefinder/internal/config"
	"github.com/mgcare/carefinder/internal/cqc"
	"github.com/mgcare/carefinder/internal/dataset"
	"github.com/mgcare/carefinder/internal/postcode"
)

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	snapshot  *dataset.Snapshot
	cqc       *cqc.Client
	postcodes *postcode.Client
	cache     *cache.Cache
	cfg       *config.Config
}

// New creates a Handler with shared dependencies.
func New(snapshot *dataset.Snapshot, cqcClient *cqc.Client, postcodes *postcode.Client, c *cache.Cache, cfg *config.Config) *Handler {
	return &Handler{
		snapshot:  snapshot,
		cqc:       cqcClient,
		postcodes: postcodes,
		cache:     c,
		cfg:       cfg,
	}
}

// queryInt reads an integer query parameter, falling back on absence or
// garbage.
func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

func queryFloat(r *http.Request, name string, fallback float64) float64 {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return f
}
