// Package api wires the chi router, middleware stack, and handlers.
package api

import (
	_ "embed"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	corslib "github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/mgcare/carefinder/internal/api/handler"
	"github.com/mgcare/carefinder/internal/cache"
	"github.com/mgcare/carefinder/internal/config"
	"github.com/mgcare/carefinder/internal/cqc"
	"github.com/mgcare/carefinder/internal/dataset"
	"github.com/mgcare/carefinder/internal/postcode"
)

//go:embed openapi.json
var openapiSpec []byte

// Deps carries everything the router needs.
type Deps struct {
	Snapshot  *dataset.Snapshot
	CQC       *cqc.Client
	Postcodes *postcode.Client
	Cache     *cache.Cache
	Config    *config.Config
}

// NewRouter creates and configures the Chi router with all middleware and routes.
func NewRouter(deps Deps) *chi.Mux {
	cfg := deps.Config
	r := chi.NewRouter()

	// --- Middleware stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(TimingMiddleware)
	r.Use(middleware.Compress(5)) // gzip

	// CORS
	c := corslib.New(corslib.Options{
		AllowedOrigins:   cfg.CORSAllowOrigins,
		AllowedMethods:   []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Encoding", "Content-Type", "Cache-Control"},
		ExposedHeaders:   []string{"X-Process-Time"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	// Rate limiting
	if cfg.RateLimitEnabled {
		r.Use(RateLimitMiddleware(cfg.RateLimitRequests, cfg.RateLimitWindow))
	}

	// --- Handler dependencies ---
	h := handler.New(deps.Snapshot, deps.CQC, deps.Postcodes, deps.Cache, cfg)

	// --- Routes ---

	r.Get("/", h.Root)
	r.Get("/health", h.HealthCheck)

	// Swagger UI backed by the embedded spec.
	r.Get("/docs/doc.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(openapiSpec)
	})
	r.Get("/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/doc.json"),
	))

	r.Route("/api", func(r chi.Router) {
		r.Route("/search", func(r chi.Router) {
			r.Get("/cqc", h.SearchCQC)
			r.Get("/postcode", h.SearchPostcode)
			r.Get("/scotland", h.SearchScotland)
			r.Get("/northern-ireland", h.SearchNorthernIreland)
			r.Get("/ireland", h.SearchIreland)
			r.Get("/radius", h.SearchRadius)
			r.Get("/outstanding", h.SearchOutstanding)
			r.Get("/at-risk", h.SearchAtRisk)
			r.Get("/recent-inspections", h.SearchRecentInspections)
			r.Get("/large-homes", h.SearchLargeHomes)
			r.Get("/new-registrations", h.SearchNewRegistrations)
		})

		r.Get("/providers/search", h.SearchProviders)

		// Register /portfolio before the wildcard so "portfolio" is
		// never captured as a location id.
		r.Route("/provider", func(r chi.Router) {
			r.Get("/portfolio", h.ProviderPortfolio)
			r.Get("/{locationId}", h.ProviderDetail)
		})

		r.Get("/postcode/{postcode}", h.PostcodeLookup)
		r.Get("/analyze/services", h.AnalyzeServices)

		r.Route("/compare", func(r chi.Router) {
			r.Get("/regions", h.CompareRegions)
			r.Get("/authorities", h.CompareAuthorities)
		})
	})

	return r
}
