// Package mcpserver exposes the provider search as Model Context
// Protocol tools over stdio. Tool results are formatted text blocks
// rather than JSON; handler failures come back as tool errors, never
// protocol errors.
package mcpserver

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mgcare/carefinder/internal/cqc"
	"github.com/mgcare/carefinder/internal/dataset"
	"github.com/mgcare/carefinder/internal/postcode"
)

// MCPServer wraps the provider clients and exposes them as MCP tools.
type MCPServer struct {
	snapshot  *dataset.Snapshot
	cqc       *cqc.Client
	postcodes *postcode.Client
	logger    *slog.Logger
	server    *server.MCPServer
}

// New creates the MCP server and registers all tools.
func New(snapshot *dataset.Snapshot, cqcClient *cqc.Client, postcodes *postcode.Client, logger *slog.Logger) *MCPServer {
	if logger == nil {
		logger = slog.Default()
	}
	s := &MCPServer{
		snapshot:  snapshot,
		cqc:       cqcClient,
		postcodes: postcodes,
		logger:    logger,
	}

	s.server = server.NewMCPServer(
		"carefinder",
		"2.0.0",
		server.WithToolCapabilities(true),
	)
	s.registerTools()
	return s
}

// Serve runs the MCP server on stdio until the client disconnects.
func (s *MCPServer) Serve() error {
	return server.ServeStdio(s.server)
}

func (s *MCPServer) registerTools() {
	searchProvidersTool := mcp.NewTool("search_care_providers",
		mcp.WithDescription("Search CQC registered care providers in England. Filter by local authority, region, rating, and care-home flag."),
		mcp.WithString("localAuthority",
			mcp.Description("Filter by local authority name (e.g., 'Cambridgeshire', 'Merton')"),
		),
		mcp.WithString("region",
			mcp.Description("Filter by region (e.g., 'London', 'East', 'North West')"),
		),
		mcp.WithString("rating",
			mcp.Description("Filter by overall CQC rating (Outstanding, Good, Requires improvement, Inadequate)"),
		),
		mcp.WithString("careHome",
			mcp.Description("Y for care homes only, N for domiciliary care/other services"),
		),
		mcp.WithNumber("page",
			mcp.Description("Page number (default 1)"),
		),
		mcp.WithNumber("perPage",
			mcp.Description("Results per page (default 20, max 50)"),
		),
	)
	s.server.AddTool(searchProvidersTool, s.handleSearchCareProviders)

	searchPostcodeTool := mcp.NewTool("search_by_postcode",
		mcp.WithDescription("Search for care providers near a UK postcode (England only; other jurisdictions have their own tools)."),
		mcp.WithString("postcode",
			mcp.Required(),
			mcp.Description("UK postcode (e.g., 'PE13 2PR', 'SW1A 1AA')"),
		),
		mcp.WithString("careHome",
			mcp.Description("Y for care homes, N for domiciliary care"),
		),
		mcp.WithString("rating",
			mcp.Description("Filter by overall CQC rating"),
		),
		mcp.WithNumber("perPage",
			mcp.Description("Maximum results (default 20)"),
		),
	)
	s.server.AddTool(searchPostcodeTool, s.handleSearchByPostcode)

	detailsTool := mcp.NewTool("get_provider_details",
		mcp.WithDescription("Get detailed information about a specific CQC registered location, including all rating domains and regulated activities."),
		mcp.WithString("locationId",
			mcp.Required(),
			mcp.Description("The CQC location ID (e.g., '1-123456789')"),
		),
	)
	s.server.AddTool(detailsTool, s.handleGetProviderDetails)

	ratingsTool := mcp.NewTool("get_ratings_summary",
		mcp.WithDescription("Get a summary of CQC ratings for providers in an area as a distribution with percentages."),
		mcp.WithString("localAuthority",
			mcp.Description("Local authority name"),
		),
		mcp.WithString("region",
			mcp.Description("Region name"),
		),
		mcp.WithString("careHome",
			mcp.Description("Y for care homes, N for other services"),
		),
	)
	s.server.AddTool(ratingsTool, s.handleGetRatingsSummary)

	lookupTool := mcp.NewTool("lookup_postcode",
		mcp.WithDescription("Look up details for a UK postcode using postcodes.io: district, county, region, constituency, and coordinates."),
		mcp.WithString("postcode",
			mcp.Required(),
			mcp.Description("UK postcode to look up"),
		),
	)
	s.server.AddTool(lookupTool, s.handleLookupPostcode)

	irelandTool := mcp.NewTool("search_ireland",
		mcp.WithDescription("Search HIQA registered nursing homes in Ireland by county and name."),
		mcp.WithString("county",
			mcp.Description("Irish county (e.g., 'Dublin', 'Cork', 'Galway')"),
		),
		mcp.WithString("name",
			mcp.Description("Search by name (partial match)"),
		),
		mcp.WithNumber("maxResults",
			mcp.Description("Maximum results (default 20)"),
		),
	)
	s.server.AddTool(irelandTool, s.handleSearchIreland)

	niTool := mcp.NewTool("search_northern_ireland",
		mcp.WithDescription("Search RQIA registered care services in Northern Ireland by service type, district, and name."),
		mcp.WithString("serviceType",
			mcp.Description("Service type (e.g., 'Nursing Home', 'Residential Care Home', 'Domiciliary Care Agency')"),
		),
		mcp.WithString("district",
			mcp.Description("Local government district"),
		),
		mcp.WithString("name",
			mcp.Description("Search by name (partial match)"),
		),
		mcp.WithNumber("maxResults",
			mcp.Description("Maximum results (default 20)"),
		),
	)
	s.server.AddTool(niTool, s.handleSearchNorthernIreland)

	scotlandTool := mcp.NewTool("search_scotland",
		mcp.WithDescription("Search Care Inspectorate registered services in Scotland by service type, council area, and name."),
		mcp.WithString("serviceType",
			mcp.Description("Service type (e.g., 'Care Home Service', 'Housing Support Service')"),
		),
		mcp.WithString("councilArea",
			mcp.Description("Council area (e.g., 'Edinburgh', 'Glasgow')"),
		),
		mcp.WithString("name",
			mcp.Description("Search by name (partial match)"),
		),
		mcp.WithNumber("maxResults",
			mcp.Description("Maximum results (default 20)"),
		),
	)
	s.server.AddTool(scotlandTool, s.handleSearchScotland)

	walesTool := mcp.NewTool("search_wales",
		mcp.WithDescription("Wales care provider information and guidance. CIW publishes no open data, so this returns manual-search instructions."),
		mcp.WithString("localAuthority",
			mcp.Description("Local authority (e.g., 'Cardiff', 'Swansea')"),
		),
		mcp.WithString("serviceType",
			mcp.Description("Service type"),
		),
		mcp.WithString("name",
			mcp.Description("Search by name"),
		),
	)
	s.server.AddTool(walesTool, s.handleSearchWales)

	freshnessTool := mcp.NewTool("check_data_freshness",
		mcp.WithDescription("Shows when each country's data was last updated and how to download fresh data."),
	)
	s.server.AddTool(freshnessTool, s.handleCheckDataFreshness)
}
