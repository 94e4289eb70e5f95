// ABOUTME: MCP server exposing the catalog engine as remote-callable tools.
// ABOUTME: Registers the six DHI tools and runs over stdio transport.

package server

import (
	"context"

	"github.com/jfeddern/CatalogScout/internal/engine"
	"github.com/jfeddern/CatalogScout/internal/metrics"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"
)

const serverVersion = "1.0.0"

// Server wraps the catalog engine behind MCP tools.
type Server struct {
	engine    *engine.Engine
	collector *metrics.Collector
	logger    *logrus.Logger
	server    *mcp.Server
}

// NewServer creates the MCP server and registers all tools.
func NewServer(eng *engine.Engine, collector *metrics.Collector, logger *logrus.Logger) *Server {
	s := &Server{
		engine:    eng,
		collector: collector,
		logger:    logger,
	}

	s.server = mcp.NewServer(&mcp.Implementation{
		Name:    "catalogscout",
		Version: serverVersion,
	}, nil)

	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	s.server.AddTool(&mcp.Tool{
		Name:        "search_dhi_catalog",
		Description: "Search for Docker Hardened Image matches for a list of image names.",
		InputSchema: &jsonschema.Schema{
			Type:     "object",
			Required: []string{"image_names"},
			Properties: map[string]*jsonschema.Schema{
				"image_names": {
					Type:        "array",
					Items:       &jsonschema.Schema{Type: "string"},
					Description: "Image names to search for (e.g. [\"PostgreSQL\", \".NET Runtime\", \"nginx\"])",
				},
			},
		},
	}, s.handleSearchCatalog)

	s.server.AddTool(&mcp.Tool{
		Name:        "get_dhi_statistics",
		Description: "Get statistics about the Docker Hardened Image catalog, including counts by type.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
		},
	}, s.handleStatistics)

	s.server.AddTool(&mcp.Tool{
		Name:        "list_dhi_images",
		Description: "List all available images in the Docker Hardened Image catalog, optionally filtered by type.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"image_type": {
					Type:        "string",
					Description: "Optional type filter (e.g. \"IMAGE\" or \"HELM_CHART\")",
				},
			},
		},
	}, s.handleListImages)

	s.server.AddTool(&mcp.Tool{
		Name:        "list_image_tags",
		Description: "List all tags for a specific Docker Hardened Image repository.",
		InputSchema: &jsonschema.Schema{
			Type:     "object",
			Required: []string{"repository_name"},
			Properties: map[string]*jsonschema.Schema{
				"repository_name": {
					Type:        "string",
					Description: "Repository name (e.g. \"postgres\", \"nginx\")",
				},
			},
		},
	}, s.handleListTags)

	s.server.AddTool(&mcp.Tool{
		Name:        "get_compliance_info",
		Description: "Check whether a Docker Hardened Image repository has FIPS or STIG compliant variants.",
		InputSchema: &jsonschema.Schema{
			Type:     "object",
			Required: []string{"repository_name"},
			Properties: map[string]*jsonschema.Schema{
				"repository_name": {
					Type:        "string",
					Description: "Repository name (e.g. \"postgres\", \"nginx\")",
				},
			},
		},
	}, s.handleCompliance)

	s.server.AddTool(&mcp.Tool{
		Name:        "get_image_support_info",
		Description: "Get lifecycle information (End of Life, End of Support) for a specific image tag.",
		InputSchema: &jsonschema.Schema{
			Type:     "object",
			Required: []string{"repository_name", "tag"},
			Properties: map[string]*jsonschema.Schema{
				"repository_name": {
					Type:        "string",
					Description: "Repository name (e.g. \"postgres\", \"nginx\")",
				},
				"tag": {
					Type:        "string",
					Description: "Specific tag (e.g. \"16\", \"3.20\")",
				},
			},
		},
	}, s.handleSupportInfo)
}

// Run serves MCP over stdio until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	s.logger.WithField("component", "mcp_server").Info("Starting MCP server on stdio transport")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}
