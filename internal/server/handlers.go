// ABOUTME: MCP tool handlers mapping engine results to tool response payloads.
// ABOUTME: Engine failures become {error: ...} payloads, never protocol errors.

package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"
)

type searchCatalogParams struct {
	ImageNames []string `json:"image_names"`
}

func (s *Server) handleSearchCatalog(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.collector.IncTool("search_dhi_catalog")

	var params searchCatalogParams
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		s.collector.IncToolError("search_dhi_catalog")
		return errorResponse(fmt.Errorf("invalid parameters: %w", err))
	}

	result, err := s.engine.SearchImages(ctx, params.ImageNames)
	if err != nil {
		s.collector.IncToolError("search_dhi_catalog")
		return errorResponse(err)
	}

	s.logger.WithFields(logrus.Fields{
		"tool":      "search_dhi_catalog",
		"searched":  result.Summary.TotalSearched,
		"matched":   result.Summary.MatchedCount,
		"unmatched": result.Summary.UnmatchedCount,
	}).Debug("Tool call served")

	return jsonResponse(result)
}

func (s *Server) handleStatistics(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.collector.IncTool("get_dhi_statistics")

	stats, err := s.engine.Statistics(ctx)
	if err != nil {
		s.collector.IncToolError("get_dhi_statistics")
		return errorResponse(err)
	}

	return jsonResponse(map[string]interface{}{
		"statistics":  stats,
		"total_items": stats.Total(),
	})
}

type listImagesParams struct {
	ImageType string `json:"image_type"`
}

func (s *Server) handleListImages(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.collector.IncTool("list_dhi_images")

	var params listImagesParams
	if len(req.Params.Arguments) > 0 {
		if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
			s.collector.IncToolError("list_dhi_images")
			return errorResponse(fmt.Errorf("invalid parameters: %w", err))
		}
	}

	images, err := s.engine.ListImages(ctx, params.ImageType)
	if err != nil {
		s.collector.IncToolError("list_dhi_images")
		return errorResponse(err)
	}

	response := map[string]interface{}{
		"images": images,
		"count":  len(images),
	}
	if params.ImageType != "" {
		response["filter"] = params.ImageType
	}

	return jsonResponse(response)
}

type listTagsParams struct {
	RepositoryName string `json:"repository_name"`
}

func (s *Server) handleListTags(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.collector.IncTool("list_image_tags")

	var params listTagsParams
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		s.collector.IncToolError("list_image_tags")
		return errorResponse(fmt.Errorf("invalid parameters: %w", err))
	}

	tags, err := s.engine.ListTags(ctx, params.RepositoryName)
	if err != nil {
		s.collector.IncToolError("list_image_tags")
		return errorResponse(err)
	}

	return jsonResponse(map[string]interface{}{
		"repository": params.RepositoryName,
		"tags":       tags,
		"count":      len(tags),
	})
}

type complianceParams struct {
	RepositoryName string `json:"repository_name"`
}

func (s *Server) handleCompliance(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.collector.IncTool("get_compliance_info")

	var params complianceParams
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		s.collector.IncToolError("get_compliance_info")
		return errorResponse(fmt.Errorf("invalid parameters: %w", err))
	}

	report, err := s.engine.Compliance(ctx, params.RepositoryName)
	if err != nil {
		s.collector.IncToolError("get_compliance_info")
		return errorResponse(err)
	}

	return jsonResponse(map[string]interface{}{
		"repository": report.Repository,
		"compliance": report.Compliance,
		"details": map[string]interface{}{
			"fips_tags": report.FipsTags,
			"stig_tags": report.StigTags,
		},
		"summary": report.Summary,
	})
}

type supportInfoParams struct {
	RepositoryName string `json:"repository_name"`
	Tag            string `json:"tag"`
}

func (s *Server) handleSupportInfo(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.collector.IncTool("get_image_support_info")

	var params supportInfoParams
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		s.collector.IncToolError("get_image_support_info")
		return errorResponse(fmt.Errorf("invalid parameters: %w", err))
	}

	info, err := s.engine.SupportInfo(ctx, params.RepositoryName, params.Tag)
	if err != nil {
		s.collector.IncToolError("get_image_support_info")
		return errorResponse(err)
	}

	return jsonResponse(info)
}
