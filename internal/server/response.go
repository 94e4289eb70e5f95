// ABOUTME: Response helpers for MCP tool results.
// ABOUTME: All tools answer with JSON text content; failures use the error payload shape.

package server

import (
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// jsonResponse marshals data into a single JSON text content block.
func jsonResponse(data interface{}) (*mcp.CallToolResult, error) {
	content, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response data: %w", err)
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(content)},
		},
	}, nil
}

// errorResponse maps an internal failure to the {error: ...} payload shape.
// IsError is set so MCP clients see the failure inside the result, not as a
// protocol error.
func errorResponse(err error) (*mcp.CallToolResult, error) {
	result, marshalErr := jsonResponse(map[string]string{"error": err.Error()})
	if marshalErr != nil {
		return nil, marshalErr
	}
	result.IsError = true
	return result, nil
}
