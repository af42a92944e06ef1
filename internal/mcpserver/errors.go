package mcpserver

import (
	"fmt"

	"pitch-arena/internal/matchgateway"

	"github.com/mark3labs/mcp-go/mcp"
)

func toolResult(data any) *mcp.CallToolResult {
	return mcp.NewToolResultStructuredOnly(data)
}

func toolError(code, message string) *mcp.CallToolResult {
	result := mcp.NewToolResultStructured(
		map[string]any{
			"error": map[string]any{
				"code":    code,
				"message": message,
			},
		},
		fmt.Sprintf("%s: %s", code, message),
	)
	result.IsError = true
	return result
}

// gatewayError reuses the HTTP layer's error vocabulary so a tool caller
// and an HTTP caller see the same codes for the same failure.
func gatewayError(err error) *mcp.CallToolResult {
	if err == nil {
		return toolError("internal_error", "unknown error")
	}
	_, code := matchgateway.MapGatewayErr(err)
	return toolError(code, err.Error())
}
