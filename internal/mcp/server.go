package mcp

import (
	"context"
	"encoding/json"
	"log/slog"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wyre-technology/itglue-mcp/internal/tools"
)

// Version is reported in the MCP handshake.
const Version = "0.1.0"

// NewServer creates an MCP server exposing the IT Glue tool catalog, routing
// every call through the given dispatcher. The dispatcher renders all
// failures as error content blocks, so tool handlers here never return a
// protocol-level error.
func NewServer(dispatcher *tools.Dispatcher) *mcpsdk.Server {
	server := mcpsdk.NewServer(&mcpsdk.Implementation{
		Name:    "itglue-mcp",
		Version: Version,
	}, nil)

	for _, def := range tools.Catalog() {
		toolName := def.Name

		server.AddTool(definitionToMCPTool(def), func(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
			var args map[string]any
			if len(req.Params.Arguments) > 0 {
				if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
					return &mcpsdk.CallToolResult{
						IsError: true,
						Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: "Error: invalid tool arguments: " + err.Error()}},
					}, nil
				}
			}

			result := dispatcher.Call(ctx, toolName, args)
			if result.IsError {
				slog.Debug("tool call returned error", "tool", toolName, "message", result.Text)
			}
			return &mcpsdk.CallToolResult{
				IsError: result.IsError,
				Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: result.Text}},
			}, nil
		})

		slog.Debug("mcp tool registered", "tool", toolName)
	}

	return server
}
