// Package mcp wires the tool catalog and dispatcher onto the MCP SDK.
package mcp

import (
	"sort"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wyre-technology/itglue-mcp/internal/tools"
)

// definitionToMCPTool converts a tools.Definition to an mcp.Tool with JSON Schema.
func definitionToMCPTool(def tools.Definition) *mcpsdk.Tool {
	props := make(map[string]any, len(def.Params))
	var required []string

	for name, p := range def.Params {
		props[name] = map[string]any{
			"type":        p.Type,
			"description": p.Description,
		}
		if p.Required {
			required = append(required, name)
		}
	}

	// Sort required for deterministic output
	sort.Strings(required)

	inputSchema := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		inputSchema["required"] = required
	}

	return &mcpsdk.Tool{
		Name:        def.Name,
		Description: def.Description,
		InputSchema: inputSchema,
	}
}
