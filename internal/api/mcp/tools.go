package mcp

import (
	"github.com/GriffinCanCode/filesystem-mcp/internal/shared/types"
)

// toolFromDefinition converts a registry tool into its MCP listing.
func toolFromDefinition(t types.Tool) Tool {
	schema := InputSchema{
		Type:       "object",
		Properties: make(map[string]Property, len(t.Parameters)),
	}
	for _, p := range t.Parameters {
		schema.Properties[p.Name] = Property{
			Type:        p.Type,
			Description: p.Description,
			Default:     p.Default,
		}
		if p.Required {
			schema.Required = append(schema.Required, p.Name)
		}
	}

	return Tool{
		Name:        t.Name,
		Title:       t.Title,
		Description: t.Description,
		InputSchema: schema,
		Annotations: &Annotations{
			Title:           t.Title,
			ReadOnlyHint:    t.ReadOnly,
			DestructiveHint: t.Destructive,
		},
	}
}

// callResult frames an in-band tool result as MCP content.
func callResult(result *types.Result) CallToolResult {
	return CallToolResult{
		Content: []Content{{Type: "text", Text: result.Text()}},
		IsError: !result.Success,
	}
}
