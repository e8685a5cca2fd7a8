package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mvp-joe/docfacts/internal/docfacts"
	"github.com/mvp-joe/docfacts/internal/scanner"
)

// ExtractToolName is the name assistants call to analyze a C# snippet.
const ExtractToolName = "docfacts_extract"

// AddExtractTool registers the docfacts_extract tool with an MCP server.
func AddExtractTool(s *server.MCPServer) {
	tool := mcp.NewTool(
		ExtractToolName,
		mcp.WithDescription(`Extract documentation facts from C# source.

Parses the given source and reports, for every class, interface, constructor
and method declaration:
- identifier, type parameters, parameters, base types, return type
- the indentation of the declaration line
- exceptions thrown (type and message folded from string arguments)
- single-line comments and identifiers returned directly from the body

Use the facts to draft or review XML documentation comments.`),
		mcp.WithString("source",
			mcp.Required(),
			mcp.Description("C# source text, typically one file or one type")),
		mcp.WithString("kind",
			mcp.Description("Only report this declaration kind: class, interface, constructor or method")),
		mcp.WithArray("kinds",
			mcp.Description("Only report these declaration kinds (e.g., ['method', 'constructor'])")),
		mcp.WithBoolean("include_empty",
			mcp.Description("Report declarations that have nothing beyond a name (default: true)")),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)

	s.AddTool(tool, createExtractHandler())
}

// ExtractRequest represents the JSON request schema for the docfacts_extract tool.
type ExtractRequest struct {
	Source string   `json:"source" jsonschema:"required,description=C# source text"`
	Kind   string   `json:"kind,omitempty"`
	Kinds  []string `json:"kinds,omitempty"`
	// IncludeEmpty is nil when the client leaves the default (true).
	IncludeEmpty *bool `json:"include_empty,omitempty"`
}

// ExtractResponse represents the JSON response schema for the docfacts_extract tool.
type ExtractResponse struct {
	Declarations []docfacts.Declaration `json:"declarations"`
	ParseErrors  bool                   `json:"parse_errors"`
	Metadata     ResponseMetadata       `json:"metadata"`
}

// ResponseMetadata contains timing and source information.
type ResponseMetadata struct {
	TookMs int    `json:"took_ms"`
	Source string `json:"source"` // "snippet" or "file"
}

// createExtractHandler creates the handler function for the docfacts_extract tool.
func createExtractHandler() func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		startTime := time.Now()

		var args ExtractRequest
		if err := bindArguments(request, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		if args.Source == "" {
			return mcp.NewToolResultError("source parameter is required"), nil
		}
		kinds, err := mergeKinds(args.Kind, args.Kinds)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		includeEmpty := args.IncludeEmpty == nil || *args.IncludeEmpty

		decls, parseErrors, err := scanner.ExtractSource(ctx, []byte(args.Source), kinds, includeEmpty)
		if err != nil {
			return nil, fmt.Errorf("extraction failed: %w", err)
		}

		response := &ExtractResponse{
			Declarations: decls,
			ParseErrors:  parseErrors,
			Metadata: ResponseMetadata{
				TookMs: int(time.Since(startTime).Milliseconds()),
				Source: "snippet",
			},
		}

		return jsonResult(response)
	}
}

// jsonResult marshals v as the text content of a tool result (mcp-go convention).
func jsonResult(v any) (*mcp.CallToolResult, error) {
	jsonData, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}
