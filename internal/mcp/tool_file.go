package mcp

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mvp-joe/docfacts/internal/docfacts"
	"github.com/mvp-joe/docfacts/internal/scanner"
)

// FileToolName is the name assistants call to analyze a project file.
const FileToolName = "docfacts_file"

// FileExtractor extracts one project file. Implemented by scanner.Scanner.
type FileExtractor interface {
	ExtractFile(ctx context.Context, path string) (scanner.FileResult, error)
	Matches(path string) bool
}

// AddFileTool registers the docfacts_file tool with an MCP server.
func AddFileTool(s *server.MCPServer, extractor FileExtractor, projectRoot string) {
	tool := mcp.NewTool(
		FileToolName,
		mcp.WithDescription(`Extract documentation facts from a C# file in the project.

The path is relative to the project root and must match the configured
include patterns. Unchanged files are answered from cache.`),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("File path relative to the project root (e.g., 'src/Orders/OrderService.cs')")),
		mcp.WithString("kind",
			mcp.Description("Only report this declaration kind: class, interface, constructor or method")),
		mcp.WithArray("kinds",
			mcp.Description("Only report these declaration kinds: class, interface, constructor, method")),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)

	s.AddTool(tool, createFileHandler(extractor, projectRoot))
}

// FileRequest represents the JSON request schema for the docfacts_file tool.
type FileRequest struct {
	Path  string   `json:"path" jsonschema:"required,description=File path relative to the project root"`
	Kind  string   `json:"kind,omitempty"`
	Kinds []string `json:"kinds,omitempty"`
}

// FileResponse represents the JSON response schema for the docfacts_file tool.
type FileResponse struct {
	Path         string                 `json:"path"`
	Declarations []docfacts.Declaration `json:"declarations"`
	ParseErrors  bool                   `json:"parse_errors"`
	Metadata     ResponseMetadata       `json:"metadata"`
}

// createFileHandler creates the handler function for the docfacts_file tool.
func createFileHandler(extractor FileExtractor, projectRoot string) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		startTime := time.Now()

		var args FileRequest
		if err := bindArguments(request, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		if args.Path == "" {
			return mcp.NewToolResultError("path parameter is required"), nil
		}
		relPath := args.Path
		kinds, err := mergeKinds(args.Kind, args.Kinds)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		absPath, err := resolveProjectPath(projectRoot, relPath)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if !extractor.Matches(absPath) {
			return mcp.NewToolResultError(fmt.Sprintf("%s is not a project source file", relPath)), nil
		}

		result, err := extractor.ExtractFile(ctx, absPath)
		if errors.Is(err, os.ErrNotExist) {
			return mcp.NewToolResultError(fmt.Sprintf("file not found: %s", relPath)), nil
		}
		if err != nil {
			return nil, fmt.Errorf("extraction failed: %w", err)
		}

		return jsonResult(&FileResponse{
			Path:         filepath.ToSlash(relPath),
			Declarations: filterKinds(result.Declarations, kinds),
			ParseErrors:  result.ParseErrors,
			Metadata: ResponseMetadata{
				TookMs: int(time.Since(startTime).Milliseconds()),
				Source: "file",
			},
		})
	}
}

// resolveProjectPath joins relPath to root and rejects paths that escape it.
func resolveProjectPath(root, relPath string) (string, error) {
	if filepath.IsAbs(relPath) {
		return "", fmt.Errorf("path must be relative to the project root: %s", relPath)
	}
	absPath := filepath.Join(root, filepath.FromSlash(relPath))
	rel, err := filepath.Rel(root, absPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path escapes the project root: %s", relPath)
	}
	return absPath, nil
}

// filterKinds keeps declarations of the given kinds; empty kinds keeps all.
func filterKinds(decls []docfacts.Declaration, kinds []string) []docfacts.Declaration {
	if len(kinds) == 0 {
		return decls
	}
	want := make(map[string]bool, len(kinds))
	for _, k := range kinds {
		want[k] = true
	}
	filtered := make([]docfacts.Declaration, 0, len(decls))
	for _, d := range decls {
		if want[d.Kind] {
			filtered = append(filtered, d)
		}
	}
	return filtered
}
