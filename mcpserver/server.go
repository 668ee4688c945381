package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/landing-analyzer/backend/analyzer"
)

const toolName = "analyze_landing_page"

// Analyzer is the engine behind the MCP tool.
type Analyzer interface {
	Analyze(ctx context.Context, rawURL string) (*analyzer.Result, error)
}

// New builds an MCP server exposing the analysis tool.
func New(a Analyzer, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"landing-analyzer",
		version,
		server.WithToolCapabilities(false),
	)

	tool := mcp.NewTool(toolName,
		mcp.WithDescription("Score the quality of a landing page across technical, SEO, UX and conversion categories. Returns the final score, letter grade, per-category metrics and feedback as JSON. When the page cannot be fetched the result is estimated and marked as simulated."),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("Absolute http or https URL of the landing page"),
		),
	)
	s.AddTool(tool, HandleAnalyze(a))

	return s
}

// HandleAnalyze returns the tool handler. Invalid input and cancelled
// analyses are reported as tool errors, not protocol errors.
func HandleAnalyze(a Analyzer) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		url, err := request.RequireString("url")
		if err != nil {
			return mcp.NewToolResultError("url is required"), nil
		}
		url = strings.TrimSpace(url)
		if err := analyzer.ValidateURL(url); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		result, err := a.Analyze(ctx, url)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
		}

		body, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
		}
		return mcp.NewToolResultText(string(body)), nil
	}
}

// ServeStdio serves the MCP protocol on stdin and stdout until EOF.
func ServeStdio(s *server.MCPServer) error {
	return server.ServeStdio(s)
}
