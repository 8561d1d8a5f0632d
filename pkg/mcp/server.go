// Package mcp exposes gwiz over the Model Context Protocol so agents
// can validate, inspect, and run wizards non-interactively.
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewServer creates a new MCP server with gwiz tools registered.
func NewServer(version string) *server.MCPServer {
	s := server.NewMCPServer(
		"gwiz",
		version,
		server.WithToolCapabilities(true),
	)

	// Register tools
	s.AddTool(
		mcp.NewTool("validate_wizard",
			mcp.WithDescription("Validate a gwiz wizard YAML file"),
			mcp.WithString("path", mcp.Required(), mcp.Description("Path to the wizard YAML file")),
		),
		HandleValidate,
	)

	s.AddTool(
		mcp.NewTool("describe_wizard",
			mcp.WithDescription("Describe a wizard: name, title, and the steps it would present"),
			mcp.WithString("path", mcp.Required(), mcp.Description("Path to the wizard YAML file")),
		),
		HandleDescribe,
	)

	s.AddTool(
		mcp.NewTool("get_wizard_schema",
			mcp.WithDescription("Export the JSON Schema for gwiz wizard YAML documents"),
		),
		HandleSchema,
	)

	s.AddTool(
		mcp.NewTool("run_wizard",
			mcp.WithDescription("Run a wizard non-interactively from a map of answers and return the collected values"),
			mcp.WithString("path", mcp.Required(), mcp.Description("Path to the wizard YAML file")),
			mcp.WithObject("answers", mcp.Required(), mcp.Description("Answers keyed by step id; strings, numbers, booleans, or arrays of strings")),
			mcp.WithString("context", mcp.Description("Optional context reference the wizard runs against")),
		),
		HandleRun,
	)

	s.AddTool(
		mcp.NewTool("create_wizard_template",
			mcp.WithDescription("Generate a starter wizard YAML document"),
			mcp.WithString("name", mcp.Description("Wizard name (defaults to my-wizard)")),
		),
		HandleTemplate,
	)

	return s
}
