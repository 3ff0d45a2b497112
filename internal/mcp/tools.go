package mcp

import "github.com/mark3labs/mcp-go/mcp"

// analyzeSourceTool defines the analyze_source MCP tool.
var analyzeSourceTool = mcp.NewTool("analyze_source",
	mcp.WithDescription("Analyze source code and produce a step-by-step flowchart with plain-English narratives. Results are stored and can be fetched later by id."),
	mcp.WithString("source",
		mcp.Required(),
		mcp.Description("The source code to analyze"),
	),
	mcp.WithString("file_name",
		mcp.Description("Original file name, used for language detection and labeling"),
	),
	mcp.WithString("language",
		mcp.Description("Language override; detected from file_name when omitted"),
	),
	mcp.WithBoolean("enhance",
		mcp.Description("Rewrite node narratives with the configured language model"),
	),
	mcp.WithString("format",
		mcp.Description("Output format (default markdown)"),
		mcp.Enum("markdown", "mermaid", "json"),
	),
)

// getAnalysisTool defines the get_analysis MCP tool.
var getAnalysisTool = mcp.NewTool("get_analysis",
	mcp.WithDescription("Fetch a stored analysis by id."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Analysis id returned by analyze_source"),
	),
	mcp.WithString("format",
		mcp.Description("Output format (default markdown)"),
		mcp.Enum("markdown", "mermaid", "json"),
	),
)

// searchAnalysesTool defines the search_analyses MCP tool.
var searchAnalysesTool = mcp.NewTool("search_analyses",
	mcp.WithDescription("Search stored flowchart narratives semantically. Returns matching steps with their file and line locations."),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Natural language search query"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of results to return (default 10)"),
	),
	mcp.WithString("language",
		mcp.Description("Filter results by source language"),
	),
)
