package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/flowlens/flowlens/internal/analyses"
	"github.com/flowlens/flowlens/internal/diagrams"
	"github.com/flowlens/flowlens/internal/report"
	"github.com/flowlens/flowlens/internal/vectordb"
)

// handleAnalyzeSource runs the analyzer on the provided source and stores the result.
func (s *Server) handleAnalyzeSource(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	source, err := request.RequireString("source")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: source"), nil
	}

	a, cached, err := s.svc.Analyze(ctx, analyses.AnalyzeRequest{
		Source:   source,
		FileName: request.GetString("file_name", ""),
		Language: request.GetString("language", ""),
		Enhance:  request.GetBool("enhance", false),
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	body, err := renderAnalysis(a, request.GetString("format", "markdown"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	header := fmt.Sprintf("Analysis id: %s\n", a.ID)
	if cached {
		header += "(returned from cache; this source was analyzed before)\n"
	}
	return mcp.NewToolResultText(header + "\n" + body), nil
}

// handleGetAnalysis fetches a stored analysis by id.
func (s *Server) handleGetAnalysis(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: id"), nil
	}

	a, err := s.svc.Get(ctx, id)
	if err != nil {
		if errors.Is(err, analyses.ErrNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("no analysis with id %q", id)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("fetch failed: %v", err)), nil
	}

	body, err := renderAnalysis(a, request.GetString("format", "markdown"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(body), nil
}

// handleSearchAnalyses performs semantic search over stored narratives.
func (s *Server) handleSearchAnalyses(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if !s.svc.SearchEnabled() {
		return mcp.NewToolResultError("semantic search is not configured; set an embedding provider in .flowlens.yml"), nil
	}

	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}

	limit := request.GetInt("limit", 10)
	if limit <= 0 {
		limit = 10
	}

	var filter *vectordb.SearchFilter
	if lang := request.GetString("language", ""); lang != "" {
		filter = &vectordb.SearchFilter{Language: &lang}
	}

	results, err := s.svc.Search(ctx, query, limit, filter)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	if len(results) == 0 {
		return mcp.NewToolResultText("No results found. Analyze some files first so their narratives are indexed."), nil
	}

	return mcp.NewToolResultText(vectordb.FormatResults(results)), nil
}

// renderAnalysis formats a stored analysis in the requested output format.
func renderAnalysis(a *analyses.Analysis, format string) (string, error) {
	switch format {
	case "json":
		data, err := json.MarshalIndent(a, "", "  ")
		if err != nil {
			return "", fmt.Errorf("encode analysis: %w", err)
		}
		return string(data), nil
	case "mermaid":
		return diagrams.Flowchart(a.Result()), nil
	case "markdown", "":
		return report.Markdown(a.Result()), nil
	default:
		return "", fmt.Errorf("unknown format %q", format)
	}
}
