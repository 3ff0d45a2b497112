package vectordb

import (
	"fmt"
	"strings"
)

// FormatResults renders search results as human-readable text, used by the
// MCP search tool.
func FormatResults(results []SearchResult) string {
	if len(results) == 0 {
		return "No results found."
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d result(s):\n\n", len(results)))

	for i, r := range results {
		sb.WriteString(fmt.Sprintf("--- Result %d (similarity: %.4f) ---\n", i+1, r.Similarity))

		if r.Document.Metadata.FileName != "" {
			location := r.Document.Metadata.FileName
			if r.Document.Metadata.LineStart > 0 {
				location += fmt.Sprintf(":%d", r.Document.Metadata.LineStart)
				if r.Document.Metadata.LineEnd > r.Document.Metadata.LineStart {
					location += fmt.Sprintf("-%d", r.Document.Metadata.LineEnd)
				}
			}
			sb.WriteString(fmt.Sprintf("File: %s\n", location))
		}
		if r.Document.Metadata.Category != "" {
			sb.WriteString(fmt.Sprintf("Category: %s\n", r.Document.Metadata.Category))
		}
		if r.Document.Metadata.Language != "" {
			sb.WriteString(fmt.Sprintf("Language: %s\n", r.Document.Metadata.Language))
		}
		if r.Document.Metadata.AnalysisID != "" {
			sb.WriteString(fmt.Sprintf("Analysis: %s\n", r.Document.Metadata.AnalysisID))
		}

		sb.WriteString("\n")
		sb.WriteString(r.Document.Content)
		sb.WriteString("\n\n")
	}

	return sb.String()
}
