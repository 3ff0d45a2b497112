// Package report renders an analysis as a human-readable document.
package report

import (
	"fmt"
	"strings"

	"github.com/flowlens/flowlens/internal/analyzer"
	"github.com/flowlens/flowlens/internal/diagrams"
)

// Markdown renders an analysis as a standalone markdown report: a summary,
// the Mermaid flowchart, then one section per step in line order.
func Markdown(result *analyzer.AnalysisResult) string {
	var b strings.Builder
	writeHeader(&b, result)

	if len(result.Nodes) > 0 {
		b.WriteString("## Flowchart\n\n")
		b.WriteString("```mermaid\n")
		b.WriteString(diagrams.Flowchart(result))
		b.WriteString("```\n\n")
	}

	writeSteps(&b, result)
	return b.String()
}

func writeHeader(b *strings.Builder, result *analyzer.AnalysisResult) {
	fmt.Fprintf(b, "# Flow Report: %s\n\n", result.FileName)
	fmt.Fprintf(b, "- **Language:** %s\n", result.Language)
	fmt.Fprintf(b, "- **Lines:** %d\n", result.TotalLines)
	fmt.Fprintf(b, "- **Steps:** %d\n\n", result.TotalSections)
}

func writeSteps(b *strings.Builder, result *analyzer.AnalysisResult) {
	b.WriteString("## Steps\n\n")
	for _, n := range result.Nodes {
		fmt.Fprintf(b, "### %s (%s)\n\n", n.Label, lineRange(n))
		if n.Subtitle != "" {
			fmt.Fprintf(b, "*%s*\n\n", n.Subtitle)
		}
		if n.Narrative != "" {
			b.WriteString(n.Narrative + "\n\n")
		}
		if n.IsDecision && n.Condition != "" {
			fmt.Fprintf(b, "**Decision:** %s\n\n", n.Condition)
		}

		if len(n.LogicTable) > 0 {
			b.WriteString("| Step | Trigger | Action | Output |\n")
			b.WriteString("| --- | --- | --- | --- |\n")
			for _, row := range n.LogicTable {
				fmt.Fprintf(b, "| %d | %s | %s | %s |\n",
					row.Step, escapeCell(row.Trigger), escapeCell(row.Action), escapeCell(row.Output))
			}
			b.WriteString("\n")
		}

		if n.CodeSnippet != "" {
			fmt.Fprintf(b, "```%s\n%s\n```\n\n", fenceLanguage(result.Language), n.CodeSnippet)
		}
	}
}

func lineRange(n analyzer.FlowNode) string {
	if n.LineStart == n.LineEnd {
		return fmt.Sprintf("line %d", n.LineStart)
	}
	return fmt.Sprintf("lines %d-%d", n.LineStart, n.LineEnd)
}

// escapeCell keeps pipes inside table cells from breaking the row.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(s, "\n", " ")
}

// fenceLanguage maps a detected language name to a code-fence tag.
func fenceLanguage(language string) string {
	tag := strings.ToLower(language)
	switch tag {
	case "unknown", "":
		return ""
	case "c#":
		return "csharp"
	case "c++":
		return "cpp"
	}
	return strings.ReplaceAll(tag, " ", "")
}
