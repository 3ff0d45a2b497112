// Package diagrams renders flowcharts as Mermaid text.
package diagrams

import (
	"fmt"
	"strings"

	"github.com/flowlens/flowlens/internal/analyzer"
)

// Flowchart renders an analysis as a Mermaid `flowchart TD` definition.
// Shapes map to Mermaid brackets: rectangles [..], diamonds {..},
// rounded nodes (..) and hexagons {{..}}.
func Flowchart(result *analyzer.AnalysisResult) string {
	var b strings.Builder
	b.WriteString("flowchart TD\n")

	for _, n := range result.Nodes {
		opener, closer := shapeBrackets(n.Shape)
		label := escapeMermaid(n.Label)
		if n.Subtitle != "" {
			label += "<br/>" + escapeMermaid(n.Subtitle)
		}
		b.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", sanitizeID(n.ID), opener, label, closer))
	}

	for _, e := range result.Edges {
		from := sanitizeID(e.Source)
		to := sanitizeID(e.Target)
		if e.Label != "" {
			b.WriteString(fmt.Sprintf("    %s -->|%s| %s\n", from, escapeMermaid(e.Label), to))
		} else {
			b.WriteString(fmt.Sprintf("    %s --> %s\n", from, to))
		}
	}

	return b.String()
}

func shapeBrackets(s analyzer.Shape) (string, string) {
	switch s {
	case analyzer.ShapeDiamond:
		return "{", "}"
	case analyzer.ShapeRounded:
		return "(", ")"
	case analyzer.ShapeHexagon:
		return "{{", "}}"
	default:
		return "[", "]"
	}
}

// sanitizeID converts a string into a safe mermaid node ID.
func sanitizeID(s string) string {
	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		".", "_",
		"-", "_",
		" ", "_",
		"(", "_",
		")", "_",
		"[", "_",
		"]", "_",
		"{", "_",
		"}", "_",
		":", "_",
	)
	return replacer.Replace(s)
}

// escapeMermaid escapes characters that have special meaning in mermaid labels.
func escapeMermaid(s string) string {
	s = strings.ReplaceAll(s, "\"", "#quot;")
	s = strings.ReplaceAll(s, "(", "#lpar;")
	s = strings.ReplaceAll(s, ")", "#rpar;")
	s = strings.ReplaceAll(s, "[", "#lsqb;")
	s = strings.ReplaceAll(s, "]", "#rsqb;")
	s = strings.ReplaceAll(s, "{", "#lbrace;")
	s = strings.ReplaceAll(s, "}", "#rbrace;")
	s = strings.ReplaceAll(s, "<", "#lt;")
	s = strings.ReplaceAll(s, ">", "#gt;")
	return s
}
