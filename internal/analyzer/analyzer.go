// Package analyzer converts raw source text into a directed flowchart of
// labeled, line-ranged nodes using heuristic line-oriented pattern matching.
// It is deliberately not a parser: detection is regex and brace-count based,
// tolerant of invalid or partial code in any C-like or Python-like language.
// The analysis is pure computation with no I/O or shared state, so concurrent
// calls are safe and identical input always yields identical output.
package analyzer

import "strings"

// Analyze runs the full pipeline over sourceText: line sweep with the
// pattern catalog, overlap deduplication, graph assembly and gap filling.
// fileName and language are cosmetic only. It never fails: any string,
// including the empty string, produces a result whose node ranges tile
// [1, TotalLines] with no gaps.
func Analyze(sourceText, fileName, language string) *AnalysisResult {
	lines := splitLines(sourceText)

	matches := dedupe(sweep(lines))
	nodes, edges := assemble(matches)
	nodes, edges = fillGaps(lines, nodes, edges, len(lines))

	return &AnalysisResult{
		FileName:      fileName,
		Language:      language,
		Nodes:         nodes,
		Edges:         edges,
		TotalLines:    len(lines),
		TotalSections: len(nodes),
	}
}

// splitLines splits on newlines, tolerating CRLF. The empty string yields a
// single empty line so the result always covers at least line 1.
func splitLines(sourceText string) []string {
	lines := strings.Split(sourceText, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
