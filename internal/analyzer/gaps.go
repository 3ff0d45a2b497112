package analyzer

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var (
	reGapIfReturn = regexp.MustCompile(`\bif\b|\breturn\b`)
	reGapAsync    = regexp.MustCompile(`\b(fetch|await|async|axios)\b|\.then\(`)
	reGapHandler  = regexp.MustCompile(`\b(handle[A-Z]\w*|on[A-Z]\w*)\b`)
	reGapHook     = regexp.MustCompile(`\buse[A-Z]\w*\b`)
	reGapDefs     = regexp.MustCompile(`\b(interface|type|import|struct|class)\b`)
	reGapRender   = regexp.MustCompile(`return\s*[(<]|<\w+`)
)

// fillGaps guarantees that the union of node ranges tiles [1, totalLines].
// Uncovered ranges become synthesized filler nodes classified by a secondary
// heuristic, each connected from the node that preceded the gap, if any.
// Nodes are returned re-sorted by ascending LineStart.
func fillGaps(lines []string, nodes []FlowNode, edges []FlowEdge, totalLines int) ([]FlowNode, []FlowEdge) {
	sorted := make([]FlowNode, len(nodes))
	copy(sorted, nodes)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].LineStart < sorted[j].LineStart })

	type gap struct {
		start, end int
		prevNodeID string
	}
	var gaps []gap

	lastCovered := 0
	prevNodeID := ""
	for _, n := range sorted {
		if n.LineStart > lastCovered+1 {
			gaps = append(gaps, gap{start: lastCovered + 1, end: n.LineStart - 1, prevNodeID: prevNodeID})
		}
		if n.LineEnd > lastCovered {
			lastCovered = n.LineEnd
		}
		prevNodeID = n.ID
	}
	if lastCovered < totalLines {
		gaps = append(gaps, gap{start: lastCovered + 1, end: totalLines, prevNodeID: prevNodeID})
	}

	nextID := len(nodes)
	for _, g := range gaps {
		nextID++
		text := snippet(lines, g.start-1, g.end)
		label, subtitle, shape, color := classifyGap(text, g.end-g.start+1)
		filler := FlowNode{
			ID:          fmt.Sprintf("node-%d", nextID),
			Label:       label,
			Subtitle:    subtitle,
			Shape:       shape,
			Color:       color,
			LineStart:   g.start,
			LineEnd:     g.end,
			CodeSnippet: text,
			Narrative:   "Execute " + label + ".",
			LogicTable: []LogicStep{{
				Step:    1,
				Trigger: fmt.Sprintf("Line %d reached", g.start),
				Action:  label,
				Output:  "Continue to next step",
				CodeRef: lineRef(g.start, g.end),
			}},
		}
		nodes = append(nodes, filler)
		if g.prevNodeID != "" {
			edges = append(edges, FlowEdge{Source: g.prevNodeID, Target: filler.ID})
		}
	}

	sort.SliceStable(nodes, func(i, j int) bool { return nodes[i].LineStart < nodes[j].LineStart })
	return nodes, edges
}

// classifyGap labels uncovered code with a simpler heuristic than the main
// pattern catalog.
func classifyGap(text string, lineCount int) (label, subtitle string, shape Shape, color Color) {
	switch {
	case strings.Contains(text, "loading") && reGapIfReturn.MatchString(text):
		return "Loading Check", "Guard", ShapeDiamond, ColorOrange
	case reGapIfReturn.MatchString(text) && !reGapRender.MatchString(text):
		return "Conditional Logic", "Logic", ShapeDiamond, ColorOrange
	case reGapAsync.MatchString(text):
		return "Async Operation", "Side Effect", ShapeHexagon, ColorPurple
	case reGapHandler.MatchString(text):
		return "Event Handler", "Logic", ShapeRectangle, ColorGreen
	case reGapHook.MatchString(text):
		return "Hook Call", "Component State", ShapeRectangle, ColorGreen
	case reGapDefs.MatchString(text):
		return "Definitions", "Setup", ShapeRectangle, ColorBlue
	case reGapRender.MatchString(text):
		return "Render Output", "Output", ShapeRounded, ColorCyan
	default:
		if lineCount == 1 {
			return "Code Line", "Code", ShapeRectangle, ColorBlue
		}
		return fmt.Sprintf("Code Block (%d lines)", lineCount), "Code", ShapeRectangle, ColorBlue
	}
}
