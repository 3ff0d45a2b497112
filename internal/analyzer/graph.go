package analyzer

import (
	"fmt"
	"strings"
)

// narrativeTemplates maps pattern kinds to fixed narrative phrasings.
// Anything not listed gets the generic "Execute {label}." phrasing and
// decisions get the guard phrasing.
var narrativeTemplates = map[string]string{
	"imports":     "Load the modules and dependencies this file needs before anything runs.",
	"effect-hook": "Run a side effect after render; re-runs when its dependencies change.",
	"route":       "Handle an incoming HTTP request on this endpoint and send back a response.",
	"data-query":  "Query the data layer and wait for the result.",
	"state-hook":  "Create a piece of component state with its setter.",
	"render":      "Build and return the UI output.",
	"api-call":    "Call an external API and wait for the response.",
}

// assemble converts the deduplicated, line-ordered match list into nodes
// and edges. Node ids are assigned in order ("node-1", "node-2", ...) so a
// rerun over identical input produces identical output.
func assemble(matches []*PatternMatch) ([]FlowNode, []FlowEdge) {
	nodes := make([]FlowNode, 0, len(matches))
	edges := make([]FlowEdge, 0, len(matches))

	nextID := 0
	newID := func() string {
		nextID++
		return fmt.Sprintf("node-%d", nextID)
	}

	prevID := ""
	prevWasDecision := false

	for _, m := range matches {
		node := FlowNode{
			ID:          newID(),
			Label:       m.Label,
			Subtitle:    m.Subtitle,
			Shape:       m.Shape,
			Color:       m.Color,
			LineStart:   m.LineStart,
			LineEnd:     m.LineEnd,
			CodeSnippet: m.CodeSnippet,
			Narrative:   narrativeFor(m),
			LogicTable:  logicRowFor(m),
			IsDecision:  m.IsDecision,
			Condition:   m.Condition,
		}

		// Link from the previous node: a decision falls through on NO,
		// everything else continues sequentially.
		if prevID != "" {
			edge := FlowEdge{Source: prevID, Target: node.ID}
			if prevWasDecision {
				edge.Label = "NO"
				edge.SourceHandle = "no"
			}
			edges = append(edges, edge)
		}
		nodes = append(nodes, node)

		// A guard's YES branch becomes its own early-exit node. It is a
		// dead end: sequential linking continues from the decision itself.
		if m.IsDecision && m.Branch != nil {
			yes := FlowNode{
				ID:          newID(),
				Label:       m.Branch.Label,
				Subtitle:    "Early Exit",
				Shape:       ShapeRounded,
				Color:       branchColor(m.Branch.Label),
				LineStart:   m.Branch.LineStart,
				LineEnd:     m.Branch.LineEnd,
				CodeSnippet: m.Branch.Content,
				Narrative:   "Exit early: " + strings.ToLower(m.Branch.Label) + ".",
				LogicTable: []LogicStep{{
					Step:    1,
					Trigger: "Condition is YES",
					Action:  m.Branch.Label,
					Output:  "Flow stops here",
					CodeRef: lineRef(m.Branch.LineStart, m.Branch.LineEnd),
				}},
			}
			nodes = append(nodes, yes)
			edges = append(edges, FlowEdge{
				Source:       node.ID,
				Target:       yes.ID,
				Label:        "YES",
				SourceHandle: "yes",
			})
		}

		prevID = node.ID
		prevWasDecision = m.IsDecision
	}

	return nodes, edges
}

func narrativeFor(m *PatternMatch) string {
	if m.IsDecision {
		return "Guard clause: " + m.Label + ". If YES, take action."
	}
	if tpl, ok := narrativeTemplates[m.kind]; ok {
		return tpl
	}
	return "Execute " + m.Label + "."
}

// logicRowFor builds the single summary row of a node's logic table.
func logicRowFor(m *PatternMatch) []LogicStep {
	row := LogicStep{
		Step:    1,
		Trigger: fmt.Sprintf("Line %d reached", m.LineStart),
		Action:  m.Label,
		Output:  "Continue to next step",
		CodeRef: lineRef(m.LineStart, m.LineEnd),
	}
	if m.IsDecision {
		row.Trigger = "Condition evaluated"
		row.Action = m.Condition
		row.Output = "Branch YES or NO"
	}
	return []LogicStep{row}
}

// branchColor picks the early-exit node color from its label.
func branchColor(label string) Color {
	lower := strings.ToLower(label)
	switch {
	case strings.Contains(lower, "error") || strings.Contains(lower, "null") ||
		strings.Contains(lower, "throw") || strings.Contains(lower, "return"):
		return ColorRed
	case strings.Contains(lower, "render") || strings.Contains(lower, "fallback") || strings.Contains(lower, "jsx"):
		return ColorCyan
	case strings.Contains(lower, "state") || strings.Contains(lower, "update"):
		return ColorGreen
	case strings.Contains(lower, "navigate") || strings.Contains(lower, "async"):
		return ColorPurple
	default:
		return ColorBlue
	}
}

func lineRef(start, end int) string {
	if start == end {
		return fmt.Sprintf("L%d", start)
	}
	return fmt.Sprintf("L%d-L%d", start, end)
}
