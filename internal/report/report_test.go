package report

import (
	"strings"
	"testing"

	"github.com/flowlens/flowlens/internal/analyzer"
)

func sampleResult() *analyzer.AnalysisResult {
	return &analyzer.AnalysisResult{
		FileName:      "login.ts",
		Language:      "TypeScript",
		TotalLines:    12,
		TotalSections: 2,
		Nodes: []analyzer.FlowNode{
			{
				ID: "node-1", Label: "Check: user", Shape: analyzer.ShapeDiamond,
				LineStart: 1, LineEnd: 1,
				Narrative:  "Guard clause: checks the user before continuing.",
				IsDecision: true, Condition: "Is a user present?",
				CodeSnippet: "if (!user) return null;",
				LogicTable: []analyzer.LogicStep{
					{Step: 1, Trigger: "When user | is missing", Action: "Return Null", Output: "null", CodeRef: "L1"},
				},
			},
			{
				ID: "node-2", Label: "Call: fetchProfile", Shape: analyzer.ShapeHexagon,
				LineStart: 2, LineEnd: 4,
				Narrative:   "Loads the profile from the server.",
				CodeSnippet: "const profile = await fetchProfile(user.id);",
			},
		},
		Edges: []analyzer.FlowEdge{
			{Source: "node-1", Target: "node-2", Label: "NO", SourceHandle: "no"},
		},
	}
}

func TestMarkdownReport(t *testing.T) {
	out := Markdown(sampleResult())

	for _, want := range []string{
		"# Flow Report: login.ts",
		"- **Language:** TypeScript",
		"- **Lines:** 12",
		"```mermaid",
		"flowchart TD",
		"### Check: user (line 1)",
		"**Decision:** Is a user present?",
		"### Call: fetchProfile (lines 2-4)",
		"| Step | Trigger | Action | Output |",
		"When user \\| is missing",
		"```typescript",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
}

func TestMarkdownEmptyResult(t *testing.T) {
	out := Markdown(&analyzer.AnalysisResult{FileName: "empty.ts", Language: "typescript"})

	if strings.Contains(out, "```mermaid") {
		t.Error("empty result should not include a flowchart")
	}
	if !strings.Contains(out, "# Flow Report: empty.ts") {
		t.Error("missing report title")
	}
}

func TestHTMLReport(t *testing.T) {
	out, err := HTML(sampleResult())
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}

	for _, want := range []string{
		"<!DOCTYPE html>",
		"<title>Flow Report: login.ts</title>",
		`<div class="mermaid">`,
		"flowchart TD",
		"mermaid.initialize",
		"Guard clause: checks the user before continuing.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("html missing %q", want)
		}
	}

	if strings.Contains(out, "```") {
		t.Error("markdown fences leaked into HTML output")
	}
}

func TestFenceLanguage(t *testing.T) {
	cases := map[string]string{
		"TypeScript": "typescript",
		"C#":         "csharp",
		"C++":        "cpp",
		"unknown":    "",
		"":           "",
	}
	for in, want := range cases {
		if got := fenceLanguage(in); got != want {
			t.Errorf("fenceLanguage(%q) = %q, want %q", in, got, want)
		}
	}
}
