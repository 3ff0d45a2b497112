package diagrams

import (
	"strings"
	"testing"

	"github.com/flowlens/flowlens/internal/analyzer"
)

func TestFlowchartShapes(t *testing.T) {
	result := &analyzer.AnalysisResult{
		FileName: "login.ts",
		Nodes: []analyzer.FlowNode{
			{ID: "node-1", Label: "Imports", Shape: analyzer.ShapeRectangle},
			{ID: "node-2", Label: "Check: user", Shape: analyzer.ShapeDiamond, IsDecision: true},
			{ID: "node-3", Label: "Return Null", Subtitle: "Early Exit", Shape: analyzer.ShapeRounded},
			{ID: "node-4", Label: "Effect", Shape: analyzer.ShapeHexagon},
		},
		Edges: []analyzer.FlowEdge{
			{Source: "node-2", Target: "node-3", Label: "YES"},
			{Source: "node-2", Target: "node-4", Label: "NO"},
		},
	}

	out := Flowchart(result)

	if !strings.HasPrefix(out, "flowchart TD\n") {
		t.Fatalf("missing header:\n%s", out)
	}
	for _, want := range []string{
		`node_1["Imports"]`,
		`node_2{"Check: user"}`,
		`node_3("Return Null<br/>Early Exit")`,
		`node_4{{"Effect"}}`,
		`node_2 -->|YES| node_3`,
		`node_2 -->|NO| node_4`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestFlowchartEscapesLabels(t *testing.T) {
	result := &analyzer.AnalysisResult{
		Nodes: []analyzer.FlowNode{
			{ID: "node-1", Label: `Call: fetch("/api")`, Shape: analyzer.ShapeRectangle},
		},
	}

	out := Flowchart(result)
	if strings.Contains(out, `fetch("/api")`) {
		t.Errorf("label not escaped:\n%s", out)
	}
	for _, want := range []string{"#quot;", "#lpar;", "#rpar;"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing escape %q:\n%s", want, out)
		}
	}
}

func TestFlowchartUnlabeledEdge(t *testing.T) {
	result := &analyzer.AnalysisResult{
		Nodes: []analyzer.FlowNode{
			{ID: "node-1", Label: "A", Shape: analyzer.ShapeRectangle},
			{ID: "node-2", Label: "B", Shape: analyzer.ShapeRectangle},
		},
		Edges: []analyzer.FlowEdge{{Source: "node-1", Target: "node-2"}},
	}

	out := Flowchart(result)
	if !strings.Contains(out, "node_1 --> node_2") {
		t.Errorf("missing plain edge:\n%s", out)
	}
}

func TestFlowchartEmptyResult(t *testing.T) {
	out := Flowchart(&analyzer.AnalysisResult{})
	if out != "flowchart TD\n" {
		t.Errorf("expected bare header, got:\n%s", out)
	}
}
