package enhancer

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/flowlens/flowlens/internal/analyzer"
	"github.com/flowlens/flowlens/internal/llm"
)

// stubProvider replies with a fixed payload or error.
type stubProvider struct {
	response string
	err      error
	calls    int
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) Complete(_ context.Context, _ llm.CompletionRequest) (*llm.CompletionResponse, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &llm.CompletionResponse{Content: s.response}, nil
}

func sampleResult() *analyzer.AnalysisResult {
	return &analyzer.AnalysisResult{
		FileName: "login.ts",
		Language: "typescript",
		Nodes: []analyzer.FlowNode{
			{
				ID: "node-1", Label: "Check: user", Shape: analyzer.ShapeDiamond,
				Color: analyzer.ColorOrange, LineStart: 1, LineEnd: 1,
				Narrative: "Guard clause.", IsDecision: true, Condition: "Is there a user?",
			},
			{
				ID: "node-2", Label: "Return Null", Shape: analyzer.ShapeRounded,
				Color: analyzer.ColorRed, LineStart: 1, LineEnd: 1,
				Narrative: "Exits early.",
			},
		},
		Edges: []analyzer.FlowEdge{
			{Source: "node-1", Target: "node-2", Label: "YES", SourceHandle: "yes"},
		},
		TotalLines:    1,
		TotalSections: 2,
	}
}

// rewriteJSON builds a valid model reply from the result with new wording.
func rewriteJSON(t *testing.T, result *analyzer.AnalysisResult, mutate func([]nodeText)) string {
	t.Helper()
	nodes := extractText(result)
	nodes[0].Label = "Is a user logged in?"
	nodes[0].Narrative = "First we make sure someone is actually signed in."
	nodes[0].Condition = "Is someone signed in?"
	nodes[1].Narrative = "If not, the function stops and returns nothing."
	if mutate != nil {
		mutate(nodes)
	}
	raw, err := json.Marshal(enhanceResponse{Nodes: nodes})
	if err != nil {
		t.Fatalf("marshal reply: %v", err)
	}
	return string(raw)
}

func TestEnhanceRewritesCosmeticFields(t *testing.T) {
	result := sampleResult()
	stub := &stubProvider{response: rewriteJSON(t, result, nil)}
	e := New(stub, "test-model", 0)

	out := e.Enhance(context.Background(), result, ModeConcise)

	if out == result {
		t.Fatal("expected a copy, got the original pointer")
	}
	if out.Nodes[0].Label != "Is a user logged in?" {
		t.Errorf("label not rewritten: %q", out.Nodes[0].Label)
	}
	if out.Nodes[0].Condition != "Is someone signed in?" {
		t.Errorf("condition not rewritten: %q", out.Nodes[0].Condition)
	}
	if out.Nodes[1].Narrative != "If not, the function stops and returns nothing." {
		t.Errorf("narrative not rewritten: %q", out.Nodes[1].Narrative)
	}

	// Structure stays heuristic-owned.
	if out.Nodes[0].Shape != analyzer.ShapeDiamond || out.Nodes[0].Color != analyzer.ColorOrange {
		t.Error("shape or color changed")
	}
	if !reflect.DeepEqual(out.Edges, result.Edges) {
		t.Error("edges changed")
	}
	if out.TotalLines != result.TotalLines || out.TotalSections != result.TotalSections {
		t.Error("totals changed")
	}
}

func TestEnhanceHandlesFencedJSON(t *testing.T) {
	result := sampleResult()
	fenced := "```json\n" + rewriteJSON(t, result, nil) + "\n```"
	e := New(&stubProvider{response: fenced}, "test-model", 0)

	out := e.Enhance(context.Background(), result, ModeDetailed)
	if out.Nodes[0].Label != "Is a user logged in?" {
		t.Errorf("fenced reply not parsed: %q", out.Nodes[0].Label)
	}
}

func TestEnhanceFallsBackOnProviderError(t *testing.T) {
	result := sampleResult()
	e := New(&stubProvider{err: errors.New("boom")}, "test-model", 0)

	out := e.Enhance(context.Background(), result, ModeConcise)
	if out != result {
		t.Error("expected original result on provider error")
	}
}

func TestEnhanceFallsBackOnMalformedJSON(t *testing.T) {
	result := sampleResult()
	e := New(&stubProvider{response: "not json at all"}, "test-model", 0)

	out := e.Enhance(context.Background(), result, ModeConcise)
	if out != result {
		t.Error("expected original result on malformed JSON")
	}
}

func TestEnhanceRejectsStructuralChanges(t *testing.T) {
	cases := []struct {
		name   string
		mutate func([]nodeText) []nodeText
	}{
		{"dropped node", func(n []nodeText) []nodeText { return n[:1] }},
		{"renamed id", func(n []nodeText) []nodeText { n[0].ID = "node-99"; return n }},
		{"moved lines", func(n []nodeText) []nodeText { n[1].LineEnd = 42; return n }},
		{"empty label", func(n []nodeText) []nodeText { n[0].Label = "  "; return n }},
		{"empty narrative", func(n []nodeText) []nodeText { n[1].Narrative = ""; return n }},
		{"lost condition", func(n []nodeText) []nodeText { n[0].Condition = ""; return n }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := sampleResult()
			nodes := tc.mutate(extractText(result))
			raw, err := json.Marshal(enhanceResponse{Nodes: nodes})
			if err != nil {
				t.Fatalf("marshal reply: %v", err)
			}
			e := New(&stubProvider{response: string(raw)}, "test-model", 0)

			out := e.Enhance(context.Background(), result, ModeConcise)
			if out != result {
				t.Error("expected original result for rejected rewrite")
			}
		})
	}
}

func TestEnhanceSkipsEmptyResult(t *testing.T) {
	stub := &stubProvider{response: "{}"}
	e := New(stub, "test-model", 0)

	empty := &analyzer.AnalysisResult{FileName: "empty.ts"}
	if out := e.Enhance(context.Background(), empty, ModeConcise); out != empty {
		t.Error("expected passthrough for empty result")
	}
	if stub.calls != 0 {
		t.Errorf("expected no provider calls, got %d", stub.calls)
	}
}
