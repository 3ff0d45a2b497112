package analyzer

import (
	"strings"
	"testing"
)

func TestClassifyGap(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"if (loading) return <Spinner />;", "Loading Check"},
		{"if (count > 3) { count = 0; }", "Conditional Logic"},
		{"await client.send(msg);", "Async Operation"},
		{"const handleClick = registerHandler;", "Event Handler"},
		{"useDebounce(value, 300);", "Hook Call"},
		{"import something", "Definitions"},
		{"<Footer />", "Render Output"},
		{"x = y + z;", "Code Line"},
	}
	for _, tt := range tests {
		label, _, _, _ := classifyGap(tt.text, 1)
		if label != tt.want {
			t.Errorf("classifyGap(%q) = %q, want %q", tt.text, label, tt.want)
		}
	}

	label, _, _, _ := classifyGap("plain\ntext\nhere", 3)
	if label != "Code Block (3 lines)" {
		t.Errorf("multi-line gap label = %q", label)
	}
}

func TestFillGapsConnectsFromPredecessor(t *testing.T) {
	lines := strings.Split("a\nb\nc\nd", "\n")
	nodes := []FlowNode{{ID: "node-1", LineStart: 1, LineEnd: 2}}

	filled, edges := fillGaps(lines, nodes, nil, 4)
	if len(filled) != 2 {
		t.Fatalf("got %d nodes, want 2", len(filled))
	}
	if filled[1].LineStart != 3 || filled[1].LineEnd != 4 {
		t.Errorf("filler range = [%d, %d], want [3, 4]", filled[1].LineStart, filled[1].LineEnd)
	}
	if len(edges) != 1 || edges[0].Source != "node-1" || edges[0].Target != filled[1].ID {
		t.Errorf("edges = %+v, want node-1 -> %s", edges, filled[1].ID)
	}
}

func TestFillGapsLeadingGap(t *testing.T) {
	lines := strings.Split("a\nb\nc", "\n")
	nodes := []FlowNode{{ID: "node-1", LineStart: 3, LineEnd: 3}}

	filled, edges := fillGaps(lines, nodes, nil, 3)
	if len(filled) != 2 {
		t.Fatalf("got %d nodes, want 2", len(filled))
	}
	if filled[0].LineStart != 1 || filled[0].LineEnd != 2 {
		t.Errorf("leading filler range = [%d, %d], want [1, 2]", filled[0].LineStart, filled[0].LineEnd)
	}
	if len(edges) != 0 {
		t.Errorf("leading gap must not get an incoming edge, got %+v", edges)
	}
}
