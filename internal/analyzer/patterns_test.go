package analyzer

import (
	"sort"
	"strings"
	"testing"
)

func firstMatch(t *testing.T, src string) *PatternMatch {
	t.Helper()
	matches := dedupe(sweep(splitLines(src)))
	if len(matches) == 0 {
		t.Fatalf("no match for %q", src)
	}
	return matches[0]
}

func TestCatalogIsPrioritySorted(t *testing.T) {
	if !sort.SliceIsSorted(catalog, func(i, j int) bool {
		return catalog[i].priority > catalog[j].priority
	}) {
		t.Fatal("catalog must stay sorted by descending priority")
	}
}

func TestImportGrouping(t *testing.T) {
	src := "import React from 'react';\nimport { useState } from 'react';\nconst x = 1;"
	m := firstMatch(t, src)
	if m.kind != "imports" {
		t.Fatalf("kind = %q, want imports", m.kind)
	}
	if m.LineStart != 1 || m.LineEnd != 2 {
		t.Errorf("range = [%d, %d], want [1, 2]", m.LineStart, m.LineEnd)
	}
	if m.Shape != ShapeRectangle || m.Color != ColorBlue {
		t.Errorf("shape/color = %s/%s, want rectangle/blue", m.Shape, m.Color)
	}
}

func TestTypeDeclSpansBlock(t *testing.T) {
	src := "interface User {\n  id: string;\n  name: string;\n}"
	m := firstMatch(t, src)
	if m.kind != "type-decl" {
		t.Fatalf("kind = %q, want type-decl", m.kind)
	}
	if m.Label != "Type: User" {
		t.Errorf("label = %q", m.Label)
	}
	if m.LineEnd != 4 {
		t.Errorf("lineEnd = %d, want 4", m.LineEnd)
	}
}

func TestRouteHandler(t *testing.T) {
	src := "app.post('/api/login', async (req, res) => {\n  res.send('ok');\n});"
	m := firstMatch(t, src)
	if m.kind != "route" {
		t.Fatalf("kind = %q, want route", m.kind)
	}
	if m.Label != "Route: POST /api/login" {
		t.Errorf("label = %q", m.Label)
	}
	if m.LineEnd != 3 {
		t.Errorf("lineEnd = %d, want 3", m.LineEnd)
	}
}

func TestAsyncFunctionClassification(t *testing.T) {
	tests := []struct {
		name string
		src  string
		kind string
	}{
		{
			name: "network call body becomes api-call",
			src:  "const loadUser = async () => {\n  const r = await fetch('/api/user');\n  return r.json();\n}",
			kind: "api-call",
		},
		{
			name: "plain async stays async-func",
			src:  "async function wait() {\n  await sleep(100);\n}",
			kind: "async-func",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := firstMatch(t, tt.src)
			if m.kind != tt.kind {
				t.Errorf("kind = %q, want %q", m.kind, tt.kind)
			}
			if m.Shape != ShapeHexagon {
				t.Errorf("shape = %s, want hexagon", m.Shape)
			}
		})
	}
}

func TestComponentCapturesSignatureOnly(t *testing.T) {
	src := "function LoginPage() {\n  const [user, setUser] = useState(null);\n  return <div />;\n}"
	matches := dedupe(sweep(splitLines(src)))
	if matches[0].kind != "component" {
		t.Fatalf("kind = %q, want component", matches[0].kind)
	}
	if matches[0].LineEnd != 1 {
		t.Errorf("component lineEnd = %d, want 1 (signature only)", matches[0].LineEnd)
	}
	// Internal statements must be parsed independently.
	if len(matches) < 3 {
		t.Fatalf("got %d matches, want the component internals matched too", len(matches))
	}
	if matches[1].kind != "state-hook" {
		t.Errorf("second match kind = %q, want state-hook", matches[1].kind)
	}
}

func TestLowercaseFunctionCapturesBlock(t *testing.T) {
	src := "function helper() {\n  const a = 1;\n  return a;\n}"
	m := firstMatch(t, src)
	if m.kind != "function" {
		t.Fatalf("kind = %q, want function", m.kind)
	}
	if m.LineEnd != 4 {
		t.Errorf("lineEnd = %d, want 4", m.LineEnd)
	}
}

func TestStateHookMultiLineInitializer(t *testing.T) {
	src := "const [form, setForm] = useState({\n  email: '',\n  password: '',\n});"
	m := firstMatch(t, src)
	if m.kind != "state-hook" {
		t.Fatalf("kind = %q, want state-hook", m.kind)
	}
	if m.Label != "State: form" {
		t.Errorf("label = %q", m.Label)
	}
	if m.LineEnd != 4 {
		t.Errorf("lineEnd = %d, want 4", m.LineEnd)
	}
}

func TestCustomHookExcludesBuiltins(t *testing.T) {
	if m := firstMatch(t, "const { data } = useQuery('users');"); m.kind != "custom-hook" {
		t.Errorf("kind = %q, want custom-hook", m.kind)
	}
	if m := firstMatch(t, "const [n, setN] = useState(0);"); m.kind != "state-hook" {
		t.Errorf("kind = %q, want state-hook", m.kind)
	}
}

func TestGuardClause(t *testing.T) {
	m := firstMatch(t, "if (!user) return null;")
	if !m.IsDecision {
		t.Fatal("guard must be a decision")
	}
	if m.Shape != ShapeDiamond {
		t.Errorf("shape = %s, want diamond", m.Shape)
	}
	if m.Condition != "Is the user logged out?" {
		t.Errorf("condition = %q", m.Condition)
	}
	if m.Branch == nil || m.Branch.Label != "Return Null" {
		t.Fatalf("branch = %+v, want Return Null", m.Branch)
	}
}

func TestGuardBranchClassification(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"if (!user) return null;", "Return Null"},
		{"if (err) throw new Error('boom');", "Throw Error"},
		{"if (!res.ok) return res.status(400).json({});", "Return Error"},
		{"if (loading) return <Spinner />;", "Render Fallback"},
	}
	for _, tt := range tests {
		m := firstMatch(t, tt.src)
		if m.Branch == nil {
			t.Fatalf("no branch for %q", tt.src)
		}
		if m.Branch.Label != tt.want {
			t.Errorf("branch label for %q = %q, want %q", tt.src, m.Branch.Label, tt.want)
		}
	}
}

func TestIfBlockDecision(t *testing.T) {
	src := "if (items.length === 0) {\n  setEmpty(true);\n}"
	m := firstMatch(t, src)
	if m.kind != "if-block" || !m.IsDecision {
		t.Fatalf("kind = %q isDecision = %v, want decision if-block", m.kind, m.IsDecision)
	}
	if m.LineEnd != 3 {
		t.Errorf("lineEnd = %d, want 3", m.LineEnd)
	}
	if !strings.Contains(m.Subtitle, "Update State") {
		t.Errorf("subtitle = %q, want yes-action summary", m.Subtitle)
	}
}

func TestSwitchIsMultiWayDecision(t *testing.T) {
	src := "switch (status) {\n  case 'a':\n    break;\n}"
	m := firstMatch(t, src)
	if m.kind != "switch" || !m.IsDecision {
		t.Fatalf("kind = %q isDecision = %v", m.kind, m.IsDecision)
	}
	if m.LineEnd != 4 {
		t.Errorf("lineEnd = %d, want 4", m.LineEnd)
	}
}

func TestRenderReturn(t *testing.T) {
	src := "return (\n  <div>hello</div>\n);"
	m := firstMatch(t, src)
	if m.kind != "render" {
		t.Fatalf("kind = %q, want render", m.kind)
	}
	if m.Shape != ShapeRounded || m.Color != ColorCyan {
		t.Errorf("shape/color = %s/%s", m.Shape, m.Color)
	}
	if m.LineEnd != 3 {
		t.Errorf("lineEnd = %d, want 3", m.LineEnd)
	}
}

func TestDataQuery(t *testing.T) {
	m := firstMatch(t, "const user = await db.user.findUnique({ where: { id } });")
	if m.kind != "data-query" {
		t.Fatalf("kind = %q, want data-query", m.kind)
	}
	if m.Label != "DB Query: user.findUnique" {
		t.Errorf("label = %q", m.Label)
	}
}

func TestSweepSkipsCommentsAndBlanks(t *testing.T) {
	src := "// a comment\n\n# python comment\n/* block */\nconst x = f();"
	matches := dedupe(sweep(splitLines(src)))
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(matches))
	}
	if matches[0].LineStart != 5 {
		t.Errorf("lineStart = %d, want 5", matches[0].LineStart)
	}
}

func TestDedupeDropsClaimedLines(t *testing.T) {
	matches := []*PatternMatch{
		{LineStart: 1, LineEnd: 5},
		{LineStart: 3, LineEnd: 3},
		{LineStart: 6, LineEnd: 6},
	}
	kept := dedupe(matches)
	if len(kept) != 2 {
		t.Fatalf("kept %d, want 2", len(kept))
	}
	if kept[1].LineStart != 6 {
		t.Errorf("second kept starts at %d, want 6", kept[1].LineStart)
	}
}
