package analyzer

import (
	"regexp"
	"strings"
)

// pattern is one named detector: a cheap match predicate plus an extractor
// that produces a normalized PatternMatch. Patterns are tried in descending
// priority and the first predicate that fires wins the line.
type pattern struct {
	name     string
	priority int
	match    func(line string, idx int, lines []string) bool
	extract  func(line string, idx int, lines []string) *PatternMatch
}

var (
	reImport       = regexp.MustCompile(`^\s*(import\s|from\s+\S+\s+import\s|const\s+\S+\s*=\s*require\()`)
	reTypeDecl     = regexp.MustCompile(`^\s*(?:export\s+)?(interface|type|struct|class)\s+([A-Za-z_]\w*)`)
	reRouteHandler = regexp.MustCompile(`\b(app|router|server|api)\.(get|post|put|delete|patch|all)\(\s*['"` + "`" + `]([^'"` + "`" + `]+)`)
	reAsyncFunc    = regexp.MustCompile(`^\s*(?:export\s+)?(?:const\s+(\w+)\s*=\s*async|async\s+function\s+(\w+))`)
	reFuncDecl     = regexp.MustCompile(`^\s*(?:export\s+)?(?:default\s+)?function\s+([A-Za-z_]\w*)\s*\(`)
	reArrowDecl    = regexp.MustCompile(`^\s*(?:export\s+)?const\s+([A-Za-z_]\w*)\s*=\s*(?:\([^)]*\)|\w+)\s*=>`)
	reDefDecl      = regexp.MustCompile(`^\s*def\s+([A-Za-z_]\w*)\s*\(`)
	reDataQuery    = regexp.MustCompile(`\b(\w+)\.(\w+)\.(findUnique|findFirst|findMany|create|createMany|update|updateMany|upsert|delete|deleteMany|aggregate|count|query)\s*\(`)
	reDataQueryDot = regexp.MustCompile(`\b(\w+)\.(findOne|findById|find|save|insertOne|insertMany|updateOne|deleteOne|query|exec)\s*\(`)
	reStateHook    = regexp.MustCompile(`^\s*const\s*\[\s*(\w+)\s*,\s*(\w+)\s*\]\s*=\s*useState`)
	reEffectHook   = regexp.MustCompile(`^\s*useEffect\s*\(`)
	reCustomHook   = regexp.MustCompile(`^\s*(?:const|let|var)\s+(?:\{[^}]*\}|\[[^\]]*\]|\w+)\s*=\s*(use[A-Z]\w*)\s*\(`)
	reGuardClause  = regexp.MustCompile(`^\s*if\s*\((.+)\)\s*((?:return|throw)\b.*?);?\s*$`)
	reIfBlock      = regexp.MustCompile(`^\s*(?:\}\s*)?(?:else\s+)?if\s*\((.+)\)\s*\{?\s*$`)
	reTryBlock     = regexp.MustCompile(`^\s*try\s*\{?\s*$`)
	reCatchBlock   = regexp.MustCompile(`^\s*\}?\s*catch\s*(?:\(([^)]*)\))?\s*\{?\s*$`)
	reSwitchStmt   = regexp.MustCompile(`^\s*switch\s*\((.+)\)\s*\{?\s*$`)
	reReturnRender = regexp.MustCompile(`^\s*return\s*[(<]`)
	reReturnPlain  = regexp.MustCompile(`^\s*return\b`)
	reConstCall    = regexp.MustCompile(`^\s*(?:const|let|var)\s+(\w+)\s*=\s*(?:await\s+)?(\w+(?:\.\w+)*)\(`)
	reExportStmt   = regexp.MustCompile(`^\s*export\s+(default\s+)?`)
	reNetworkCall  = regexp.MustCompile(`\b(fetch|axios|http\.|request\(|\.get\(|\.post\(|XMLHttpRequest)`)
	reSetterCall   = regexp.MustCompile(`\bset[A-Z]\w*\(`)
	reJSXLine      = regexp.MustCompile(`<[A-Za-z][\w.]*[\s/>]`)
)

// catalog is the ordered detector set, highest priority first. Order is the
// sole tiebreaker between detectors that could claim the same line, so the
// slice must stay sorted by priority.
var catalog = []pattern{
	{name: "imports", priority: 100, match: matchImport, extract: extractImport},
	{name: "type-decl", priority: 95, match: matchTypeDecl, extract: extractTypeDecl},
	{name: "route", priority: 90, match: matchRoute, extract: extractRoute},
	{name: "async-func", priority: 85, match: matchAsyncFunc, extract: extractAsyncFunc},
	{name: "function", priority: 80, match: matchFunc, extract: extractFunc},
	{name: "data-query", priority: 75, match: matchDataQuery, extract: extractDataQuery},
	{name: "state-hook", priority: 70, match: matchStateHook, extract: extractStateHook},
	{name: "effect-hook", priority: 68, match: matchEffectHook, extract: extractEffectHook},
	{name: "custom-hook", priority: 65, match: matchCustomHook, extract: extractCustomHook},
	{name: "guard", priority: 60, match: matchGuard, extract: extractGuard},
	{name: "if-block", priority: 55, match: matchIfBlock, extract: extractIfBlock},
	{name: "try", priority: 52, match: matchTry, extract: extractTry},
	{name: "catch", priority: 50, match: matchCatch, extract: extractCatch},
	{name: "switch", priority: 48, match: matchSwitch, extract: extractSwitch},
	{name: "render", priority: 45, match: matchRender, extract: extractRender},
	{name: "const-call", priority: 40, match: matchConstCall, extract: extractConstCall},
	{name: "export", priority: 35, match: matchExport, extract: extractExport},
}

func snippet(lines []string, start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > len(lines) {
		end = len(lines)
	}
	return strings.Join(lines[start:end], "\n")
}

// --- imports ---

func matchImport(line string, _ int, _ []string) bool {
	return reImport.MatchString(line)
}

func extractImport(_ string, idx int, lines []string) *PatternMatch {
	end := idx
	for i := idx; i < len(lines); i++ {
		if reImport.MatchString(lines[i]) {
			end = i
			continue
		}
		if strings.TrimSpace(lines[i]) == "" && i+1 < len(lines) && reImport.MatchString(lines[i+1]) {
			continue
		}
		break
	}
	return &PatternMatch{
		kind:        "imports",
		Label:       "Imports & Dependencies",
		Subtitle:    "Setup",
		Shape:       ShapeRectangle,
		Color:       ColorBlue,
		LineStart:   idx + 1,
		LineEnd:     end + 1,
		CodeSnippet: snippet(lines, idx, end+1),
	}
}

// --- interface / type declarations ---

func matchTypeDecl(line string, _ int, _ []string) bool {
	return reTypeDecl.MatchString(line)
}

func extractTypeDecl(line string, idx int, lines []string) *PatternMatch {
	m := reTypeDecl.FindStringSubmatch(line)
	end := idx + 1
	if strings.Contains(line, "{") && !strings.Contains(line, "}") {
		end = findBlockEnd(lines, idx)
	}
	return &PatternMatch{
		kind:        "type-decl",
		Label:       "Type: " + m[2],
		Subtitle:    "Data Shape",
		Shape:       ShapeRectangle,
		Color:       ColorBlue,
		LineStart:   idx + 1,
		LineEnd:     end,
		CodeSnippet: snippet(lines, idx, end),
	}
}

// --- route handlers ---

func matchRoute(line string, _ int, _ []string) bool {
	return reRouteHandler.MatchString(line)
}

func extractRoute(line string, idx int, lines []string) *PatternMatch {
	m := reRouteHandler.FindStringSubmatch(line)
	verb := strings.ToUpper(m[2])
	path := m[3]
	end := idx + 1
	if strings.Contains(line, "{") && !balancedBraces(line) {
		end = findBlockEnd(lines, idx)
	} else if !balancedParens(line) {
		end = findParenEnd(lines, idx)
	}
	return &PatternMatch{
		kind:        "route",
		Label:       "Route: " + verb + " " + path,
		Subtitle:    "HTTP Endpoint",
		Shape:       ShapeHexagon,
		Color:       ColorPurple,
		LineStart:   idx + 1,
		LineEnd:     end,
		CodeSnippet: snippet(lines, idx, end),
	}
}

// --- async functions ---

func matchAsyncFunc(line string, _ int, _ []string) bool {
	return reAsyncFunc.MatchString(line)
}

func extractAsyncFunc(line string, idx int, lines []string) *PatternMatch {
	m := reAsyncFunc.FindStringSubmatch(line)
	name := m[1]
	if name == "" {
		name = m[2]
	}
	end := findBlockEnd(lines, idx)
	body := snippet(lines, idx, end)
	kind, label := "async-func", "Async: "+name
	if reNetworkCall.MatchString(body) {
		kind, label = "api-call", "API Call: "+name
	}
	return &PatternMatch{
		kind:        kind,
		Label:       label,
		Subtitle:    "Async Operation",
		Shape:       ShapeHexagon,
		Color:       ColorPurple,
		LineStart:   idx + 1,
		LineEnd:     end,
		CodeSnippet: body,
	}
}

// --- functions and components ---

func matchFunc(line string, _ int, _ []string) bool {
	return reFuncDecl.MatchString(line) || reArrowDecl.MatchString(line) || reDefDecl.MatchString(line)
}

func extractFunc(line string, idx int, lines []string) *PatternMatch {
	var name string
	for _, re := range []*regexp.Regexp{reFuncDecl, reArrowDecl, reDefDecl} {
		if m := re.FindStringSubmatch(line); m != nil {
			name = m[1]
			break
		}
	}
	// A capitalized name is treated as a component: only the signature line
	// is claimed so the statements inside it are parsed on their own.
	if name != "" && name[0] >= 'A' && name[0] <= 'Z' {
		return &PatternMatch{
			kind:        "component",
			Label:       "Component: " + name,
			Subtitle:    "UI Component",
			Shape:       ShapeRounded,
			Color:       ColorCyan,
			LineStart:   idx + 1,
			LineEnd:     idx + 1,
			CodeSnippet: line,
		}
	}
	end := findBlockEnd(lines, idx)
	return &PatternMatch{
		kind:        "function",
		Label:       "Function: " + name,
		Subtitle:    "Logic",
		Shape:       ShapeRectangle,
		Color:       ColorBlue,
		LineStart:   idx + 1,
		LineEnd:     end,
		CodeSnippet: snippet(lines, idx, end),
	}
}

// --- data-layer queries ---

func matchDataQuery(line string, _ int, _ []string) bool {
	return reDataQuery.MatchString(line) || reDataQueryDot.MatchString(line)
}

func extractDataQuery(line string, idx int, lines []string) *PatternMatch {
	var label string
	if m := reDataQuery.FindStringSubmatch(line); m != nil {
		label = "DB Query: " + m[2] + "." + m[3]
	} else if m := reDataQueryDot.FindStringSubmatch(line); m != nil {
		label = "DB Query: " + m[1] + "." + m[2]
	}
	end := idx + 1
	if !balancedParens(line) {
		end = findParenEnd(lines, idx)
	}
	return &PatternMatch{
		kind:        "data-query",
		Label:       label,
		Subtitle:    "Database",
		Shape:       ShapeHexagon,
		Color:       ColorPurple,
		LineStart:   idx + 1,
		LineEnd:     end,
		CodeSnippet: snippet(lines, idx, end),
	}
}

// --- state hooks ---

func matchStateHook(line string, _ int, _ []string) bool {
	return reStateHook.MatchString(line)
}

func extractStateHook(line string, idx int, lines []string) *PatternMatch {
	m := reStateHook.FindStringSubmatch(line)
	end := idx + 1
	if !balancedParens(line) {
		end = findParenEnd(lines, idx)
	}
	return &PatternMatch{
		kind:        "state-hook",
		Label:       "State: " + m[1],
		Subtitle:    "Component State",
		Shape:       ShapeRectangle,
		Color:       ColorGreen,
		LineStart:   idx + 1,
		LineEnd:     end,
		CodeSnippet: snippet(lines, idx, end),
	}
}

// --- effect hooks ---

func matchEffectHook(line string, _ int, _ []string) bool {
	return reEffectHook.MatchString(line)
}

func extractEffectHook(line string, idx int, lines []string) *PatternMatch {
	end := idx + 1
	if !balancedParens(line) {
		end = findParenEnd(lines, idx)
	}
	return &PatternMatch{
		kind:        "effect-hook",
		Label:       "Effect: useEffect",
		Subtitle:    "Side Effect",
		Shape:       ShapeHexagon,
		Color:       ColorPurple,
		LineStart:   idx + 1,
		LineEnd:     end,
		CodeSnippet: snippet(lines, idx, end),
	}
}

// --- custom hooks ---

func matchCustomHook(line string, _ int, _ []string) bool {
	m := reCustomHook.FindStringSubmatch(line)
	return m != nil && m[1] != "useState" && m[1] != "useEffect"
}

func extractCustomHook(line string, idx int, lines []string) *PatternMatch {
	m := reCustomHook.FindStringSubmatch(line)
	end := idx + 1
	if !balancedParens(line) {
		end = findParenEnd(lines, idx)
	}
	return &PatternMatch{
		kind:        "custom-hook",
		Label:       "Hook: " + m[1],
		Subtitle:    "Custom Hook",
		Shape:       ShapeRectangle,
		Color:       ColorGreen,
		LineStart:   idx + 1,
		LineEnd:     end,
		CodeSnippet: snippet(lines, idx, end),
	}
}

// --- single-line guard clauses ---

func matchGuard(line string, _ int, _ []string) bool {
	return reGuardClause.MatchString(line)
}

func extractGuard(line string, idx int, lines []string) *PatternMatch {
	m := reGuardClause.FindStringSubmatch(line)
	cond := strings.TrimSpace(m[1])
	action := strings.TrimSpace(m[2])
	branch := &Branch{
		Label:     classifyGuardAction(action),
		LineStart: idx + 1,
		LineEnd:   idx + 1,
		Content:   action,
	}
	return &PatternMatch{
		kind:        "guard",
		Label:       "Check: " + truncate(cond, 40),
		Subtitle:    "Guard Clause",
		Shape:       ShapeDiamond,
		Color:       ColorRed,
		LineStart:   idx + 1,
		LineEnd:     idx + 1,
		CodeSnippet: line,
		IsDecision:  true,
		Condition:   conditionToEnglish(cond),
		Branch:      branch,
	}
}

// classifyGuardAction labels the YES branch of a guard by sniffing the
// returned expression.
func classifyGuardAction(action string) string {
	lower := strings.ToLower(action)
	switch {
	case strings.HasPrefix(lower, "throw"):
		return "Throw Error"
	case strings.Contains(lower, "null") || strings.Contains(lower, "undefined") || lower == "return":
		return "Return Null"
	case strings.Contains(lower, "error") || strings.Contains(lower, "status(4") || strings.Contains(lower, "status(5"):
		return "Return Error"
	case strings.Contains(action, "<"):
		return "Render Fallback"
	default:
		return "Return Early"
	}
}

// --- multi-line conditional blocks ---

func matchIfBlock(line string, _ int, _ []string) bool {
	return reIfBlock.MatchString(line) && !reGuardClause.MatchString(line)
}

func extractIfBlock(line string, idx int, lines []string) *PatternMatch {
	m := reIfBlock.FindStringSubmatch(line)
	cond := strings.TrimSpace(m[1])
	end := findBlockEnd(withoutLeadingCloser(lines, idx), idx)
	body := snippet(lines, idx, end)
	return &PatternMatch{
		kind:        "if-block",
		Label:       "Decision: " + truncate(cond, 40),
		Subtitle:    "If YES: " + summarizeYesAction(body),
		Shape:       ShapeDiamond,
		Color:       ColorOrange,
		LineStart:   idx + 1,
		LineEnd:     end,
		CodeSnippet: body,
		IsDecision:  true,
		Condition:   conditionToEnglish(cond),
	}
}

// summarizeYesAction infers what the YES path of a conditional block does.
func summarizeYesAction(body string) string {
	switch {
	case strings.Contains(body, "throw"):
		return "Throw Error"
	case reReturnPlain.MatchString(body) || strings.Contains(body, "return "):
		return "Early Return"
	case reSetterCall.MatchString(body):
		return "Update State"
	default:
		return "Run Block"
	}
}

// --- try / catch ---

func matchTry(line string, _ int, _ []string) bool {
	return reTryBlock.MatchString(line)
}

func extractTry(line string, idx int, lines []string) *PatternMatch {
	return &PatternMatch{
		kind:        "try",
		Label:       "Try Block",
		Subtitle:    "Error Handling",
		Shape:       ShapeRectangle,
		Color:       ColorOrange,
		LineStart:   idx + 1,
		LineEnd:     idx + 1,
		CodeSnippet: line,
	}
}

func matchCatch(line string, _ int, _ []string) bool {
	return reCatchBlock.MatchString(line)
}

func extractCatch(line string, idx int, lines []string) *PatternMatch {
	end := findBlockEnd(withoutLeadingCloser(lines, idx), idx)
	return &PatternMatch{
		kind:        "catch",
		Label:       "Catch Errors",
		Subtitle:    "Error Handling",
		Shape:       ShapeRectangle,
		Color:       ColorRed,
		LineStart:   idx + 1,
		LineEnd:     end,
		CodeSnippet: snippet(lines, idx, end),
	}
}

// --- switch statements ---

func matchSwitch(line string, _ int, _ []string) bool {
	return reSwitchStmt.MatchString(line)
}

func extractSwitch(line string, idx int, lines []string) *PatternMatch {
	m := reSwitchStmt.FindStringSubmatch(line)
	expr := strings.TrimSpace(m[1])
	end := findBlockEnd(lines, idx)
	return &PatternMatch{
		kind:        "switch",
		Label:       "Switch: " + truncate(expr, 40),
		Subtitle:    "Multi-way Decision",
		Shape:       ShapeDiamond,
		Color:       ColorOrange,
		LineStart:   idx + 1,
		LineEnd:     end,
		CodeSnippet: snippet(lines, idx, end),
		IsDecision:  true,
		Condition:   "Which case matches " + humanize(expr) + "?",
	}
}

// --- render / return blocks ---

func matchRender(line string, _ int, _ []string) bool {
	return reReturnRender.MatchString(line)
}

func extractRender(line string, idx int, lines []string) *PatternMatch {
	end := idx + 1
	if strings.Contains(line, "(") && !balancedParens(line) {
		end = findParenEnd(lines, idx)
	}
	return &PatternMatch{
		kind:        "render",
		Label:       "Render UI",
		Subtitle:    "Output",
		Shape:       ShapeRounded,
		Color:       ColorCyan,
		LineStart:   idx + 1,
		LineEnd:     end,
		CodeSnippet: snippet(lines, idx, end),
	}
}

// --- simple call-style const declarations ---

func matchConstCall(line string, _ int, _ []string) bool {
	return reConstCall.MatchString(line) && balancedParens(line)
}

func extractConstCall(line string, idx int, _ []string) *PatternMatch {
	m := reConstCall.FindStringSubmatch(line)
	return &PatternMatch{
		kind:        "declaration",
		Label:       "Declare: " + m[1],
		Subtitle:    "Variable",
		Shape:       ShapeRectangle,
		Color:       ColorBlue,
		LineStart:   idx + 1,
		LineEnd:     idx + 1,
		CodeSnippet: line,
	}
}

// --- exports ---

func matchExport(line string, _ int, _ []string) bool {
	return reExportStmt.MatchString(line)
}

func extractExport(line string, idx int, _ []string) *PatternMatch {
	return &PatternMatch{
		kind:        "export",
		Label:       "Export",
		Subtitle:    "Module Interface",
		Shape:       ShapeRectangle,
		Color:       ColorBlue,
		LineStart:   idx + 1,
		LineEnd:     idx + 1,
		CodeSnippet: line,
	}
}

// withoutLeadingCloser returns lines with a leading "}" stripped from the
// line at idx, so brace counting is not thrown off by constructs such as
// "} else if (...) {" that close the previous block on the same line.
func withoutLeadingCloser(lines []string, idx int) []string {
	trimmed := strings.TrimSpace(lines[idx])
	if !strings.HasPrefix(trimmed, "}") {
		return lines
	}
	out := make([]string, len(lines))
	copy(out, lines)
	out[idx] = strings.TrimPrefix(trimmed, "}")
	return out
}

func balancedParens(line string) bool {
	return strings.Count(line, "(") <= strings.Count(line, ")")
}

func balancedBraces(line string) bool {
	return strings.Count(line, "{") <= strings.Count(line, "}")
}
