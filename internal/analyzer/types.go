package analyzer

// Shape determines how a node is drawn by consumers.
type Shape string

const (
	ShapeRectangle Shape = "rectangle" // definitions, state
	ShapeDiamond   Shape = "diamond"   // decisions
	ShapeRounded   Shape = "rounded"   // start/end, render output
	ShapeHexagon   Shape = "hexagon"   // async work, I/O
)

// Color is a semantic category tag attached to a node.
type Color string

const (
	ColorBlue   Color = "blue"   // setup, imports, definitions
	ColorGreen  Color = "green"  // state, success paths
	ColorOrange Color = "orange" // decisions, branching logic
	ColorPurple Color = "purple" // async work, side effects
	ColorRed    Color = "red"    // errors, guard clauses
	ColorCyan   Color = "cyan"   // render output
)

// Branch describes the YES outcome of a guard clause: the action taken
// when the condition holds, typically an immediate early return.
type Branch struct {
	Label     string
	LineStart int
	LineEnd   int
	Content   string
}

// PatternMatch is the normalized result of one successful detector
// application. Line numbers are 1-indexed and inclusive.
type PatternMatch struct {
	Label       string
	Subtitle    string
	Shape       Shape
	Color       Color
	LineStart   int
	LineEnd     int
	CodeSnippet string
	IsDecision  bool
	Condition   string
	Branch      *Branch

	// kind keys the narrative template used by the graph assembler.
	kind string
}

// LogicStep is one row of a node's logic table.
type LogicStep struct {
	Step    int    `json:"step"`
	Trigger string `json:"trigger"`
	Action  string `json:"action"`
	Output  string `json:"output"`
	CodeRef string `json:"codeRef,omitempty"`
}

// FlowNode is a labeled, line-ranged unit of the output flowchart.
type FlowNode struct {
	ID          string      `json:"id"`
	Label       string      `json:"label"`
	Subtitle    string      `json:"subtitle,omitempty"`
	Shape       Shape       `json:"shape"`
	Color       Color       `json:"color"`
	LineStart   int         `json:"lineStart"`
	LineEnd     int         `json:"lineEnd"`
	CodeSnippet string      `json:"codeSnippet"`
	Narrative   string      `json:"narrative"`
	LogicTable  []LogicStep `json:"logicTable"`
	IsDecision  bool        `json:"isDecision,omitempty"`
	Condition   string      `json:"condition,omitempty"`
}

// FlowEdge is a directed connection between two node ids. Label is
// "YES"/"NO" for decision branches and empty for sequential edges.
type FlowEdge struct {
	Source       string `json:"source"`
	Target       string `json:"target"`
	Label        string `json:"label,omitempty"`
	SourceHandle string `json:"sourceHandle,omitempty"`
}

// AnalysisResult is the root output of an analysis. Nodes are ordered by
// ascending LineStart and their ranges tile [1, TotalLines] with no gaps.
type AnalysisResult struct {
	FileName      string     `json:"fileName"`
	Language      string     `json:"language"`
	Nodes         []FlowNode `json:"nodes"`
	Edges         []FlowEdge `json:"edges"`
	TotalLines    int        `json:"totalLines"`
	TotalSections int        `json:"totalSections"`
}
