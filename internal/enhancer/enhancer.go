// Package enhancer rewrites the cosmetic text of a flowchart with an LLM.
//
// The enhancer is a decorator, not an authority: the heuristic analysis is
// always the source of truth for structure. If the model times out, returns
// malformed JSON, or changes anything structural, the original result is
// returned unmodified.
package enhancer

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/flowlens/flowlens/internal/analyzer"
	"github.com/flowlens/flowlens/internal/llm"
)

// Mode selects how verbose the rewritten narratives should be.
type Mode string

const (
	ModeConcise  Mode = "concise"
	ModeDetailed Mode = "detailed"
)

// Enhancer sends flowchart nodes to an LLM for cosmetic rewording.
type Enhancer struct {
	provider llm.Provider
	model    string
	timeout  time.Duration
}

// New creates an Enhancer. A zero timeout defaults to 60 seconds.
func New(provider llm.Provider, model string, timeout time.Duration) *Enhancer {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Enhancer{provider: provider, model: model, timeout: timeout}
}

// nodeText is the slice of a node the model is allowed to rewrite.
type nodeText struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Subtitle  string `json:"subtitle,omitempty"`
	Narrative string `json:"narrative"`
	Condition string `json:"condition,omitempty"`
	LineStart int    `json:"lineStart"`
	LineEnd   int    `json:"lineEnd"`
}

type enhanceResponse struct {
	Nodes []nodeText `json:"nodes"`
}

// Enhance rewrites labels, subtitles, narratives and condition phrasing on a
// copy of result. It never fails: on any error or contract violation the
// original result is returned as-is.
func (e *Enhancer) Enhance(ctx context.Context, result *analyzer.AnalysisResult, mode Mode) *analyzer.AnalysisResult {
	if result == nil || len(result.Nodes) == 0 {
		return result
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	payload, err := json.Marshal(enhanceResponse{Nodes: extractText(result)})
	if err != nil {
		log.Printf("enhancer: marshal nodes: %v", err)
		return result
	}

	resp, err := e.provider.Complete(ctx, llm.CompletionRequest{
		Model:       e.model,
		Messages:    buildMessages(result.FileName, result.Language, mode, string(payload)),
		MaxTokens:   4096,
		Temperature: 0.2,
		JSONMode:    true,
	})
	if err != nil {
		log.Printf("enhancer: completion failed, keeping heuristic text: %v", err)
		return result
	}

	rewritten, err := parseResponse(resp.Content)
	if err != nil {
		log.Printf("enhancer: %v, keeping heuristic text", err)
		return result
	}

	if err := validate(result, rewritten); err != nil {
		log.Printf("enhancer: rejected rewrite: %v", err)
		return result
	}

	return merge(result, rewritten)
}

func extractText(result *analyzer.AnalysisResult) []nodeText {
	out := make([]nodeText, len(result.Nodes))
	for i, n := range result.Nodes {
		out[i] = nodeText{
			ID:        n.ID,
			Label:     n.Label,
			Subtitle:  n.Subtitle,
			Narrative: n.Narrative,
			Condition: n.Condition,
			LineStart: n.LineStart,
			LineEnd:   n.LineEnd,
		}
	}
	return out
}

// parseResponse parses the model's JSON reply, tolerating markdown fences.
func parseResponse(raw string) ([]nodeText, error) {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		lines := strings.Split(raw, "\n")
		if len(lines) >= 2 {
			end := len(lines)
			if strings.TrimSpace(lines[end-1]) == "```" {
				end--
			}
			raw = strings.Join(lines[1:end], "\n")
		}
	}

	var resp enhanceResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return nil, fmt.Errorf("json parse: %w", err)
	}
	return resp.Nodes, nil
}

// validate enforces the structural contract: the rewrite may change words,
// never shape. Node count, id order and line ranges must match, and the
// fields every node needs must be present.
func validate(result *analyzer.AnalysisResult, rewritten []nodeText) error {
	if len(rewritten) != len(result.Nodes) {
		return fmt.Errorf("node count changed: got %d, want %d", len(rewritten), len(result.Nodes))
	}
	for i, n := range result.Nodes {
		r := rewritten[i]
		if r.ID != n.ID {
			return fmt.Errorf("node %d: id changed from %q to %q", i, n.ID, r.ID)
		}
		if r.LineStart != n.LineStart || r.LineEnd != n.LineEnd {
			return fmt.Errorf("node %s: line range changed", n.ID)
		}
		if strings.TrimSpace(r.Label) == "" {
			return fmt.Errorf("node %s: empty label", n.ID)
		}
		if strings.TrimSpace(r.Narrative) == "" {
			return fmt.Errorf("node %s: empty narrative", n.ID)
		}
		if n.IsDecision && strings.TrimSpace(r.Condition) == "" {
			return fmt.Errorf("node %s: decision lost its condition", n.ID)
		}
	}
	return nil
}

// merge copies result and overlays the rewritten cosmetic fields. Edges,
// shapes, colors, snippets and logic tables come from the original untouched.
func merge(result *analyzer.AnalysisResult, rewritten []nodeText) *analyzer.AnalysisResult {
	out := *result
	out.Nodes = make([]analyzer.FlowNode, len(result.Nodes))
	copy(out.Nodes, result.Nodes)
	for i := range out.Nodes {
		out.Nodes[i].Label = rewritten[i].Label
		out.Nodes[i].Subtitle = rewritten[i].Subtitle
		out.Nodes[i].Narrative = rewritten[i].Narrative
		if out.Nodes[i].IsDecision {
			out.Nodes[i].Condition = rewritten[i].Condition
		}
	}
	return &out
}
