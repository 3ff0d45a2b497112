package analyses

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/flowlens/flowlens/internal/analyzer"
)

// Analysis is a stored flowchart for one source file.
type Analysis struct {
	ID            string              `json:"id"`
	FileName      string              `json:"file_name"`
	Language      string              `json:"language"`
	SourceHash    string              `json:"source_hash"`
	Nodes         []analyzer.FlowNode `json:"nodes"`
	Edges         []analyzer.FlowEdge `json:"edges"`
	TotalLines    int                 `json:"total_lines"`
	TotalSections int                 `json:"total_sections"`
	Enhanced      bool                `json:"enhanced"`
	CreatedAt     time.Time           `json:"created_at"`
}

// Summary is the list-view projection of an Analysis, without the graph.
type Summary struct {
	ID            string    `json:"id"`
	FileName      string    `json:"file_name"`
	Language      string    `json:"language"`
	TotalLines    int       `json:"total_lines"`
	TotalSections int       `json:"total_sections"`
	Enhanced      bool      `json:"enhanced"`
	CreatedAt     time.Time `json:"created_at"`
}

// Result reconstructs the analyzer view of a stored analysis.
func (a *Analysis) Result() *analyzer.AnalysisResult {
	return &analyzer.AnalysisResult{
		FileName:      a.FileName,
		Language:      a.Language,
		Nodes:         a.Nodes,
		Edges:         a.Edges,
		TotalLines:    a.TotalLines,
		TotalSections: a.TotalSections,
	}
}

// HashSource fingerprints a source text together with its file name, so the
// same snippet under two names is cached separately.
func HashSource(source, fileName string) string {
	h := sha256.Sum256([]byte(fileName + "\x00" + source))
	return hex.EncodeToString(h[:])
}
