package vectordb

import "time"

// Category tags where a document's text came from within an analysis.
type Category string

const (
	CategoryNarrative Category = "narrative"
	CategoryCondition Category = "condition"
	CategorySummary   Category = "summary"
)

// Document is a searchable piece of flowchart text, typically one node's
// narrative.
type Document struct {
	ID       string
	Content  string
	Metadata DocumentMetadata
}

// DocumentMetadata locates a document inside a stored analysis.
type DocumentMetadata struct {
	AnalysisID string
	FileName   string
	NodeID     string
	LineStart  int
	LineEnd    int
	Category   Category
	Language   string
	IndexedAt  time.Time
}

// SearchResult pairs a document with its similarity score.
type SearchResult struct {
	Document   Document
	Similarity float32
}

// SearchFilter narrows search results by metadata fields.
type SearchFilter struct {
	Category   *Category
	FileName   *string
	Language   *string
	AnalysisID *string
}
