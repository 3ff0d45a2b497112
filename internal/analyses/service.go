package analyses

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/flowlens/flowlens/internal/analyzer"
	"github.com/flowlens/flowlens/internal/enhancer"
	"github.com/flowlens/flowlens/internal/vectordb"
	"github.com/flowlens/flowlens/internal/walker"
)

// Service runs analyses end to end: heuristic pass, optional LLM rewrite,
// persistence and search indexing. The enhancer and vector store are both
// optional; a nil value disables that stage.
type Service struct {
	store    *Store
	enhancer *enhancer.Enhancer
	vectors  vectordb.VectorStore
	mode     enhancer.Mode
}

// NewService wires a Service. enh and vectors may be nil.
func NewService(store *Store, enh *enhancer.Enhancer, vectors vectordb.VectorStore, mode enhancer.Mode) *Service {
	if mode == "" {
		mode = enhancer.ModeConcise
	}
	return &Service{store: store, enhancer: enh, vectors: vectors, mode: mode}
}

// Store exposes the underlying store for read-only consumers.
func (s *Service) Store() *Store { return s.store }

// AnalyzeRequest carries one analysis job.
type AnalyzeRequest struct {
	Source   string
	FileName string
	Language string
	Enhance  bool
}

// Analyze converts source text to a flowchart and stores it. A repeated
// request for identical source returns the cached analysis without rerunning
// anything; the second return value reports a cache hit.
func (s *Service) Analyze(ctx context.Context, req AnalyzeRequest) (*Analysis, bool, error) {
	fileName := req.FileName
	if fileName == "" {
		fileName = "untitled"
	}
	language := req.Language
	if language == "" {
		language = walker.DetectLanguage(fileName)
	}

	hash := HashSource(req.Source, fileName)
	if cached, err := s.store.GetBySourceHash(ctx, hash); err == nil {
		return cached, true, nil
	}

	result := analyzer.Analyze(req.Source, fileName, language)

	enhanced := false
	if req.Enhance && s.enhancer != nil {
		rewritten := s.enhancer.Enhance(ctx, result, s.mode)
		enhanced = rewritten != result
		result = rewritten
	}

	a := &Analysis{
		FileName:      result.FileName,
		Language:      result.Language,
		SourceHash:    hash,
		Nodes:         result.Nodes,
		Edges:         result.Edges,
		TotalLines:    result.TotalLines,
		TotalSections: result.TotalSections,
		Enhanced:      enhanced,
	}
	if err := s.store.Create(ctx, a); err != nil {
		return nil, false, err
	}

	// Indexing is best effort. A search outage must not fail the analysis.
	if s.vectors != nil {
		if err := s.vectors.AddDocuments(ctx, narrativeDocuments(a)); err != nil {
			log.Printf("analyses: indexing %s: %v", a.ID, err)
		}
	}

	return a, false, nil
}

// Get returns a stored analysis by id.
func (s *Service) Get(ctx context.Context, id string) (*Analysis, error) {
	return s.store.Get(ctx, id)
}

// Delete removes an analysis and its search documents.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	if s.vectors != nil {
		if err := s.vectors.DeleteByAnalysisID(ctx, id); err != nil {
			log.Printf("analyses: deindexing %s: %v", id, err)
		}
	}
	return nil
}

// Search queries indexed narratives. Returns nil when search is disabled.
func (s *Service) Search(ctx context.Context, query string, limit int, filter *vectordb.SearchFilter) ([]vectordb.SearchResult, error) {
	if s.vectors == nil {
		return nil, nil
	}
	return s.vectors.Search(ctx, query, limit, filter)
}

// SearchEnabled reports whether a vector store is wired in.
func (s *Service) SearchEnabled() bool { return s.vectors != nil }

// narrativeDocuments flattens an analysis into searchable documents, one per
// node narrative plus one per decision condition.
func narrativeDocuments(a *Analysis) []vectordb.Document {
	now := time.Now().UTC()
	var docs []vectordb.Document
	for _, n := range a.Nodes {
		meta := vectordb.DocumentMetadata{
			AnalysisID: a.ID,
			FileName:   a.FileName,
			NodeID:     n.ID,
			LineStart:  n.LineStart,
			LineEnd:    n.LineEnd,
			Language:   a.Language,
			IndexedAt:  now,
		}

		narrMeta := meta
		narrMeta.Category = vectordb.CategoryNarrative
		docs = append(docs, vectordb.Document{
			ID:       fmt.Sprintf("%s/%s/narrative", a.ID, n.ID),
			Content:  n.Label + ": " + n.Narrative,
			Metadata: narrMeta,
		})

		if n.IsDecision && n.Condition != "" {
			condMeta := meta
			condMeta.Category = vectordb.CategoryCondition
			docs = append(docs, vectordb.Document{
				ID:       fmt.Sprintf("%s/%s/condition", a.ID, n.ID),
				Content:  n.Condition,
				Metadata: condMeta,
			})
		}
	}
	return docs
}
