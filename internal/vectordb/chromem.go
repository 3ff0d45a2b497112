package vectordb

import (
	"context"
	"fmt"
	"strconv"
	"time"

	chromem "github.com/philippgille/chromem-go"

	"github.com/flowlens/flowlens/internal/embeddings"
)

const collectionName = "flowcharts"

// ChromemStore implements VectorStore using chromem-go.
type ChromemStore struct {
	db         *chromem.DB
	collection *chromem.Collection
	embedder   embeddings.Embedder
	embedFunc  chromem.EmbeddingFunc
}

// NewChromemStore creates a new in-memory ChromemStore.
func NewChromemStore(embedder embeddings.Embedder) (*ChromemStore, error) {
	db := chromem.NewDB()
	ef := embeddings.ToChromemFunc(embedder)

	col, err := db.GetOrCreateCollection(collectionName, nil, ef)
	if err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}

	return &ChromemStore{
		db:         db,
		collection: col,
		embedder:   embedder,
		embedFunc:  ef,
	}, nil
}

func (s *ChromemStore) AddDocuments(ctx context.Context, docs []Document) error {
	if len(docs) == 0 {
		return nil
	}

	chromDocs := make([]chromem.Document, len(docs))
	for i, doc := range docs {
		chromDocs[i] = chromem.Document{
			ID:       doc.ID,
			Content:  doc.Content,
			Metadata: metadataToMap(doc.Metadata),
		}
	}

	return s.collection.AddDocuments(ctx, chromDocs, 1)
}

func (s *ChromemStore) Search(ctx context.Context, query string, limit int, filter *SearchFilter) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 10
	}

	// chromem-go requires nResults <= collection size.
	count := s.collection.Count()
	if count == 0 {
		return nil, nil
	}
	if limit > count {
		limit = count
	}

	results, err := s.collection.Query(ctx, query, limit, buildWhereClause(filter), nil)
	if err != nil {
		return nil, fmt.Errorf("chromem query: %w", err)
	}

	searchResults := make([]SearchResult, len(results))
	for i, r := range results {
		searchResults[i] = SearchResult{
			Document: Document{
				ID:       r.ID,
				Content:  r.Content,
				Metadata: mapToMetadata(r.Metadata),
			},
			Similarity: r.Similarity,
		}
	}

	return searchResults, nil
}

func (s *ChromemStore) DeleteByAnalysisID(ctx context.Context, analysisID string) error {
	where := map[string]string{"analysis_id": analysisID}
	return s.collection.Delete(ctx, where, nil)
}

func (s *ChromemStore) Persist(ctx context.Context, dir string) error {
	return s.db.ExportToFile(dir+"/chromem.gob.gz", true, "")
}

func (s *ChromemStore) Load(ctx context.Context, dir string) error {
	if err := s.db.ImportFromFile(dir+"/chromem.gob.gz", ""); err != nil {
		return fmt.Errorf("import from file: %w", err)
	}

	// Re-acquire collection reference after import.
	col := s.db.GetCollection(collectionName, s.embedFunc)
	if col == nil {
		return fmt.Errorf("collection %q not found after import", collectionName)
	}
	s.collection = col
	return nil
}

func (s *ChromemStore) Count() int {
	return s.collection.Count()
}

// metadataToMap flattens DocumentMetadata into the map[string]string chromem needs.
func metadataToMap(m DocumentMetadata) map[string]string {
	return map[string]string{
		"analysis_id": m.AnalysisID,
		"file_name":   m.FileName,
		"node_id":     m.NodeID,
		"line_start":  strconv.Itoa(m.LineStart),
		"line_end":    strconv.Itoa(m.LineEnd),
		"category":    string(m.Category),
		"language":    m.Language,
		"indexed_at":  m.IndexedAt.Format(time.RFC3339),
	}
}

func mapToMetadata(m map[string]string) DocumentMetadata {
	lineStart, _ := strconv.Atoi(m["line_start"])
	lineEnd, _ := strconv.Atoi(m["line_end"])
	indexedAt, _ := time.Parse(time.RFC3339, m["indexed_at"])

	return DocumentMetadata{
		AnalysisID: m["analysis_id"],
		FileName:   m["file_name"],
		NodeID:     m["node_id"],
		LineStart:  lineStart,
		LineEnd:    lineEnd,
		Category:   Category(m["category"]),
		Language:   m["language"],
		IndexedAt:  indexedAt,
	}
}

// buildWhereClause converts a SearchFilter to a chromem where clause.
func buildWhereClause(filter *SearchFilter) map[string]string {
	if filter == nil {
		return nil
	}

	where := make(map[string]string)
	if filter.Category != nil {
		where["category"] = string(*filter.Category)
	}
	if filter.FileName != nil {
		where["file_name"] = *filter.FileName
	}
	if filter.Language != nil {
		where["language"] = *filter.Language
	}
	if filter.AnalysisID != nil {
		where["analysis_id"] = *filter.AnalysisID
	}

	if len(where) == 0 {
		return nil
	}
	return where
}
