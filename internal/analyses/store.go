package analyses

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/flowlens/flowlens/internal/analyzer"
	"github.com/flowlens/flowlens/internal/db"
)

// ErrNotFound is returned when an analysis id or hash has no row.
var ErrNotFound = errors.New("analysis not found")

// Store provides CRUD operations for stored analyses.
type Store struct {
	db *db.DB
}

// NewStore creates a new analyses store.
func NewStore(d *db.DB) *Store {
	return &Store{db: d}
}

// Create inserts a new analysis, assigning an id and timestamp.
func (s *Store) Create(ctx context.Context, a *Analysis) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	a.CreatedAt = time.Now().UTC()

	nodesJSON, err := json.Marshal(a.Nodes)
	if err != nil {
		return fmt.Errorf("marshaling nodes: %w", err)
	}
	edgesJSON, err := json.Marshal(a.Edges)
	if err != nil {
		return fmt.Errorf("marshaling edges: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO analyses (id, file_name, language, source_hash, nodes, edges, total_lines, total_sections, enhanced, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.FileName, a.Language, a.SourceHash,
		string(nodesJSON), string(edgesJSON),
		a.TotalLines, a.TotalSections, a.Enhanced, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("creating analysis: %w", err)
	}
	return nil
}

// Get retrieves an analysis by id.
func (s *Store) Get(ctx context.Context, id string) (*Analysis, error) {
	return s.scanOne(s.db.QueryRowContext(ctx,
		`SELECT id, file_name, language, source_hash, nodes, edges, total_lines, total_sections, enhanced, created_at
		 FROM analyses WHERE id = ?`, id))
}

// GetBySourceHash retrieves the most recent analysis for a source fingerprint.
func (s *Store) GetBySourceHash(ctx context.Context, hash string) (*Analysis, error) {
	return s.scanOne(s.db.QueryRowContext(ctx,
		`SELECT id, file_name, language, source_hash, nodes, edges, total_lines, total_sections, enhanced, created_at
		 FROM analyses WHERE source_hash = ? ORDER BY created_at DESC LIMIT 1`, hash))
}

// List returns summaries of all analyses, newest first.
func (s *Store) List(ctx context.Context) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, file_name, language, total_lines, total_sections, enhanced, created_at
		 FROM analyses ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing analyses: %w", err)
	}
	defer rows.Close()

	var result []Summary
	for rows.Next() {
		var sum Summary
		if err := rows.Scan(&sum.ID, &sum.FileName, &sum.Language,
			&sum.TotalLines, &sum.TotalSections, &sum.Enhanced, &sum.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning analysis: %w", err)
		}
		result = append(result, sum)
	}
	return result, rows.Err()
}

// Delete removes an analysis by id.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM analyses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting analysis: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) scanOne(row *sql.Row) (*Analysis, error) {
	a := &Analysis{}
	var nodesJSON, edgesJSON string
	err := row.Scan(&a.ID, &a.FileName, &a.Language, &a.SourceHash,
		&nodesJSON, &edgesJSON, &a.TotalLines, &a.TotalSections, &a.Enhanced, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting analysis: %w", err)
	}

	if err := json.Unmarshal([]byte(nodesJSON), &a.Nodes); err != nil {
		return nil, fmt.Errorf("unmarshaling nodes: %w", err)
	}
	if err := json.Unmarshal([]byte(edgesJSON), &a.Edges); err != nil {
		return nil, fmt.Errorf("unmarshaling edges: %w", err)
	}
	if a.Nodes == nil {
		a.Nodes = []analyzer.FlowNode{}
	}
	if a.Edges == nil {
		a.Edges = []analyzer.FlowEdge{}
	}
	return a, nil
}
