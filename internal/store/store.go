// Package store persists recipe documents with their metadata and
// embeddings, and answers nearest-neighbour queries over them.
package store

import (
	"context"
	"errors"

	"github.com/shorechef/backend/internal/recipe"
)

var (
	// ErrLengthMismatch is returned by Upsert when its slices differ in length.
	ErrLengthMismatch = errors.New("store: ids, documents and metadatas differ in length")
	// ErrNoEmbedder is returned by Query when no Embedder is configured.
	ErrNoEmbedder = errors.New("store: no embedder configured")
)

// Store is the document store used by the loader and the HTTP layer.
type Store interface {
	Count(ctx context.Context) (int64, error)
	// Get returns the records with the given ids. A nil slice returns every
	// record. Results are ordered by id.
	Get(ctx context.Context, ids []string) (GetResult, error)
	// Query returns the n nearest documents for each query text.
	Query(ctx context.Context, texts []string, n int) (QueryResult, error)
	// Upsert inserts or replaces one document per id.
	Upsert(ctx context.Context, ids, documents []string, metadatas []map[string]string) error
}

// GetResult holds parallel slices, one entry per record.
type GetResult struct {
	IDs       []string
	Documents []string
	Metadatas []map[string]string
}

// Records projects the result onto recipe records.
func (r GetResult) Records() []recipe.Record {
	out := make([]recipe.Record, len(r.IDs))
	for i, id := range r.IDs {
		out[i] = recipe.FromMetadata(id, r.Metadatas[i])
	}
	return out
}

// QueryResult holds one nested slice per query text, nearest first.
type QueryResult struct {
	IDs       [][]string
	Documents [][]string
	Metadatas [][]map[string]string
	Distances [][]float64
}

// Records projects the hits of query i onto recipe records.
func (r QueryResult) Records(i int) []recipe.Record {
	if i < 0 || i >= len(r.IDs) {
		return nil
	}
	out := make([]recipe.Record, len(r.IDs[i]))
	for j, id := range r.IDs[i] {
		out[j] = recipe.FromMetadata(id, r.Metadatas[i][j])
	}
	return out
}
