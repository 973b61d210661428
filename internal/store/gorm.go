package store

import (
	"context"
	"fmt"
	"sort"

	pgvector "github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const upsertBatchSize = 100

// GormStore implements Store on a gorm database. PostgreSQL ranks with
// pgvector; other dialects rank by cosine distance in process.
type GormStore struct {
	db       *gorm.DB
	embedder Embedder
}

// NewGormStore returns a store over db. embedder may be nil, in which case
// documents are stored without vectors and Query fails.
func NewGormStore(db *gorm.DB, embedder Embedder) *GormStore {
	return &GormStore{db: db, embedder: embedder}
}

func (s *GormStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&Document{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("store: counting documents: %w", err)
	}
	return n, nil
}

func (s *GormStore) Get(ctx context.Context, ids []string) (GetResult, error) {
	var res GetResult
	if ids != nil && len(ids) == 0 {
		return res, nil
	}

	q := s.db.WithContext(ctx).Omit("embedding").Order("id")
	if ids != nil {
		q = q.Where("id IN ?", ids)
	}

	var docs []Document
	if err := q.Find(&docs).Error; err != nil {
		return res, fmt.Errorf("store: getting documents: %w", err)
	}
	for _, d := range docs {
		res.IDs = append(res.IDs, d.ID)
		res.Documents = append(res.Documents, d.Document)
		res.Metadatas = append(res.Metadatas, map[string]string(d.Metadata))
	}
	return res, nil
}

func (s *GormStore) Upsert(ctx context.Context, ids, documents []string, metadatas []map[string]string) error {
	if len(ids) != len(documents) || len(ids) != len(metadatas) {
		return ErrLengthMismatch
	}
	if len(ids) == 0 {
		return nil
	}

	// A single INSERT may not touch the same id twice; keep the last one.
	pos := make(map[string]int, len(ids))
	rows := make([]Document, 0, len(ids))
	for i, id := range ids {
		d := Document{ID: id, Document: documents[i], Metadata: Metadata(metadatas[i])}
		if p, ok := pos[id]; ok {
			rows[p] = d
			continue
		}
		pos[id] = len(rows)
		rows = append(rows, d)
	}

	if s.embedder != nil {
		texts := make([]string, len(rows))
		for i, r := range rows {
			texts[i] = r.Document
		}
		vecs, err := s.embedder.Embed(ctx, texts)
		if err != nil {
			return fmt.Errorf("store: embedding documents: %w", err)
		}
		for i := range rows {
			rows[i].Embedding = pgvector.NewVector(vecs[i])
		}
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"document", "metadata", "embedding", "updated_at"}),
		}).
		CreateInBatches(&rows, upsertBatchSize).Error
	if err != nil {
		return fmt.Errorf("store: upserting %d documents: %w", len(rows), err)
	}
	return nil
}

func (s *GormStore) Query(ctx context.Context, texts []string, n int) (QueryResult, error) {
	var res QueryResult
	if s.embedder == nil {
		return res, ErrNoEmbedder
	}
	if n <= 0 {
		n = 1
	}

	vecs, err := s.embedder.Embed(ctx, texts)
	if err != nil {
		return res, fmt.Errorf("store: embedding queries: %w", err)
	}

	for _, vec := range vecs {
		var hits []scoredDocument
		if s.db.Dialector.Name() == "postgres" {
			hits, err = s.nearestPostgres(ctx, pgvector.NewVector(vec), n)
		} else {
			hits, err = s.nearestInProcess(ctx, vec, n)
		}
		if err != nil {
			return QueryResult{}, err
		}

		ids := make([]string, len(hits))
		docs := make([]string, len(hits))
		metas := make([]map[string]string, len(hits))
		dists := make([]float64, len(hits))
		for i, h := range hits {
			ids[i] = h.ID
			docs[i] = h.Document.Document
			metas[i] = map[string]string(h.Metadata)
			dists[i] = h.Distance
		}
		res.IDs = append(res.IDs, ids)
		res.Documents = append(res.Documents, docs)
		res.Metadatas = append(res.Metadatas, metas)
		res.Distances = append(res.Distances, dists)
	}
	return res, nil
}

type scoredDocument struct {
	Document `gorm:"embedded"`
	Distance float64
}

func (s *GormStore) nearestPostgres(ctx context.Context, vec pgvector.Vector, n int) ([]scoredDocument, error) {
	var hits []scoredDocument
	err := s.db.WithContext(ctx).
		Model(&Document{}).
		Select("id, document, metadata, created_at, updated_at, embedding <-> ? AS distance", vec).
		Where("embedding IS NOT NULL").
		Order("distance").
		Limit(n).
		Scan(&hits).Error
	if err != nil {
		return nil, fmt.Errorf("store: querying nearest documents: %w", err)
	}
	return hits, nil
}

func (s *GormStore) nearestInProcess(ctx context.Context, vec []float32, n int) ([]scoredDocument, error) {
	var docs []Document
	if err := s.db.WithContext(ctx).Order("id").Find(&docs).Error; err != nil {
		return nil, fmt.Errorf("store: loading documents: %w", err)
	}

	hits := make([]scoredDocument, 0, len(docs))
	for _, d := range docs {
		if len(d.Embedding.Slice()) == 0 {
			continue
		}
		hits = append(hits, scoredDocument{Document: d, Distance: cosineDistance(vec, d.Embedding.Slice())})
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Distance < hits[j].Distance })
	if len(hits) > n {
		hits = hits[:n]
	}
	for i := range hits {
		hits[i].Embedding = pgvector.Vector{}
	}
	return hits, nil
}
