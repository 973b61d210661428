package store

import (
	"context"
	"errors"
	"testing"

	"github.com/shorechef/backend/internal/recipe"
	"github.com/shorechef/backend/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupStore(t *testing.T, embedder Embedder) *GormStore {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(testdb.SQLiteDSN()), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Document{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	return NewGormStore(db, embedder)
}

func meta(title, category string) map[string]string {
	return recipe.Record{Title: title, Category: category}.Metadata()
}

func TestGormStore_UpsertAndGet(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t, HashEmbedder{})

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	require.NoError(t, s.Upsert(ctx,
		[]string{"recipe_upma", "recipe_masala_chai"},
		[]string{"Title: Upma", "Title: Masala Chai"},
		[]map[string]string{meta("Upma", "Breakfast"), meta("Masala Chai", "Drinks")},
	))

	n, err = s.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	all, err := s.Get(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"recipe_masala_chai", "recipe_upma"}, all.IDs)
	assert.Equal(t, []string{"Title: Masala Chai", "Title: Upma"}, all.Documents)
	assert.Equal(t, "Drinks", all.Metadatas[0][recipe.KeyCategory])

	recs := all.Records()
	require.Len(t, recs, 2)
	assert.Equal(t, "recipe_masala_chai", recs[0].ID)
	assert.Equal(t, "Masala Chai", recs[0].Title)

	one, err := s.Get(ctx, []string{"recipe_upma", "recipe_missing"})
	require.NoError(t, err)
	assert.Equal(t, []string{"recipe_upma"}, one.IDs)

	none, err := s.Get(ctx, []string{})
	require.NoError(t, err)
	assert.Empty(t, none.IDs)
}

func TestGormStore_UpsertReplaces(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t, HashEmbedder{})

	require.NoError(t, s.Upsert(ctx, []string{"recipe_chai"}, []string{"old"}, []map[string]string{meta("Chai", "Drinks")}))
	require.NoError(t, s.Upsert(ctx, []string{"recipe_chai"}, []string{"new"}, []map[string]string{meta("Chai!", "Tea")}))

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	got, err := s.Get(ctx, []string{"recipe_chai"})
	require.NoError(t, err)
	assert.Equal(t, []string{"new"}, got.Documents)
	assert.Equal(t, "Chai!", got.Metadatas[0][recipe.KeyTitle])
}

func TestGormStore_UpsertDuplicateIDsLastWins(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t, HashEmbedder{})

	require.NoError(t, s.Upsert(ctx,
		[]string{"recipe_chai", "recipe_dosa", "recipe_chai"},
		[]string{"first", "dosa", "second"},
		[]map[string]string{meta("Chai", ""), meta("Dosa", ""), meta("Chai!", "")},
	))

	got, err := s.Get(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"recipe_chai", "recipe_dosa"}, got.IDs)
	assert.Equal(t, "second", got.Documents[0])
}

func TestGormStore_UpsertLengthMismatch(t *testing.T) {
	s := setupStore(t, HashEmbedder{})

	err := s.Upsert(context.Background(), []string{"a", "b"}, []string{"x"}, []map[string]string{{}, {}})
	assert.ErrorIs(t, err, ErrLengthMismatch)

	err = s.Upsert(context.Background(), []string{"a"}, []string{"x"}, nil)
	assert.ErrorIs(t, err, ErrLengthMismatch)
}

type failingEmbedder struct{}

func (failingEmbedder) Embed(context.Context, []string) ([][]float32, error) {
	return nil, errors.New("quota")
}

func TestGormStore_UpsertEmbedError(t *testing.T) {
	s := setupStore(t, failingEmbedder{})

	err := s.Upsert(context.Background(), []string{"a"}, []string{"x"}, []map[string]string{{}})
	assert.Error(t, err)

	n, err := s.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestGormStore_Query(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t, HashEmbedder{})

	require.NoError(t, s.Upsert(ctx,
		[]string{"recipe_masala_chai", "recipe_upma", "recipe_dosa"},
		[]string{
			"Title: Masala Chai\nIngredients: tea milk ginger cardamom",
			"Title: Upma\nIngredients: rava onion mustard",
			"Title: Dosa\nIngredients: rice urad dal",
		},
		[]map[string]string{meta("Masala Chai", "Drinks"), meta("Upma", "Breakfast"), meta("Dosa", "Breakfast")},
	))

	res, err := s.Query(ctx, []string{"ginger tea with milk", "rava onion"}, 2)
	require.NoError(t, err)

	require.Len(t, res.IDs, 2)
	assert.Len(t, res.IDs[0], 2)
	assert.Equal(t, "recipe_masala_chai", res.IDs[0][0])
	assert.Equal(t, "recipe_upma", res.IDs[1][0])
	assert.LessOrEqual(t, res.Distances[0][0], res.Distances[0][1])
	assert.Equal(t, "Masala Chai", res.Records(0)[0].Title)
	assert.Nil(t, res.Records(5))
}

func TestGormStore_QueryWithoutEmbedder(t *testing.T) {
	s := setupStore(t, nil)

	_, err := s.Query(context.Background(), []string{"tea"}, 2)
	assert.ErrorIs(t, err, ErrNoEmbedder)
}

func TestHashEmbedder(t *testing.T) {
	vecs, err := HashEmbedder{Dimensions: 16}.Embed(context.Background(), []string{"Masala chai", "masala CHAI!", ""})
	require.NoError(t, err)

	require.Len(t, vecs, 3)
	assert.Len(t, vecs[0], 16)
	assert.Equal(t, vecs[0], vecs[1])
	assert.InDelta(t, 0, cosineDistance(vecs[0], vecs[1]), 1e-6)
	assert.Equal(t, 1.0, cosineDistance(vecs[0], vecs[2]))
}

func TestMetadata_ScanValue(t *testing.T) {
	v, err := Metadata{"title": "Chai"}.Value()
	require.NoError(t, err)

	var m Metadata
	require.NoError(t, m.Scan(v))
	assert.Equal(t, "Chai", m["title"])

	require.NoError(t, m.Scan(nil))
	assert.Empty(t, m)

	assert.Error(t, m.Scan(42))
}

func TestUnavailable(t *testing.T) {
	cause := errors.New("dial tcp 127.0.0.1:5432: connection refused")
	var s Store = Unavailable{Cause: cause}
	ctx := context.Background()

	_, err := s.Count(ctx)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, err, cause)

	_, err = s.Get(ctx, nil)
	assert.ErrorIs(t, err, ErrUnavailable)
	_, err = s.Query(ctx, []string{"chai"}, 1)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, s.Upsert(ctx, nil, nil, nil), ErrUnavailable)

	_, err = Unavailable{}.Count(ctx)
	assert.Equal(t, ErrUnavailable, err)
}
