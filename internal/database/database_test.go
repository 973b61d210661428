package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shorechef/backend/config"
	"github.com/shorechef/backend/internal/store"
	"github.com/shorechef/backend/internal/testdb"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_SQLite(t *testing.T) {
	log, _ := test.NewNullLogger()
	cfg := &config.Config{
		StoreDriver: config.DriverSQLite,
		SQLitePath:  filepath.Join(t.TempDir(), "shorechef.db"),
	}

	db, err := Open(cfg, log)
	require.NoError(t, err)
	t.Cleanup(func() { Close(db) })

	require.NoError(t, RunMigrations(db, log))
	// Migrations are idempotent.
	require.NoError(t, RunMigrations(db, log))
	assert.True(t, db.Migrator().HasTable(&store.Document{}))
	assert.NoError(t, HealthCheck(context.Background(), db))

	s := store.NewGormStore(db, store.HashEmbedder{})
	require.NoError(t, s.Upsert(context.Background(), []string{"recipe_chai"}, []string{"Title: Chai"}, []map[string]string{{"title": "Chai"}}))
	n, err := s.Count(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	log, _ := test.NewNullLogger()
	_, err := Open(&config.Config{StoreDriver: "mongo"}, log)
	assert.Error(t, err)
}

func TestPostgresDSN(t *testing.T) {
	dsn := PostgresDSN(&config.Config{
		DBHost: "db", DBPort: "5432", DBUser: "chef", DBPassword: "pw", DBName: "shorechef", DBSSLMode: "disable",
	})
	assert.Equal(t, "host=db port=5432 user=chef password=pw dbname=shorechef sslmode=disable", dsn)
}

// TestPostgresStore runs the store against a containerized PostgreSQL with pgvector.
func TestPostgresStore(t *testing.T) {
	ctx := context.Background()
	cfg := testdb.PostgresConfig(t)
	log, _ := test.NewNullLogger()

	db, err := Open(cfg, log)
	require.NoError(t, err)
	t.Cleanup(func() { Close(db) })
	require.NoError(t, RunMigrations(db, log))

	s := store.NewGormStore(db, store.HashEmbedder{})
	require.NoError(t, s.Upsert(ctx,
		[]string{"recipe_masala_chai", "recipe_upma", "recipe_masala_chai"},
		[]string{"masala chai tea milk ginger", "upma rava onion", "masala chai tea milk ginger cardamom"},
		[]map[string]string{{"title": "Masala Chai"}, {"title": "Upma"}, {"title": "Masala Chai"}},
	))

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	res, err := s.Query(ctx, []string{"ginger tea"}, 1)
	require.NoError(t, err)
	require.Len(t, res.IDs, 1)
	assert.Equal(t, []string{"recipe_masala_chai"}, res.IDs[0])
	assert.Equal(t, "Masala Chai", res.Metadatas[0][0]["title"])

	got, err := s.Get(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"recipe_masala_chai", "recipe_upma"}, got.IDs)
	assert.Equal(t, "masala chai tea milk ginger cardamom", got.Documents[0])
}
