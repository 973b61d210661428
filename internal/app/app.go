// Package app wires configuration into the store, completion and corpus
// components shared by the binaries.
package app

import (
	"context"
	"fmt"

	"github.com/shorechef/backend/config"
	"github.com/shorechef/backend/internal/completion"
	"github.com/shorechef/backend/internal/corpus"
	"github.com/shorechef/backend/internal/database"
	"github.com/shorechef/backend/internal/store"
	"github.com/sirupsen/logrus"
	"google.golang.org/genai"
	"gorm.io/gorm"
)

// GenAI returns the Gemini client, or nil when no API key is configured.
func GenAI(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) (*genai.Client, error) {
	if cfg.GoogleAPIKey == "" {
		log.Warn("GOOGLE_API_KEY not set; chat and translation are unavailable")
		return nil, nil
	}
	return completion.NewGenAI(ctx, cfg.GoogleAPIKey)
}

// Completer returns the completion service backed by client, or
// completion.Unavailable when client is nil.
func Completer(client *genai.Client, cfg *config.Config) completion.Completer {
	if client == nil {
		return completion.Unavailable{}
	}
	return completion.NewGenAIClient(client, cfg.GeminiModel, cfg.CompletionTimeout)
}

// Embedder uses the configured Gemini embedding model when there is a
// client and a model, and the local hash embedder otherwise.
func Embedder(client *genai.Client, cfg *config.Config, log logrus.FieldLogger) store.Embedder {
	if client != nil && cfg.EmbeddingModel != "" {
		log.WithField("model", cfg.EmbeddingModel).Info("Using Gemini embeddings")
		return store.NewGenAIEmbedder(client, cfg.EmbeddingModel)
	}
	return store.HashEmbedder{Dimensions: store.HashDimensions}
}

// OpenStore connects to the database, migrates the schema and returns the
// recipe store on top of it.
func OpenStore(cfg *config.Config, embedder store.Embedder, log logrus.FieldLogger) (*store.GormStore, *gorm.DB, error) {
	db, err := database.Open(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	if err := database.RunMigrations(db, log); err != nil {
		_ = database.Close(db)
		return nil, nil, err
	}
	return store.NewGormStore(db, embedder), db, nil
}

// OpenStoreOrUnavailable is OpenStore for the server: when the database
// cannot be opened it logs the failure and returns a store.Unavailable,
// so read endpoints answer 503 while chat keeps working. db is nil then.
func OpenStoreOrUnavailable(cfg *config.Config, embedder store.Embedder, log logrus.FieldLogger) (s store.Store, db *gorm.DB, ok bool) {
	gs, db, err := OpenStore(cfg, embedder, log)
	if err != nil {
		log.WithError(err).Error("Recipe store unavailable; serving without it")
		return store.Unavailable{Cause: err}, nil, false
	}
	return gs, db, true
}

// CorpusSource resolves cfg.RecipeFile, creating an S3 client only for
// s3:// locations.
func CorpusSource(ctx context.Context, cfg *config.Config) (corpus.Source, error) {
	if !cfg.RecipeFileOnS3() {
		return corpus.NewSource(cfg.RecipeFile, nil)
	}
	client, err := config.NewS3Client(ctx, cfg.AWSRegion)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	return corpus.NewSource(cfg.RecipeFile, client)
}
