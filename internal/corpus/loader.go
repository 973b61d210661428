// Package corpus seeds the recipe store from the flat text corpus.
package corpus

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/shorechef/backend/internal/recipe"
)

// Separator is the literal line between recipe blocks.
const Separator = "---------------------------------------------"

var (
	utf8BOM  = []byte{0xEF, 0xBB, 0xBF}
	nonWord  = regexp.MustCompile(`[^\p{L}\p{N}_]+`)
	idPrefix = "recipe_"
)

// Store is the part of the recipe store the loader needs.
type Store interface {
	Count(ctx context.Context) (int64, error)
	Upsert(ctx context.Context, ids, documents []string, metadatas []map[string]string) error
}

// Entry is one parsed recipe ready for upsert.
type Entry struct {
	Record   recipe.Record
	Document string
}

// Stats counts what ParseCorpus saw.
type Stats struct {
	Blocks   int
	Untitled int
}

// Result describes the outcome of a seeding attempt.
type Result struct {
	AlreadySeeded bool
	Existing      int64
	Missing       bool
	Loaded        int
	Stats         Stats
}

// Loader seeds an empty store from a corpus source.
type Loader struct {
	store  Store
	source Source
	log    logrus.FieldLogger
}

// NewLoader creates a new Loader instance
func NewLoader(store Store, source Source, log logrus.FieldLogger) *Loader {
	return &Loader{
		store:  store,
		source: source,
		log:    log.WithField("component", "corpus"),
	}
}

// LoadIfEmpty seeds the store when it holds no records. Seeding is
// all-or-nothing: a non-empty store is left untouched. A missing source is
// logged and reported through Result.Missing rather than as an error.
func (l *Loader) LoadIfEmpty(ctx context.Context) (Result, error) {
	count, err := l.store.Count(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("corpus: counting records: %w", err)
	}
	if count > 0 {
		l.log.WithField("count", count).Info("Store already has recipes, skipping load")
		return Result{AlreadySeeded: true, Existing: count}, nil
	}

	l.log.WithField("source", l.source.String()).Info("Loading recipes")
	rc, err := l.source.Open(ctx)
	if err != nil {
		if errors.Is(err, ErrSourceNotFound) {
			l.log.WithError(err).Error("Recipe file not found")
			return Result{Missing: true}, nil
		}
		return Result{}, err
	}
	defer rc.Close()

	entries, stats, err := ParseCorpus(rc, l.log)
	if err != nil {
		return Result{}, err
	}
	res := Result{Stats: stats}
	if len(entries) == 0 {
		l.log.Warn("No titled recipes found in corpus")
		return res, nil
	}

	ids := make([]string, len(entries))
	docs := make([]string, len(entries))
	mds := make([]map[string]string, len(entries))
	for i, e := range entries {
		ids[i] = e.Record.ID
		docs[i] = e.Document
		mds[i] = e.Record.Metadata()
	}
	if err := l.store.Upsert(ctx, ids, docs, mds); err != nil {
		return res, fmt.Errorf("corpus: upserting %d recipes: %w", len(entries), err)
	}

	res.Loaded = len(entries)
	l.log.WithFields(logrus.Fields{
		"loaded":   res.Loaded,
		"untitled": stats.Untitled,
	}).Info("Upserted recipes")
	return res, nil
}

// ParseCorpus splits the corpus into blocks and parses each one. Blocks
// without a title are logged and skipped.
func ParseCorpus(r io.Reader, log logrus.FieldLogger) ([]Entry, Stats, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("corpus: reading source: %w", err)
	}
	content := string(bytes.TrimPrefix(raw, utf8BOM))

	var (
		entries []Entry
		stats   Stats
	)
	for _, block := range strings.Split(content, Separator) {
		if strings.TrimSpace(block) == "" {
			continue
		}
		stats.Blocks++

		rec := recipe.Parse(block)
		if rec.Title == "" {
			stats.Untitled++
			log.WithField("starts_with", preview(block)).Warn("Skipping recipe block with no title")
			continue
		}
		rec.ID = Slug(rec.Title)
		entries = append(entries, Entry{Record: rec, Document: Document(rec)})
	}
	return entries, stats, nil
}

// Slug derives the stable record id for a title. Titles that sanitize to
// the same slug share an id, so the later upsert replaces the earlier one.
// A title with no word characters gets a random id.
func Slug(title string) string {
	s := strings.Trim(nonWord.ReplaceAllString(strings.ToLower(title), "_"), "_")
	if s == "" {
		s = uuid.NewString()
	}
	return idPrefix + s
}

// Document builds the text the store embeds for similarity search.
func Document(r recipe.Record) string {
	return fmt.Sprintf("Title: %s\nRegion: %s\nCategory: %s\nTags: %s\n\nIngredients:\n%s\n\nInstructions:\n%s\n\nNutrition:\n%s",
		r.Title, r.Region, r.Category, r.Tags, r.Ingredients, r.Instructions, r.Nutrition)
}

func preview(block string) string {
	first, _, _ := strings.Cut(strings.TrimSpace(block), "\n")
	if r := []rune(first); len(r) > 50 {
		return string(r[:50]) + "..."
	}
	return first
}
