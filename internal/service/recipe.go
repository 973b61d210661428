package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/shorechef/backend/internal/localization"
	"github.com/shorechef/backend/internal/recipe"
	"github.com/shorechef/backend/internal/store"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultSearchResults is used when no count is requested.
	DefaultSearchResults = 2
	MaxSearchResults     = 20
)

var (
	ErrRecipeNotFound = errors.New("recipe not found")
	ErrEmptyQuery     = errors.New("search query is empty")
	// ErrStoreUnavailable wraps every store failure.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// SearchHit is one nearest-neighbour match.
type SearchHit struct {
	recipe.Record
	Distance float64 `json:"distance"`
}

// RecipeService serves the read-only recipe catalogue.
type RecipeService struct {
	store      store.Store
	translator *localization.Translator
	log        logrus.FieldLogger
}

func NewRecipeService(s store.Store, translator *localization.Translator, log logrus.FieldLogger) *RecipeService {
	if translator == nil {
		translator = localization.New(nil, log)
	}
	return &RecipeService{
		store:      s,
		translator: translator,
		log:        log.WithField("component", "recipes"),
	}
}

func (s *RecipeService) all(ctx context.Context) ([]recipe.Record, error) {
	res, err := s.store.Get(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return res.Records(), nil
}

// ListRecipes returns every recipe whose category contains category
// (case-insensitive), with titles translated into language.
func (s *RecipeService) ListRecipes(ctx context.Context, category, language string) ([]recipe.Record, error) {
	recs, err := s.all(ctx)
	if err != nil {
		return nil, err
	}

	if category = strings.ToLower(strings.TrimSpace(category)); category != "" {
		filtered := recs[:0]
		for _, r := range recs {
			if r.Category != "" && strings.Contains(strings.ToLower(r.Category), category) {
				filtered = append(filtered, r)
			}
		}
		recs = filtered
	}

	return s.translator.LocalizeTitles(ctx, recs, language), nil
}

// GetRecipe returns a single recipe localized into language.
func (s *RecipeService) GetRecipe(ctx context.Context, id, language string) (*recipe.Record, error) {
	res, err := s.store.Get(ctx, []string{id})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	if len(res.IDs) == 0 {
		return nil, ErrRecipeNotFound
	}

	rec := s.translator.LocalizeRecord(ctx, res.Records()[0], language)
	return &rec, nil
}

// Categories returns the sorted set of categories across all recipes.
func (s *RecipeService) Categories(ctx context.Context) ([]string, error) {
	recs, err := s.all(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	out := []string{}
	for _, r := range recs {
		for _, c := range r.Categories() {
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			out = append(out, c)
		}
	}
	sort.Strings(out)
	return out, nil
}

// SearchRecipes returns the n recipes nearest to query.
func (s *RecipeService) SearchRecipes(ctx context.Context, query string, n int, language string) ([]SearchHit, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	if n <= 0 {
		n = DefaultSearchResults
	}
	n = min(n, MaxSearchResults)

	res, err := s.store.Query(ctx, []string{query}, n)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	recs := s.translator.LocalizeTitles(ctx, res.Records(0), language)
	hits := make([]SearchHit, len(recs))
	for i, r := range recs {
		hits[i] = SearchHit{Record: r, Distance: res.Distances[0][i]}
	}
	return hits, nil
}
