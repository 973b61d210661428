// Package integration runs the HTTP surface against PostgreSQL with pgvector.
package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shorechef/backend/internal/api"
	"github.com/shorechef/backend/internal/app"
	"github.com/shorechef/backend/internal/completion"
	"github.com/shorechef/backend/internal/corpus"
	"github.com/shorechef/backend/internal/database"
	"github.com/shorechef/backend/internal/localization"
	"github.com/shorechef/backend/internal/mocks"
	"github.com/shorechef/backend/internal/navigator"
	"github.com/shorechef/backend/internal/recipe"
	"github.com/shorechef/backend/internal/router"
	"github.com/shorechef/backend/internal/service"
	"github.com/shorechef/backend/internal/testdb"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var recipes = strings.Join([]string{
	"Recipe_Title: Masala Chai\nCategory: Beverage\nIngredients: tea\nmilk\nginger\nInstructions: 1. Boil water with ginger.\n2. Add tea and milk.\nNutrition: 120 kcal",
	"Recipe_Title: Rava Upma\nCategory: Breakfast/South Indian\nIngredients: rava\nonion\nInstructions: 1. Roast rava.\n2. Add water.",
	"Recipe_Title: Neer Dosa\nCategory: Breakfast\nIngredients: rice\ncoconut\nInstructions: 1. Grind rice.",
}, "\n"+corpus.Separator+"\n")

func setupPostgresApp(t *testing.T, completer completion.Completer) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log, _ := test.NewNullLogger()

	cfg := testdb.PostgresConfig(t)
	cfg.RecipeFile = filepath.Join(t.TempDir(), "recipes.txt")
	require.NoError(t, os.WriteFile(cfg.RecipeFile, []byte(recipes), 0o600))

	docs, db, err := app.OpenStore(cfg, app.Embedder(nil, cfg, log), log)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close(db) })

	ctx := context.Background()
	src, err := app.CorpusSource(ctx, cfg)
	require.NoError(t, err)
	loader := corpus.NewLoader(docs, src, log)

	res, err := loader.LoadIfEmpty(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, res.Loaded)

	// a restart must not reload
	res, err = loader.LoadIfEmpty(ctx)
	require.NoError(t, err)
	require.True(t, res.AlreadySeeded)

	translator := localization.New(completer, log, localization.WithWorkers(2))
	return router.SetupRouter([]string{"http://localhost:3000"}, api.Dependencies{
		Recipes: service.NewRecipeService(docs, translator, log),
		Chat:    service.NewChatService(navigator.New(), completer, log),
		Log:     log,
	})
}

func get(t *testing.T, r http.Handler, path string, v any) {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}

func TestPostgres_RecipeEndpoints(t *testing.T) {
	r := setupPostgresApp(t, completion.Unavailable{})

	var list []recipe.Record
	get(t, r, "/recipes", &list)
	require.Len(t, list, 3)
	assert.Equal(t, "recipe_masala_chai", list[0].ID)

	var breakfast []recipe.Record
	get(t, r, "/recipes?category=BREAKFAST", &breakfast)
	assert.Len(t, breakfast, 2)

	var cats []string
	get(t, r, "/recipes/categories", &cats)
	assert.Equal(t, []string{"Beverage", "Breakfast", "South Indian"}, cats)

	var hits []service.SearchHit
	get(t, r, "/recipes/search?q=ginger+tea+milk&n=1", &hits)
	require.Len(t, hits, 1)
	assert.Equal(t, "recipe_masala_chai", hits[0].ID)
}

func TestPostgres_LocalizedRecipe(t *testing.T) {
	completer := new(mocks.MockCompleter)
	completer.On("Generate", mock.Anything, mock.Anything, completion.Options{JSON: true}).
		Return(mocks.Text(`{"translated_ingredients":"चाय\nदूध\nअदरक","translated_instructions":"1. पानी उबालें।","translated_nutrition":"120 किलो कैलोरी"}`), nil)
	completer.On("Generate", mock.Anything, mock.Anything, completion.Options{}).
		Return(mocks.Text("मसाला चाय"), nil)
	r := setupPostgresApp(t, completer)

	var rec recipe.Record
	get(t, r, "/recipes/recipe_masala_chai?language=Hindi", &rec)
	assert.Equal(t, "मसाला चाय", rec.Title)
	assert.Equal(t, "चाय\nदूध\nअदरक", rec.Ingredients)
	assert.Equal(t, "120 किलो कैलोरी", rec.Nutrition)
	assert.Equal(t, "Beverage", rec.Category)
}
