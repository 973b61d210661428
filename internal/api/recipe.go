package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shorechef/backend/internal/service"
	"github.com/sirupsen/logrus"
)

type RecipeHandler struct {
	recipes service.IRecipeService
	log     logrus.FieldLogger
}

func NewRecipeHandler(recipes service.IRecipeService, log logrus.FieldLogger) *RecipeHandler {
	return &RecipeHandler{
		recipes: recipes,
		log:     log.WithField("component", "api"),
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/categories", h.GetCategories)
		recipes.GET("/search", h.SearchRecipes)
		recipes.GET("/:id", h.GetRecipe)
	}
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	recs, err := h.recipes.ListRecipes(c.Request.Context(), c.Query("category"), c.Query("language"))
	if err != nil {
		h.fail(c, err, "Could not fetch recipes.")
		return
	}
	c.JSON(http.StatusOK, recs)
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id := c.Param("id")
	rec, err := h.recipes.GetRecipe(c.Request.Context(), id, c.Query("language"))
	if errors.Is(err, service.ErrRecipeNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found."})
		return
	}
	if err != nil {
		h.fail(c, err, "Could not fetch recipe.")
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *RecipeHandler) GetCategories(c *gin.Context) {
	cats, err := h.recipes.Categories(c.Request.Context())
	if err != nil {
		h.fail(c, err, "Could not fetch categories.")
		return
	}
	c.JSON(http.StatusOK, cats)
}

func (h *RecipeHandler) SearchRecipes(c *gin.Context) {
	n := service.DefaultSearchResults
	if raw := c.Query("n"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "n must be a positive integer"})
			return
		}
		n = v
	}

	hits, err := h.recipes.SearchRecipes(c.Request.Context(), c.Query("q"), n, c.Query("language"))
	if errors.Is(err, service.ErrEmptyQuery) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q is required"})
		return
	}
	if err != nil {
		h.fail(c, err, "Could not search recipes.")
		return
	}
	c.JSON(http.StatusOK, hits)
}

// fail maps a service error to 503 when the store is down and 500 otherwise.
func (h *RecipeHandler) fail(c *gin.Context, err error, msg string) {
	_ = c.Error(err)
	h.log.WithError(err).WithField("path", c.FullPath()).Error(msg)
	if errors.Is(err, service.ErrStoreUnavailable) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Database not available."})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}
