package service

import (
	"context"

	"github.com/shorechef/backend/internal/navigator"
	"github.com/shorechef/backend/internal/recipe"
)

// IRecipeService defines the interface for recipe catalogue operations
type IRecipeService interface {
	ListRecipes(ctx context.Context, category, language string) ([]recipe.Record, error)
	GetRecipe(ctx context.Context, id, language string) (*recipe.Record, error)
	Categories(ctx context.Context) ([]string, error)
	SearchRecipes(ctx context.Context, query string, n int, language string) ([]SearchHit, error)
}

// IChatService defines the interface for the step-by-step cooking chat
type IChatService interface {
	Chat(ctx context.Context, message, language string, c navigator.Context) ChatReply
}
