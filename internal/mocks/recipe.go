package mocks

import (
	"context"

	"github.com/shorechef/backend/internal/navigator"
	"github.com/shorechef/backend/internal/recipe"
	"github.com/shorechef/backend/internal/service"
	"github.com/stretchr/testify/mock"
)

// MockRecipeService is a mock implementation of the recipe service
type MockRecipeService struct {
	mock.Mock
}

// ListRecipes mocks the ListRecipes method
func (m *MockRecipeService) ListRecipes(ctx context.Context, category, language string) ([]recipe.Record, error) {
	args := m.Called(ctx, category, language)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]recipe.Record), args.Error(1)
}

// GetRecipe mocks the GetRecipe method
func (m *MockRecipeService) GetRecipe(ctx context.Context, id, language string) (*recipe.Record, error) {
	args := m.Called(ctx, id, language)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*recipe.Record), args.Error(1)
}

// Categories mocks the Categories method
func (m *MockRecipeService) Categories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// SearchRecipes mocks the SearchRecipes method
func (m *MockRecipeService) SearchRecipes(ctx context.Context, query string, n int, language string) ([]service.SearchHit, error) {
	args := m.Called(ctx, query, n, language)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.SearchHit), args.Error(1)
}

// MockChatService is a mock implementation of the chat service
type MockChatService struct {
	mock.Mock
}

func (m *MockChatService) Chat(ctx context.Context, message, language string, c navigator.Context) service.ChatReply {
	args := m.Called(ctx, message, language, c)
	return args.Get(0).(service.ChatReply)
}
