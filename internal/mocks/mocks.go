package mocks

import (
	"context"

	"github.com/shorechef/backend/internal/completion"
	"github.com/shorechef/backend/internal/store"
	"github.com/stretchr/testify/mock"
)

// MockCompleter is a mock implementation of completion.Completer.
// Options are passed to Called as a completion.Options value.
type MockCompleter struct {
	mock.Mock
}

func (m *MockCompleter) Generate(ctx context.Context, prompt string, opts ...completion.Option) (*completion.Result, error) {
	o := completion.Apply(opts...)
	args := m.Called(ctx, prompt, o)
	switch v := args.Get(0).(type) {
	case nil:
		return nil, args.Error(1)
	case func(context.Context, string, completion.Options) *completion.Result:
		return v(ctx, prompt, o), args.Error(1)
	default:
		return v.(*completion.Result), args.Error(1)
	}
}

// Text is a successful completion result.
func Text(s string) *completion.Result {
	return &completion.Result{Parts: []string{s}}
}

// MockStore is a mock implementation of store.Store
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStore) Get(ctx context.Context, ids []string) (store.GetResult, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(store.GetResult), args.Error(1)
}

func (m *MockStore) Query(ctx context.Context, texts []string, n int) (store.QueryResult, error) {
	args := m.Called(ctx, texts, n)
	return args.Get(0).(store.QueryResult), args.Error(1)
}

func (m *MockStore) Upsert(ctx context.Context, ids, documents []string, metadatas []map[string]string) error {
	args := m.Called(ctx, ids, documents, metadatas)
	return args.Error(0)
}
