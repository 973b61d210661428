package store

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnavailable is returned by every Unavailable call.
var ErrUnavailable = errors.New("store: unavailable")

// Unavailable stands in for a store that could not be opened. Every call
// fails with ErrUnavailable wrapping Cause.
type Unavailable struct {
	Cause error
}

func (u Unavailable) err() error {
	if u.Cause == nil {
		return ErrUnavailable
	}
	return fmt.Errorf("%w: %w", ErrUnavailable, u.Cause)
}

func (u Unavailable) Count(context.Context) (int64, error) { return 0, u.err() }

func (u Unavailable) Get(context.Context, []string) (GetResult, error) {
	return GetResult{}, u.err()
}

func (u Unavailable) Query(context.Context, []string, int) (QueryResult, error) {
	return QueryResult{}, u.err()
}

func (u Unavailable) Upsert(context.Context, []string, []string, []map[string]string) error {
	return u.err()
}
