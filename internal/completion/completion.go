// Package completion wraps the text-generation service and classifies its
// replies.
package completion

import (
	"context"
	"errors"
	"strings"
)

// ErrUnavailable is returned when no completion service is configured.
var ErrUnavailable = errors.New("completion service unavailable")

// Result is the raw reply of one generation call.
type Result struct {
	Parts []string
	// BlockReason is set when the service refused the prompt.
	BlockReason  string
	FinishReason string
}

// Text concatenates all parts and trims the result.
func (r *Result) Text() string {
	if r == nil {
		return ""
	}
	return strings.TrimSpace(strings.Join(r.Parts, ""))
}

// Completer generates text for a prompt.
type Completer interface {
	Generate(ctx context.Context, prompt string, opts ...Option) (*Result, error)
}

// Options tune a single Generate call.
type Options struct {
	// JSON asks the service for an application/json reply.
	JSON bool
}

// Option configures Options.
type Option func(*Options)

// WithJSON requests a JSON-encoded reply.
func WithJSON() Option {
	return func(o *Options) { o.JSON = true }
}

// Apply folds opts into an Options value.
func Apply(opts ...Option) Options {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Unavailable is the Completer used when the service is not configured.
type Unavailable struct{}

func (Unavailable) Generate(context.Context, string, ...Option) (*Result, error) {
	return nil, ErrUnavailable
}

// IsAvailable reports whether c can reach a completion service.
func IsAvailable(c Completer) bool {
	if c == nil {
		return false
	}
	_, off := c.(Unavailable)
	return !off
}
