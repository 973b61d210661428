// Package navigator interprets cook-along chat messages as moves through a
// recipe's steps.
//
// The navigator only decides which step number the user wants. It never
// splits the instructions into steps itself; the rendered prompt hands the
// full instruction text and the step number to the completion service,
// which locates that step and says when the recipe is finished.
package navigator

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"text/template"
)

// DefaultLanguage is used when a turn names no response language.
const DefaultLanguage = "English"

// ErrNoContext is returned when a turn arrives without a selected recipe.
var ErrNoContext = errors.New("no recipe context")

var digits = regexp.MustCompile(`[0-9]+`)

// Context is the caller-held conversation state. It is returned on every
// successful turn and sent back unchanged with the next message.
type Context struct {
	RecipeTitle  string `json:"recipe_title,omitempty"`
	Instructions string `json:"instructions,omitempty"`
	Nutrition    string `json:"nutrition,omitempty"`
	// CurrentStep is 1-based; 0 means the recipe is selected but not started.
	CurrentStep int `json:"current_step"`
}

// Ready reports whether the context names a recipe to walk through.
func (c Context) Ready() bool {
	return c.RecipeTitle != "" && c.Instructions != ""
}

// WithStep returns a copy of c positioned at step.
func (c Context) WithStep(step int) Context {
	c.CurrentStep = step
	return c
}

// NextStep maps a user message onto the step it asks for. Rules are checked
// in order and the first match wins:
//
//	"next", "what's next"      -> current+1
//	"previous", "go back"      -> max(1, current-1)
//	"start", "first step"      -> 1
//	any digits                 -> the first number in the message
//	anything else              -> max(1, current)
//
// Anything else holds the current step, so a reply like "yes" or "ok"
// repeats the step rather than advancing past it.
func NextStep(message string, current int) int {
	msg := strings.ToLower(strings.TrimSpace(message))

	switch {
	case strings.Contains(msg, "next") || strings.Contains(msg, "what's next"):
		return current + 1
	case strings.Contains(msg, "previous") || strings.Contains(msg, "go back"):
		return max(1, current-1)
	case strings.Contains(msg, "start") || strings.Contains(msg, "first step"):
		return 1
	}

	if num := digits.FindString(msg); num != "" {
		if n, err := strconv.Atoi(num); err == nil {
			return n
		}
	}
	return max(1, current)
}

// Turn is the outcome of navigating one message.
type Turn struct {
	Step    int
	Prompt  string
	Context Context
}

// Navigator renders cook-along prompts for navigated steps.
type Navigator struct {
	tmpl *template.Template
}

// New returns a Navigator using the built-in cook-along prompt.
func New() *Navigator {
	return &Navigator{tmpl: stepPrompt}
}

// Turn applies message to c. It returns ErrNoContext, without touching the
// step, when c has no recipe title or instructions.
func (n *Navigator) Turn(message, language string, c Context) (Turn, error) {
	if !c.Ready() {
		return Turn{}, ErrNoContext
	}

	step := NextStep(message, c.CurrentStep)
	next := c.WithStep(step)

	prompt, err := n.Render(next, language)
	if err != nil {
		return Turn{}, err
	}
	return Turn{Step: step, Prompt: prompt, Context: next}, nil
}

// Render fills the cook-along prompt for c's current step.
func (n *Navigator) Render(c Context, language string) (string, error) {
	language = strings.TrimSpace(language)
	if language == "" {
		language = DefaultLanguage
	}

	var buf bytes.Buffer
	err := n.tmpl.Execute(&buf, promptData{
		RecipeTitle:      c.RecipeTitle,
		Instructions:     c.Instructions,
		Nutrition:        c.Nutrition,
		CurrentStep:      c.CurrentStep,
		ResponseLanguage: language,
	})
	if err != nil {
		return "", fmt.Errorf("navigator: rendering prompt: %w", err)
	}
	return buf.String(), nil
}
