package navigator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextStep(t *testing.T) {
	tests := []struct {
		name    string
		message string
		current int
		want    int
	}{
		{"next advances", "next", 2, 3},
		{"what's next advances", "What's next?", 4, 5},
		{"next from not started", "next please", 0, 1},
		{"previous floors at one", "previous", 1, 1},
		{"previous steps back", "previous", 3, 2},
		{"go back", "can we go back", 5, 4},
		{"start resets", "start", 5, 1},
		{"first step resets", "show me the first step", 7, 1},
		{"number jumps", "give me step 4", 1, 4},
		{"first number wins", "step 12 or 3", 1, 12},
		{"default holds", "yes", 2, 2},
		{"default starts recipe", "ok", 0, 1},
		{"case and space insensitive", "  NEXT  ", 1, 2},
		{"next beats number", "next, then step 9", 2, 3},
		{"previous beats start", "go back to the start", 3, 2},
		{"start beats number", "start at 6", 2, 1},
		{"huge number holds", "step 99999999999999999999999", 3, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextStep(tt.message, tt.current))
		})
	}
}

func TestNavigator_TurnWithoutContext(t *testing.T) {
	nav := New()

	for _, c := range []Context{
		{},
		{RecipeTitle: "Masala Chai"},
		{Instructions: "Boil water.", CurrentStep: 3},
	} {
		_, err := nav.Turn("next", "English", c)
		assert.ErrorIs(t, err, ErrNoContext)
	}
}

func TestNavigator_Turn(t *testing.T) {
	nav := New()
	c := Context{
		RecipeTitle:  "Masala Chai",
		Instructions: "Step 1: Boil water.\nStep 2: Add tea.",
		Nutrition:    "90 kcal",
		CurrentStep:  0,
	}

	turn, err := nav.Turn("start", "Kannada", c)
	require.NoError(t, err)

	assert.Equal(t, 1, turn.Step)
	assert.Equal(t, 1, turn.Context.CurrentStep)
	assert.Equal(t, c.RecipeTitle, turn.Context.RecipeTitle)
	assert.Equal(t, c.Instructions, turn.Context.Instructions)
	assert.Equal(t, c.Nutrition, turn.Context.Nutrition)
	assert.Zero(t, c.CurrentStep)

	assert.Contains(t, turn.Prompt, "Recipe Title: Masala Chai")
	assert.Contains(t, turn.Prompt, "Step 1: Boil water.\nStep 2: Add tea.")
	assert.Contains(t, turn.Prompt, "Nutrition: 90 kcal")
	assert.Contains(t, turn.Prompt, "Give me step 1")
	assert.Contains(t, turn.Prompt, "MUST be in **Kannada**")
}

func TestNavigator_RenderDefaultsLanguage(t *testing.T) {
	prompt, err := New().Render(Context{RecipeTitle: "Upma", Instructions: "Roast rava.", CurrentStep: 2}, "  ")
	require.NoError(t, err)

	assert.Contains(t, prompt, "Answer (in English)")
	assert.Contains(t, prompt, "Give me step 2")
}
