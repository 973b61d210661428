package completion

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestInterpret(t *testing.T) {
	apiErr := errors.New("quota exceeded")

	tests := []struct {
		name   string
		res    *Result
		err    error
		source Source
		text   string
	}{
		{"text", &Result{Parts: []string{"  Boil ", "water.  "}}, nil, SourceSuccess, "Boil water."},
		{"unavailable", nil, ErrUnavailable, SourceUnavailable, ""},
		{"wrapped unavailable", nil, errors.Join(errors.New("ctx"), ErrUnavailable), SourceUnavailable, ""},
		{"api error", nil, apiErr, SourceAPICall, ""},
		{"no parts", &Result{}, nil, SourceEmptyResponse, ""},
		{"whitespace only", &Result{Parts: []string{"  \n"}}, nil, SourceEmptyResponse, ""},
		{"nil result", nil, nil, SourceEmptyResponse, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Interpret(tt.res, tt.err)
			assert.Equal(t, tt.source, out.Source)
			assert.Equal(t, tt.text, out.Text)
			assert.Equal(t, tt.source == SourceSuccess, out.OK())
		})
	}
}

func TestInterpret_BlockedPrompt(t *testing.T) {
	out := Interpret(&Result{BlockReason: "SAFETY"}, nil)

	assert.Equal(t, SourceEmptyResponse, out.Source)
	assert.Equal(t, "SAFETY", out.BlockReason)
}

func TestInterpret_CarriesFinishReason(t *testing.T) {
	out := Interpret(&Result{FinishReason: string(genai.FinishReasonMaxTokens)}, nil)
	assert.Equal(t, SourceEmptyResponse, out.Source)
	assert.Equal(t, "MAX_TOKENS", out.FinishReason)

	out = Interpret(&Result{Parts: []string{"Boil water."}, FinishReason: "STOP"}, nil)
	assert.True(t, out.OK())
	assert.Empty(t, out.FinishReason)
}

func TestUnavailable(t *testing.T) {
	_, err := Unavailable{}.Generate(context.Background(), "hi")
	assert.ErrorIs(t, err, ErrUnavailable)

	assert.False(t, IsAvailable(Unavailable{}))
	assert.False(t, IsAvailable(nil))
	assert.True(t, IsAvailable(NewGenAIClient(nil, "", 0)))
}

func TestGenAIClient_NoClient(t *testing.T) {
	var c *GenAIClient
	_, err := c.Generate(context.Background(), "hi")
	assert.ErrorIs(t, err, ErrUnavailable)

	_, err = NewGenAIClient(nil, "", 0).Generate(context.Background(), "hi")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestNewGenAI_RequiresKey(t *testing.T) {
	_, err := NewGenAI(context.Background(), "")
	assert.Error(t, err)
}

func TestFromGenAI(t *testing.T) {
	res := fromGenAI(&genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			FinishReason: genai.FinishReasonStop,
			Content: &genai.Content{Parts: []*genai.Part{
				{Text: "thinking...", Thought: true},
				{Text: "Step 1: "},
				{Text: "Boil water."},
			}},
		}},
	})

	assert.Equal(t, "Step 1: Boil water.", res.Text())
	assert.Equal(t, string(genai.FinishReasonStop), res.FinishReason)

	blocked := fromGenAI(&genai.GenerateContentResponse{
		PromptFeedback: &genai.GenerateContentResponsePromptFeedback{BlockReason: genai.BlockedReasonSafety},
	})
	assert.Empty(t, blocked.Text())
	assert.Equal(t, string(genai.BlockedReasonSafety), blocked.BlockReason)

	assert.Empty(t, fromGenAI(nil).Text())
}

func TestApply(t *testing.T) {
	assert.False(t, Apply().JSON)
	assert.True(t, Apply(WithJSON()).JSON)
}

func TestDecodeJSON(t *testing.T) {
	type fields struct {
		Ingredients string `json:"translated_ingredients"`
	}

	tests := []struct {
		name  string
		input string
	}{
		{"plain", `{"translated_ingredients":"ಹಾಲು"}`},
		{"fenced", "```json\n{\"translated_ingredients\":\"ಹಾಲು\"}\n```"},
		{"bare fence", "```\n{\"translated_ingredients\":\"ಹಾಲು\"}\n```"},
		{"prose around", "Here you go:\n{\"translated_ingredients\":\"ಹಾಲು\"} Enjoy!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got fields
			require.NoError(t, DecodeJSON(tt.input, &got))
			assert.Equal(t, "ಹಾಲು", got.Ingredients)
		})
	}
}

func TestDecodeJSON_BracesInStrings(t *testing.T) {
	var got map[string]string
	require.NoError(t, DecodeJSON(`note: {"a":"x } y","b":"\"{\""} trailing }`, &got))

	assert.Equal(t, "x } y", got["a"])
	assert.Equal(t, `"{"`, got["b"])
}

func TestDecodeJSON_Invalid(t *testing.T) {
	var got map[string]string

	assert.ErrorIs(t, DecodeJSON("", &got), ErrNoJSON)
	assert.ErrorIs(t, DecodeJSON("no json here", &got), ErrNoJSON)
	assert.ErrorIs(t, DecodeJSON("{broken", &got), ErrNoJSON)
}
