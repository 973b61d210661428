package completion

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-1.5-flash-latest"

// NewGenAI creates the shared Gemini client.
func NewGenAI(ctx context.Context, apiKey string) (*genai.Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("completion: GOOGLE_API_KEY is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("completion: creating genai client: %w", err)
	}
	return client, nil
}

// GenAIClient implements Completer on top of Gemini.
type GenAIClient struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewGenAIClient returns a Completer for model. A zero timeout leaves calls
// bounded only by the caller's context.
func NewGenAIClient(client *genai.Client, model string, timeout time.Duration) *GenAIClient {
	if model == "" {
		model = DefaultModel
	}
	return &GenAIClient{
		client:  client,
		model:   model,
		timeout: timeout,
	}
}

// Generate sends prompt as a single user turn.
func (c *GenAIClient) Generate(ctx context.Context, prompt string, opts ...Option) (*Result, error) {
	if c == nil || c.client == nil {
		return nil, ErrUnavailable
	}
	o := Apply(opts...)

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var cfg *genai.GenerateContentConfig
	if o.JSON {
		cfg = &genai.GenerateContentConfig{ResponseMIMEType: "application/json"}
	}

	res, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), cfg)
	if err != nil {
		return nil, fmt.Errorf("completion: generating content with %s: %w", c.model, err)
	}
	return fromGenAI(res), nil
}

func fromGenAI(res *genai.GenerateContentResponse) *Result {
	out := &Result{}
	if res == nil {
		return out
	}
	if res.PromptFeedback != nil {
		out.BlockReason = string(res.PromptFeedback.BlockReason)
	}
	if len(res.Candidates) == 0 || res.Candidates[0] == nil {
		return out
	}
	cand := res.Candidates[0]
	out.FinishReason = string(cand.FinishReason)
	if cand.Content == nil {
		return out
	}
	for _, p := range cand.Content.Parts {
		if p != nil && p.Text != "" && !p.Thought {
			out.Parts = append(out.Parts, p.Text)
		}
	}
	return out
}
