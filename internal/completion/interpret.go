package completion

import "errors"

// Source tags the outcome of a completion call. Callers key UI behaviour
// off these exact strings.
type Source string

const (
	SourceSuccess       Source = "success"
	SourceUnavailable   Source = "error_gemini_unavailable"
	SourceEmptyResponse Source = "error_gemini_empty_response"
	SourceAPICall       Source = "error_gemini_api_call"
)

// Outcome is a classified completion result.
type Outcome struct {
	Source Source
	// Text is the trimmed reply; set only on success.
	Text        string
	BlockReason string
	// FinishReason says why generation stopped, for example MAX_TOKENS.
	FinishReason string
	Err          error
}

// OK reports whether the call produced usable text.
func (o Outcome) OK() bool { return o.Source == SourceSuccess }

// Interpret classifies the result of a Generate call into exactly one
// Source.
func Interpret(res *Result, err error) Outcome {
	switch {
	case errors.Is(err, ErrUnavailable):
		return Outcome{Source: SourceUnavailable, Err: err}
	case err != nil:
		return Outcome{Source: SourceAPICall, Err: err}
	}

	if text := res.Text(); text != "" {
		return Outcome{Source: SourceSuccess, Text: text}
	}
	out := Outcome{Source: SourceEmptyResponse}
	if res != nil {
		out.BlockReason = res.BlockReason
		out.FinishReason = res.FinishReason
	}
	return out
}
