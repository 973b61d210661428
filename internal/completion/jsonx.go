package completion

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNoJSON is returned by DecodeJSON when no attempt yields valid JSON.
var ErrNoJSON = errors.New("no JSON object in reply")

// DecodeJSON decodes a model reply into v. It tries, in order: the reply as
// is, the reply with a markdown code fence removed, and the first balanced
// {...} object found in the reply.
func DecodeJSON(text string, v any) error {
	text = strings.TrimSpace(text)

	var lastErr error
	for _, candidate := range []string{text, StripCodeFence(text), extractObject(text)} {
		if candidate == "" {
			continue
		}
		if lastErr = json.Unmarshal([]byte(candidate), v); lastErr == nil {
			return nil
		}
	}
	if lastErr == nil {
		return ErrNoJSON
	}
	return fmt.Errorf("%w: %v", ErrNoJSON, lastErr)
}

// StripCodeFence removes a surrounding ``` or ```json fence.
func StripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	if nl := strings.IndexByte(text, '\n'); nl >= 0 && !strings.ContainsAny(text[:nl], "{[") {
		// Drop the language tag line, e.g. "json".
		text = text[nl+1:]
	}
	text = strings.TrimSpace(text)
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

// extractObject returns the first balanced JSON object in text, honouring
// string literals and escapes.
func extractObject(text string) string {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		ch := text[i]
		switch {
		case escaped:
			escaped = false
		case ch == '\\' && inString:
			escaped = true
		case ch == '"':
			inString = !inString
		case inString:
		case ch == '{':
			depth++
		case ch == '}':
			depth--
			if depth == 0 {
				return text[start : i+1]
			}
		}
	}
	return ""
}
