package api

import "github.com/shorechef/backend/internal/navigator"

// ChatRequest is the body of POST /chat
type ChatRequest struct {
	Message          string             `json:"message"`
	ResponseLanguage string             `json:"response_language"`
	Context          *navigator.Context `json:"conversation_context"`
}

// ChatResponse is the reply to POST /chat. ConversationContext is null
// unless a step was delivered.
type ChatResponse struct {
	Reply               string             `json:"reply"`
	Source              string             `json:"source"`
	ConversationContext *navigator.Context `json:"conversation_context"`
}
