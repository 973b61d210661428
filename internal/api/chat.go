package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shorechef/backend/internal/navigator"
	"github.com/shorechef/backend/internal/service"
)

type ChatHandler struct {
	chat service.IChatService
}

func NewChatHandler(chat service.IChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

// RegisterRoutes mounts POST /chat behind the given middleware.
func (h *ChatHandler) RegisterRoutes(router *gin.RouterGroup, mw ...gin.HandlerFunc) {
	router.POST("/chat", append(mw, h.Chat)...)
}

// Chat answers every well-formed request with 200; failures are reported
// through the source field.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body."})
		return
	}

	var conv navigator.Context
	if req.Context != nil {
		conv = *req.Context
	}

	reply := h.chat.Chat(c.Request.Context(), req.Message, req.ResponseLanguage, conv)
	c.JSON(http.StatusOK, ChatResponse{
		Reply:               reply.Reply,
		Source:              reply.Source,
		ConversationContext: reply.Context,
	})
}
