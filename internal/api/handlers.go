package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shorechef/backend/internal/middleware"
	"github.com/shorechef/backend/internal/service"
	"github.com/sirupsen/logrus"
)

// HealthCheck returns the health status of the API
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// Dependencies are the services behind the HTTP surface. ChatLimiter is
// optional.
type Dependencies struct {
	Recipes     service.IRecipeService
	Chat        service.IChatService
	ChatLimiter *middleware.RateLimiter
	Log         logrus.FieldLogger
}

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.Engine, deps Dependencies) {
	router.GET("/health", HealthCheck)

	root := router.Group("")
	NewRecipeHandler(deps.Recipes, deps.Log).RegisterRoutes(root)

	var chatMW []gin.HandlerFunc
	if deps.ChatLimiter != nil {
		chatMW = append(chatMW, deps.ChatLimiter.RateLimitMiddleware())
	}
	NewChatHandler(deps.Chat).RegisterRoutes(root, chatMW...)
}
