package router

import (
	"github.com/gin-gonic/gin"
	"github.com/shorechef/backend/internal/api"
	"github.com/shorechef/backend/internal/middleware"
)

// SetupRouter configures the application middleware and routes
func SetupRouter(allowedOrigins []string, deps api.Dependencies) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Recovery(deps.Log))
	router.Use(middleware.RequestLogger(deps.Log))
	router.Use(middleware.CORS(allowedOrigins))

	api.RegisterRoutes(router, deps)

	return router
}
