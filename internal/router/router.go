package router

import (
	"github.com/gin-gonic/gin"

	"github.com/masspath/masspath/backend/config"
	"github.com/masspath/masspath/backend/internal/api"
	"github.com/masspath/masspath/backend/internal/middleware"
)

// SetupRouter configures the middleware chain and application routes
func SetupRouter(cfg *config.Config, services api.Services) *gin.Engine {
	gin.SetMode(config.GetEnvironment().GinMode())

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(middleware.RequestID())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS(cfg.CORSOrigins))

	api.RegisterRoutes(router, services)
	return router
}
