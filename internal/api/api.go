package api

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/masspath/masspath/backend/internal/middleware"
	"github.com/masspath/masspath/backend/internal/service"
)

// Services are the dependencies of the HTTP handlers
type Services struct {
	DB              *gorm.DB
	Tokens          middleware.TokenValidator
	Menus           service.IMenuService
	Recommendations service.IRecommendationService
	Meals           service.IMealLogService
	Feedback        service.IFeedbackService
	Inferrer        service.IPreferenceInferrer
	Profiles        service.IProfileService
	Photos          service.IPhotoStore
	FeedbackLimiter *middleware.RateLimiter
}

// RegisterRoutes registers all API routes. Health and menu reads are public;
// everything else requires a bearer token.
func RegisterRoutes(router *gin.Engine, s Services) {
	NewHealthHandler(s.DB).RegisterRoutes(router)

	v1 := router.Group("/api/v1")
	NewMenuHandler(s.Menus).RegisterRoutes(v1)

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(s.Tokens))
	NewRecommendationHandler(s.Recommendations, s.Meals).RegisterRoutes(protected)
	NewMealHandler(s.Meals, s.Photos).RegisterRoutes(protected)
	NewFeedbackHandler(s.Feedback, s.FeedbackLimiter).RegisterRoutes(protected)
	NewPreferenceHandler(s.Inferrer, s.Feedback).RegisterRoutes(protected)
	NewProfileHandler(s.Profiles).RegisterRoutes(protected)
}
