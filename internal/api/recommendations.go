package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/masspath/masspath/backend/internal/middleware"
	"github.com/masspath/masspath/backend/internal/recommend"
	"github.com/masspath/masspath/backend/internal/service"
	"github.com/masspath/masspath/backend/internal/types"
)

// RecommendationHandler serves scored meal recommendations
type RecommendationHandler struct {
	recommendations service.IRecommendationService
	meals           service.IMealLogService
}

// NewRecommendationHandler creates a RecommendationHandler
func NewRecommendationHandler(recommendations service.IRecommendationService, meals service.IMealLogService) *RecommendationHandler {
	return &RecommendationHandler{recommendations: recommendations, meals: meals}
}

// RegisterRoutes registers the recommendation routes on an authenticated group
func (h *RecommendationHandler) RegisterRoutes(router *gin.RouterGroup) {
	r := router.Group("/recommendations")
	{
		r.GET("", h.GetRecommendations)
		r.POST("/select", h.SelectRecommendation)
	}
}

// GetRecommendations scores ?hall= (every hall when omitted) and applies ?filter=
func (h *RecommendationHandler) GetRecommendations(c *gin.Context) {
	filter, err := recommend.ParseFilter(c.Query("filter"))
	if err != nil {
		respondError(c, err, "invalid filter")
		return
	}

	recs, err := h.recommendations.Recommend(c.Request.Context(), c.Query("hall"), filter)
	if err != nil {
		respondError(c, err, "failed to build recommendations")
		return
	}
	c.JSON(http.StatusOK, recs)
}

// SelectRecommendation logs a picked recommendation into the meal log
func (h *RecommendationHandler) SelectRecommendation(c *gin.Context) {
	var req types.SelectRecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	meal, err := h.meals.LogRecommendation(c.Request.Context(), middleware.UserID(c), &req)
	if err != nil {
		respondError(c, err, "failed to log meal")
		return
	}
	c.JSON(http.StatusCreated, meal)
}
