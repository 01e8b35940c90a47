package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/masspath/masspath/backend/internal/middleware"
	"github.com/masspath/masspath/backend/internal/service"
	"github.com/masspath/masspath/backend/internal/types"
)

// PreferenceHandler serves inferred and learned taste preferences
type PreferenceHandler struct {
	inferrer service.IPreferenceInferrer
	feedback service.IFeedbackService
}

// NewPreferenceHandler creates a PreferenceHandler
func NewPreferenceHandler(inferrer service.IPreferenceInferrer, feedback service.IFeedbackService) *PreferenceHandler {
	return &PreferenceHandler{inferrer: inferrer, feedback: feedback}
}

// RegisterRoutes registers the preference routes on an authenticated group
func (h *PreferenceHandler) RegisterRoutes(router *gin.RouterGroup) {
	p := router.Group("/preferences")
	{
		p.POST("/infer", h.Infer)
		p.GET("/learned", h.Learned)
	}
}

// Infer infers preference weights from recently eaten meal names
func (h *PreferenceHandler) Infer(c *gin.Context) {
	var req types.InferPreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.inferrer.Infer(c.Request.Context(), req.Meals)
	if err != nil {
		respondError(c, err, "failed to infer preferences")
		return
	}
	c.JSON(http.StatusOK, result)
}

// Learned summarizes the caller's well received meals
func (h *PreferenceHandler) Learned(c *gin.Context) {
	prefs, err := h.feedback.LearnedPreferences(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err, "failed to load preferences")
		return
	}
	c.JSON(http.StatusOK, prefs)
}
