package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/masspath/masspath/backend/internal/middleware"
	"github.com/masspath/masspath/backend/internal/service"
	"github.com/masspath/masspath/backend/internal/types"
)

// ProfileHandler serves body metrics and calorie targets
type ProfileHandler struct {
	profiles service.IProfileService
}

// NewProfileHandler creates a ProfileHandler
func NewProfileHandler(profiles service.IProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// RegisterRoutes registers the profile routes on an authenticated group
func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup) {
	p := router.Group("/profile")
	{
		p.GET("", h.GetProfile)
		p.POST("/calculate-calories", h.CalculateCalories)
		p.GET("/calories", h.GetDailyCalories)
	}
}

// GetProfile returns the caller's stored profile
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profile, err := h.profiles.GetProfile(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err, "failed to get profile")
		return
	}
	c.JSON(http.StatusOK, profile)
}

// CalculateCalories computes and stores the caller's daily calorie target
func (h *ProfileHandler) CalculateCalories(c *gin.Context) {
	var req types.CalculateCaloriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.profiles.CalculateCalories(c.Request.Context(), middleware.UserID(c), &req)
	if err != nil {
		respondError(c, err, "failed to calculate calories")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetDailyCalories returns the caller's calorie target, the default when unset
func (h *ProfileHandler) GetDailyCalories(c *gin.Context) {
	target, err := h.profiles.DailyCalories(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err, "failed to get calorie target")
		return
	}
	c.JSON(http.StatusOK, gin.H{"daily_calories": target})
}
