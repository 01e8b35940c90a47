package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/masspath/masspath/backend/internal/logger"
	"github.com/masspath/masspath/backend/internal/middleware"
	"github.com/masspath/masspath/backend/internal/service"
	"github.com/masspath/masspath/backend/internal/types"
)

// MealHandler serves the per-user meal log
type MealHandler struct {
	meals  service.IMealLogService
	photos service.IPhotoStore
	now    func() time.Time
}

// NewMealHandler creates a MealHandler
func NewMealHandler(meals service.IMealLogService, photos service.IPhotoStore) *MealHandler {
	return &MealHandler{meals: meals, photos: photos, now: time.Now}
}

// RegisterRoutes registers the meal routes on an authenticated group
func (h *MealHandler) RegisterRoutes(router *gin.RouterGroup) {
	m := router.Group("/meals")
	{
		m.POST("", h.LogMeal)
		m.GET("", h.ListMeals)
		m.GET("/summary", h.DailySummary)
		m.GET("/:id", h.GetMeal)
		m.DELETE("/:id", h.DeleteMeal)
		m.POST("/:id/photo", h.UploadPhoto)
	}
}

// LogMeal adds a meal to the caller's log
func (h *MealHandler) LogMeal(c *gin.Context) {
	var req types.LogMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	meal, err := h.meals.LogMeal(c.Request.Context(), middleware.UserID(c), &req)
	if err != nil {
		respondError(c, err, "failed to log meal")
		return
	}
	c.JSON(http.StatusCreated, meal)
}

// ListMeals returns the caller's meals of ?date= (today when omitted)
func (h *MealHandler) ListMeals(c *gin.Context) {
	day, err := service.ParseDay(c.Query("date"), h.now())
	if err != nil {
		respondError(c, err, "invalid date")
		return
	}

	meals, err := h.meals.ListMeals(c.Request.Context(), middleware.UserID(c), day)
	if err != nil {
		respondError(c, err, "failed to list meals")
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": day.Format("2006-01-02"), "meals": meals})
}

// DailySummary returns the caller's totals of ?date= against their target
func (h *MealHandler) DailySummary(c *gin.Context) {
	day, err := service.ParseDay(c.Query("date"), h.now())
	if err != nil {
		respondError(c, err, "invalid date")
		return
	}

	summary, err := h.meals.DailySummary(c.Request.Context(), middleware.UserID(c), day)
	if err != nil {
		respondError(c, err, "failed to build summary")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GetMeal returns one meal, with a photo URL when a photo was attached
func (h *MealHandler) GetMeal(c *gin.Context) {
	id, ok := parseMealID(c)
	if !ok {
		return
	}

	meal, err := h.meals.GetMeal(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		respondError(c, err, "failed to get meal")
		return
	}

	resp := gin.H{"meal": meal}
	if meal.PhotoKey != "" && h.photos != nil {
		url, err := h.photos.PresignDownload(c.Request.Context(), meal.PhotoKey)
		if err != nil {
			logger.Warn("failed to presign meal photo", "meal_id", meal.ID, "error", err)
		} else {
			resp["photo_url"] = url
		}
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteMeal removes one meal from the caller's log
func (h *MealHandler) DeleteMeal(c *gin.Context) {
	id, ok := parseMealID(c)
	if !ok {
		return
	}

	if err := h.meals.DeleteMeal(c.Request.Context(), middleware.UserID(c), id); err != nil {
		respondError(c, err, "failed to delete meal")
		return
	}
	c.Status(http.StatusNoContent)
}

// UploadPhoto returns a presigned upload URL for a meal photo and records
// its key on the meal
func (h *MealHandler) UploadPhoto(c *gin.Context) {
	id, ok := parseMealID(c)
	if !ok {
		return
	}
	if h.photos == nil {
		respondError(c, service.ErrPhotosDisabled, "")
		return
	}
	userID := middleware.UserID(c)

	if _, err := h.meals.GetMeal(c.Request.Context(), userID, id); err != nil {
		respondError(c, err, "failed to get meal")
		return
	}

	upload, err := h.photos.PresignUpload(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err, "failed to prepare photo upload")
		return
	}
	if err := h.meals.AttachPhoto(c.Request.Context(), userID, id, upload.Key); err != nil {
		respondError(c, err, "failed to attach photo")
		return
	}
	c.JSON(http.StatusOK, upload)
}

func parseMealID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal id"})
		return uuid.Nil, false
	}
	return id, true
}
