package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/masspath/masspath/backend/internal/middleware"
	"github.com/masspath/masspath/backend/internal/service"
	"github.com/masspath/masspath/backend/internal/types"
)

// FeedbackHandler accepts meal feedback
type FeedbackHandler struct {
	feedback service.IFeedbackService
	limiter  *middleware.RateLimiter
}

// NewFeedbackHandler creates a FeedbackHandler. limiter may be nil.
func NewFeedbackHandler(feedback service.IFeedbackService, limiter *middleware.RateLimiter) *FeedbackHandler {
	return &FeedbackHandler{feedback: feedback, limiter: limiter}
}

// RegisterRoutes registers the feedback route on an authenticated group
func (h *FeedbackHandler) RegisterRoutes(router *gin.RouterGroup) {
	handlers := []gin.HandlerFunc{}
	if h.limiter != nil {
		handlers = append(handlers, h.limiter.RateLimitMiddleware())
	}
	handlers = append(handlers, h.SubmitFeedback)
	router.POST("/feedback", handlers...)
}

// SubmitFeedback scores and stores feedback on a recommended meal
func (h *FeedbackHandler) SubmitFeedback(c *gin.Context) {
	var req types.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.feedback.SubmitFeedback(c.Request.Context(), middleware.UserID(c), &req)
	if err != nil {
		respondError(c, err, "failed to submit feedback")
		return
	}
	c.JSON(http.StatusCreated, resp)
}
