package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/masspath/masspath/backend/internal/menu"
	"github.com/masspath/masspath/backend/internal/recommend"
	"github.com/masspath/masspath/backend/internal/service"
)

// statusFor maps service errors onto HTTP statuses
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrUnknownHall),
		errors.Is(err, service.ErrMealNotFound),
		errors.Is(err, service.ErrProfileNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidProfile),
		errors.Is(err, service.ErrInvalidDate),
		errors.Is(err, service.ErrNoMeals),
		errors.Is(err, service.ErrInvalidFeedback),
		errors.Is(err, service.ErrInvalidMeal),
		errors.Is(err, recommend.ErrUnknownFilter),
		errors.Is(err, menu.ErrUnknownMealPeriod):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrPhotosDisabled):
		return http.StatusServiceUnavailable
	case errors.Is(err, service.ErrUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as a JSON error body. Unexpected errors are
// attached to the context for logging and reported generically.
func respondError(c *gin.Context, err error, message string) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		c.Error(err)
		c.JSON(status, gin.H{"error": message})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
