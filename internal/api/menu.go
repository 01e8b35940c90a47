package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/masspath/masspath/backend/internal/menu"
	"github.com/masspath/masspath/backend/internal/service"
)

// MenuHandler serves normalized dining hall menus
type MenuHandler struct {
	menus service.IMenuService
}

// NewMenuHandler creates a MenuHandler
func NewMenuHandler(menus service.IMenuService) *MenuHandler {
	return &MenuHandler{menus: menus}
}

// RegisterRoutes registers the public menu routes
func (h *MenuHandler) RegisterRoutes(router *gin.RouterGroup) {
	m := router.Group("/menu")
	{
		m.GET("/halls", h.ListHalls)
		m.GET("/all", h.GetAllMenus)
		m.GET("/:hall", h.GetMenu)
	}
}

// ListHalls returns the configured dining halls
func (h *MenuHandler) ListHalls(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"halls": h.menus.Halls()})
}

// GetMenu returns one hall's menu, optionally narrowed by period, category
// and a search term
func (h *MenuHandler) GetMenu(c *gin.Context) {
	q := service.MenuQuery{
		Category: c.Query("category"),
		Term:     c.Query("q"),
	}
	if p := c.Query("period"); p != "" {
		period, err := menu.ParsePeriodFilter(p)
		if err != nil {
			respondError(c, err, "invalid period")
			return
		}
		q.Period = period
	}

	records, err := h.menus.Query(c.Request.Context(), c.Param("hall"), q)
	if err != nil {
		respondError(c, err, "failed to load menu")
		return
	}
	hall, _ := h.menus.ResolveHall(c.Param("hall"))
	c.JSON(http.StatusOK, gin.H{
		"hall":       hall,
		"count":      len(records),
		"categories": menu.Categories(records),
		"items":      records,
	})
}

// GetAllMenus returns the menus of every hall
func (h *MenuHandler) GetAllMenus(c *gin.Context) {
	records, err := h.menus.GetAllMenus(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed to load menus")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"halls": h.menus.Halls(),
		"count": len(records),
		"items": records,
	})
}
