package handlers

import (
	"github.com/gofiber/fiber/v2"

	"shopnow/internal/services"
)

// AnalyticsHandler serves the dashboard aggregates.
type AnalyticsHandler struct {
	service *services.AnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(service *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		service: service,
	}
}

// RegisterRoutes registers the analytics routes with the Fiber app.
func (h *AnalyticsHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/analytics/dashboard", h.HandleDashboard)
}

// HandleDashboard returns the aggregate counts and revenue as of now.
func (h *AnalyticsHandler) HandleDashboard(c *fiber.Ctx) error {
	stats, err := h.service.Dashboard()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}
