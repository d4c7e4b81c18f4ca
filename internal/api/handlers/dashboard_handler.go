package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smartkitchen/inventory-api/internal/service"
)

type DashboardHandler struct {
	service *service.DashboardService
}

func NewDashboardHandler(service *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// GetKitchenDashboard returns the aggregated kitchen overview.
func (h *DashboardHandler) GetKitchenDashboard(c *gin.Context) {
	dash, err := h.service.Overview(c.Request.Context())
	if err != nil {
		domainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":           "success",
		"inventory_status": dash.Inventory,
		"latest_meal_plan": dash.LatestMealPlan,
	})
}
