package handlers

import (
	"fmt"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smartkitchen/inventory-api/internal/domain"
	"github.com/smartkitchen/inventory-api/internal/service"
)

type ForecastHandler struct {
	service *service.ForecastService
}

func NewForecastHandler(service *service.ForecastService) *ForecastHandler {
	return &ForecastHandler{service: service}
}

// PredictItem forecasts when the named item runs out.
func (h *ForecastHandler) PredictItem(c *gin.Context) {
	itemName := c.Param("item_name")

	profile, err := h.service.Predict(c.Request.Context(), itemName)
	if err != nil {
		domainError(c, err)
		return
	}

	refill := profile.RefillDate.Format(domain.DateLayout)
	c.JSON(http.StatusOK, gin.H{
		"status":           "success",
		"item_name":        profile.ItemName,
		"prediction":       fmt.Sprintf("Refill needed by %s", refill),
		"days_until_empty": round1(profile.DaysUntilEmpty),
		"refill_date":      refill,
	})
}

// PredictExpiry reports the tracked item that depletes soonest.
func (h *ForecastHandler) PredictExpiry(c *gin.Context) {
	profile, err := h.service.NextEmpty(c.Request.Context())
	if err != nil {
		domainError(c, err)
		return
	}

	expiry := profile.RefillDate.Format(domain.DateLayout)
	c.JSON(http.StatusOK, gin.H{
		"status":         "success",
		"soonest_expiry": fmt.Sprintf("%s will run out by %s", profile.ItemName, expiry),
		"item_name":      profile.ItemName,
		"days_left":      round1(profile.DaysUntilEmpty),
		"expiry_date":    expiry,
	})
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}
