package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/smartkitchen/inventory-api/internal/domain"
	"github.com/smartkitchen/inventory-api/internal/service"
)

type ConsumptionHandler struct {
	service *service.ConsumptionService
}

func NewConsumptionHandler(service *service.ConsumptionService) *ConsumptionHandler {
	return &ConsumptionHandler{service: service}
}

type logConsumptionRequest struct {
	ItemName       string  `json:"item_name" binding:"required"`
	DateConsumed   string  `json:"date_consumed"`
	QuantityUsed   float64 `json:"quantity_used"`
	RemainingStock float64 `json:"remaining_stock"`
}

// LogConsumption appends one event. The date is optional and defaults to
// today; when present it must use the YYYY-MM-DD layout.
func (h *ConsumptionHandler) LogConsumption(c *gin.Context) {
	var req logConsumptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	event := domain.ConsumptionEvent{
		ItemName:       req.ItemName,
		QuantityUsed:   req.QuantityUsed,
		RemainingStock: req.RemainingStock,
	}
	if req.DateConsumed != "" {
		date, err := time.Parse(domain.DateLayout, req.DateConsumed)
		if err != nil {
			errorResponse(c, http.StatusBadRequest, "invalid date_consumed, expected YYYY-MM-DD")
			return
		}
		event.DateConsumed = date
	}

	if err := h.service.Log(c.Request.Context(), &event); err != nil {
		domainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Consumption logged successfully",
	})
}

// GetItems lists the distinct tracked item names.
func (h *ConsumptionHandler) GetItems(c *gin.Context) {
	items, err := h.service.Items(c.Request.Context())
	if err != nil {
		domainError(c, err)
		return
	}
	if items == nil {
		items = []string{}
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"items":  items,
	})
}

// GetItemHistory returns one item's events, oldest first.
func (h *ConsumptionHandler) GetItemHistory(c *gin.Context) {
	itemName := c.Param("item_name")

	events, err := h.service.History(c.Request.Context(), itemName)
	if err != nil {
		domainError(c, err)
		return
	}

	history := make([]gin.H, 0, len(events))
	for _, event := range events {
		history = append(history, gin.H{
			"date":            event.DateConsumed.Format(domain.DateLayout),
			"quantity_used":   event.QuantityUsed,
			"remaining_stock": event.RemainingStock,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "success",
		"item_name": itemName,
		"history":   history,
	})
}
