package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smartkitchen/inventory-api/internal/domain"
	"github.com/smartkitchen/inventory-api/internal/service"
)

type ShoppingHandler struct {
	service *service.ShoppingService
}

func NewShoppingHandler(service *service.ShoppingService) *ShoppingHandler {
	return &ShoppingHandler{service: service}
}

// GetSmartShoppingList returns the flat urgency-capped list.
func (h *ShoppingHandler) GetSmartShoppingList(c *gin.Context) {
	entries, err := h.service.BasicList(c.Request.Context())
	if err != nil {
		domainError(c, err)
		return
	}

	if len(entries) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"status":        "success",
			"message":       "All items have sufficient stock",
			"shopping_list": []domain.ShoppingListEntry{},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":        "success",
		"shopping_list": entries,
	})
}

type enhancedListRequest struct {
	Inventory []domain.InventoryItem `json:"inventory"`
}

// PostEnhancedShoppingList composes the categorized list from consumption
// forecasts, the request's inventory snapshot and today's meal plan.
func (h *ShoppingHandler) PostEnhancedShoppingList(c *gin.Context) {
	var req enhancedListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	result, err := h.service.EnhancedList(c.Request.Context(), req.Inventory)
	if err != nil {
		domainError(c, err)
		return
	}

	if result.SufficientStock {
		c.JSON(http.StatusOK, gin.H{
			"status":        "success",
			"message":       "All items have sufficient stock",
			"shopping_list": []domain.ShoppingListEntry{},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":        "success",
		"shopping_list": result.List,
		"total_items":   result.List.TotalItems(),
	})
}
