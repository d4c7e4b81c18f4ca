package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smartkitchen/inventory-api/internal/domain"
	"github.com/smartkitchen/inventory-api/internal/service"
)

type MealPlanHandler struct {
	service *service.MealPlanService
}

func NewMealPlanHandler(service *service.MealPlanService) *MealPlanHandler {
	return &MealPlanHandler{service: service}
}

// GenerateMealPlan produces and stores a plan for today.
func (h *MealPlanHandler) GenerateMealPlan(c *gin.Context) {
	var req domain.MealPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	plan, err := h.service.Generate(c.Request.Context(), req)
	if err != nil {
		domainError(c, err)
		return
	}

	c.JSON(http.StatusOK, plan)
}

// GetMealPlans lists stored plans, oldest first.
func (h *MealPlanHandler) GetMealPlans(c *gin.Context) {
	plans, err := h.service.List(c.Request.Context())
	if err != nil {
		domainError(c, err)
		return
	}
	if plans == nil {
		plans = []domain.MealPlan{}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "success",
		"meal_plans": plans,
	})
}

// SmartMealPlanner generates a plan plus shopping suggestions for the
// ingredients the request inventory cannot cover.
func (h *MealPlanHandler) SmartMealPlanner(c *gin.Context) {
	var req domain.MealPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	result, err := h.service.SmartPlan(c.Request.Context(), req)
	if err != nil {
		domainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":               "success",
		"meal_plan":            result.MealPlan,
		"shopping_suggestions": result.ShoppingSuggestions,
	})
}
