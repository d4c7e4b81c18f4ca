package service

import (
	"testing"

	"github.com/smartkitchen/inventory-api/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestMissingIngredients(t *testing.T) {
	plan := &domain.MealPlan{
		Breakfast: domain.RecipeDetails{Ingredients: []string{"2 cups rice", "2 eggs"}},
		Lunch:     domain.RecipeDetails{Ingredients: []string{"3 tomatoes, diced", "1 pinch saffron"}},
		Dinner:    domain.RecipeDetails{Ingredients: []string{"2 cups rice"}},
	}
	inventory := []domain.InventoryItem{
		{ItemName: "Rice", Quantity: 500, Unit: "g"},
		{ItemName: "Tomatoes", Quantity: 5, Unit: "pieces"},
	}

	missing := missingIngredients(plan, inventory)

	// Rice and tomatoes are covered, duplicates collapse, order follows the plan.
	assert.Equal(t, []string{"eggs", "saffron"}, missing)
}

func TestMissingIngredientsEmptyInventory(t *testing.T) {
	plan := &domain.MealPlan{
		Breakfast: domain.RecipeDetails{Ingredients: []string{"2 eggs"}},
	}

	assert.Equal(t, []string{"eggs"}, missingIngredients(plan, nil))
}

func TestMissingIngredientsNothingMissing(t *testing.T) {
	plan := &domain.MealPlan{
		Dinner: domain.RecipeDetails{Ingredients: []string{"2 cups rice"}},
	}
	inventory := []domain.InventoryItem{{ItemName: "rice", Quantity: 1}}

	assert.Empty(t, missingIngredients(plan, inventory))
}
