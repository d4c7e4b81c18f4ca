package mealplan

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/smartkitchen/inventory-api/internal/domain"
)

// rawRecipe tolerates the shapes models actually return: ingredients as
// strings or as {name, quantity} objects, instructions as a string or a list.
type rawRecipe struct {
	Name         string            `json:"name"`
	Ingredients  []json.RawMessage `json:"ingredients"`
	Instructions json.RawMessage   `json:"instructions"`
	DietaryTags  []string          `json:"dietary_tags"`
	PrepTime     string            `json:"prep_time"`
	Calories     int               `json:"calories"`
}

type rawPlan struct {
	Date             string      `json:"date"`
	Breakfast        *rawRecipe  `json:"breakfast"`
	Lunch            *rawRecipe  `json:"lunch"`
	Dinner           *rawRecipe  `json:"dinner"`
	SuggestedRecipes []rawRecipe `json:"suggested_recipes"`
}

// ParsePlanResponse coerces a model response into a MealPlan. The response
// may be wrapped in markdown fences or prose; only the outermost JSON object
// is considered. A plan missing all three meals is an error.
func ParsePlanResponse(response, date string) (*domain.MealPlan, error) {
	payload := extractJSON(response)
	if payload == "" {
		return nil, fmt.Errorf("no JSON object in model response")
	}

	var raw rawPlan
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return nil, fmt.Errorf("failed to decode meal plan: %w", err)
	}
	if raw.Breakfast == nil && raw.Lunch == nil && raw.Dinner == nil {
		return nil, fmt.Errorf("meal plan response has no meals")
	}

	plan := &domain.MealPlan{Date: date}
	if raw.Date != "" {
		plan.Date = raw.Date
	}
	plan.Breakfast = coerceRecipe(raw.Breakfast)
	plan.Lunch = coerceRecipe(raw.Lunch)
	plan.Dinner = coerceRecipe(raw.Dinner)
	for _, r := range raw.SuggestedRecipes {
		plan.SuggestedRecipes = append(plan.SuggestedRecipes, coerceRecipe(&r))
	}
	return plan, nil
}

func coerceRecipe(raw *rawRecipe) domain.RecipeDetails {
	if raw == nil {
		return domain.RecipeDetails{}
	}

	recipe := domain.RecipeDetails{
		Name:        raw.Name,
		DietaryTags: raw.DietaryTags,
		PrepTime:    raw.PrepTime,
		Calories:    raw.Calories,
	}

	for _, ing := range raw.Ingredients {
		if s := coerceIngredient(ing); s != "" {
			recipe.Ingredients = append(recipe.Ingredients, s)
		}
	}

	if len(raw.Instructions) > 0 {
		var steps []string
		if err := json.Unmarshal(raw.Instructions, &steps); err == nil {
			recipe.Instructions = steps
		} else {
			var one string
			if err := json.Unmarshal(raw.Instructions, &one); err == nil && one != "" {
				recipe.Instructions = []string{one}
			}
		}
	}

	return recipe
}

// coerceIngredient flattens either "2 cups rice" or
// {"name": "rice", "quantity": "2 cups"} into one free-text string.
func coerceIngredient(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}

	var obj struct {
		Name     string `json:"name"`
		Item     string `json:"item"`
		Quantity string `json:"quantity"`
		Amount   string `json:"amount"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return ""
	}

	name := obj.Name
	if name == "" {
		name = obj.Item
	}
	qty := obj.Quantity
	if qty == "" {
		qty = obj.Amount
	}
	return strings.TrimSpace(strings.TrimSpace(qty) + " " + name)
}

// extractJSON returns the substring from the first '{' to the last '}',
// stripping any markdown fences first.
func extractJSON(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return ""
	}
	return s[start : end+1]
}
