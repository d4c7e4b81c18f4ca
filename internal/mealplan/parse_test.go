package mealplan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const planJSON = `{
	"date": "2025-03-15",
	"breakfast": {
		"name": "Oatmeal",
		"ingredients": ["1 cup oats", "2 cups milk"],
		"instructions": ["Boil milk", "Add oats"],
		"prep_time": "10 min",
		"calories": 350
	},
	"lunch": {
		"name": "Tomato Rice",
		"ingredients": [
			{"name": "rice", "quantity": "2 cups"},
			{"item": "tomatoes", "amount": "3"}
		],
		"instructions": "Cook everything together"
	},
	"dinner": {
		"name": "Veggie Soup",
		"ingredients": ["1 onion, diced"]
	}
}`

func TestParsePlanResponse(t *testing.T) {
	t.Run("plain JSON", func(t *testing.T) {
		plan, err := ParsePlanResponse(planJSON, "2025-03-14")
		assert.NoError(t, err)
		assert.Equal(t, "2025-03-15", plan.Date)
		assert.Equal(t, "Oatmeal", plan.Breakfast.Name)
		assert.Equal(t, []string{"1 cup oats", "2 cups milk"}, plan.Breakfast.Ingredients)
		assert.Equal(t, []string{"Boil milk", "Add oats"}, plan.Breakfast.Instructions)
		assert.Equal(t, 350, plan.Breakfast.Calories)
	})

	t.Run("markdown fenced response", func(t *testing.T) {
		fenced := "Here is your plan:\n```json\n" + planJSON + "\n```\nEnjoy!"
		plan, err := ParsePlanResponse(fenced, "2025-03-14")
		assert.NoError(t, err)
		assert.Equal(t, "Oatmeal", plan.Breakfast.Name)
	})

	t.Run("object ingredients flatten to text", func(t *testing.T) {
		plan, err := ParsePlanResponse(planJSON, "2025-03-14")
		assert.NoError(t, err)
		assert.Equal(t, []string{"2 cups rice", "3 tomatoes"}, plan.Lunch.Ingredients)
	})

	t.Run("string instructions become a single step", func(t *testing.T) {
		plan, err := ParsePlanResponse(planJSON, "2025-03-14")
		assert.NoError(t, err)
		assert.Equal(t, []string{"Cook everything together"}, plan.Lunch.Instructions)
	})

	t.Run("fallback date when response has none", func(t *testing.T) {
		plan, err := ParsePlanResponse(`{"breakfast": {"name": "Toast"}}`, "2025-03-14")
		assert.NoError(t, err)
		assert.Equal(t, "2025-03-14", plan.Date)
	})

	t.Run("no meals is an error", func(t *testing.T) {
		_, err := ParsePlanResponse(`{"date": "2025-03-15"}`, "2025-03-14")
		assert.Error(t, err)
	})

	t.Run("no JSON at all", func(t *testing.T) {
		_, err := ParsePlanResponse("Sorry, I cannot help with that.", "2025-03-14")
		assert.Error(t, err)
	})

	t.Run("malformed JSON", func(t *testing.T) {
		_, err := ParsePlanResponse(`{"breakfast": {`, "2025-03-14")
		assert.Error(t, err)
	})
}

func TestMealPlanIngredients(t *testing.T) {
	plan, err := ParsePlanResponse(planJSON, "2025-03-14")
	assert.NoError(t, err)

	got := plan.Ingredients()
	assert.Equal(t, []string{
		"1 cup oats", "2 cups milk",
		"2 cups rice", "3 tomatoes",
		"1 onion, diced",
	}, got)
}
