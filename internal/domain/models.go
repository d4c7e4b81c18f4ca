package domain

import "time"

// DateLayout is the wire format for all date fields.
const DateLayout = "2006-01-02"

// ConsumptionEvent is one logged consumption action for an item. Events are
// append-only; within an item they are ordered by DateConsumed ascending with
// ties broken by insertion order (ID).
type ConsumptionEvent struct {
	ID             int64     `json:"id" db:"id"`
	ItemName       string    `json:"item_name" db:"item_name"`
	DateConsumed   time.Time `json:"date_consumed" db:"date_consumed"`
	QuantityUsed   float64   `json:"quantity_used" db:"quantity_used"`
	RemainingStock float64   `json:"remaining_stock" db:"remaining_stock"`
}

// ItemUsageProfile is the derived usage summary for a single item. It is
// recomputed on demand and never persisted.
type ItemUsageProfile struct {
	ItemName             string    `json:"item_name"`
	AvgDailyUsage        float64   `json:"avg_daily_usage"`
	LatestRemainingStock float64   `json:"latest_remaining_stock"`
	DaysUntilEmpty       float64   `json:"days_until_empty"`
	RefillDate           time.Time `json:"refill_date"`
}

// InventoryItem is a caller-supplied inventory snapshot record. When present
// for an item, its Quantity supersedes the stock reading derived from the
// consumption log; it never overrides the derived usage rate.
type InventoryItem struct {
	ItemName   string  `json:"item_name"`
	Quantity   float64 `json:"quantity"`
	Unit       string  `json:"unit"`
	ExpiryDate string  `json:"expiry_date,omitempty"`
}

// EntrySource identifies why an entry is on the shopping list.
type EntrySource string

const (
	SourceConsumptionPrediction   EntrySource = "consumption_prediction"
	SourceMealPlanRequirement     EntrySource = "meal_plan_requirement"
	SourceComplementarySuggestion EntrySource = "complementary_suggestion"
)

// ShoppingListEntry is one line of a composed shopping list. Numeric fields
// are pointers so that "unknown" (nil) stays distinct from "zero".
type ShoppingListEntry struct {
	ItemName              string      `json:"item_name"`
	RefillBy              *string     `json:"refill_by"`
	RemainingStock        *float64    `json:"remaining_stock"`
	DailyUsage            *float64    `json:"daily_usage"`
	DaysLeft              *float64    `json:"days_left"`
	SuggestedSimilarItems []string    `json:"suggested_similar_items"`
	Source                EntrySource `json:"source"`
}

// CategorizedShoppingList partitions a composed list into urgency tiers.
// Every entry appears in exactly one bucket.
type CategorizedShoppingList struct {
	UrgentItems              []ShoppingListEntry `json:"urgent_items"`
	MealPlanItems            []ShoppingListEntry `json:"meal_plan_items"`
	OtherItems               []ShoppingListEntry `json:"other_items"`
	ComplementarySuggestions []ShoppingListEntry `json:"complementary_suggestions"`
}

// TotalItems returns the number of entries across all buckets.
func (l *CategorizedShoppingList) TotalItems() int {
	return len(l.UrgentItems) + len(l.MealPlanItems) + len(l.OtherItems) + len(l.ComplementarySuggestions)
}

// RecipeDetails describes a single recipe in a meal plan. Ingredients are
// free-text quantity+name strings like "2 cups rice, chopped".
type RecipeDetails struct {
	Name         string   `json:"name"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	DietaryTags  []string `json:"dietary_tags,omitempty"`
	PrepTime     string   `json:"prep_time,omitempty"`
	Calories     int      `json:"calories,omitempty"`
}

// MealPlan is a full day's plan with up to three meals.
type MealPlan struct {
	ID               int64           `json:"id,omitempty"`
	Date             string          `json:"date"`
	Breakfast        RecipeDetails   `json:"breakfast"`
	Lunch            RecipeDetails   `json:"lunch"`
	Dinner           RecipeDetails   `json:"dinner"`
	SuggestedRecipes []RecipeDetails `json:"suggested_recipes,omitempty"`
}

// Ingredients returns the free-text ingredient strings across all three meals.
func (p *MealPlan) Ingredients() []string {
	var out []string
	for _, meal := range []RecipeDetails{p.Breakfast, p.Lunch, p.Dinner} {
		out = append(out, meal.Ingredients...)
	}
	return out
}

// DietaryPreference captures the constraints for meal plan generation.
type DietaryPreference struct {
	PreferenceType       string   `json:"preference_type"`
	AvoidIngredients     []string `json:"avoid_ingredients"`
	PreferredIngredients []string `json:"preferred_ingredients"`
	CalorieTarget        int      `json:"calorie_target,omitempty"`
}

// MealPlanRequest is the caller-supplied input for meal plan generation.
type MealPlanRequest struct {
	DietaryPreferences DietaryPreference `json:"dietary_preferences"`
	Inventory          []InventoryItem   `json:"inventory"`
}
