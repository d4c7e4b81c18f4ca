package shopping

import (
	"context"
	"testing"
	"time"

	"github.com/smartkitchen/inventory-api/internal/domain"
	"github.com/stretchr/testify/assert"
)

func day(s string) time.Time {
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func event(name, date string, used, stock float64) domain.ConsumptionEvent {
	return domain.ConsumptionEvent{
		ItemName:       name,
		DateConsumed:   day(date),
		QuantityUsed:   used,
		RemainingStock: stock,
	}
}

// milkEvents forecast to roughly 6.2 days of stock left.
func milkEvents() []domain.ConsumptionEvent {
	return []domain.ConsumptionEvent{
		event("Milk", "2025-03-01", 1, 5),
		event("Milk", "2025-03-05", 1, 4),
		event("Milk", "2025-03-10", 1, 3),
	}
}

// riceEvents forecast to 40 days of stock left.
func riceEvents() []domain.ConsumptionEvent {
	return []domain.ConsumptionEvent{
		event("Rice", "2025-03-03", 500, 5000),
		event("Rice", "2025-03-08", 500, 4500),
		event("Rice", "2025-03-13", 500, 4000),
	}
}

type stubRecommender struct {
	suggestions map[string][]string
}

func (s *stubRecommender) Suggest(ctx context.Context, itemName string) ([]string, error) {
	return s.suggestions[itemName], nil
}

func TestComposeSufficientStock(t *testing.T) {
	c := NewComposer(nil, 5, 2)

	result, err := c.Compose(context.Background(), ComposeInput{
		Events:        riceEvents(),
		ThresholdDays: 7,
		Now:           day("2025-03-15"),
	})

	assert.NoError(t, err)
	assert.True(t, result.SufficientStock)
	assert.Equal(t, 0, result.List.TotalItems())
	assert.NotNil(t, result.List.UrgentItems)
	assert.NotNil(t, result.List.MealPlanItems)
	assert.NotNil(t, result.List.OtherItems)
	assert.NotNil(t, result.List.ComplementarySuggestions)
}

func TestComposeForecastBelowThreshold(t *testing.T) {
	c := NewComposer(nil, 5, 2)

	result, err := c.Compose(context.Background(), ComposeInput{
		Events:        append(milkEvents(), riceEvents()...),
		ThresholdDays: 7,
		Now:           day("2025-03-15"),
	})

	assert.NoError(t, err)
	assert.False(t, result.SufficientStock)
	assert.Equal(t, 1, result.List.TotalItems())

	entry := result.List.OtherItems[0]
	assert.Equal(t, "Milk", entry.ItemName)
	assert.Equal(t, domain.SourceConsumptionPrediction, entry.Source)
	assert.Equal(t, 6.2, *entry.DaysLeft)
	assert.Equal(t, 0.48, *entry.DailyUsage)
	assert.Equal(t, 3.0, *entry.RemainingStock)
	assert.Equal(t, "2025-03-21", *entry.RefillBy)
}

func TestComposeInventoryOverride(t *testing.T) {
	c := NewComposer(nil, 5, 2)

	t.Run("zero quantity override makes item urgent", func(t *testing.T) {
		result, err := c.Compose(context.Background(), ComposeInput{
			Events:        riceEvents(),
			Inventory:     []domain.InventoryItem{{ItemName: "rice", Quantity: 0, Unit: "g"}},
			ThresholdDays: 7,
			Now:           day("2025-03-15"),
		})

		assert.NoError(t, err)
		assert.Len(t, result.List.UrgentItems, 1)
		entry := result.List.UrgentItems[0]
		assert.Equal(t, "Rice", entry.ItemName)
		assert.Equal(t, 0.0, *entry.DaysLeft)
		assert.Equal(t, 0.0, *entry.RemainingStock)
	})

	t.Run("large override keeps item off the list", func(t *testing.T) {
		result, err := c.Compose(context.Background(), ComposeInput{
			Events:        milkEvents(),
			Inventory:     []domain.InventoryItem{{ItemName: "Milk", Quantity: 50}},
			ThresholdDays: 7,
			Now:           day("2025-03-15"),
		})

		assert.NoError(t, err)
		assert.True(t, result.SufficientStock)
	})
}

func TestComposeMealPlanIngredients(t *testing.T) {
	c := NewComposer(nil, 5, 2)

	result, err := c.Compose(context.Background(), ComposeInput{
		Events:    riceEvents(),
		Inventory: []domain.InventoryItem{{ItemName: "Tomatoes", Quantity: 5}},
		MealPlanIngredients: []string{
			"2 cups rice",       // covered by consumption history
			"3 Tomatoes, diced", // covered by inventory
			"1 pinch saffron",   // missing
		},
		ThresholdDays: 7,
		Now:           day("2025-03-15"),
	})

	assert.NoError(t, err)
	assert.Len(t, result.List.MealPlanItems, 1)

	entry := result.List.MealPlanItems[0]
	assert.Equal(t, "Saffron", entry.ItemName)
	assert.Equal(t, domain.SourceMealPlanRequirement, entry.Source)
	assert.Equal(t, 0.0, *entry.DaysLeft)
	assert.Equal(t, 0.0, *entry.RemainingStock)
	assert.Equal(t, "2025-03-15", *entry.RefillBy)
	assert.Nil(t, entry.DailyUsage)
}

func TestComposeComplementarySuggestions(t *testing.T) {
	rec := &stubRecommender{suggestions: map[string][]string{
		"Milk": {"Cereal", "Rice"},
	}}
	c := NewComposer(rec, 5, 2)

	result, err := c.Compose(context.Background(), ComposeInput{
		Events:        append(milkEvents(), riceEvents()...),
		ThresholdDays: 50,
		Now:           day("2025-03-15"),
	})

	assert.NoError(t, err)

	// Rice is already on the list, so only Cereal becomes a complementary entry.
	assert.Len(t, result.List.ComplementarySuggestions, 1)
	entry := result.List.ComplementarySuggestions[0]
	assert.Equal(t, "Cereal", entry.ItemName)
	assert.Equal(t, domain.SourceComplementarySuggestion, entry.Source)
	assert.Nil(t, entry.DaysLeft)
	assert.Nil(t, entry.RemainingStock)
	assert.Nil(t, entry.RefillBy)
	assert.Nil(t, entry.DailyUsage)

	milkEntry := result.List.OtherItems[0]
	assert.Equal(t, []string{"Cereal", "Rice"}, milkEntry.SuggestedSimilarItems)
}

func TestComposeSuggestionOwnedInInventorySkipped(t *testing.T) {
	rec := &stubRecommender{suggestions: map[string][]string{
		"Milk": {"Cereal"},
	}}
	c := NewComposer(rec, 5, 2)

	result, err := c.Compose(context.Background(), ComposeInput{
		Events:        milkEvents(),
		Inventory:     []domain.InventoryItem{{ItemName: "Cereal", Quantity: 2}},
		ThresholdDays: 7,
		Now:           day("2025-03-15"),
	})

	assert.NoError(t, err)
	assert.Empty(t, result.List.ComplementarySuggestions)
}

func TestComposeOrdering(t *testing.T) {
	rec := &stubRecommender{suggestions: map[string][]string{
		"Milk": {"Cereal"},
	}}
	c := NewComposer(rec, 5, 2)

	result, err := c.Compose(context.Background(), ComposeInput{
		Events:              append(milkEvents(), riceEvents()...),
		MealPlanIngredients: []string{"1 pinch saffron"},
		ThresholdDays:       50,
		Now:                 day("2025-03-15"),
	})

	assert.NoError(t, err)

	// Meal plan entry has days 0, Milk 6.2, Rice 40, Cereal unknown (nil).
	all := append(append(append(
		result.List.MealPlanItems,
		result.List.UrgentItems...),
		result.List.OtherItems...),
		result.List.ComplementarySuggestions...)
	assert.Equal(t, 4, len(all))

	assert.Equal(t, "Saffron", result.List.MealPlanItems[0].ItemName)
	assert.Equal(t, []string{"Milk", "Rice"}, []string{
		result.List.OtherItems[0].ItemName,
		result.List.OtherItems[1].ItemName,
	})
	assert.Equal(t, "Cereal", result.List.ComplementarySuggestions[0].ItemName)
}

func TestComposeIdempotent(t *testing.T) {
	c := NewComposer(nil, 5, 2)
	in := ComposeInput{
		Events:              append(milkEvents(), riceEvents()...),
		MealPlanIngredients: []string{"1 pinch saffron"},
		ThresholdDays:       7,
		Now:                 day("2025-03-15"),
	}

	first, err := c.Compose(context.Background(), in)
	assert.NoError(t, err)
	second, err := c.Compose(context.Background(), in)
	assert.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestComposeBasic(t *testing.T) {
	now := day("2025-03-15")

	t.Run("empty log yields empty list", func(t *testing.T) {
		c := NewComposer(nil, 5, 2)
		entries, err := c.ComposeBasic(context.Background(), nil, 5, 5, now)
		assert.NoError(t, err)
		assert.Empty(t, entries)
		assert.NotNil(t, entries)
	})

	t.Run("zero stock items are excluded", func(t *testing.T) {
		c := NewComposer(nil, 5, 2)
		events := []domain.ConsumptionEvent{
			event("Eggs", "2025-03-02", 6, 12),
			event("Eggs", "2025-03-06", 6, 6),
			event("Eggs", "2025-03-09", 6, 0),
		}
		entries, err := c.ComposeBasic(context.Background(), events, 5, 5, now)
		assert.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("caps at limit, most urgent first", func(t *testing.T) {
		c := NewComposer(nil, 5, 2)
		events := append(milkEvents(),
			event("Bread", "2025-03-05", 1, 3),
			event("Bread", "2025-03-08", 1, 2),
			event("Bread", "2025-03-12", 1, 1),
		)

		entries, err := c.ComposeBasic(context.Background(), events, 50, 1, now)
		assert.NoError(t, err)
		assert.Len(t, entries, 1)
		assert.Equal(t, "Bread", entries[0].ItemName)
	})

	t.Run("suggestions attached", func(t *testing.T) {
		rec := &stubRecommender{suggestions: map[string][]string{
			"Milk": {"Cereal"},
		}}
		c := NewComposer(rec, 5, 2)

		entries, err := c.ComposeBasic(context.Background(), milkEvents(), 50, 5, now)
		assert.NoError(t, err)
		assert.Len(t, entries, 1)
		assert.Equal(t, []string{"Cereal"}, entries[0].SuggestedSimilarItems)
	})
}
