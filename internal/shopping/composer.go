// Package shopping composes consumption forecasts, caller-supplied inventory
// snapshots, meal plan requirements and AI suggestions into a prioritized,
// deduplicated, categorized shopping list.
package shopping

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/smartkitchen/inventory-api/internal/domain"
	"github.com/smartkitchen/inventory-api/internal/forecast"
	"github.com/smartkitchen/inventory-api/internal/ingredient"
	"github.com/smartkitchen/inventory-api/internal/recommend"
)

// urgentCutoffDays bounds the urgent bucket: entries with a known days-left
// at or below this go to urgent_items.
const urgentCutoffDays = 2.0

// Composer builds shopping lists. All inputs are request-scoped snapshots;
// composing is a pure function of them plus the recommendation capability.
type Composer struct {
	recommender recommend.Recommender
	// recommendLimit caps external suggestion calls per request.
	recommendLimit int
	maxParallel    int
}

func NewComposer(rec recommend.Recommender, recommendLimit, maxParallel int) *Composer {
	if rec == nil {
		rec = recommend.NoopRecommender{}
	}
	if recommendLimit <= 0 {
		recommendLimit = 5
	}
	return &Composer{recommender: rec, recommendLimit: recommendLimit, maxParallel: maxParallel}
}

// ComposeInput carries one request's snapshot of the world.
type ComposeInput struct {
	Events              []domain.ConsumptionEvent
	Inventory           []domain.InventoryItem
	ThresholdDays       float64
	MealPlanIngredients []string
	Now                 time.Time
}

// Result is the composed list plus an explicit sufficiency signal, so "no
// item needs buying" is distinguishable from an omitted answer.
type Result struct {
	List            domain.CategorizedShoppingList
	SufficientStock bool
}

// Compose runs the full composition pipeline: forecast every item, apply
// inventory overrides, keep items below the urgency threshold, add meal plan
// ingredients missing from inventory, attach AI suggestions, promote unseen
// suggestions to complementary entries, then sort and partition.
func (c *Composer) Compose(ctx context.Context, in ComposeInput) (*Result, error) {
	overrides := make(map[string]domain.InventoryItem, len(in.Inventory))
	inventoryNames := make([]string, 0, len(in.Inventory))
	for _, item := range in.Inventory {
		overrides[strings.ToLower(item.ItemName)] = item
		inventoryNames = append(inventoryNames, item.ItemName)
	}

	var entries []domain.ShoppingListEntry

	// Consumption forecasts, with override quantities standing in for the
	// log-derived stock reading. The override changes the stock, never the
	// usage rate, so a zero-quantity override is still urgent even when the
	// log says otherwise.
	groups := forecast.GroupByItem(in.Events)
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		avg, stock, err := forecast.Rate(groups[name])
		if err != nil {
			continue
		}
		if ov, ok := overrides[strings.ToLower(name)]; ok {
			stock = ov.Quantity
		}

		days := stock / avg
		if days >= in.ThresholdDays {
			continue
		}

		refillBy := in.Now.Add(time.Duration(days * 24 * float64(time.Hour))).Format(domain.DateLayout)
		entries = append(entries, domain.ShoppingListEntry{
			ItemName:       name,
			RefillBy:       &refillBy,
			RemainingStock: ptr(stock),
			DailyUsage:     ptr(round(avg, 2)),
			DaysLeft:       ptr(round(days, 1)),
			Source:         domain.SourceConsumptionPrediction,
		})
	}

	// Meal plan ingredients not covered by inventory or history. days_left
	// is zero: the ingredient is needed today, which is distinct from the
	// nil (unknown) of complementary suggestions.
	available := append(append([]string{}, inventoryNames...), names...)
	today := in.Now.Format(domain.DateLayout)
	for _, raw := range in.MealPlanIngredients {
		name := ingredient.Normalize(raw)
		if name == "" || ingredient.MatchesAny(name, available) {
			continue
		}
		if hasEntry(entries, name) {
			continue
		}
		entries = append(entries, domain.ShoppingListEntry{
			ItemName:       ingredient.Title(name),
			RefillBy:       &today,
			RemainingStock: ptr(0.0),
			DaysLeft:       ptr(0.0),
			Source:         domain.SourceMealPlanRequirement,
		})
	}

	if len(entries) == 0 {
		return &Result{
			List: domain.CategorizedShoppingList{
				UrgentItems:              []domain.ShoppingListEntry{},
				MealPlanItems:            []domain.ShoppingListEntry{},
				OtherItems:               []domain.ShoppingListEntry{},
				ComplementarySuggestions: []domain.ShoppingListEntry{},
			},
			SufficientStock: true,
		}, nil
	}

	c.attachSuggestions(ctx, entries)

	// Suggested items nobody owns yet become complementary entries with all
	// numeric fields unknown.
	seenSuggestions := make(map[string]bool)
	for _, e := range entries {
		for _, s := range e.SuggestedSimilarItems {
			key := strings.ToLower(strings.TrimSpace(s))
			if key == "" || seenSuggestions[key] {
				continue
			}
			seenSuggestions[key] = true
			if hasEntry(entries, key) {
				continue
			}
			if _, owned := overrides[key]; owned {
				continue
			}
			entries = append(entries, domain.ShoppingListEntry{
				ItemName: ingredient.Title(key),
				Source:   domain.SourceComplementarySuggestion,
			})
		}
	}

	sortEntries(entries)

	return &Result{List: partition(entries)}, nil
}

// attachSuggestions fills SuggestedSimilarItems for the most urgent entries,
// capped at the per-request recommendation limit. Entries are matched back by
// exact lowercase name first, then by fuzzy containment.
func (c *Composer) attachSuggestions(ctx context.Context, entries []domain.ShoppingListEntry) {
	limit := c.recommendLimit
	if limit > len(entries) {
		limit = len(entries)
	}

	names := make([]string, 0, limit)
	for _, e := range entries[:limit] {
		names = append(names, e.ItemName)
	}

	results := recommend.SuggestAll(ctx, c.recommender, names, c.maxParallel)

	byKey := make(map[string][]string, len(results))
	for name, suggestions := range results {
		byKey[strings.ToLower(name)] = suggestions
	}

	for i := range entries {
		key := strings.ToLower(entries[i].ItemName)
		if suggestions, ok := byKey[key]; ok {
			entries[i].SuggestedSimilarItems = suggestions
			continue
		}
		for recKey, suggestions := range byKey {
			if ingredient.Matches(key, recKey) {
				entries[i].SuggestedSimilarItems = suggestions
				break
			}
		}
	}
}

// sortEntries orders by days-left ascending with nil (unknown) last; ties
// break on item name so composition is deterministic.
func sortEntries(entries []domain.ShoppingListEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		di, dj := entries[i].DaysLeft, entries[j].DaysLeft
		switch {
		case di == nil && dj == nil:
			return entries[i].ItemName < entries[j].ItemName
		case di == nil:
			return false
		case dj == nil:
			return true
		case *di != *dj:
			return *di < *dj
		default:
			return entries[i].ItemName < entries[j].ItemName
		}
	})
}

// partition assigns every entry to exactly one bucket in a single pass.
// Meal plan requirements and complementary suggestions keep their dedicated
// buckets; among consumption forecasts, a known days-left at or below the
// urgent cutoff wins over "other".
func partition(entries []domain.ShoppingListEntry) domain.CategorizedShoppingList {
	list := domain.CategorizedShoppingList{
		UrgentItems:              []domain.ShoppingListEntry{},
		MealPlanItems:            []domain.ShoppingListEntry{},
		OtherItems:               []domain.ShoppingListEntry{},
		ComplementarySuggestions: []domain.ShoppingListEntry{},
	}

	for _, e := range entries {
		switch {
		case e.Source == domain.SourceMealPlanRequirement:
			list.MealPlanItems = append(list.MealPlanItems, e)
		case e.Source == domain.SourceComplementarySuggestion:
			list.ComplementarySuggestions = append(list.ComplementarySuggestions, e)
		case e.DaysLeft != nil && *e.DaysLeft <= urgentCutoffDays:
			list.UrgentItems = append(list.UrgentItems, e)
		default:
			list.OtherItems = append(list.OtherItems, e)
		}
	}

	return list
}

func hasEntry(entries []domain.ShoppingListEntry, name string) bool {
	for _, e := range entries {
		if strings.EqualFold(e.ItemName, name) {
			return true
		}
	}
	return false
}

func ptr(f float64) *float64 { return &f }

func round(f float64, places int) float64 {
	shift := math.Pow(10, float64(places))
	return math.Round(f*shift) / shift
}
