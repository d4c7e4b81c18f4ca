package shopping

import (
	"context"
	"sort"
	"time"

	"github.com/smartkitchen/inventory-api/internal/domain"
	"github.com/smartkitchen/inventory-api/internal/forecast"
)

// ComposeBasic builds the plain consumption-driven list: every item whose
// forecast falls below the threshold, most urgent first, capped at limit,
// each annotated with AI suggestions. No inventory overrides and no meal plan
// input; items with non-positive stock are skipped by the estimator's guard.
func (c *Composer) ComposeBasic(ctx context.Context, events []domain.ConsumptionEvent, thresholdDays float64, limit int, now time.Time) ([]domain.ShoppingListEntry, error) {
	var entries []domain.ShoppingListEntry

	for name, group := range forecast.GroupByItem(events) {
		profile, err := forecast.Estimate(group, now)
		if err != nil {
			continue
		}
		if profile.DaysUntilEmpty >= thresholdDays {
			continue
		}

		refillBy := profile.RefillDate.Format(domain.DateLayout)
		entries = append(entries, domain.ShoppingListEntry{
			ItemName:       name,
			RefillBy:       &refillBy,
			RemainingStock: ptr(profile.LatestRemainingStock),
			DailyUsage:     ptr(round(profile.AvgDailyUsage, 2)),
			DaysLeft:       ptr(round(profile.DaysUntilEmpty, 1)),
			Source:         domain.SourceConsumptionPrediction,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if *entries[i].DaysLeft != *entries[j].DaysLeft {
			return *entries[i].DaysLeft < *entries[j].DaysLeft
		}
		return entries[i].ItemName < entries[j].ItemName
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	if len(entries) == 0 {
		return []domain.ShoppingListEntry{}, nil
	}

	c.attachSuggestions(ctx, entries)
	return entries, nil
}
