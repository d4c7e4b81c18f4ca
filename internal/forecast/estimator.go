package forecast

import (
	"math"
	"sort"
	"time"

	"github.com/smartkitchen/inventory-api/internal/domain"
)

// MinEvents is the minimum history length required before a usage rate is
// considered meaningful.
const MinEvents = 3

// Rate computes the average daily usage and the last recorded stock level for
// one item's history. It applies every guard of the estimator except the
// positive-stock check, for callers that substitute their own stock reading
// (inventory overrides).
//
// Gaps between consecutive events are measured in whole days; a zero-day gap
// and the undefined gap of the first event are both normalized to one day.
// Non-finite per-event rates are discarded; if none survive, or the mean rate
// is non-positive, the data is invalid.
func Rate(events []domain.ConsumptionEvent) (avgDailyUsage, latestStock float64, err error) {
	if len(events) < MinEvents {
		return 0, 0, domain.ErrInsufficientData
	}

	sorted := sortByDate(events)

	var sum float64
	var count int
	for i, ev := range sorted {
		gap := 1.0
		if i > 0 {
			gap = math.Floor(ev.DateConsumed.Sub(sorted[i-1].DateConsumed).Hours() / 24)
			if gap <= 0 {
				gap = 1
			}
		}
		rate := ev.QuantityUsed / gap
		if math.IsInf(rate, 0) || math.IsNaN(rate) {
			continue
		}
		sum += rate
		count++
	}

	if count == 0 {
		return 0, 0, domain.ErrInvalidData
	}

	avg := sum / float64(count)
	if avg <= 0 {
		return 0, 0, domain.ErrInvalidData
	}

	return avg, sorted[len(sorted)-1].RemainingStock, nil
}

// Estimate derives the full usage profile for one item's history. The stock
// guard is deliberate: zero or negative remaining stock means "cannot
// predict", never "zero days left".
func Estimate(events []domain.ConsumptionEvent, now time.Time) (*domain.ItemUsageProfile, error) {
	avg, stock, err := Rate(events)
	if err != nil {
		return nil, err
	}
	if stock <= 0 {
		return nil, domain.ErrInvalidData
	}

	days := stock / avg
	return &domain.ItemUsageProfile{
		ItemName:             events[len(events)-1].ItemName,
		AvgDailyUsage:        avg,
		LatestRemainingStock: stock,
		DaysUntilEmpty:       days,
		RefillDate:           now.Add(time.Duration(days * 24 * float64(time.Hour))),
	}, nil
}

// GroupByItem splits a full log into per-item histories, preserving the
// relative order of events within each item.
func GroupByItem(events []domain.ConsumptionEvent) map[string][]domain.ConsumptionEvent {
	groups := make(map[string][]domain.ConsumptionEvent)
	for _, ev := range events {
		groups[ev.ItemName] = append(groups[ev.ItemName], ev)
	}
	return groups
}

func sortByDate(events []domain.ConsumptionEvent) []domain.ConsumptionEvent {
	sorted := make([]domain.ConsumptionEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DateConsumed.Before(sorted[j].DateConsumed)
	})
	return sorted
}
