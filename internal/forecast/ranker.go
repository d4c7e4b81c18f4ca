package forecast

import (
	"time"

	"github.com/smartkitchen/inventory-api/internal/domain"
)

// RankSoonest applies the estimator across every item in the log and returns
// the profile of the item that will deplete first. Items with insufficient or
// invalid history are skipped, never fatal. Ties on days-until-empty break on
// the lexicographically smaller item name so the result is deterministic.
func RankSoonest(log []domain.ConsumptionEvent, now time.Time) (*domain.ItemUsageProfile, error) {
	var soonest *domain.ItemUsageProfile

	for name, events := range GroupByItem(log) {
		profile, err := Estimate(events, now)
		if err != nil {
			continue
		}
		profile.ItemName = name

		if soonest == nil ||
			profile.DaysUntilEmpty < soonest.DaysUntilEmpty ||
			(profile.DaysUntilEmpty == soonest.DaysUntilEmpty && profile.ItemName < soonest.ItemName) {
			soonest = profile
		}
	}

	if soonest == nil {
		return nil, domain.ErrNoValidPredictions
	}
	return soonest, nil
}
