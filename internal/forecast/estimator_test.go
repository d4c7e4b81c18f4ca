package forecast

import (
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

func milkHistory() []domain.ConsumptionEvent {
	return []domain.ConsumptionEvent{
		event("Milk", "2025-03-01", 1, 5),
		event("Milk", "2025-03-05", 1, 4),
		event("Milk", "2025-03-10", 1, 3),
	}
}

func TestRate(t *testing.T) {
	tests := []struct {
		name      string
		events    []domain.ConsumptionEvent
		wantAvg   float64
		wantStock float64
		wantErr   error
	}{
		{
			name:    "too few events",
			events:  milkHistory()[:2],
			wantErr: domain.ErrInsufficientData,
		},
		{
			name:    "empty history",
			events:  nil,
			wantErr: domain.ErrInsufficientData,
		},
		{
			// First gap normalizes to one day, then 4 and 5 day gaps.
			// Rates 1, 0.25 and 0.2 average to 0.4833.
			name:      "milk sample",
			events:    milkHistory(),
			wantAvg:   (1.0 + 0.25 + 0.2) / 3,
			wantStock: 3,
		},
		{
			name: "same day events count as one day gaps",
			events: []domain.ConsumptionEvent{
				event("Juice", "2025-03-01", 2, 10),
				event("Juice", "2025-03-01", 2, 8),
				event("Juice", "2025-03-01", 2, 6),
			},
			wantAvg:   2,
			wantStock: 6,
		},
		{
			name: "zero usage rate is invalid",
			events: []domain.ConsumptionEvent{
				event("Salt", "2025-03-01", 0, 5),
				event("Salt", "2025-03-02", 0, 5),
				event("Salt", "2025-03-03", 0, 5),
			},
			wantErr: domain.ErrInvalidData,
		},
		{
			name: "unsorted input is sorted first",
			events: []domain.ConsumptionEvent{
				event("Milk", "2025-03-10", 1, 3),
				event("Milk", "2025-03-01", 1, 5),
				event("Milk", "2025-03-05", 1, 4),
			},
			wantAvg:   (1.0 + 0.25 + 0.2) / 3,
			wantStock: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			avg, stock, err := Rate(tt.events)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.InDelta(t, tt.wantAvg, avg, 1e-9)
			assert.Equal(t, tt.wantStock, stock)
		})
	}
}

func TestEstimate(t *testing.T) {
	now := day("2025-03-15")

	t.Run("milk sample", func(t *testing.T) {
		profile, err := Estimate(milkHistory(), now)
		assert.NoError(t, err)
		assert.Equal(t, "Milk", profile.ItemName)
		assert.InDelta(t, 0.4833, profile.AvgDailyUsage, 0.001)
		assert.Equal(t, 3.0, profile.LatestRemainingStock)
		assert.InDelta(t, 6.2069, profile.DaysUntilEmpty, 0.001)
		assert.Equal(t, "2025-03-21", profile.RefillDate.Format(domain.DateLayout))
	})

	t.Run("zero stock is invalid", func(t *testing.T) {
		events := []domain.ConsumptionEvent{
			event("Eggs", "2025-03-02", 6, 12),
			event("Eggs", "2025-03-06", 6, 6),
			event("Eggs", "2025-03-09", 6, 0),
		}
		_, err := Estimate(events, now)
		assert.ErrorIs(t, err, domain.ErrInvalidData)
	})

	t.Run("more stock means a later refill date", func(t *testing.T) {
		lean := milkHistory()
		rich := milkHistory()
		rich[2].RemainingStock = 30

		leanProfile, err := Estimate(lean, now)
		assert.NoError(t, err)
		richProfile, err := Estimate(rich, now)
		assert.NoError(t, err)

		assert.Greater(t, richProfile.DaysUntilEmpty, leanProfile.DaysUntilEmpty)
		assert.True(t, richProfile.RefillDate.After(leanProfile.RefillDate))
	})
}

func TestPredict(t *testing.T) {
	now := day("2025-03-15")
	log := append(milkHistory(),
		event("Bread", "2025-03-05", 1, 3),
	)

	t.Run("case insensitive item match", func(t *testing.T) {
		profile, err := Predict("milk", log, now)
		assert.NoError(t, err)
		assert.Equal(t, "milk", profile.ItemName)
		assert.InDelta(t, 6.2069, profile.DaysUntilEmpty, 0.001)
	})

	t.Run("unknown item", func(t *testing.T) {
		_, err := Predict("Caviar", log, now)
		assert.ErrorIs(t, err, domain.ErrItemNotFound)
	})

	t.Run("known item with thin history", func(t *testing.T) {
		_, err := Predict("Bread", log, now)
		assert.ErrorIs(t, err, domain.ErrInsufficientData)
	})
}

func TestRankSoonest(t *testing.T) {
	now := day("2025-03-15")

	t.Run("picks the item depleting first", func(t *testing.T) {
		log := append(milkHistory(),
			event("Rice", "2025-03-03", 500, 5000),
			event("Rice", "2025-03-08", 500, 4500),
			event("Rice", "2025-03-13", 500, 4000),
		)

		profile, err := RankSoonest(log, now)
		assert.NoError(t, err)
		assert.Equal(t, "Milk", profile.ItemName)
	})

	t.Run("items with invalid data are skipped", func(t *testing.T) {
		log := append(milkHistory(),
			// Zero final stock disqualifies Eggs entirely.
			event("Eggs", "2025-03-02", 6, 12),
			event("Eggs", "2025-03-06", 6, 6),
			event("Eggs", "2025-03-09", 6, 0),
		)

		profile, err := RankSoonest(log, now)
		assert.NoError(t, err)
		assert.Equal(t, "Milk", profile.ItemName)
	})

	t.Run("ties break on item name", func(t *testing.T) {
		log := append(milkHistory(),
			event("Almondmilk", "2025-03-01", 1, 5),
			event("Almondmilk", "2025-03-05", 1, 4),
			event("Almondmilk", "2025-03-10", 1, 3),
		)

		profile, err := RankSoonest(log, now)
		assert.NoError(t, err)
		assert.Equal(t, "Almondmilk", profile.ItemName)
	})

	t.Run("nothing predictable", func(t *testing.T) {
		log := []domain.ConsumptionEvent{
			event("Bread", "2025-03-05", 1, 3),
		}
		_, err := RankSoonest(log, now)
		assert.ErrorIs(t, err, domain.ErrNoValidPredictions)
	})
}
