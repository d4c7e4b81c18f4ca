package service

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/smartkitchen/inventory-api/internal/config"
	"github.com/smartkitchen/inventory-api/internal/domain"
	"github.com/smartkitchen/inventory-api/internal/forecast"
	"github.com/smartkitchen/inventory-api/internal/mealplan"
	"github.com/smartkitchen/inventory-api/internal/repository"
)

// ItemPrediction is the per-item forecast fragment shown on the dashboard.
// It is nil on ItemStatus when the item has no valid forecast.
type ItemPrediction struct {
	DaysUntilEmpty float64 `json:"days_until_empty"`
	RefillDate     string  `json:"refill_date"`
}

// ItemStatus is one item's latest reading plus its forecast, if any.
type ItemStatus struct {
	ItemName       string          `json:"item_name"`
	RemainingStock float64         `json:"remaining_stock"`
	LastUsed       string          `json:"last_used"`
	Prediction     *ItemPrediction `json:"prediction"`
}

// InventoryStatus summarizes the tracked items for the dashboard.
type InventoryStatus struct {
	TotalItems      int          `json:"total_items"`
	ItemsRunningLow int          `json:"items_running_low"`
	Details         []ItemStatus `json:"inventory_details"`
}

// Dashboard is the aggregated kitchen overview.
type Dashboard struct {
	Inventory      InventoryStatus  `json:"inventory_status"`
	LatestMealPlan *domain.MealPlan `json:"latest_meal_plan"`
}

// maxDashboardItems caps the detail list at the most urgent items.
const maxDashboardItems = 10

// DashboardService builds the overview from the consumption log and the
// latest meal plan.
type DashboardService struct {
	repo    repository.ConsumptionRepository
	planner *mealplan.Planner
	cfg     config.ForecastConfig
}

func NewDashboardService(repo repository.ConsumptionRepository, planner *mealplan.Planner, cfg config.ForecastConfig) *DashboardService {
	return &DashboardService{repo: repo, planner: planner, cfg: cfg}
}

// Overview reports every tracked item's latest reading, forecasts the ones
// with enough history and counts how many fall below the enhanced threshold.
// Items without a valid forecast still appear, sorted after the forecast ones.
func (s *DashboardService) Overview(ctx context.Context) (*Dashboard, error) {
	events, err := s.repo.ListEvents(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	grouped := forecast.GroupByItem(events)

	statuses := make([]ItemStatus, 0, len(grouped))
	runningLow := 0
	for name, group := range grouped {
		latest := group[len(group)-1]
		status := ItemStatus{
			ItemName:       name,
			RemainingStock: latest.RemainingStock,
			LastUsed:       latest.DateConsumed.Format(domain.DateLayout),
		}

		if profile, err := forecast.Estimate(group, now); err == nil {
			status.Prediction = &ItemPrediction{
				DaysUntilEmpty: math.Round(profile.DaysUntilEmpty*10) / 10,
				RefillDate:     profile.RefillDate.Format(domain.DateLayout),
			}
			if profile.DaysUntilEmpty < s.cfg.EnhancedThresholdDays {
				runningLow++
			}
		}
		statuses = append(statuses, status)
	}

	sort.Slice(statuses, func(i, j int) bool {
		a, b := statuses[i], statuses[j]
		switch {
		case a.Prediction == nil && b.Prediction == nil:
			return a.ItemName < b.ItemName
		case a.Prediction == nil:
			return false
		case b.Prediction == nil:
			return true
		case a.Prediction.DaysUntilEmpty != b.Prediction.DaysUntilEmpty:
			return a.Prediction.DaysUntilEmpty < b.Prediction.DaysUntilEmpty
		default:
			return a.ItemName < b.ItemName
		}
	})

	details := statuses
	if len(details) > maxDashboardItems {
		details = details[:maxDashboardItems]
	}

	dash := &Dashboard{
		Inventory: InventoryStatus{
			TotalItems:      len(statuses),
			ItemsRunningLow: runningLow,
			Details:         details,
		},
	}

	if s.planner != nil {
		if plan, err := s.planner.Latest(ctx); err == nil {
			dash.LatestMealPlan = plan
		}
	}
	return dash, nil
}
